package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/oauth"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"bytes"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OAuthService interface {
	AuthURL(ctx context.Context, provider string) (string, error)
	Callback(ctx context.Context, provider string, code string, state string) (*dto.SocialLoginDTO, error)
}

type OAuthServiceImpl struct {
	memberRepo repository.MemberRepo
	client     *oauth.Client
	upload     Uploader
}

func NewOAuthService(memberRepo repository.MemberRepo, client *oauth.Client, upload Uploader) OAuthService {
	return &OAuthServiceImpl{
		memberRepo: memberRepo,
		client:     client,
		upload:     upload,
	}
}

func (s *OAuthServiceImpl) AuthURL(ctx context.Context, provider string) (string, error) {
	providerCfg, ok := config.Cfg.OAuth.Providers[provider]
	if !ok {
		return "", ErrOAuthProvider
	}

	state := uuid.New().String()
	err := redis.SetWithExpiration(ctx, consts.OAuthStateKey+state, provider, time.Minute*10)
	if err != nil {
		return "", err
	}

	return oauth.BuildAuthURL(providerCfg, state), nil
}

func (s *OAuthServiceImpl) Callback(ctx context.Context, provider string, code string, state string) (*dto.SocialLoginDTO, error) {
	providerCfg, ok := config.Cfg.OAuth.Providers[provider]
	if !ok {
		return nil, ErrOAuthProvider
	}

	stored, err := redis.GetDelValue(ctx, consts.OAuthStateKey+state)
	if err != nil {
		return nil, err
	}
	if redis.GetRdbClient() != nil && stored != provider {
		return nil, ErrOAuthStateInvalid
	}

	accessToken, err := s.client.ExchangeToken(ctx, providerCfg, code)
	if err != nil {
		log.WarnContext(ctx, "OAuth 换取 token 失败", "provider", provider, "err", err)
		return nil, ErrOAuthStateInvalid
	}

	raw, err := s.client.FetchUserInfo(ctx, providerCfg, accessToken)
	if err != nil {
		return nil, err
	}

	attrs, err := oauth.Normalize(provider, raw)
	if err != nil {
		return nil, err
	}

	if attrs.Email == "" && provider == "github" {
		attrs.Email, err = s.client.FetchPrimaryEmail(ctx, providerCfg, accessToken)
		if err != nil {
			return nil, err
		}
	}
	if attrs.Email == "" {
		return nil, ErrOAuthStateInvalid
	}

	member, err := s.memberRepo.GetMemberByEmail(ctx, attrs.Email)
	if err != nil {
		return nil, err
	}

	if member != nil {
		if member.IsComplete() {
			if !config.Cfg.OAuth.AllowExisting {
				return nil, ErrOAuthEmailExist
			}
			return s.issueToken(member.ID, false)
		}
		return s.issueToken(member.ID, true)
	}

	member = &model.Member{
		Email:    attrs.Email,
		Role:     consts.RoleUser,
		Provider: &attrs.Provider,
	}
	thumbnail := s.buildSocialThumbnail(ctx, attrs)

	err = s.memberRepo.CreateMember(ctx, member, thumbnail)
	if err != nil {
		if repository.IsDuplicateError(err) {
			return nil, ErrOAuthEmailExist
		}
		return nil, err
	}

	return s.issueToken(member.ID, true)
}

// buildSocialThumbnail 首次社交登录时把提供方头像转存到对象存储
func (s *OAuthServiceImpl) buildSocialThumbnail(ctx context.Context, attrs *oauth.Attributes) *model.MemberThumbnail {
	thumbnail := &model.MemberThumbnail{
		Name: consts.DefaultThumbnailName,
		Path: minio.GetPublicURL(consts.DefaultThumbnailName),
	}
	if attrs.Picture == "" || s.upload == nil {
		return thumbnail
	}

	data, contentType, err := s.client.FetchImage(ctx, attrs.Picture)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return thumbnail
	}

	objectName := fmt.Sprintf("thumbnail/%s_%s", attrs.Provider, uuid.New().String())
	_, err = s.upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.WarnContext(ctx, "社交头像转存失败", "err", err)
		return thumbnail
	}

	thumbnail.Name = objectName
	thumbnail.Path = minio.GetPublicURL(objectName)
	return thumbnail
}

func (s *OAuthServiceImpl) issueToken(memberID uint64, needSignup bool) (*dto.SocialLoginDTO, error) {
	token, err := security.GenerateToken(memberID, []string{consts.RoleUser})
	if err != nil {
		return nil, err
	}
	return &dto.SocialLoginDTO{Token: token, NeedSignup: needSignup}, nil
}
