package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type MemberService interface {
	Join(ctx context.Context, dto *dto.JoinDTO) error
	JoinSocial(ctx context.Context, memberID uint64, dto *dto.JoinSocialDTO) error
	CheckEmail(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, dto *dto.LoginDTO) (string, error)
	Logout(ctx context.Context, token string) error
	Withdraw(ctx context.Context, id uint64, password string, token string) error
	GetProfile(ctx context.Context, id uint64) (*dto.MemberDTO, error)
	GetProfileByNickname(ctx context.Context, nickname string) (*dto.MemberDTO, error)
	UpdateProfile(ctx context.Context, id uint64, dto *dto.UpdateMemberDTO) (*dto.MemberDTO, error)
	UpdatePassword(ctx context.Context, id uint64, dto *dto.ChangePasswordDTO) error
	UpdateThumbnail(ctx context.Context, id uint64, reader io.Reader, contentType string) (string, error)
	DeleteThumbnail(ctx context.Context, id uint64) error
}

type MemberServiceImpl struct {
	memberRepo repository.MemberRepo
	upload     Uploader
	remove     Remover
}

func NewMemberService(memberRepo repository.MemberRepo, upload Uploader, remove Remover) MemberService {
	return &MemberServiceImpl{
		memberRepo: memberRepo,
		upload:     upload,
		remove:     remove,
	}
}

func (s *MemberServiceImpl) Join(ctx context.Context, joinDTO *dto.JoinDTO) error {
	findMember, err := s.memberRepo.GetMemberByUsername(ctx, joinDTO.Username)
	if err != nil {
		return err
	}
	if findMember != nil {
		return ErrUsernameExist
	}

	findMember, err = s.memberRepo.GetMemberByEmail(ctx, joinDTO.Email)
	if err != nil {
		return err
	}
	if findMember != nil {
		return ErrEmailExist
	}

	findMember, err = s.memberRepo.GetMemberByNickname(ctx, joinDTO.Nickname)
	if err != nil {
		return err
	}
	if findMember != nil {
		return ErrNicknameExist
	}

	passwordHash, err := security.HashPassword(joinDTO.Password)
	if err != nil {
		return err
	}

	username := joinDTO.Username
	nickname := joinDTO.Nickname
	member := &model.Member{
		Username: &username,
		Email:    joinDTO.Email,
		Nickname: &nickname,
		Password: &passwordHash,
		Role:     consts.RoleUser,
	}

	thumbnail := &model.MemberThumbnail{
		Name: consts.DefaultThumbnailName,
		Path: minio.GetPublicURL(consts.DefaultThumbnailName),
	}

	err = s.memberRepo.CreateMember(ctx, member, thumbnail)
	if err != nil {
		// 并发注册时落在唯一索引上
		if repository.IsDuplicateError(err) {
			return ErrUsernameExist
		}
		return err
	}

	return nil
}

// JoinSocial 补全社交注册留下的账号、昵称与密码
func (s *MemberServiceImpl) JoinSocial(ctx context.Context, memberID uint64, joinDTO *dto.JoinSocialDTO) error {
	member, err := s.memberRepo.GetMemberById(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.IsComplete() {
		return ErrSignupCompleted
	}

	findMember, err := s.memberRepo.GetMemberByUsername(ctx, joinDTO.Username)
	if err != nil {
		return err
	}
	if findMember != nil {
		return ErrUsernameExist
	}

	findMember, err = s.memberRepo.GetMemberByNickname(ctx, joinDTO.Nickname)
	if err != nil {
		return err
	}
	if findMember != nil {
		return ErrNicknameExist
	}

	passwordHash, err := security.HashPassword(joinDTO.Password)
	if err != nil {
		return err
	}

	member.Username = &joinDTO.Username
	member.Nickname = &joinDTO.Nickname
	member.Password = &passwordHash
	err = s.memberRepo.UpdateMember(ctx, member)
	if err != nil {
		if repository.IsDuplicateError(err) {
			return ErrNicknameExist
		}
		return err
	}
	return nil
}

// CheckEmail 返回邮箱是否可用于注册
func (s *MemberServiceImpl) CheckEmail(ctx context.Context, email string) (bool, error) {
	member, err := s.memberRepo.GetMemberByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return member == nil, nil
}

func (s *MemberServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (string, error) {
	member, err := s.memberRepo.GetMemberByUsername(ctx, loginDTO.Username)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", ErrMemberNotFound
	}
	if member.Password == nil {
		return "", ErrSignupIncomplete
	}
	err = security.CheckPasswordHash(loginDTO.Password, *member.Password)
	if err != nil {
		return "", ErrPasswordIncorrect
	}
	token, err := security.GenerateToken(member.ID, []string{member.Role})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *MemberServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, security.JWTExpirationTime)
}

// Withdraw 注销账号，需再次校验密码
func (s *MemberServiceImpl) Withdraw(ctx context.Context, id uint64, password string, token string) error {
	member, err := s.memberRepo.GetMemberById(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Password == nil {
		return ErrSignupIncomplete
	}
	err = security.CheckPasswordHash(password, *member.Password)
	if err != nil {
		return ErrPasswordIncorrect
	}

	// 文章缩略图对象名要在级联删除前收集
	postThumbnails, err := s.memberRepo.FindPostThumbnailNames(ctx, id)
	if err != nil {
		return err
	}

	err = s.memberRepo.DeleteMember(ctx, id)
	if err != nil {
		return err
	}

	if s.remove != nil {
		if member.Thumbnail.Name != "" && member.Thumbnail.Name != consts.DefaultThumbnailName {
			_ = s.remove(ctx, member.Thumbnail.Name)
		}
		for _, name := range postThumbnails {
			_ = s.remove(ctx, name)
		}
	}
	if member.Nickname != nil {
		_ = redis.DeleteKey(ctx, consts.MemberProfileKey+*member.Nickname)
	}
	if token != "" {
		_ = s.Logout(ctx, token)
	}
	return nil
}

func (s *MemberServiceImpl) GetProfile(ctx context.Context, id uint64) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.GetMemberById(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return s.toMemberDTO(member, true), nil
}

func (s *MemberServiceImpl) GetProfileByNickname(ctx context.Context, nickname string) (*dto.MemberDTO, error) {
	key := consts.MemberProfileKey + nickname
	value, err := redis.GetValue(ctx, key)
	if err != nil {
		return nil, err
	}
	if value != "" {
		var memberDTO *dto.MemberDTO
		err = json.Unmarshal([]byte(value), &memberDTO)
		if err == nil {
			return memberDTO, nil
		}
	}

	member, err := s.memberRepo.GetMemberByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	memberDTO := s.toMemberDTO(member, false)
	jsonStr, err := json.Marshal(memberDTO)
	if err != nil {
		return nil, err
	}
	_ = redis.SetWithExpiration(ctx, key, string(jsonStr), time.Hour*1)
	return memberDTO, nil
}

// UpdateProfile 修改昵称与博客资料，返回更新后的视图
func (s *MemberServiceImpl) UpdateProfile(ctx context.Context, id uint64, updateDTO *dto.UpdateMemberDTO) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.GetMemberById(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	fields := map[string]interface{}{}
	oldNickname := member.Nickname

	if updateDTO.Nickname != nil && *updateDTO.Nickname != "" &&
		(member.Nickname == nil || *member.Nickname != *updateDTO.Nickname) {
		findMember, err := s.memberRepo.GetMemberByNickname(ctx, *updateDTO.Nickname)
		if err != nil {
			return nil, err
		}
		if findMember != nil {
			return nil, ErrNicknameExist
		}
		fields["nickname"] = *updateDTO.Nickname
		member.Nickname = updateDTO.Nickname
	}
	if updateDTO.Introduce != nil {
		fields["introduce"] = *updateDTO.Introduce
		member.Introduce = *updateDTO.Introduce
	}
	if updateDTO.BlogTitle != nil {
		fields["blog_title"] = *updateDTO.BlogTitle
		member.BlogTitle = *updateDTO.BlogTitle
	}
	if updateDTO.SocialEmail != nil {
		fields["social_email"] = *updateDTO.SocialEmail
		member.SocialEmail = *updateDTO.SocialEmail
	}
	if updateDTO.SocialGithub != nil {
		fields["social_github"] = *updateDTO.SocialGithub
		member.SocialGithub = *updateDTO.SocialGithub
	}

	if len(fields) == 0 {
		return s.toMemberDTO(member, true), nil
	}

	err = s.memberRepo.UpdateMemberFields(ctx, id, fields)
	if err != nil {
		if repository.IsDuplicateError(err) {
			return nil, ErrNicknameExist
		}
		return nil, err
	}

	if oldNickname != nil {
		_ = redis.DeleteKey(ctx, consts.MemberProfileKey+*oldNickname)
	}
	return s.toMemberDTO(member, true), nil
}

func (s *MemberServiceImpl) UpdatePassword(ctx context.Context, id uint64, changeDTO *dto.ChangePasswordDTO) error {
	member, err := s.memberRepo.GetMemberById(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Password == nil {
		return ErrSignupIncomplete
	}
	err = security.CheckPasswordHash(changeDTO.OldPassword, *member.Password)
	if err != nil {
		return ErrPasswordIncorrect
	}
	passwordHash, err := security.HashPassword(changeDTO.NewPassword)
	if err != nil {
		return err
	}
	return s.memberRepo.UpdateMemberPassword(ctx, id, passwordHash)
}

// UpdateThumbnail 覆盖头像，对象名复用避免存储堆积
func (s *MemberServiceImpl) UpdateThumbnail(ctx context.Context, id uint64, reader io.Reader, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return "", ErrFileNotSupported
	}

	member, err := s.memberRepo.GetMemberById(ctx, id)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", ErrMemberNotFound
	}

	normalized, size, err := util.NormalizeThumbnail(reader)
	if err != nil {
		return "", ErrFileNotSupported
	}

	objectName := member.Thumbnail.Name
	if objectName == "" || objectName == consts.DefaultThumbnailName {
		objectName = fmt.Sprintf("thumbnail/%d_%s.png", id, uuid.New().String())
	}

	_, err = s.upload(ctx, objectName, normalized, size, "image/png")
	if err != nil {
		return "", err
	}

	publicURL := minio.GetPublicURL(objectName)
	err = s.memberRepo.UpdateThumbnail(ctx, &model.MemberThumbnail{
		MemberID: id,
		Name:     objectName,
		Path:     publicURL,
	})
	if err != nil {
		return "", err
	}

	if member.Nickname != nil {
		_ = redis.DeleteKey(ctx, consts.MemberProfileKey+*member.Nickname)
	}
	return publicURL, nil
}

// DeleteThumbnail 移除自定义头像，回退到默认头像
func (s *MemberServiceImpl) DeleteThumbnail(ctx context.Context, id uint64) error {
	member, err := s.memberRepo.GetMemberById(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	oldName := member.Thumbnail.Name
	if oldName == "" || oldName == consts.DefaultThumbnailName {
		return nil
	}

	err = s.memberRepo.UpdateThumbnail(ctx, &model.MemberThumbnail{
		MemberID: id,
		Name:     consts.DefaultThumbnailName,
		Path:     minio.GetPublicURL(consts.DefaultThumbnailName),
	})
	if err != nil {
		return err
	}

	if s.remove != nil {
		_ = s.remove(ctx, oldName)
	}
	if member.Nickname != nil {
		_ = redis.DeleteKey(ctx, consts.MemberProfileKey+*member.Nickname)
	}
	return nil
}

func (s *MemberServiceImpl) toMemberDTO(member *model.Member, private bool) *dto.MemberDTO {
	createdAt := member.CreatedAt
	memberDTO := &dto.MemberDTO{
		MemberID:     member.ID,
		Nickname:     member.Nickname,
		Introduce:    member.Introduce,
		BlogTitle:    member.BlogTitle,
		SocialEmail:  member.SocialEmail,
		SocialGithub: member.SocialGithub,
		ThumbnailURL: member.Thumbnail.Path,
		CreatedAt:    &createdAt,
	}
	if private {
		memberDTO.Username = member.Username
		memberDTO.Email = member.Email
	}
	return memberDTO
}
