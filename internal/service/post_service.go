package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/repository"
	"context"
	"strings"
)

type PostService interface {
	Write(ctx context.Context, memberID uint64, dto *dto.WriteDTO) (uint64, error)
	WriteTemporary(ctx context.Context, memberID uint64, dto *dto.WriteDTO) (uint64, error)
	GetWrite(ctx context.Context, memberID uint64, postID uint64) (*dto.WriteViewDTO, error)
	Delete(ctx context.Context, memberID uint64, postID uint64) error
}

type PostServiceImpl struct {
	postRepo   repository.PostRepo
	seriesRepo repository.SeriesRepo
	remove     Remover
}

func NewPostService(postRepo repository.PostRepo, seriesRepo repository.SeriesRepo, remove Remover) PostService {
	return &PostServiceImpl{
		postRepo:   postRepo,
		seriesRepo: seriesRepo,
		remove:     remove,
	}
}

// Write 发布文章。已发布文章的再次发布会吞掉其备用草稿
func (s *PostServiceImpl) Write(ctx context.Context, memberID uint64, writeDTO *dto.WriteDTO) (uint64, error) {
	access := writeDTO.Access
	if access == "" {
		access = consts.AccessPublic
	}

	seriesID, err := s.resolveSeries(ctx, memberID, writeDTO)
	if err != nil {
		return 0, err
	}

	post := &model.Post{
		ID:        writeDTO.PostID,
		MemberID:  memberID,
		Title:     writeDTO.Title,
		Content:   writeDTO.Content,
		Introduce: createIntroduce(writeDTO.Introduce, writeDTO.Content),
		Access:    access,
		Status:    consts.PostStatusGeneral,
		SeriesID:  seriesID,
	}
	applyThumbnail(post, writeDTO.Thumbnail)

	if writeDTO.PostID == 0 {
		err = s.postRepo.CreatePost(ctx, post, writeDTO.Tags)
		if err != nil {
			return 0, err
		}
		return post.ID, nil
	}

	existing, err := s.postRepo.GetPost(ctx, writeDTO.PostID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, ErrPostNotFound
	}
	if existing.MemberID != memberID {
		return 0, ForbiddenError
	}
	oldSeriesID := existing.SeriesID

	err = s.postRepo.UpdatePost(ctx, post, writeDTO.Tags)
	if err != nil {
		return 0, err
	}

	// 发布即消费备用草稿
	if existing.Status == consts.PostStatusGeneral {
		if err = s.postRepo.DeleteTemporary(ctx, post.ID); err != nil {
			return 0, err
		}
	}

	if oldSeriesID != nil && (seriesID == nil || *oldSeriesID != *seriesID) {
		_ = s.seriesRepo.DeleteIfEmpty(ctx, *oldSeriesID)
	}

	return post.ID, nil
}

// WriteTemporary 临时保存。未发布的直接覆盖，已发布的写入备用草稿
func (s *PostServiceImpl) WriteTemporary(ctx context.Context, memberID uint64, writeDTO *dto.WriteDTO) (uint64, error) {
	if writeDTO.PostID == 0 {
		post := &model.Post{
			MemberID:  memberID,
			Title:     writeDTO.Title,
			Content:   writeDTO.Content,
			Introduce: createIntroduce(writeDTO.Introduce, writeDTO.Content),
			Access:    consts.AccessPrivate,
			Status:    consts.PostStatusTemporary,
		}
		err := s.postRepo.CreatePost(ctx, post, writeDTO.Tags)
		if err != nil {
			return 0, err
		}
		return post.ID, nil
	}

	existing, err := s.postRepo.GetPost(ctx, writeDTO.PostID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, ErrPostNotFound
	}
	if existing.MemberID != memberID {
		return 0, ForbiddenError
	}

	if existing.Status == consts.PostStatusTemporary {
		post := &model.Post{
			ID:        existing.ID,
			Title:     writeDTO.Title,
			Content:   writeDTO.Content,
			Introduce: createIntroduce(writeDTO.Introduce, writeDTO.Content),
			Access:    consts.AccessPrivate,
			Status:    consts.PostStatusTemporary,
		}
		err = s.postRepo.UpdatePost(ctx, post, writeDTO.Tags)
		if err != nil {
			return 0, err
		}
		return post.ID, nil
	}

	temp := &model.TemporaryPost{
		PostID:  existing.ID,
		Title:   writeDTO.Title,
		Content: writeDTO.Content,
		Tags:    strings.Join(writeDTO.Tags, ","),
	}
	err = s.postRepo.UpsertTemporary(ctx, temp)
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// GetWrite 编辑页回显，已发布文章优先展示备用草稿
func (s *PostServiceImpl) GetWrite(ctx context.Context, memberID uint64, postID uint64) (*dto.WriteViewDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.MemberID != memberID {
		return nil, ForbiddenError
	}

	view := &dto.WriteViewDTO{
		PostID:    post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Introduce: post.Introduce,
		Access:    post.Access,
		Tags:      tagNames(post.Tags),
		Thumbnail: post.ThumbnailName,
	}
	if post.Series != nil {
		view.SeriesName = &post.Series.Name
	}

	if post.Status == consts.PostStatusGeneral {
		temp, err := s.postRepo.GetTemporary(ctx, postID)
		if err != nil {
			return nil, err
		}
		if temp != nil {
			view.Title = temp.Title
			view.Content = temp.Content
			view.Tags = splitTags(temp.Tags)
			view.FromTemporary = true
		}
	}

	return view, nil
}

func (s *PostServiceImpl) Delete(ctx context.Context, memberID uint64, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.MemberID != memberID {
		return ForbiddenError
	}

	err = s.postRepo.DeletePost(ctx, postID)
	if err != nil {
		return err
	}

	if post.SeriesID != nil {
		_ = s.seriesRepo.DeleteIfEmpty(ctx, *post.SeriesID)
	}
	if post.ThumbnailName != nil && s.remove != nil {
		_ = s.remove(ctx, *post.ThumbnailName)
	}
	return nil
}

func (s *PostServiceImpl) resolveSeries(ctx context.Context, memberID uint64, writeDTO *dto.WriteDTO) (*uint64, error) {
	if writeDTO.SeriesName == nil || *writeDTO.SeriesName == "" {
		return nil, nil
	}
	series, err := s.seriesRepo.GetOrCreateSeries(ctx, memberID, *writeDTO.SeriesName)
	if err != nil {
		return nil, err
	}
	return &series.ID, nil
}

// createIntroduce 未填写简介时从正文开头截取
func createIntroduce(introduce, content string) string {
	if introduce != "" {
		return introduce
	}
	runes := []rune(content)
	if len(runes) <= consts.IntroduceMaxLen {
		return content
	}
	return string(runes[:consts.IntroduceMaxLen])
}

func applyThumbnail(post *model.Post, thumbnail *string) {
	if thumbnail == nil || *thumbnail == "" {
		return
	}
	path := minio.GetPublicURL(*thumbnail)
	post.ThumbnailName = thumbnail
	post.ThumbnailPath = &path
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func splitTags(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}
