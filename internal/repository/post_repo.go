package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, tagNames []string) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post, tagNames []string) error
	DeletePost(ctx context.Context, id uint64) error
	IncrementViews(ctx context.Context, id uint64) error

	GetTemporary(ctx context.Context, postID uint64) (*model.TemporaryPost, error)
	UpsertTemporary(ctx context.Context, temp *model.TemporaryPost) error
	DeleteTemporary(ctx context.Context, postID uint64) error

	FindMainPage(ctx context.Context, sort string, offset, limit int) ([]model.Post, int64, error)
	SearchPage(ctx context.Context, keyword, nickname, tag string, offset, limit int) ([]model.Post, int64, error)
	FindByMemberPage(ctx context.Context, memberID uint64, includePrivate bool, offset, limit int) ([]model.Post, int64, error)
	FindTempCursor(ctx context.Context, memberID uint64, lastID uint64, limit int) ([]model.Post, error)
	FindLovedSlice(ctx context.Context, memberID uint64, offset, limit int) ([]model.Post, error)
	FindRecentSlice(ctx context.Context, memberID uint64, offset, limit int) ([]model.Post, error)
	FindSeriesPosts(ctx context.Context, seriesID uint64, includePrivate bool) ([]model.Post, error)
	FindPrevNext(ctx context.Context, post *model.Post) (*model.Post, *model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// resolveTags 按名称取或建标签，返回其 ID
func resolveTags(tx *gorm.DB, tagNames []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(tagNames))
	for _, name := range tagNames {
		if name == "" {
			continue
		}
		tag := model.Tag{Name: name}
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = tx.Create(&tag).Error
			if err != nil && IsDuplicateError(err) {
				err = tx.Where("name = ?", name).First(&tag).Error
			}
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func replacePostTags(tx *gorm.DB, postID uint64, tagIDs []uint64) error {
	if err := tx.Where("post_id = ?", postID).Delete(&model.PostTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]model.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, model.PostTag{PostID: postID, TagID: tagID})
	}
	return tx.Create(&links).Error
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, tagNames []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Member", "Series").Create(post).Error; err != nil {
			return err
		}
		tagIDs, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		return replacePostTags(tx, post.ID, tagIDs)
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Member").
		Preload("Member.Thumbnail").
		Preload("Series").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post, tagNames []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := []string{"title", "content", "introduce", "access", "status", "thumbnail_name", "thumbnail_path", "series_id"}
		if err := tx.Model(&model.Post{}).Where("id = ?", post.ID).Select(fields).Updates(post).Error; err != nil {
			return err
		}
		tagIDs, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		return replacePostTags(tx, post.ID, tagIDs)
	})
}

// DeletePost 物理删除文章及其附属记录
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.TemporaryPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Love{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Look{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

func (s *PostRepoImpl) IncrementViews(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (s *PostRepoImpl) GetTemporary(ctx context.Context, postID uint64) (*model.TemporaryPost, error) {
	var temp model.TemporaryPost
	err := s.db.WithContext(ctx).Where("post_id = ?", postID).First(&temp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &temp, nil
}

func (s *PostRepoImpl) UpsertTemporary(ctx context.Context, temp *model.TemporaryPost) error {
	err := s.db.WithContext(ctx).Create(temp).Error
	if err != nil && IsDuplicateError(err) {
		return s.db.WithContext(ctx).
			Model(&model.TemporaryPost{}).
			Where("post_id = ?", temp.PostID).
			Updates(map[string]interface{}{
				"title":   temp.Title,
				"content": temp.Content,
				"tags":    temp.Tags,
			}).Error
	}
	return err
}

func (s *PostRepoImpl) DeleteTemporary(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.TemporaryPost{}).Error
}

// FindMainPage 首页列表，只含公开的已发布文章
func (s *PostRepoImpl) FindMainPage(ctx context.Context, sort string, offset, limit int) ([]model.Post, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("status = ? AND access = ?", "GENERAL", "PUBLIC")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	if sort == "trending" {
		order = "loves DESC, id DESC"
	}

	var posts []model.Post
	err := query.
		Preload("Member").
		Preload("Member.Thumbnail").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// SearchPage 条件检索，关键字与作者、标签过滤可任意组合
func (s *PostRepoImpl) SearchPage(ctx context.Context, keyword, nickname, tag string, offset, limit int) ([]model.Post, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("posts.status = ? AND posts.access = ?", "GENERAL", "PUBLIC")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("posts.title LIKE ? OR posts.introduce LIKE ?", pattern, pattern)
	}
	if nickname != "" {
		query = query.
			Joins("JOIN members ON members.id = posts.member_id").
			Where("members.nickname = ?", nickname)
	}
	if tag != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.
		Preload("Member").
		Preload("Member.Thumbnail").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// FindByMemberPage 个人主页按页取文章，访客只看公开文章
func (s *PostRepoImpl) FindByMemberPage(ctx context.Context, memberID uint64, includePrivate bool, offset, limit int) ([]model.Post, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("member_id = ? AND status = ?", memberID, "GENERAL")

	if !includePrivate {
		query = query.Where("access = ?", "PUBLIC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.
		Preload("Tags").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) FindTempCursor(ctx context.Context, memberID uint64, lastID uint64, limit int) ([]model.Post, error) {
	query := s.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, "TEMPORARY")

	if lastID > 0 {
		query = query.Where("id < ?", lastID)
	}

	var posts []model.Post
	err := query.
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) FindLovedSlice(ctx context.Context, memberID uint64, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.WithContext(ctx).
		Joins("JOIN loves ON loves.post_id = posts.id AND loves.member_id = ?", memberID).
		Where("posts.status = ? AND posts.access = ?", "GENERAL", "PUBLIC").
		Preload("Member").
		Preload("Member.Thumbnail").
		Order("loves.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) FindRecentSlice(ctx context.Context, memberID uint64, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.WithContext(ctx).
		Joins("JOIN looks ON looks.post_id = posts.id AND looks.member_id = ?", memberID).
		Where("posts.status = ? AND posts.access = ?", "GENERAL", "PUBLIC").
		Preload("Member").
		Preload("Member.Thumbnail").
		Order("looks.viewed_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) FindSeriesPosts(ctx context.Context, seriesID uint64, includePrivate bool) ([]model.Post, error) {
	query := s.db.WithContext(ctx).
		Where("series_id = ? AND status = ?", seriesID, "GENERAL")

	if !includePrivate {
		query = query.Where("access = ?", "PUBLIC")
	}

	var posts []model.Post
	err := query.Order("created_at ASC, id ASC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPrevNext 同一作者时间线上的前后两篇公开文章
func (s *PostRepoImpl) FindPrevNext(ctx context.Context, post *model.Post) (*model.Post, *model.Post, error) {
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).
			Where("member_id = ? AND status = ? AND access = ?", post.MemberID, "GENERAL", "PUBLIC")
	}

	var prev model.Post
	err := base().Where("id < ?", post.ID).Order("id DESC").First(&prev).Error
	prevPtr := &prev
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		prevPtr = nil
	}

	var next model.Post
	err = base().Where("id > ?", post.ID).Order("id ASC").First(&next).Error
	nextPtr := &next
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		nextPtr = nil
	}

	return prevPtr, nextPtr, nil
}
