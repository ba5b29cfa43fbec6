package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MemberRepo interface {
	GetMemberById(ctx context.Context, id uint64) (*model.Member, error)
	GetMemberByUsername(ctx context.Context, username string) (*model.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*model.Member, error)
	GetMemberByNickname(ctx context.Context, nickname string) (*model.Member, error)
	CreateMember(ctx context.Context, member *model.Member, thumbnail *model.MemberThumbnail) error
	UpdateMember(ctx context.Context, member *model.Member) error
	UpdateMemberFields(ctx context.Context, id uint64, fields map[string]interface{}) error
	UpdateMemberPassword(ctx context.Context, id uint64, hashed string) error
	GetThumbnailByMemberId(ctx context.Context, memberID uint64) (*model.MemberThumbnail, error)
	UpdateThumbnail(ctx context.Context, thumbnail *model.MemberThumbnail) error
	FindPostThumbnailNames(ctx context.Context, memberID uint64) ([]string, error)
	DeleteMember(ctx context.Context, id uint64) error
	DeleteIncompleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type MemberRepoImpl struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepo {
	return &MemberRepoImpl{db: db}
}

func (s *MemberRepoImpl) GetMemberById(ctx context.Context, id uint64) (*model.Member, error) {
	member := &model.Member{}
	result := s.db.WithContext(ctx).
		Preload("Thumbnail").
		First(member, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return member, nil
}

func (s *MemberRepoImpl) GetMemberByUsername(ctx context.Context, username string) (*model.Member, error) {
	member := &model.Member{}
	result := s.db.WithContext(ctx).
		Preload("Thumbnail").
		Where("username = ?", username).
		First(&member)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return member, nil
}

func (s *MemberRepoImpl) GetMemberByEmail(ctx context.Context, email string) (*model.Member, error) {
	member := &model.Member{}
	result := s.db.WithContext(ctx).
		Preload("Thumbnail").
		Where("email = ?", email).
		First(&member)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return member, nil
}

func (s *MemberRepoImpl) GetMemberByNickname(ctx context.Context, nickname string) (*model.Member, error) {
	member := &model.Member{}
	result := s.db.WithContext(ctx).
		Preload("Thumbnail").
		Where("nickname = ?", nickname).
		First(&member)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return member, nil
}

func (s *MemberRepoImpl) CreateMember(ctx context.Context, member *model.Member, thumbnail *model.MemberThumbnail) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(member); result.Error != nil {
			return result.Error
		}

		thumbnail.MemberID = member.ID
		if result := tx.Create(thumbnail); result.Error != nil {
			return result.Error
		}

		return nil
	})
}

func (s *MemberRepoImpl) UpdateMember(ctx context.Context, member *model.Member) error {
	result := s.db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", member.ID).Updates(member)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UpdateMemberFields 按列更新，允许写入空串清空资料字段
func (s *MemberRepoImpl) UpdateMemberFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Updates(fields)
	return result.Error
}

func (s *MemberRepoImpl) UpdateMemberPassword(ctx context.Context, id uint64, hashed string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Update("password", hashed)
	return result.Error
}

func (s *MemberRepoImpl) GetThumbnailByMemberId(ctx context.Context, memberID uint64) (*model.MemberThumbnail, error) {
	thumbnail := &model.MemberThumbnail{}
	result := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		First(&thumbnail)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return thumbnail, nil
}

// UpdateThumbnail 原地覆盖缩略图记录，主键保持不变
func (s *MemberRepoImpl) UpdateThumbnail(ctx context.Context, thumbnail *model.MemberThumbnail) error {
	result := s.db.WithContext(ctx).
		Model(&model.MemberThumbnail{}).
		Where("member_id = ?", thumbnail.MemberID).
		Updates(map[string]interface{}{
			"name": thumbnail.Name,
			"path": thumbnail.Path,
		})
	return result.Error
}

// FindPostThumbnailNames 收集该会员全部文章的缩略图对象名，注销后据此清理对象存储
func (s *MemberRepoImpl) FindPostThumbnailNames(ctx context.Context, memberID uint64) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("member_id = ? AND thumbnail_name IS NOT NULL", memberID).
		Pluck("thumbnail_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteMember 注销会员，连带清理其全部内容
func (s *MemberRepoImpl) DeleteMember(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint64
		if err := tx.Model(&model.Post{}).Where("member_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.PostTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.TemporaryPost{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Love{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Look{}).Error; err != nil {
				return err
			}
			if err := tx.Where("member_id = ?", id).Delete(&model.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("member_id = ?", id).Delete(&model.Love{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&model.Look{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&model.Series{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&model.MemberThumbnail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Member{}, id).Error
	})
}

// DeleteIncompleteBefore 清理长期未补全的社交注册记录
func (s *MemberRepoImpl) DeleteIncompleteBefore(ctx context.Context, before time.Time) (int64, error) {
	return s.deleteIncomplete(ctx, s.db.WithContext(ctx).
		Where("(username IS NULL OR nickname IS NULL OR password IS NULL) AND created_at < ?", before))
}

func (s *MemberRepoImpl) deleteIncomplete(ctx context.Context, query *gorm.DB) (int64, error) {
	var ids []uint64
	if err := query.Model(&model.Member{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id IN ?", ids).Delete(&model.MemberThumbnail{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Member{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
