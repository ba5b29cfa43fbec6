package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ActionRepo interface {
	GetLove(ctx context.Context, memberID, postID uint64) (*model.Love, error)
	CreateLove(ctx context.Context, memberID, postID uint64) error
	DeleteLove(ctx context.Context, memberID, postID uint64) (int64, error)
	UpsertLook(ctx context.Context, memberID, postID uint64) error
}

type ActionRepoImpl struct {
	db *gorm.DB
}

func NewActionRepo(db *gorm.DB) ActionRepo {
	return &ActionRepoImpl{db: db}
}

func (s *ActionRepoImpl) GetLove(ctx context.Context, memberID, postID uint64) (*model.Love, error) {
	love := &model.Love{}
	result := s.db.WithContext(ctx).
		Where("member_id = ? AND post_id = ?", memberID, postID).
		First(love)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return love, nil
}

// CreateLove 点赞并同步计数，重复点赞由唯一键拦截
func (s *ActionRepoImpl) CreateLove(ctx context.Context, memberID, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		love := &model.Love{MemberID: memberID, PostID: postID}
		if err := tx.Create(love).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			Update("loves", gorm.Expr("loves + 1")).Error
	})
}

func (s *ActionRepoImpl) DeleteLove(ctx context.Context, memberID, postID uint64) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("member_id = ? AND post_id = ?", memberID, postID).Delete(&model.Love{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Model(&model.Post{}).
			Where("id = ? AND loves > 0", postID).
			Update("loves", gorm.Expr("loves - 1")).Error
	})
	return affected, err
}

// UpsertLook 记录阅读，重复阅读只刷新时间
func (s *ActionRepoImpl) UpsertLook(ctx context.Context, memberID, postID uint64) error {
	now := time.Now()
	look := &model.Look{MemberID: memberID, PostID: postID, ViewedAt: now}
	err := s.db.WithContext(ctx).Create(look).Error
	if err != nil && IsDuplicateError(err) {
		return s.db.WithContext(ctx).
			Model(&model.Look{}).
			Where("member_id = ? AND post_id = ?", memberID, postID).
			Update("viewed_at", now).Error
	}
	return err
}
