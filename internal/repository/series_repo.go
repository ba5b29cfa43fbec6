package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type SeriesRepo interface {
	GetSeriesById(ctx context.Context, id uint64) (*model.Series, error)
	GetSeriesByName(ctx context.Context, memberID uint64, name string) (*model.Series, error)
	GetOrCreateSeries(ctx context.Context, memberID uint64, name string) (*model.Series, error)
	FindByMember(ctx context.Context, memberID uint64) ([]model.Series, error)
	DeleteIfEmpty(ctx context.Context, id uint64) error
}

type SeriesRepoImpl struct {
	db *gorm.DB
}

func NewSeriesRepo(db *gorm.DB) SeriesRepo {
	return &SeriesRepoImpl{db: db}
}

func (s *SeriesRepoImpl) GetSeriesById(ctx context.Context, id uint64) (*model.Series, error) {
	series := &model.Series{}
	result := s.db.WithContext(ctx).First(series, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return series, nil
}

func (s *SeriesRepoImpl) GetSeriesByName(ctx context.Context, memberID uint64, name string) (*model.Series, error) {
	series := &model.Series{}
	result := s.db.WithContext(ctx).
		Where("member_id = ? AND name = ?", memberID, name).
		First(series)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return series, nil
}

func (s *SeriesRepoImpl) GetOrCreateSeries(ctx context.Context, memberID uint64, name string) (*model.Series, error) {
	series, err := s.GetSeriesByName(ctx, memberID, name)
	if err != nil {
		return nil, err
	}
	if series != nil {
		return series, nil
	}

	series = &model.Series{MemberID: memberID, Name: name}
	err = s.db.WithContext(ctx).Create(series).Error
	if err != nil {
		// 并发创建同名合集时回读既有记录
		if IsDuplicateError(err) {
			return s.GetSeriesByName(ctx, memberID, name)
		}
		return nil, err
	}
	return series, nil
}

func (s *SeriesRepoImpl) FindByMember(ctx context.Context, memberID uint64) ([]model.Series, error) {
	var series []model.Series
	err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("updated_at DESC").
		Find(&series).Error
	if err != nil {
		return nil, err
	}
	return series, nil
}

// DeleteIfEmpty 合集失去最后一篇文章后随之删除
func (s *SeriesRepoImpl) DeleteIfEmpty(ctx context.Context, id uint64) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("series_id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&model.Series{}, id).Error
}
