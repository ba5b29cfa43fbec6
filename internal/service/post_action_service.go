package service

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"
)

type PostActionService interface {
	LovePost(ctx context.Context, memberID, postID uint64) error
	CancelLovePost(ctx context.Context, memberID, postID uint64) error
	ToggleLovePost(ctx context.Context, memberID, postID uint64) (bool, error)
	IsLoved(ctx context.Context, memberID, postID uint64) (bool, error)
}

type postActionServiceImpl struct {
	actionRepo repository.ActionRepo
	postRepo   repository.PostRepo
}

func NewPostActionService(actionRepo repository.ActionRepo, postRepo repository.PostRepo) PostActionService {
	return &postActionServiceImpl{
		actionRepo: actionRepo,
		postRepo:   postRepo,
	}
}

func (s *postActionServiceImpl) LovePost(ctx context.Context, memberID, postID uint64) error {
	return s.performAction(s.getPostCheck(ctx, memberID, postID), func() error {
		return s.actionRepo.CreateLove(ctx, memberID, postID)
	})
}

func (s *postActionServiceImpl) CancelLovePost(ctx context.Context, memberID, postID uint64) error {
	return s.revokeAction(s.getPostCheck(ctx, memberID, postID), func() error {
		_, err := s.actionRepo.DeleteLove(ctx, memberID, postID)
		return err
	})
}

// ToggleLovePost 点赞开关，返回操作后的点赞状态
func (s *postActionServiceImpl) ToggleLovePost(ctx context.Context, memberID, postID uint64) (bool, error) {
	loved, err := s.IsLoved(ctx, memberID, postID)
	if err != nil {
		return false, err
	}
	if loved {
		err = s.CancelLovePost(ctx, memberID, postID)
		return false, err
	}
	err = s.LovePost(ctx, memberID, postID)
	// 并发下重复点赞视为已点
	if err == ErrActionDuplicate {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *postActionServiceImpl) IsLoved(ctx context.Context, memberID, postID uint64) (bool, error) {
	if memberID == 0 {
		return false, nil
	}
	love, err := s.actionRepo.GetLove(ctx, memberID, postID)
	if err != nil {
		return false, err
	}
	return love != nil, nil
}

func (s *postActionServiceImpl) performAction(checkFunc func() error, repoFunc func() error) error {
	if err := checkFunc(); err != nil {
		return err
	}
	if err := repoFunc(); err != nil {
		if repository.IsDuplicateError(err) {
			return ErrActionDuplicate
		}
		return err
	}
	return nil
}

func (s *postActionServiceImpl) revokeAction(checkFunc func() error, repoFunc func() error) error {
	if err := checkFunc(); err != nil {
		return err
	}
	return repoFunc()
}

// getPostCheck 只允许对可见的已发布文章做互动
func (s *postActionServiceImpl) getPostCheck(ctx context.Context, memberID, postID uint64) func() error {
	return func() error {
		post, err := s.postRepo.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		if post.Status != consts.PostStatusGeneral {
			return ErrPostNotFound
		}
		if post.Access == consts.AccessPrivate && post.MemberID != memberID {
			return ErrPostNotFound
		}
		return nil
	}
}
