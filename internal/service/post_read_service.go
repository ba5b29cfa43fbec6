package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

const timeLayout = "2006-01-02 15:04:05"

type PostReadService interface {
	Main(ctx context.Context, sort string, page, pageSize int) (*dto.Page[dto.PostSummaryDTO], error)
	Search(ctx context.Context, keyword, nickname, tag string, page, pageSize int) (*dto.Page[dto.PostSummaryDTO], error)
	MemberMain(ctx context.Context, nickname string, viewerID uint64, page, pageSize int) (*dto.Page[dto.PostSummaryDTO], error)
	MemberSeries(ctx context.Context, nickname string) ([]dto.SeriesDTO, error)
	MemberSeriesPosts(ctx context.Context, nickname string, seriesName string, viewerID uint64) ([]dto.PostSummaryDTO, error)
	Read(ctx context.Context, nickname string, postID uint64, viewerID uint64) (*dto.ReadDTO, error)
	TempPosts(ctx context.Context, memberID uint64, lastID uint64, pageSize int) (*dto.Slice[dto.PostSummaryDTO], error)
	LovedPosts(ctx context.Context, memberID uint64, page, pageSize int) (*dto.Slice[dto.PostSummaryDTO], error)
	RecentPosts(ctx context.Context, memberID uint64, page, pageSize int) (*dto.Slice[dto.PostSummaryDTO], error)
}

type PostReadServiceImpl struct {
	postRepo   repository.PostRepo
	seriesRepo repository.SeriesRepo
	memberRepo repository.MemberRepo
	actionRepo repository.ActionRepo
}

func NewPostReadService(
	postRepo repository.PostRepo,
	seriesRepo repository.SeriesRepo,
	memberRepo repository.MemberRepo,
	actionRepo repository.ActionRepo,
) PostReadService {
	return &PostReadServiceImpl{
		postRepo:   postRepo,
		seriesRepo: seriesRepo,
		memberRepo: memberRepo,
		actionRepo: actionRepo,
	}
}

func (s *PostReadServiceImpl) Main(ctx context.Context, sort string, page, pageSize int) (*dto.Page[dto.PostSummaryDTO], error) {
	posts, total, err := s.postRepo.FindMainPage(ctx, sort, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPage(convertSummaries(posts, true), page, pageSize, total), nil
}

func (s *PostReadServiceImpl) Search(ctx context.Context, keyword, nickname, tag string, page, pageSize int) (*dto.Page[dto.PostSummaryDTO], error) {
	posts, total, err := s.postRepo.SearchPage(ctx, keyword, nickname, tag, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPage(convertSummaries(posts, true), page, pageSize, total), nil
}

// MemberMain 个人主页按页取文章，本人可见私有文章
func (s *PostReadServiceImpl) MemberMain(ctx context.Context, nickname string, viewerID uint64, page, pageSize int) (*dto.Page[dto.PostSummaryDTO], error) {
	member, err := s.memberRepo.GetMemberByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	includePrivate := member.ID == viewerID
	posts, total, err := s.postRepo.FindByMemberPage(ctx, member.ID, includePrivate, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPage(convertSummaries(posts, false), page, pageSize, total), nil
}

// MemberSeries 合集列表，每个合集带最多 3 篇预览
func (s *PostReadServiceImpl) MemberSeries(ctx context.Context, nickname string) ([]dto.SeriesDTO, error) {
	member, err := s.memberRepo.GetMemberByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	seriesList, err := s.seriesRepo.FindByMember(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	res := make([]dto.SeriesDTO, 0, len(seriesList))
	for _, series := range seriesList {
		posts, err := s.postRepo.FindSeriesPosts(ctx, series.ID, false)
		if err != nil {
			return nil, err
		}

		preview := posts
		if len(preview) > 3 {
			preview = preview[:3]
		}
		res = append(res, dto.SeriesDTO{
			SeriesID:  series.ID,
			Name:      series.Name,
			PostCount: len(posts),
			UpdatedAt: series.UpdatedAt.Format(timeLayout),
			Posts:     convertSummaries(preview, false),
		})
	}
	return res, nil
}

func (s *PostReadServiceImpl) MemberSeriesPosts(ctx context.Context, nickname string, seriesName string, viewerID uint64) ([]dto.PostSummaryDTO, error) {
	member, err := s.memberRepo.GetMemberByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	series, err := s.seriesRepo.GetSeriesByName(ctx, member.ID, seriesName)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, ErrSeriesNotFound
	}

	includePrivate := member.ID == viewerID
	posts, err := s.postRepo.FindSeriesPosts(ctx, series.ID, includePrivate)
	if err != nil {
		return nil, err
	}
	return convertSummaries(posts, false), nil
}

// Read 阅读页。非作者访问会累计浏览并记录阅读历史
func (s *PostReadServiceImpl) Read(ctx context.Context, nickname string, postID uint64, viewerID uint64) (*dto.ReadDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Member.Nickname == nil || *post.Member.Nickname != nickname {
		return nil, ErrPostNotFound
	}

	isOwner := post.MemberID == viewerID
	if post.Status == consts.PostStatusTemporary && !isOwner {
		return nil, ErrPostNotFound
	}
	if post.Access == consts.AccessPrivate && !isOwner {
		return nil, ForbiddenError
	}

	if !isOwner {
		_ = s.postRepo.IncrementViews(ctx, postID)
		post.Views++
		if viewerID != 0 {
			_ = s.actionRepo.UpsertLook(ctx, viewerID, postID)
		}
	}

	loved := false
	if viewerID != 0 {
		love, err := s.actionRepo.GetLove(ctx, viewerID, postID)
		if err != nil {
			return nil, err
		}
		loved = love != nil
	}

	res := &dto.ReadDTO{
		PostID:       post.ID,
		Title:        post.Title,
		Content:      post.Content,
		Introduce:    post.Introduce,
		Access:       post.Access,
		Loves:        post.Loves,
		Views:        post.Views,
		Loved:        loved,
		CreatedAt:    post.CreatedAt.Format(timeLayout),
		UpdatedAt:    post.UpdatedAt.Format(timeLayout),
		ThumbnailURL: post.ThumbnailPath,
		Tags:         tagNames(post.Tags),
		Nickname:     nickname,
		AvatarURL:    post.Member.Thumbnail.Path,
	}
	if post.Series != nil {
		res.SeriesName = &post.Series.Name
	}

	if post.Status == consts.PostStatusGeneral && post.Access == consts.AccessPublic {
		prev, next, err := s.postRepo.FindPrevNext(ctx, post)
		if err != nil {
			return nil, err
		}
		if prev != nil {
			res.Prev = &dto.PostNavDTO{PostID: prev.ID, Title: prev.Title}
		}
		if next != nil {
			res.Next = &dto.PostNavDTO{PostID: next.ID, Title: next.Title}
		}
	}

	return res, nil
}

func (s *PostReadServiceImpl) TempPosts(ctx context.Context, memberID uint64, lastID uint64, pageSize int) (*dto.Slice[dto.PostSummaryDTO], error) {
	return getWaterfallSlice(pageSize, func(limit int) ([]model.Post, error) {
		return s.postRepo.FindTempCursor(ctx, memberID, lastID, limit)
	}, func(post *model.Post) dto.PostSummaryDTO {
		return convertSummary(post, false)
	})
}

func (s *PostReadServiceImpl) LovedPosts(ctx context.Context, memberID uint64, page, pageSize int) (*dto.Slice[dto.PostSummaryDTO], error) {
	return getWaterfallSlice(pageSize, func(limit int) ([]model.Post, error) {
		return s.postRepo.FindLovedSlice(ctx, memberID, page*pageSize, limit)
	}, func(post *model.Post) dto.PostSummaryDTO {
		return convertSummary(post, true)
	})
}

func (s *PostReadServiceImpl) RecentPosts(ctx context.Context, memberID uint64, page, pageSize int) (*dto.Slice[dto.PostSummaryDTO], error) {
	return getWaterfallSlice(pageSize, func(limit int) ([]model.Post, error) {
		return s.postRepo.FindRecentSlice(ctx, memberID, page*pageSize, limit)
	}, func(post *model.Post) dto.PostSummaryDTO {
		return convertSummary(post, true)
	})
}

// getWaterfallSlice 多取一条来判断是否还有下一批
func getWaterfallSlice[T any, D any](pageSize int, fetch func(limit int) ([]T, error), convert func(*T) D) (*dto.Slice[D], error) {
	items, err := fetch(pageSize + 1)
	if err != nil {
		return nil, err
	}
	hasNext := len(items) > pageSize
	if hasNext {
		items = items[:pageSize]
	}
	content := make([]D, 0, len(items))
	for i := range items {
		content = append(content, convert(&items[i]))
	}
	return &dto.Slice[D]{Content: content, HasNext: hasNext}, nil
}

func convertSummary(post *model.Post, withAuthor bool) dto.PostSummaryDTO {
	item := dto.PostSummaryDTO{}
	_ = copier.Copy(&item, post)
	item.PostID = post.ID
	item.ThumbnailURL = post.ThumbnailPath
	item.CreatedAt = post.CreatedAt.Format(timeLayout)
	item.Tags = tagNames(post.Tags)
	if withAuthor && post.Member.Nickname != nil {
		item.Nickname = *post.Member.Nickname
		item.AvatarURL = post.Member.Thumbnail.Path
	}
	return item
}

func convertSummaries(posts []model.Post, withAuthor bool) []dto.PostSummaryDTO {
	res := make([]dto.PostSummaryDTO, 0, len(posts))
	for i := range posts {
		res = append(res, convertSummary(&posts[i], withAuthor))
	}
	return res
}
