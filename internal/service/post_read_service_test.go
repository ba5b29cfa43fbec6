package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type readFixture struct {
	readSvc   PostReadService
	postSvc   PostService
	actionSvc PostActionService
	postRepo  repository.PostRepo
	author    *model.Member
	reader    *model.Member
}

func setupReadTest(t *testing.T, db *gorm.DB) *readFixture {
	t.Helper()
	memberRepo := repository.NewMemberRepo(db)
	postRepo := repository.NewPostRepository(db)
	seriesRepo := repository.NewSeriesRepo(db)
	actionRepo := repository.NewActionRepo(db)

	return &readFixture{
		readSvc:   NewPostReadService(postRepo, seriesRepo, memberRepo, actionRepo),
		postSvc:   NewPostService(postRepo, seriesRepo, noopRemove),
		actionSvc: NewPostActionService(actionRepo, postRepo),
		postRepo:  postRepo,
		author:    seedMember(t, memberRepo, "author", "author@test.io", "author", "password123"),
		reader:    seedMember(t, memberRepo, "reader", "reader@test.io", "reader", "password123"),
	}
}

func (f *readFixture) publish(t *testing.T, title string, opts ...func(*dto.WriteDTO)) uint64 {
	t.Helper()
	writeDTO := &dto.WriteDTO{Title: title, Content: "content of " + title}
	for _, opt := range opts {
		opt(writeDTO)
	}
	postID, err := f.postSvc.Write(context.Background(), f.author.ID, writeDTO)
	require.NoError(t, err)
	return postID
}

func TestMainPage(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.publish(t, fmt.Sprintf("public %d", i))
	}
	f.publish(t, "hidden", func(d *dto.WriteDTO) { d.Access = consts.AccessPrivate })
	_, err := f.postSvc.WriteTemporary(ctx, f.author.ID, &dto.WriteDTO{Title: "draft", Content: "x"})
	require.NoError(t, err)

	page, err := f.readSvc.Main(ctx, "", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Len(t, page.Content, 2)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	// 最新的在前
	assert.Equal(t, "public 2", page.Content[0].Title)
	assert.Equal(t, "author", page.Content[0].Nickname)

	page, err = f.readSvc.Main(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.True(t, page.Last)
}

func TestMainPageTrending(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	first := f.publish(t, "older but hotter")
	f.publish(t, "newer")

	require.NoError(t, f.actionSvc.LovePost(ctx, f.reader.ID, first))

	page, err := f.readSvc.Main(ctx, "trending", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "older but hotter", page.Content[0].Title)
	assert.Equal(t, 1, page.Content[0].Loves)
}

func TestSearch(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	f.publish(t, "Gin in practice", func(d *dto.WriteDTO) { d.Tags = []string{"go"} })
	f.publish(t, "Gorm tips", func(d *dto.WriteDTO) { d.Tags = []string{"go", "db"} })
	f.publish(t, "secret gin tricks", func(d *dto.WriteDTO) { d.Access = consts.AccessPrivate })

	page, err := f.readSvc.Search(ctx, "Gin", "", "", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Gin in practice", page.Content[0].Title)

	// 标签过滤
	page, err = f.readSvc.Search(ctx, "", "", "db", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Gorm tips", page.Content[0].Title)

	// 作者过滤，可与关键字组合
	page, err = f.readSvc.Search(ctx, "Gorm", "author", "", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)

	page, err = f.readSvc.Search(ctx, "Gorm", "reader", "", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(0), page.TotalElements)
}

func TestMemberMainPaging(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.publish(t, fmt.Sprintf("post %d", i))
	}
	f.publish(t, "private one", func(d *dto.WriteDTO) { d.Access = consts.AccessPrivate })

	// 访客视角：只看得到公开文章
	page, err := f.readSvc.MemberMain(ctx, "author", f.reader.ID, 0, 3)
	require.NoError(t, err)
	assert.Len(t, page.Content, 3)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.False(t, page.Last)

	page, err = f.readSvc.MemberMain(ctx, "author", f.reader.ID, 1, 3)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.True(t, page.Last)

	// 本人视角包含私有文章
	page, err = f.readSvc.MemberMain(ctx, "author", f.author.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Content, 6)
	assert.Equal(t, int64(6), page.TotalElements)

	_, err = f.readSvc.MemberMain(ctx, "nobody", 0, 0, 10)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemberSeries(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	name := "long-series"
	for i := 0; i < 4; i++ {
		f.publish(t, fmt.Sprintf("chapter %d", i), func(d *dto.WriteDTO) { d.SeriesName = &name })
	}

	list, err := f.readSvc.MemberSeries(ctx, "author")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "long-series", list[0].Name)
	assert.Equal(t, 4, list[0].PostCount)
	// 预览最多 3 篇
	assert.Len(t, list[0].Posts, 3)
	assert.Equal(t, "chapter 0", list[0].Posts[0].Title)

	posts, err := f.readSvc.MemberSeriesPosts(ctx, "author", "long-series", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 4)

	_, err = f.readSvc.MemberSeriesPosts(ctx, "author", "missing", 0)
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}

func TestReadFlow(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	prevID := f.publish(t, "part one")
	postID := f.publish(t, "part two")
	nextID := f.publish(t, "part three")

	// 他人阅读累计浏览并记录阅读历史
	view, err := f.readSvc.Read(ctx, "author", postID, f.reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Views)
	assert.False(t, view.Loved)
	require.NotNil(t, view.Prev)
	require.NotNil(t, view.Next)
	assert.Equal(t, prevID, view.Prev.PostID)
	assert.Equal(t, nextID, view.Next.PostID)

	recent, err := f.readSvc.RecentPosts(ctx, f.reader.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, recent.Content, 1)
	assert.Equal(t, postID, recent.Content[0].PostID)

	// 作者本人阅读不计入
	view, err = f.readSvc.Read(ctx, "author", postID, f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Views)

	// 点赞后 Loved 生效，点赞列表可见
	require.NoError(t, f.actionSvc.LovePost(ctx, f.reader.ID, postID))
	view, err = f.readSvc.Read(ctx, "author", postID, f.reader.ID)
	require.NoError(t, err)
	assert.True(t, view.Loved)
	assert.Equal(t, 1, view.Loves)

	loved, err := f.readSvc.LovedPosts(ctx, f.reader.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, loved.Content, 1)
	assert.Equal(t, postID, loved.Content[0].PostID)

	// 匿名阅读只计浏览，不留历史
	view, err = f.readSvc.Read(ctx, "author", postID, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Views)
}

func TestReadAccessControl(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	privateID := f.publish(t, "secret", func(d *dto.WriteDTO) { d.Access = consts.AccessPrivate })
	draftID, err := f.postSvc.WriteTemporary(ctx, f.author.ID, &dto.WriteDTO{Title: "draft", Content: "x"})
	require.NoError(t, err)

	_, err = f.readSvc.Read(ctx, "author", privateID, f.reader.ID)
	assert.ErrorIs(t, err, ForbiddenError)

	_, err = f.readSvc.Read(ctx, "author", draftID, f.reader.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 本人都能看
	view, err := f.readSvc.Read(ctx, "author", privateID, f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", view.Title)

	// 昵称对不上视作不存在
	_, err = f.readSvc.Read(ctx, "reader", privateID, f.author.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestTempPosts(t *testing.T) {
	db := setupServiceTest(t)
	f := setupReadTest(t, db)
	ctx := context.Background()

	f.publish(t, "published")
	for i := 0; i < 3; i++ {
		_, err := f.postSvc.WriteTemporary(ctx, f.author.ID, &dto.WriteDTO{Title: fmt.Sprintf("draft %d", i), Content: "x"})
		require.NoError(t, err)
	}

	slice, err := f.readSvc.TempPosts(ctx, f.author.ID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, slice.Content, 2)
	assert.True(t, slice.HasNext)
	assert.Equal(t, "draft 2", slice.Content[0].Title)
}
