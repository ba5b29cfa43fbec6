package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) (PostService, repository.PostRepo, repository.SeriesRepo) {
	postRepo := repository.NewPostRepository(db)
	seriesRepo := repository.NewSeriesRepo(db)
	return NewPostService(postRepo, seriesRepo, noopRemove), postRepo, seriesRepo
}

func TestWriteCreate(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	svc, postRepo, _ := newPostService(db)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "writer", "writer@test.io", "writer", "password123")

	seriesName := "go-notes"
	postID, err := svc.Write(ctx, author.ID, &dto.WriteDTO{
		Title:      "First Post",
		Content:    "hello world",
		SeriesName: &seriesName,
		Tags:       []string{"go", "web"},
	})
	require.NoError(t, err)
	require.NotZero(t, postID)

	post, err := postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, consts.PostStatusGeneral, post.Status)
	assert.Equal(t, consts.AccessPublic, post.Access)
	assert.Equal(t, "hello world", post.Introduce)
	require.NotNil(t, post.Series)
	assert.Equal(t, "go-notes", post.Series.Name)
	assert.ElementsMatch(t, []string{"go", "web"}, tagNames(post.Tags))
}

func TestCreateIntroduce(t *testing.T) {
	assert.Equal(t, "custom", createIntroduce("custom", "body"))

	exact := strings.Repeat("가", consts.IntroduceMaxLen)
	assert.Equal(t, exact, createIntroduce("", exact))

	long := strings.Repeat("가", consts.IntroduceMaxLen+1)
	got := createIntroduce("", long)
	assert.Equal(t, consts.IntroduceMaxLen, len([]rune(got)))
	assert.Equal(t, exact, got)
}

func TestTemporaryLifecycle(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	svc, postRepo, _ := newPostService(db)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "draft1", "draft@test.io", "draft", "password123")

	// 新建草稿
	postID, err := svc.WriteTemporary(ctx, author.ID, &dto.WriteDTO{Title: "draft v1", Content: "a"})
	require.NoError(t, err)

	post, err := postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, consts.PostStatusTemporary, post.Status)
	assert.Equal(t, consts.AccessPrivate, post.Access)

	// 未发布的草稿直接覆盖，不产生备用草稿
	_, err = svc.WriteTemporary(ctx, author.ID, &dto.WriteDTO{PostID: postID, Title: "draft v2", Content: "b"})
	require.NoError(t, err)

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, "draft v2", post.Title)

	temp, err := postRepo.GetTemporary(ctx, postID)
	require.NoError(t, err)
	assert.Nil(t, temp)

	// 发布
	_, err = svc.Write(ctx, author.ID, &dto.WriteDTO{PostID: postID, Title: "published", Content: "b"})
	require.NoError(t, err)

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, consts.PostStatusGeneral, post.Status)

	// 已发布文章的临时保存进入备用草稿，正文不动
	_, err = svc.WriteTemporary(ctx, author.ID, &dto.WriteDTO{PostID: postID, Title: "wip", Content: "c", Tags: []string{"go", "web"}})
	require.NoError(t, err)

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, "published", post.Title)

	view, err := svc.GetWrite(ctx, author.ID, postID)
	require.NoError(t, err)
	assert.True(t, view.FromTemporary)
	assert.Equal(t, "wip", view.Title)
	assert.Equal(t, []string{"go", "web"}, view.Tags)

	// 再次发布消费掉备用草稿
	_, err = svc.Write(ctx, author.ID, &dto.WriteDTO{PostID: postID, Title: "published v2", Content: "c"})
	require.NoError(t, err)

	temp, err = postRepo.GetTemporary(ctx, postID)
	require.NoError(t, err)
	assert.Nil(t, temp)

	view, err = svc.GetWrite(ctx, author.ID, postID)
	require.NoError(t, err)
	assert.False(t, view.FromTemporary)
	assert.Equal(t, "published v2", view.Title)
}

func TestWriteOwnership(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	svc, _, _ := newPostService(db)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "owner1", "owner@test.io", "owner", "password123")
	intruder := seedMember(t, memberRepo, "intruder", "intruder@test.io", "intruder", "password123")

	postID, err := svc.Write(ctx, author.ID, &dto.WriteDTO{Title: "mine", Content: "x"})
	require.NoError(t, err)

	_, err = svc.Write(ctx, intruder.ID, &dto.WriteDTO{PostID: postID, Title: "hijack", Content: "y"})
	assert.ErrorIs(t, err, ForbiddenError)

	_, err = svc.WriteTemporary(ctx, intruder.ID, &dto.WriteDTO{PostID: postID, Title: "hijack", Content: "y"})
	assert.ErrorIs(t, err, ForbiddenError)

	_, err = svc.GetWrite(ctx, intruder.ID, postID)
	assert.ErrorIs(t, err, ForbiddenError)

	err = svc.Delete(ctx, intruder.ID, postID)
	assert.ErrorIs(t, err, ForbiddenError)

	_, err = svc.Write(ctx, author.ID, &dto.WriteDTO{PostID: 99999, Title: "nope", Content: "y"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteCleansUp(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	postRepo := repository.NewPostRepository(db)
	seriesRepo := repository.NewSeriesRepo(db)

	var removed []string
	recordRemove := func(_ context.Context, objectName string) error {
		removed = append(removed, objectName)
		return nil
	}
	svc := NewPostService(postRepo, seriesRepo, recordRemove)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "clean1", "clean@test.io", "clean", "password123")

	seriesName := "doomed"
	thumbnail := "post/cover.png"
	postID, err := svc.Write(ctx, author.ID, &dto.WriteDTO{
		Title:      "to be deleted",
		Content:    "x",
		SeriesName: &seriesName,
		Thumbnail:  &thumbnail,
	})
	require.NoError(t, err)

	post, err := postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	require.NotNil(t, post.SeriesID)
	seriesID := *post.SeriesID

	require.NoError(t, svc.Delete(ctx, author.ID, postID))

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Nil(t, post)

	// 合集失去最后一篇文章后随之删除
	series, err := seriesRepo.GetSeriesById(ctx, seriesID)
	require.NoError(t, err)
	assert.Nil(t, series)

	assert.Equal(t, []string{"post/cover.png"}, removed)
}

func TestWriteSeriesChange(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	svc, postRepo, seriesRepo := newPostService(db)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "series", "series@test.io", "series", "password123")

	first := "old-series"
	postID, err := svc.Write(ctx, author.ID, &dto.WriteDTO{Title: "p", Content: "x", SeriesName: &first})
	require.NoError(t, err)

	post, err := postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	require.NotNil(t, post.SeriesID)
	oldID := *post.SeriesID

	// 换合集后，空掉的旧合集被清理
	second := "new-series"
	_, err = svc.Write(ctx, author.ID, &dto.WriteDTO{PostID: postID, Title: "p", Content: "x", SeriesName: &second})
	require.NoError(t, err)

	oldSeries, err := seriesRepo.GetSeriesById(ctx, oldID)
	require.NoError(t, err)
	assert.Nil(t, oldSeries)

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	require.NotNil(t, post.Series)
	assert.Equal(t, "new-series", post.Series.Name)
}
