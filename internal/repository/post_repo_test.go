package repository

import (
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostSharesTags(t *testing.T) {
	db := setupRepoTest(t)
	memberRepo := NewMemberRepo(db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createMember(t, memberRepo, "tags@test.io", "tags")

	first := &model.Post{MemberID: author.ID, Title: "a", Content: "c", Status: "GENERAL", Access: "PUBLIC"}
	require.NoError(t, repo.CreatePost(ctx, first, []string{"go", "web"}))

	second := &model.Post{MemberID: author.ID, Title: "b", Content: "c", Status: "GENERAL", Access: "PUBLIC"}
	require.NoError(t, repo.CreatePost(ctx, second, []string{"go"}))

	// 同名标签全站只有一行
	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Where("name = ?", "go").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	post, err := repo.GetPost(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, post.Tags, 2)
}

func TestUpdatePostReplacesTags(t *testing.T) {
	db := setupRepoTest(t)
	memberRepo := NewMemberRepo(db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createMember(t, memberRepo, "retag@test.io", "retag")

	post := &model.Post{MemberID: author.ID, Title: "a", Content: "c", Status: "GENERAL", Access: "PUBLIC"}
	require.NoError(t, repo.CreatePost(ctx, post, []string{"go", "web"}))

	updated := &model.Post{ID: post.ID, Title: "a2", Content: "c2", Status: "GENERAL", Access: "PUBLIC"}
	require.NoError(t, repo.UpdatePost(ctx, updated, []string{"infra"}))

	found, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "a2", found.Title)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, "infra", found.Tags[0].Name)
}

func TestUpsertTemporary(t *testing.T) {
	db := setupRepoTest(t)
	memberRepo := NewMemberRepo(db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createMember(t, memberRepo, "temp@test.io", "temp")
	post := &model.Post{MemberID: author.ID, Title: "a", Content: "c", Status: "GENERAL", Access: "PUBLIC"}
	require.NoError(t, repo.CreatePost(ctx, post, nil))

	require.NoError(t, repo.UpsertTemporary(ctx, &model.TemporaryPost{PostID: post.ID, Title: "v1", Content: "x"}))
	require.NoError(t, repo.UpsertTemporary(ctx, &model.TemporaryPost{PostID: post.ID, Title: "v2", Content: "y", Tags: "go,web"}))

	temp, err := repo.GetTemporary(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, temp)
	assert.Equal(t, "v2", temp.Title)
	assert.Equal(t, "go,web", temp.Tags)

	var count int64
	require.NoError(t, db.Model(&model.TemporaryPost{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.DeleteTemporary(ctx, post.ID))
	temp, err = repo.GetTemporary(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, temp)
}

func TestFindPrevNext(t *testing.T) {
	db := setupRepoTest(t)
	memberRepo := NewMemberRepo(db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createMember(t, memberRepo, "nav@test.io", "nav")

	var ids []uint64
	for _, title := range []string{"one", "two", "three"} {
		post := &model.Post{MemberID: author.ID, Title: title, Content: "c", Status: "GENERAL", Access: "PUBLIC"}
		require.NoError(t, repo.CreatePost(ctx, post, nil))
		ids = append(ids, post.ID)
	}
	// 私有文章不进入前后导航
	private := &model.Post{MemberID: author.ID, Title: "hidden", Content: "c", Status: "GENERAL", Access: "PRIVATE"}
	require.NoError(t, repo.CreatePost(ctx, private, nil))

	middle, err := repo.GetPost(ctx, ids[1])
	require.NoError(t, err)

	prev, next, err := repo.FindPrevNext(ctx, middle)
	require.NoError(t, err)
	require.NotNil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, ids[0], prev.ID)
	assert.Equal(t, ids[2], next.ID)

	last, err := repo.GetPost(ctx, ids[2])
	require.NoError(t, err)
	prev, next, err = repo.FindPrevNext(ctx, last)
	require.NoError(t, err)
	assert.NotNil(t, prev)
	assert.Nil(t, next)
}

func TestFindByMemberPage(t *testing.T) {
	db := setupRepoTest(t)
	memberRepo := NewMemberRepo(db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createMember(t, memberRepo, "pager@test.io", "pager")
	for i := 0; i < 4; i++ {
		post := &model.Post{MemberID: author.ID, Title: "p", Content: "c", Status: "GENERAL", Access: "PUBLIC"}
		require.NoError(t, repo.CreatePost(ctx, post, nil))
	}
	private := &model.Post{MemberID: author.ID, Title: "p", Content: "c", Status: "GENERAL", Access: "PRIVATE"}
	require.NoError(t, repo.CreatePost(ctx, private, nil))

	first, total, err := repo.FindByMemberPage(ctx, author.ID, false, 0, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, int64(4), total)
	assert.Greater(t, first[0].ID, first[1].ID)

	rest, _, err := repo.FindByMemberPage(ctx, author.ID, false, 3, 3)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	_, total, err = repo.FindByMemberPage(ctx, author.ID, true, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestSeriesGetOrCreate(t *testing.T) {
	db := setupRepoTest(t)
	memberRepo := NewMemberRepo(db)
	repo := NewSeriesRepo(db)
	ctx := context.Background()

	author := createMember(t, memberRepo, "series@test.io", "series")
	other := createMember(t, memberRepo, "other@test.io", "other")

	first, err := repo.GetOrCreateSeries(ctx, author.ID, "notes")
	require.NoError(t, err)

	again, err := repo.GetOrCreateSeries(ctx, author.ID, "notes")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// 同名合集按会员隔离
	foreign, err := repo.GetOrCreateSeries(ctx, other.ID, "notes")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, foreign.ID)
}

func TestSeriesDeleteIfEmpty(t *testing.T) {
	db := setupRepoTest(t)
	memberRepo := NewMemberRepo(db)
	seriesRepo := NewSeriesRepo(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := createMember(t, memberRepo, "empty@test.io", "empty")

	series, err := seriesRepo.GetOrCreateSeries(ctx, author.ID, "keep")
	require.NoError(t, err)

	post := &model.Post{MemberID: author.ID, Title: "p", Content: "c", Status: "GENERAL", Access: "PUBLIC", SeriesID: &series.ID}
	require.NoError(t, postRepo.CreatePost(ctx, post, nil))

	// 还有文章时不会被删
	require.NoError(t, seriesRepo.DeleteIfEmpty(ctx, series.ID))
	found, err := seriesRepo.GetSeriesById(ctx, series.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)

	require.NoError(t, postRepo.DeletePost(ctx, post.ID))
	require.NoError(t, seriesRepo.DeleteIfEmpty(ctx, series.ID))
	found, err = seriesRepo.GetSeriesById(ctx, series.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
