package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoveToggleAndCounter(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	postRepo := repository.NewPostRepository(db)
	actionRepo := repository.NewActionRepo(db)
	postSvc, _, _ := newPostService(db)
	svc := NewPostActionService(actionRepo, postRepo)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "author", "author@test.io", "author", "password123")
	reader := seedMember(t, memberRepo, "reader", "reader@test.io", "reader", "password123")

	postID, err := postSvc.Write(ctx, author.ID, &dto.WriteDTO{Title: "lovable", Content: "x"})
	require.NoError(t, err)

	loved, err := svc.ToggleLovePost(ctx, reader.ID, postID)
	require.NoError(t, err)
	assert.True(t, loved)

	post, err := postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Loves)

	// 重复点赞被唯一键拦截
	err = svc.LovePost(ctx, reader.ID, postID)
	assert.ErrorIs(t, err, ErrActionDuplicate)

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Loves)

	loved, err = svc.ToggleLovePost(ctx, reader.ID, postID)
	require.NoError(t, err)
	assert.False(t, loved)

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Loves)

	// 取消不存在的点赞不报错，计数也不会变负
	err = svc.CancelLovePost(ctx, reader.ID, postID)
	require.NoError(t, err)

	post, err = postRepo.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Loves)
}

func TestLoveInvisiblePost(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	postRepo := repository.NewPostRepository(db)
	actionRepo := repository.NewActionRepo(db)
	postSvc, _, _ := newPostService(db)
	svc := NewPostActionService(actionRepo, postRepo)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "author", "author@test.io", "author", "password123")
	reader := seedMember(t, memberRepo, "reader", "reader@test.io", "reader", "password123")

	draftID, err := postSvc.WriteTemporary(ctx, author.ID, &dto.WriteDTO{Title: "draft", Content: "x"})
	require.NoError(t, err)

	err = svc.LovePost(ctx, reader.ID, draftID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	privateID, err := postSvc.Write(ctx, author.ID, &dto.WriteDTO{Title: "secret", Content: "x", Access: consts.AccessPrivate})
	require.NoError(t, err)

	err = svc.LovePost(ctx, reader.ID, privateID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 作者本人可以给自己的私有文章点赞
	err = svc.LovePost(ctx, author.ID, privateID)
	assert.NoError(t, err)

	err = svc.LovePost(ctx, reader.ID, 99999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

// 存储层故障要原样上抛，不能伪装成 404
func TestLoveStorageErrorNotMasked(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	postRepo := repository.NewPostRepository(db)
	actionRepo := repository.NewActionRepo(db)
	postSvc, _, _ := newPostService(db)
	svc := NewPostActionService(actionRepo, postRepo)
	ctx := context.Background()

	author := seedMember(t, memberRepo, "author", "author@test.io", "author", "password123")
	reader := seedMember(t, memberRepo, "reader", "reader@test.io", "reader", "password123")

	postID, err := postSvc.Write(ctx, author.ID, &dto.WriteDTO{Title: "t", Content: "x"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = svc.LovePost(ctx, reader.ID, postID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPostNotFound)
}
