package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/oauth"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider 用 httptest 顶替 github 的 token 与用户信息端点
func fakeProvider(t *testing.T, userInfo map[string]interface{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "fake-token"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fake-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userInfo)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	config.Cfg.OAuth.Providers["github"] = config.OAuthProvider{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      server.URL + "/authorize",
		TokenURL:     server.URL + "/token",
		UserInfoURL:  server.URL + "/user",
		RedirectURL:  "http://localhost/api/oauth2/callback/github",
		Scope:        "user:email",
	}
	return server
}

func TestAuthURL(t *testing.T) {
	db := setupServiceTest(t)
	fakeProvider(t, nil)
	memberRepo := repository.NewMemberRepo(db)
	svc := NewOAuthService(memberRepo, oauth.NewClient(), noopUpload)
	ctx := context.Background()

	authURL, err := svc.AuthURL(ctx, "github")
	require.NoError(t, err)
	assert.Contains(t, authURL, "client_id=client-id")
	assert.Contains(t, authURL, "state=")

	_, err = svc.AuthURL(ctx, "unknown")
	assert.ErrorIs(t, err, ErrOAuthProvider)
}

func TestCallbackFirstLogin(t *testing.T) {
	db := setupServiceTest(t)
	fakeProvider(t, map[string]interface{}{
		"id":    float64(42),
		"email": "octo@test.io",
		"login": "octo",
	})
	memberRepo := repository.NewMemberRepo(db)
	svc := NewOAuthService(memberRepo, oauth.NewClient(), noopUpload)
	ctx := context.Background()

	result, err := svc.Callback(ctx, "github", "auth-code", "state")
	require.NoError(t, err)
	assert.True(t, result.NeedSignup)
	assert.NotEmpty(t, result.Token)

	claims, err := security.ValidateToken(result.Token)
	require.NoError(t, err)

	member, err := memberRepo.GetMemberById(ctx, claims.UserID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "octo@test.io", member.Email)
	require.NotNil(t, member.Provider)
	assert.Equal(t, "github", *member.Provider)
	assert.False(t, member.IsComplete())
	assert.Equal(t, consts.DefaultThumbnailName, member.Thumbnail.Name)

	// 未补全前重复回调不会建新账号
	result, err = svc.Callback(ctx, "github", "auth-code", "state")
	require.NoError(t, err)
	assert.True(t, result.NeedSignup)

	claimsAgain, err := security.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, claimsAgain.UserID)
}

func TestCallbackExistingMember(t *testing.T) {
	db := setupServiceTest(t)
	fakeProvider(t, map[string]interface{}{
		"id":    float64(42),
		"email": "taken@test.io",
		"login": "octo",
	})
	memberRepo := repository.NewMemberRepo(db)
	svc := NewOAuthService(memberRepo, oauth.NewClient(), noopUpload)
	ctx := context.Background()

	seedMember(t, memberRepo, "taken1", "taken@test.io", "taken", "password123")

	config.Cfg.OAuth.AllowExisting = false
	_, err := svc.Callback(ctx, "github", "auth-code", "state")
	assert.ErrorIs(t, err, ErrOAuthEmailExist)

	config.Cfg.OAuth.AllowExisting = true
	result, err := svc.Callback(ctx, "github", "auth-code", "state")
	require.NoError(t, err)
	assert.False(t, result.NeedSignup)
	assert.NotEmpty(t, result.Token)
}

func TestCallbackUnknownProvider(t *testing.T) {
	db := setupServiceTest(t)
	memberRepo := repository.NewMemberRepo(db)
	svc := NewOAuthService(memberRepo, oauth.NewClient(), noopUpload)

	_, err := svc.Callback(context.Background(), "unknown", "code", "state")
	assert.ErrorIs(t, err, ErrOAuthProvider)
}
