package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGithub(t *testing.T) {
	attrs, err := Normalize("github", map[string]interface{}{
		"id":         float64(583231),
		"email":      "octo@test.io",
		"login":      "octocat",
		"avatar_url": "https://avatars.test/octocat.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "583231", attrs.ID)
	assert.Equal(t, "octo@test.io", attrs.Email)
	// name 为空时回退到 login
	assert.Equal(t, "octocat", attrs.Name)
	assert.Equal(t, "https://avatars.test/octocat.png", attrs.Picture)
}

func TestNormalizeGoogle(t *testing.T) {
	attrs, err := Normalize("google", map[string]interface{}{
		"sub":     "108204268033311374519",
		"email":   "g@test.io",
		"name":    "G User",
		"picture": "https://lh3.test/photo.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "108204268033311374519", attrs.ID)
	assert.Equal(t, "G User", attrs.Name)
}

func TestNormalizeNaver(t *testing.T) {
	attrs, err := Normalize("naver", map[string]interface{}{
		"resultcode": "00",
		"response": map[string]interface{}{
			"id":            "abc-123",
			"email":         "n@test.io",
			"nickname":      "naver-user",
			"profile_image": "https://phinf.test/profile.jpg",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc-123", attrs.ID)
	assert.Equal(t, "n@test.io", attrs.Email)
	assert.Equal(t, "naver-user", attrs.Name)

	_, err = Normalize("naver", map[string]interface{}{"resultcode": "00"})
	assert.Error(t, err)
}

func TestNormalizeUnknown(t *testing.T) {
	_, err := Normalize("kakao", map[string]interface{}{})
	assert.Error(t, err)
}
