package oauth

import (
	"Inkstone/internal/api/config"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	return &Client{
		http: resty.New().SetTimeout(time.Second * 10),
	}
}

// BuildAuthURL 拼接授权跳转地址
func BuildAuthURL(provider config.OAuthProvider, state string) string {
	values := url.Values{}
	values.Set("client_id", provider.ClientID)
	values.Set("redirect_uri", provider.RedirectURL)
	values.Set("response_type", "code")
	values.Set("state", state)
	if provider.Scope != "" {
		values.Set("scope", provider.Scope)
	}
	return provider.AuthURL + "?" + values.Encode()
}

// ExchangeToken 用授权码换取 access_token
func (s *Client) ExchangeToken(ctx context.Context, provider config.OAuthProvider, code string) (string, error) {
	var result struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"client_id":     provider.ClientID,
			"client_secret": provider.ClientSecret,
			"redirect_uri":  provider.RedirectURL,
			"code":          code,
		}).
		SetResult(&result).
		Post(provider.TokenURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() || result.Error != "" {
		return "", fmt.Errorf("换取 token 失败: %s", resp.Status())
	}
	if result.AccessToken == "" {
		return "", errors.New("提供方未返回 access_token")
	}
	return result.AccessToken, nil
}

// FetchUserInfo 获取提供方的用户信息
func (s *Client) FetchUserInfo(ctx context.Context, provider config.OAuthProvider, accessToken string) (map[string]interface{}, error) {
	var result map[string]interface{}

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetAuthToken(accessToken).
		SetResult(&result).
		Get(provider.UserInfoURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("获取用户信息失败: %s", resp.Status())
	}
	return result, nil
}

// FetchPrimaryEmail github 可能隐藏邮箱，需单独请求邮箱列表
func (s *Client) FetchPrimaryEmail(ctx context.Context, provider config.OAuthProvider, accessToken string) (string, error) {
	var result []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetAuthToken(accessToken).
		SetResult(&result).
		Get(provider.UserInfoURL + "/emails")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("获取邮箱失败: %s", resp.Status())
	}
	for _, item := range result {
		if item.Primary {
			return item.Email, nil
		}
	}
	if len(result) > 0 {
		return result[0].Email, nil
	}
	return "", nil
}

// FetchImage 下载提供方头像
func (s *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		Get(imageURL)
	if err != nil {
		return nil, "", err
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("下载头像失败: %s", resp.Status())
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
