package oauth

import (
	"errors"
	"fmt"
)

// Attributes 各提供方用户信息的统一视图
type Attributes struct {
	Provider string
	ID       string
	Email    string
	Name     string
	Picture  string
}

// Normalize 将提供方原始响应归一化
func Normalize(provider string, raw map[string]interface{}) (*Attributes, error) {
	switch provider {
	case "github":
		return &Attributes{
			Provider: provider,
			ID:       asString(raw["id"]),
			Email:    asString(raw["email"]),
			Name:     firstNonEmpty(asString(raw["name"]), asString(raw["login"])),
			Picture:  asString(raw["avatar_url"]),
		}, nil
	case "google":
		return &Attributes{
			Provider: provider,
			ID:       asString(raw["sub"]),
			Email:    asString(raw["email"]),
			Name:     asString(raw["name"]),
			Picture:  asString(raw["picture"]),
		}, nil
	case "naver":
		resp, ok := raw["response"].(map[string]interface{})
		if !ok {
			return nil, errors.New("naver 响应缺少 response 字段")
		}
		return &Attributes{
			Provider: provider,
			ID:       asString(resp["id"]),
			Email:    asString(resp["email"]),
			Name:     asString(resp["nickname"]),
			Picture:  asString(resp["profile_image"]),
		}, nil
	default:
		return nil, fmt.Errorf("未知的提供方: %s", provider)
	}
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
