package dto

// SocialLoginDTO 社交登录结果
type SocialLoginDTO struct {
	Token      string `json:"token"`
	NeedSignup bool   `json:"need_signup"`
}
