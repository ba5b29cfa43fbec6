package dto

import "time"

// JoinDTO 注册
type JoinDTO struct {
	Username string `json:"username" binding:"required" validate:"required,min=4,max=20"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Nickname string `json:"nickname" binding:"required" validate:"required,min=1,max=20"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=64"`
}

// JoinSocialDTO 补全社交注册
type JoinSocialDTO struct {
	Username string `json:"username" binding:"required" validate:"required,min=4,max=20"`
	Nickname string `json:"nickname" binding:"required" validate:"required,min=1,max=20"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=64"`
}

// LoginDTO 登录
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailCheckDTO 邮箱可用性检查
type EmailCheckDTO struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

// ChangePasswordDTO 修改密码
type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required" validate:"required,min=8,max=64"`
}

// WithdrawDTO 注销账号，需二次验证密码
type WithdrawDTO struct {
	Password string `json:"password" binding:"required"`
}

// UpdateMemberDTO 修改个人资料，nil 字段表示不修改
type UpdateMemberDTO struct {
	Nickname     *string `json:"nickname,omitempty" validate:"omitempty,min=1,max=20"`
	Introduce    *string `json:"introduce,omitempty" validate:"omitempty,max=255"`
	BlogTitle    *string `json:"blog_title,omitempty" validate:"omitempty,max=100"`
	SocialEmail  *string `json:"social_email,omitempty" validate:"omitempty,max=100"`
	SocialGithub *string `json:"social_github,omitempty" validate:"omitempty,max=100"`
}

// MemberDTO 会员信息
type MemberDTO struct {
	MemberID     uint64     `json:"member_id"`
	Username     *string    `json:"username,omitempty"`
	Email        string     `json:"email,omitempty"`
	Nickname     *string    `json:"nickname,omitempty"`
	Introduce    string     `json:"introduce,omitempty"`
	BlogTitle    string     `json:"blog_title,omitempty"`
	SocialEmail  string     `json:"social_email,omitempty"`
	SocialGithub string     `json:"social_github,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
