package model

import (
	"time"
)

type Member struct {
	ID           uint64  `gorm:"primaryKey"`
	Username     *string `gorm:"type:varchar(50);uniqueIndex:idx_username"` // 社交注册未补全时为空
	Email        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_email"`
	Nickname     *string `gorm:"type:varchar(50);uniqueIndex:idx_nickname"`
	Password     *string `gorm:"type:varchar(255)"`
	Role         string  `gorm:"type:varchar(20);not null;default:ROLE_USER"`
	Introduce    string  `gorm:"type:varchar(255)"`
	BlogTitle    string  `gorm:"type:varchar(100)"`
	SocialEmail  string  `gorm:"type:varchar(100)"`
	SocialGithub string  `gorm:"type:varchar(100)"`
	Provider     *string `gorm:"type:varchar(20)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Thumbnail MemberThumbnail `gorm:"foreignKey:MemberID;references:ID"`
}

func (Member) TableName() string {
	return "members"
}

// IsComplete 注册是否已完成（社交注册需补全账号、昵称与密码）
func (m *Member) IsComplete() bool {
	return m.Username != nil && m.Nickname != nil && m.Password != nil
}
