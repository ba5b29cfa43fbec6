package model

import (
	"time"
)

// TemporaryPost 已发布文章的备用草稿，与文章一一对应
type TemporaryPost struct {
	PostID    uint64 `gorm:"primaryKey"`
	Title     string `gorm:"type:varchar(255);not null"`
	Content   string `gorm:"type:longtext;not null"`
	Tags      string `gorm:"type:varchar(512)"` // 逗号分隔的标签名
	UpdatedAt time.Time
}

func (TemporaryPost) TableName() string {
	return "temporary_posts"
}
