package model

import (
	"time"
)

type MemberThumbnail struct {
	ID        uint64 `gorm:"primaryKey"`
	MemberID  uint64 `gorm:"not null;uniqueIndex:idx_member_thumbnails_member_id"`
	Name      string `gorm:"type:varchar(255);not null"` // 对象存储中的对象名
	Path      string `gorm:"type:varchar(512);not null"` // 公共访问 URL
	UpdatedAt time.Time
}

func (MemberThumbnail) TableName() string {
	return "member_thumbnails"
}
