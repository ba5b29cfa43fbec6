package model

import (
	"time"
)

// Look 阅读记录，同一会员重复阅读只更新时间
type Look struct {
	ID       uint64    `gorm:"primaryKey"`
	MemberID uint64    `gorm:"not null;uniqueIndex:idx_member_post,priority:1" json:"memberId"`
	PostID   uint64    `gorm:"not null;uniqueIndex:idx_member_post,priority:2" json:"postId"`
	ViewedAt time.Time `gorm:"not null" json:"viewedAt"`
}

func (Look) TableName() string {
	return "looks"
}
