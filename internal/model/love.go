package model

import (
	"time"
)

type Love struct {
	MemberID  uint64    `gorm:"primaryKey" json:"memberId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_id" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Love) TableName() string {
	return "loves"
}
