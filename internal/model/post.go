package model

import (
	"time"
)

type Post struct {
	ID            uint64  `gorm:"primaryKey"`
	MemberID      uint64  `gorm:"not null;index:idx_posts_member_id" json:"member_id"`
	Title         string  `gorm:"type:varchar(255);not null" json:"title"`
	Content       string  `gorm:"type:longtext;not null" json:"content"`
	Introduce     string  `gorm:"type:varchar(255)" json:"introduce"`
	Access        string  `gorm:"type:varchar(10);not null;default:PUBLIC" json:"access"`
	Status        string  `gorm:"type:varchar(10);not null;index:idx_status" json:"status"`
	Loves         int     `gorm:"not null;default:0" json:"loves"`
	Views         int     `gorm:"not null;default:0" json:"views"`
	ThumbnailName *string `gorm:"type:varchar(255)" json:"thumbnail_name"`
	ThumbnailPath *string `gorm:"type:varchar(512)" json:"thumbnail_path"`
	SeriesID      *uint64 `gorm:"index:idx_series_id" json:"series_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 关联关系
	Member Member  `gorm:"foreignKey:MemberID;references:ID"`
	Series *Series `gorm:"foreignKey:SeriesID;references:ID"`
	Tags   []Tag   `gorm:"many2many:post_tags;"`
}

func (Post) TableName() string {
	return "posts"
}
