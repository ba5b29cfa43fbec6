package model

import (
	"time"
)

type Series struct {
	ID        uint64 `gorm:"primaryKey"`
	MemberID  uint64 `gorm:"not null;uniqueIndex:idx_member_series,priority:1"`
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_member_series,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Posts []Post `gorm:"foreignKey:SeriesID;references:ID"`
}

func (Series) TableName() string {
	return "series"
}
