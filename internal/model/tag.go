package model

type Tag struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_tag_name"`
}

func (Tag) TableName() string {
	return "tags"
}
