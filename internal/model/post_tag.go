package model

type PostTag struct {
	PostID uint64 `gorm:"primaryKey"`
	TagID  uint64 `gorm:"primaryKey;index:idx_tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
