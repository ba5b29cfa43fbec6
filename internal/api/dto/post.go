package dto

// WriteDTO 发布或临时保存文章
type WriteDTO struct {
	PostID     uint64   `json:"post_id"`
	Title      string   `json:"title" binding:"required" validate:"min=1,max=255"`
	Content    string   `json:"content"`
	Introduce  string   `json:"introduce" validate:"max=150"`
	Access     string   `json:"access" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	SeriesName *string  `json:"series_name,omitempty"`
	Tags       []string `json:"tags" validate:"max=10"`
	Thumbnail  *string  `json:"thumbnail,omitempty"`
}

// WriteViewDTO 编辑页回显
type WriteViewDTO struct {
	PostID        uint64   `json:"post_id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Introduce     string   `json:"introduce"`
	Access        string   `json:"access"`
	SeriesName    *string  `json:"series_name,omitempty"`
	Tags          []string `json:"tags"`
	Thumbnail     *string  `json:"thumbnail,omitempty"`
	FromTemporary bool     `json:"from_temporary"`
}

// PostSummaryDTO 列表项
type PostSummaryDTO struct {
	PostID       uint64   `json:"post_id"`
	Title        string   `json:"title"`
	Introduce    string   `json:"introduce"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	Loves        int      `json:"loves"`
	Views        int      `json:"views"`
	CreatedAt    string   `json:"created_at"`
	Nickname     string   `json:"nickname,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// PostNavDTO 阅读页的上一篇/下一篇
type PostNavDTO struct {
	PostID uint64 `json:"post_id"`
	Title  string `json:"title"`
}

// ReadDTO 阅读页
type ReadDTO struct {
	PostID       uint64      `json:"post_id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Introduce    string      `json:"introduce"`
	Access       string      `json:"access"`
	Loves        int         `json:"loves"`
	Views        int         `json:"views"`
	Loved        bool        `json:"loved"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
	ThumbnailURL *string     `json:"thumbnail_url,omitempty"`
	Tags         []string    `json:"tags"`
	SeriesName   *string     `json:"series_name,omitempty"`
	Nickname     string      `json:"nickname"`
	AvatarURL    string      `json:"avatar_url,omitempty"`
	Prev         *PostNavDTO `json:"prev,omitempty"`
	Next         *PostNavDTO `json:"next,omitempty"`
}

// SeriesDTO 合集及其预览文章
type SeriesDTO struct {
	SeriesID  uint64           `json:"series_id"`
	Name      string           `json:"name"`
	PostCount int              `json:"post_count"`
	UpdatedAt string           `json:"updated_at"`
	Posts     []PostSummaryDTO `json:"posts"`
}

// LoveDTO 点赞/取消点赞
type LoveDTO struct {
	PostID uint64 `json:"post_id" binding:"required"`
}

// DeletePostDTO 删除文章
type DeletePostDTO struct {
	PostID uint64 `json:"post_id" binding:"required"`
}
