package dto

// Page 带总数的分页结果
type Page[T any] struct {
	Content       []T   `json:"content"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	TotalElements int64 `json:"totalElements"`
	Empty         bool  `json:"empty"`
}

// Slice 瀑布流结果，只关心是否还有下一批
type Slice[T any] struct {
	Content []T  `json:"content"`
	HasNext bool `json:"hasNext"`
}

func NewPage[T any](content []T, number, size int, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	last := int64(number+1)*int64(size) >= total
	return &Page[T]{
		Content:       content,
		Size:          size,
		Number:        number,
		First:         number == 0,
		Last:          last,
		TotalElements: total,
		Empty:         len(content) == 0,
	}
}
