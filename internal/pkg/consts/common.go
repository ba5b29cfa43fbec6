package consts

const (
	MimePrefixImage = "image"
)

const (
	RoleUser = "ROLE_USER"
)

const (
	AccessPublic  = "PUBLIC"
	AccessPrivate = "PRIVATE"
)

const (
	// PostStatusGeneral 已发布
	PostStatusGeneral = "GENERAL"
	// PostStatusTemporary 临时保存（草稿）
	PostStatusTemporary = "TEMPORARY"
)

const (
	// IntroduceMaxLen 未填写简介时从正文截取的最大长度
	IntroduceMaxLen = 150
)

const (
	DefaultThumbnailName = "default_thumbnail.png"
)
