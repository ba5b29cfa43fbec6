package api

import "Inkstone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MemberHandler   *handler.MemberHandler
	OAuthHandler    *handler.OAuthHandler
	PostHandler     *handler.PostHandler
	PostReadHandler *handler.PostReadHandler
}
