package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		memberGroup := apiGroup.Group("/member")
		{
			// 无需登录即可访问的接口
			memberGroup.POST("/signup", group.MemberHandler.Join)
			memberGroup.POST("/login", group.MemberHandler.Login)
			memberGroup.POST("/email", group.MemberHandler.CheckEmail)

			authGroup := memberGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/signup/social", group.MemberHandler.JoinSocial)
				authGroup.POST("/logout", group.MemberHandler.Logout)
				authGroup.POST("/withdraw", group.MemberHandler.Withdraw)
				authGroup.GET("", group.MemberHandler.GetProfile)
				authGroup.PUT("", group.MemberHandler.UpdateProfile)
				authGroup.PUT("/password", group.MemberHandler.UpdatePassword)
				authGroup.POST("/thumbnail", group.MemberHandler.UploadThumbnail)
				authGroup.DELETE("/thumbnail", group.MemberHandler.DeleteThumbnail)
			}
		}

		oauthGroup := apiGroup.Group("/oauth2")
		{
			oauthGroup.GET("/authorize/:provider", group.OAuthHandler.Authorize)
			oauthGroup.GET("/callback/:provider", group.OAuthHandler.Callback)
		}

		// 写作相关，全部需要登录
		writeGroup := apiGroup.Group("")
		writeGroup.Use(middleware.AuthMiddleware())
		{
			writeGroup.GET("/write", group.PostHandler.GetWrite)
			writeGroup.POST("/write", group.PostHandler.Write)
			writeGroup.POST("/writeTemporary", group.PostHandler.WriteTemporary)
			writeGroup.POST("/delete", group.PostHandler.Delete)
			writeGroup.POST("/love", group.PostHandler.Love)

			writeGroup.GET("/temp", group.PostReadHandler.Temp)
			writeGroup.GET("/archive/like", group.PostReadHandler.ArchiveLike)
			writeGroup.GET("/archive/recent", group.PostReadHandler.ArchiveRecent)
		}

		// 公开阅读，匿名可访问
		readGroup := apiGroup.Group("")
		readGroup.Use(middleware.AuthOptionalMiddleware())
		{
			readGroup.GET("/main", group.PostReadHandler.Main)
			readGroup.GET("/search", group.PostReadHandler.Search)

			blogGroup := readGroup.Group("/blog/:nickname")
			{
				blogGroup.GET("/main", group.PostReadHandler.MemberMain)
				blogGroup.GET("/series", group.PostReadHandler.MemberSeries)
				blogGroup.GET("/series/:seriesName", group.PostReadHandler.MemberSeriesPosts)
				blogGroup.GET("/read/:postId", group.PostReadHandler.Read)
			}
		}
	}

	return r
}
