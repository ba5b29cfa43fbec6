package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/oauth"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	memberRepo := repository.NewMemberRepo(db)
	postRepo := repository.NewPostRepository(db)
	seriesRepo := repository.NewSeriesRepo(db)
	actionRepo := repository.NewActionRepo(db)

	oauthClient := oauth.NewClient()

	memberService := service.NewMemberService(memberRepo, minio.UploadFile, minio.DeleteFile)
	oauthService := service.NewOAuthService(memberRepo, oauthClient, minio.UploadFile)
	postService := service.NewPostService(postRepo, seriesRepo, minio.DeleteFile)
	postActionService := service.NewPostActionService(actionRepo, postRepo)
	postReadService := service.NewPostReadService(postRepo, seriesRepo, memberRepo, actionRepo)

	handlers := &api.HandlersGroup{
		MemberHandler:   handler.NewMemberHandler(memberService),
		OAuthHandler:    handler.NewOAuthHandler(oauthService),
		PostHandler:     handler.NewPostHandler(postService, postActionService),
		PostReadHandler: handler.NewPostReadHandler(postReadService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewSocialSignupGCJob(memberRepo))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
