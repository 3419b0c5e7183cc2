package routers

import (
	"time"

	"github.com/solenote/note-keeper-service/internal/app"
	"github.com/solenote/note-keeper-service/internal/middleware"
	"github.com/solenote/note-keeper-service/internal/routers/api_router"
	pkgapp "github.com/solenote/note-keeper-service/pkg/app"
	"github.com/solenote/note-keeper-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/user",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 构建公共 API 路由
func NewRouter(appContainer *app.App, wss *pkgapp.WebsocketServer, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer, wss)
		tagHandler := api_router.NewTagHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.POST("/user/token/refresh", userHandler.TokenRefresh)

		// 事件订阅通道，连接无需认证即可订阅
		api.GET("/sync", wss.Run())

		// 服务端版本号接口（无需认证）
		api.GET("/version", versionHandler.ServerVersion)

		auth := api.Group("")
		auth.Use(middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			auth.GET("/user/info", userHandler.UserInfo)

			auth.POST("/note", noteHandler.Create)
			auth.GET("/note/:id", noteHandler.Get)
			auth.PUT("/note/:id", noteHandler.Update)
			auth.DELETE("/note/:id", noteHandler.Delete)
			auth.GET("/notes", noteHandler.List)
			auth.PATCH("/notes/reorder", noteHandler.Reorder)
			auth.PATCH("/note/:id/archive", noteHandler.ToggleArchive)
			auth.PATCH("/note/:id/pin", noteHandler.TogglePin)
			auth.PATCH("/note/:id/reminder", noteHandler.SetReminder)
			auth.POST("/note/:id/checklist", noteHandler.ChecklistAdd)
			auth.GET("/note/:id/checklist", noteHandler.ChecklistList)
			auth.PATCH("/note/:id/checklist/:itemId", noteHandler.ChecklistToggle)
			auth.DELETE("/note/:id/checklist/:itemId", noteHandler.ChecklistRemove)

			auth.POST("/tag", tagHandler.Create)
			auth.GET("/tags", tagHandler.List)
			auth.GET("/tag/:id", tagHandler.Get)
			auth.PUT("/tag/:id", tagHandler.Update)
			auth.DELETE("/tag/:id", tagHandler.Delete)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}

// NewWebsocketServer 创建事件推送 WebSocket 服务
func NewWebsocketServer(appContainer *app.App) *pkgapp.WebsocketServer {
	return pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:  true,
			ParallelEnabled:   true,                                 // 开启并行消息处理
			Recovery:          gws.Recovery,                         // 开启异常恢复
			PermessageDeflate: gws.PermessageDeflate{Enabled: true}, // 开启压缩
			ParallelGolimit:   8,
		},
	}, appContainer.Broadcaster)
}
