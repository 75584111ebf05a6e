package app

import (
	"risk_screening_backend/docs"
	"risk_screening_backend/internal/config"
	"risk_screening_backend/internal/middleware"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 筛查目录：游客可访问，登录用户得到个性化标签
	screening := router.Group("/api/screening")
	screening.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		screening.GET("/all", c.screening.GetAll)
		screening.GET("/all-available", c.screening.GetAll)
		screening.GET("/test-info/:testCode", c.screening.GetTestInfo)
		screening.GET("/test-providers/:testCode", c.screening.GetTestProviders)
	}

	// 知识测验：游客可作答，登录用户的作答直接关联账号
	quiz := router.Group("/api/quiz")
	quiz.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		quiz.GET("/active", c.knowledge.GetActiveQuiz)
		quiz.POST("/submit", c.knowledge.Submit)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)
	group.POST("/quiz/link-attempt", c.knowledge.LinkAttempt)

	quiz := group.Group("/lifestyle-quiz")
	{
		quiz.GET("/active", c.quiz.GetActiveQuiz)
		quiz.POST("/submit", c.quiz.Submit)
		quiz.GET("/attempts", c.quiz.ListAttempts)
	}

	dashboard := group.Group("/dashboard")
	{
		dashboard.GET("/risk-data", c.dashboard.GetRiskData)
		dashboard.POST("/simulate", c.dashboard.Simulate)
	}

	screening := group.Group("/screening")
	{
		screening.GET("/recommendations", c.screening.GetRecommendations)
		screening.GET("/checklist", c.screening.GetChecklist)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/lifestyle-quiz", c.quiz.CreateQuiz)
	}

	quizAdmin := router.Group("/api/quiz")
	quizAdmin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		quizAdmin.GET("/:quizId/analytics", c.knowledge.GetAnalytics)
		quizAdmin.POST("/create", c.knowledge.CreateQuiz)
	}
}
