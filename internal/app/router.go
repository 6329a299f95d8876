package app

import (
	"career_coach_backend/docs"
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/middleware"
	"career_coach_backend/internal/model"
	"career_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerActivityRoutes(authGroup, c)
		a.registerRoleRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/catalog/reload", c.role.ReloadCatalog)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/progression/tiers", c.dashboard.GetTier)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.GetProfile)
	group.GET("/dashboard", c.dashboard.GetDashboard)
	group.GET("/leaderboard", c.leaderboard.GetLeaderboard)

	skills := group.Group("/user/skills")
	{
		skills.GET("", c.user.GetSkills)
		skills.PUT("", c.user.ReplaceSkills)
		skills.POST("", c.user.UpsertSkill)
		skills.DELETE("/:name", c.user.DeleteSkill)
	}
}

func (a *App) registerActivityRoutes(group *gin.RouterGroup, c *controllers) {
	activities := group.Group("/activities")
	{
		activities.POST("", c.activity.RecordActivity)
		activities.POST("/streak", c.activity.UpdateStreak)
		activities.GET("/types", c.activity.ListTypes)
		activities.GET("/days", c.activity.ListDays)
		activities.GET("/heatmap", c.activity.GetHeatmap)
	}
}

func (a *App) registerRoleRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/roles", c.role.ListRoles)
	group.GET("/roles/:id", c.role.GetRole)

	recommendations := group.Group("/recommendations")
	{
		recommendations.GET("/roles", c.recommendation.RankRoles)
		recommendations.GET("/roles/:id", c.recommendation.ScoreRole)
		recommendations.POST("/score", c.recommendation.ScoreAdHoc)
	}
}
