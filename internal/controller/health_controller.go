package controller

import (
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Catalog *service.CatalogService
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, catalog *service.CatalogService) *HealthController {
	return &HealthController{DB: db, Redis: rdb, Catalog: catalog}
}

// @Summary 健康检查
// @Description 检查数据库、Redis 与岗位目录状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up"}

	// Redis 只用于排行榜缓存，不可用时降级而不是整体失败
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			components["redis"] = "degraded"
		} else {
			components["redis"] = "up"
		}
	}

	if c.Catalog != nil {
		components["catalog"] = gin.H{
			"roles":    len(c.Catalog.List()),
			"loadedAt": c.Catalog.LoadedAt(),
		}
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
