package controller

import (
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary 获取仪表盘数据
// @Description 积分、连续天数、等级进度、名次与一年活动热力图
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetUserDashboard(ctx.Request.Context(), user.UserID, time.Now().UTC())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// @Summary 等级计算
// @Description 根据积分计算等级及升级进度
// @Tags 仪表盘
// @Produce json
// @Param points query int true "积分"
// @Success 200 {object} util.Response{data=service.TierInfo}
// @Failure 400 {object} util.Response
// @Router /api/progression/tiers [get]
func (c *DashboardController) GetTier(ctx *gin.Context) {
	points, err := strconv.Atoi(ctx.Query("points"))
	if err != nil {
		util.BadRequest(ctx, "points must be an integer")
		return
	}
	util.Success(ctx, service.ComputeTier(points))
}
