package controller

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ActivityController 活动记录与热力图
type ActivityController struct {
	Ledger      *service.LedgerService
	HeatmapDays int
	now         func() time.Time
}

func NewActivityController(ledger *service.LedgerService, heatmapDays int) *ActivityController {
	if heatmapDays <= 0 {
		heatmapDays = service.DefaultHeatmapDays
	}
	return &ActivityController{
		Ledger:      ledger,
		HeatmapDays: heatmapDays,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// swagger:model RecordActivityRequest
type RecordActivityRequest struct {
	Type model.ActivityType `json:"type" binding:"required"`
}

// @Summary 记录活动
// @Description 记录一次活动并累加积分，时间以服务器 UTC 时间为准
// @Tags 活动
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RecordActivityRequest true "活动类型"
// @Success 200 {object} util.Response{data=service.ActivityResult}
// @Failure 400 {object} util.Response "未知活动类型"
// @Failure 503 {object} util.Response "写入失败，可重试"
// @Router /api/activities [post]
func (c *ActivityController) RecordActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecordActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Ledger.RecordActivity(ctx.Request.Context(), user.UserID, req.Type, c.now())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 每日打卡
// @Description 推进连续天数并记录 DAILY_STREAK 活动
// @Tags 活动
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ActivityResult}
// @Failure 503 {object} util.Response
// @Router /api/activities/streak [post]
func (c *ActivityController) UpdateStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Ledger.UpdateStreak(ctx.Request.Context(), user.UserID, c.now())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 活动类型
// @Description 可记录的活动类型及对应积分
// @Tags 活动
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/activities/types [get]
func (c *ActivityController) ListTypes(ctx *gin.Context) {
	util.Success(ctx, c.Ledger.ActivityTypes())
}

// @Summary 活动明细
// @Description 按日期列出活动，默认最近 30 天
// @Tags 活动
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "开始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=[]model.ActivityDay}
// @Failure 400 {object} util.Response
// @Router /api/activities/days [get]
func (c *ActivityController) ListDays(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	now := c.now()
	to := ctx.DefaultQuery("to", model.DayKey(now))
	from := ctx.DefaultQuery("from", model.DayKey(now.AddDate(0, 0, -29)))

	days, err := c.Ledger.ListDays(ctx.Request.Context(), user.UserID, from, to)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, days)
}

// @Summary 活动热力图
// @Description 以今天为结尾、按日期正序返回每天的活动数，无活动的日期为 0
// @Tags 活动
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "窗口天数" default(365)
// @Success 200 {object} util.Response{data=[]service.HeatmapCell}
// @Failure 400 {object} util.Response
// @Router /api/activities/heatmap [get]
func (c *ActivityController) GetHeatmap(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	days := c.HeatmapDays
	if s := ctx.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			util.BadRequest(ctx, "invalid days")
			return
		}
		days = n
	}

	cells, err := c.Ledger.GetHeatmap(ctx.Request.Context(), user.UserID, c.now(), days)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cells)
}
