package controller

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RecommendationController 岗位匹配度
type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// @Summary 岗位推荐
// @Description 按匹配度降序返回目录中的岗位
// @Tags 岗位推荐
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "返回数量，0 表示全部"
// @Success 200 {object} util.Response{data=[]service.FitResult}
// @Router /api/recommendations/roles [get]
func (c *RecommendationController) RankRoles(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 0
	if s := ctx.Query("limit"); s != "" {
		l, err := strconv.Atoi(s)
		if err != nil || l < 0 {
			util.BadRequest(ctx, "invalid limit")
			return
		}
		limit = l
	}

	results, err := c.RecommendationService.RankForUser(ctx.Request.Context(), user.UserID, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary 单个岗位匹配度
// @Tags 岗位推荐
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "岗位ID"
// @Success 200 {object} util.Response{data=service.FitResult}
// @Failure 404 {object} util.Response
// @Router /api/recommendations/roles/{id} [get]
func (c *RecommendationController) ScoreRole(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.RecommendationService.ScoreForUser(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 自定义岗位匹配度
// @Description 对请求中给出的岗位画像打分，权重之和需为 1
// @Tags 岗位推荐
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.RoleProfile true "岗位画像"
// @Success 200 {object} util.Response{data=service.FitResult}
// @Failure 400 {object} util.Response
// @Router /api/recommendations/score [post]
func (c *RecommendationController) ScoreAdHoc(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var role model.RoleProfile
	if err := ctx.ShouldBindJSON(&role); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.RecommendationService.ScoreAdHoc(ctx.Request.Context(), user.UserID, role)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
