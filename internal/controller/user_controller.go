package controller

import (
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 用户技能档案
type UserController struct {
	ProfileService *service.ProfileService
}

func NewUserController(profileService *service.ProfileService) *UserController {
	return &UserController{ProfileService: profileService}
}

// swagger:model ReplaceSkillsRequest
type ReplaceSkillsRequest struct {
	Skills []service.SkillInput `json:"skills" binding:"required"`
}

// @Summary 获取技能列表
// @Description 获取当前用户的技能及熟练度
// @Tags 用户技能
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserSkill}
// @Failure 401 {object} util.Response
// @Router /api/user/skills [get]
func (c *UserController) GetSkills(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	skills, err := c.ProfileService.GetSkills(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// @Summary 整体替换技能列表
// @Description 技能名大小写不敏感唯一，熟练度 0-100
// @Tags 用户技能
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ReplaceSkillsRequest true "技能列表"
// @Success 200 {object} util.Response{data=[]model.UserSkill}
// @Failure 400 {object} util.Response
// @Router /api/user/skills [put]
func (c *UserController) ReplaceSkills(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReplaceSkillsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skills, err := c.ProfileService.ReplaceSkills(ctx.Request.Context(), user.UserID, req.Skills)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// @Summary 新增或修改技能
// @Tags 用户技能
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SkillInput true "技能"
// @Success 200 {object} util.Response{data=model.UserSkill}
// @Failure 400 {object} util.Response
// @Router /api/user/skills [post]
func (c *UserController) UpsertSkill(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SkillInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.ProfileService.UpsertSkill(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// @Summary 删除技能
// @Tags 用户技能
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "技能名"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/user/skills/{name} [delete]
func (c *UserController) DeleteSkill(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ProfileService.DeleteSkill(ctx.Request.Context(), user.UserID, ctx.Param("name")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
