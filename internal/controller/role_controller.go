package controller

import (
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RoleController 岗位目录
type RoleController struct {
	Catalog *service.CatalogService
}

func NewRoleController(catalog *service.CatalogService) *RoleController {
	return &RoleController{Catalog: catalog}
}

// @Summary 岗位列表
// @Tags 岗位目录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.RoleProfile}
// @Router /api/roles [get]
func (c *RoleController) ListRoles(ctx *gin.Context) {
	util.Success(ctx, c.Catalog.List())
}

// @Summary 岗位详情
// @Tags 岗位目录
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "岗位ID"
// @Success 200 {object} util.Response{data=model.RoleProfile}
// @Failure 404 {object} util.Response
// @Router /api/roles/{id} [get]
func (c *RoleController) GetRole(ctx *gin.Context) {
	role, err := c.Catalog.Get(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, role)
}

// @Summary 重新加载岗位目录
// @Description 从配置的来源重新读取目录，校验失败时保留当前目录
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "目录校验失败"
// @Router /api/admin/catalog/reload [post]
func (c *RoleController) ReloadCatalog(ctx *gin.Context) {
	if err := c.Catalog.Load(ctx.Request.Context()); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"roles":    len(c.Catalog.List()),
		"loadedAt": c.Catalog.LoadedAt(),
	})
}
