package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moment_dev_v1_202609/internal/api/dto"
	"moment_dev_v1_202609/internal/service"
)

type ThemeController struct {
	themeSvc *service.ThemeService
}

func NewThemeController(themeSvc *service.ThemeService) *ThemeController {
	return &ThemeController{
		themeSvc: themeSvc,
	}
}

// List 主题列表
// @Summary 主题列表
// @Description 默认只返回已发布主题，all=true 返回全部
// @Tags Theme (主题)
// @Produce json
// @Param all query bool false "包含未发布主题"
// @Success 200 {object} map[string]interface{} "主题列表"
// @Router /api/themes [get]
func (c *ThemeController) List(ctx *gin.Context) {
	onlyActive := ctx.Query("all") != "true"

	themes, err := c.themeSvc.List(ctx.Request.Context(), onlyActive)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"themes": themes, "total": len(themes)})
}

// GetDetail 主题详情
// @Summary 主题详情
// @Tags Theme (主题)
// @Produce json
// @Param id path string true "主题 ID"
// @Success 200 {object} model.Theme
// @Failure 404 {object} map[string]string "主题不存在"
// @Router /api/themes/{id} [get]
func (c *ThemeController) GetDetail(ctx *gin.Context) {
	theme, err := c.themeSvc.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrThemeNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, theme)
}

// GetByTenant 某租户的生效主题
// @Summary 某租户的生效主题
// @Tags Theme (主题)
// @Produce json
// @Param slug path string true "租户 slug"
// @Success 200 {object} model.Theme
// @Router /api/themes/tenant/{slug} [get]
func (c *ThemeController) GetByTenant(ctx *gin.Context) {
	theme, err := c.themeSvc.GetByTenantSlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTenantFound), errors.Is(err, service.ErrThemeNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, theme)
}

// GetActive 按 hostname 解析生效主题的完整组件集
// @Summary 生效主题组件集
// @Description 租户解析 + 注册表解析，未知主题自动降级 default
// @Tags Theme (主题)
// @Produce json
// @Param hostname query string false "入站主机名"
// @Success 200 {object} dto.ActiveThemeResp
// @Router /api/themes/active [get]
func (c *ThemeController) GetActive(ctx *gin.Context) {
	tenant, resolved, err := c.themeSvc.ResolveComponents(ctx.Request.Context(), ctx.Query("hostname"))
	if err != nil {
		if errors.Is(err, service.ErrNoTenantFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No tenant found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	components := make(map[string]interface{})
	for slot, comp := range resolved.Components() {
		components[string(slot)] = comp
	}

	ctx.JSON(http.StatusOK, dto.ActiveThemeResp{
		Tenant:     tenant.Slug,
		Theme:      resolved.EffectiveName(),
		Components: components,
		Config:     resolved.Config(),
	})
}

// Activate 激活主题
// @Summary 激活主题
// @Description 把已发布主题设为租户生效主题；未发布主题拒绝
// @Tags Theme (主题)
// @Accept json
// @Produce json
// @Param body body dto.ActivateThemeReq true "激活参数"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "主题未发布"
// @Failure 404 {object} map[string]string "主题或租户不存在"
// @Router /api/themes/activate [post]
func (c *ThemeController) Activate(ctx *gin.Context) {
	var req dto.ActivateThemeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	err := c.themeSvc.Activate(ctx.Request.Context(), req.TenantID, req.ThemeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrThemeNotFound), errors.Is(err, service.ErrNoTenantFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrThemeInactive):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "主题已激活"})
}

// Customize 主题配置增量更新
// @Summary 主题配置增量更新
// @Description 语义合并：嵌套结构按键合并，未指定的键保留旧值
// @Tags Theme (主题)
// @Accept json
// @Produce json
// @Param body body dto.CustomizeThemeReq true "增量配置"
// @Success 200 {object} model.Theme
// @Router /api/themes/customize [post]
func (c *ThemeController) Customize(ctx *gin.Context) {
	var req dto.CustomizeThemeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	theme, err := c.themeSvc.Customize(ctx.Request.Context(), req.ThemeID, req.Config)
	if err != nil {
		if errors.Is(err, service.ErrThemeNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, theme)
}
