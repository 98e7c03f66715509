package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moment_dev_v1_202609/internal/api/dto"
	"moment_dev_v1_202609/internal/service"
)

type TenantController struct {
	tenantSvc *service.TenantService
}

func NewTenantController(tenantSvc *service.TenantService) *TenantController {
	return &TenantController{
		tenantSvc: tenantSvc,
	}
}

// Resolve 按 hostname 解析租户
// @Summary 按 hostname 解析租户
// @Description 子域/自定义域/localhost 解析为租户记录，附带生效主题
// @Tags Tenant (租户)
// @Produce json
// @Param hostname query string false "入站主机名" default(localhost)
// @Success 200 {object} service.ResolvedTenant "租户信息"
// @Failure 404 {object} map[string]string "无匹配租户"
// @Failure 500 {object} map[string]string "默认租户缺失"
// @Router /api/tenant [get]
func (c *TenantController) Resolve(ctx *gin.Context) {
	var req dto.TenantResolveReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resolved, err := c.tenantSvc.ResolveHostname(ctx.Request.Context(), req.Hostname)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTenantFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No tenant found"})
		case errors.Is(err, service.ErrNoDefaultTenant):
			// 部署配置问题，前台兜不住，让运维看到
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, resolved)
}
