package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moment_dev_v1_202609/internal/api/dto"
	"moment_dev_v1_202609/internal/middleware"
	"moment_dev_v1_202609/internal/service"
	"moment_dev_v1_202609/pkg/gateway"
)

// DomainController 域名管理（网关代理层）
// 职责只有两个：把操作租户圈定在会话声明里，把网关的应答原样带给操作者
type DomainController struct {
	domainSvc *service.DomainService
}

func NewDomainController(domainSvc *service.DomainService) *DomainController {
	return &DomainController{
		domainSvc: domainSvc,
	}
}

// actor 从会话上下文取操作者身份，绝不读请求体
func (c *DomainController) actor(ctx *gin.Context) service.Actor {
	return service.Actor{
		TenantID: ctx.GetString(middleware.ContextKeyTenantID),
		UserID:   ctx.GetString(middleware.ContextKeyUserID),
	}
}

// writeError 统一错误回写
// 网关明确拒绝时原样透传状态码和响应体，让管理端能区分
// "域名已存在" 这类具体原因；网络不可达归 502
func (c *DomainController) writeError(ctx *gin.Context, err error) {
	var rejected *gateway.RejectedError
	switch {
	case errors.As(err, &rejected):
		ctx.Data(rejected.StatusCode, "application/json", rejected.Body)
	case errors.Is(err, gateway.ErrUnreachable):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": "gateway_unreachable"})
	case errors.Is(err, gateway.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, service.ErrNoDefaultTenant):
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": "no_default_tenant"})
	case errors.Is(err, service.ErrNoSigningKey):
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": "no_signing_key"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// List 域名列表
// @Summary 域名列表
// @Tags Domain (域名管理)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/domains [get]
func (c *DomainController) List(ctx *gin.Context) {
	domains, err := c.domainSvc.List(ctx.Request.Context(), c.actor(ctx))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"domains": domains, "total": len(domains)})
}

// Create 注册域名
// @Summary 注册域名
// @Tags Domain (域名管理)
// @Accept json
// @Produce json
// @Param body body dto.CreateDomainReq true "域名"
// @Success 201 {object} gateway.CreateResult
// @Failure 409 {object} map[string]string "域名已存在（网关原样返回）"
// @Router /api/admin/domains [post]
func (c *DomainController) Create(ctx *gin.Context) {
	var req dto.CreateDomainReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Domain is required"})
		return
	}

	result, err := c.domainSvc.Create(ctx.Request.Context(), c.actor(ctx), req.Domain)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// GetDetail 域名详情
// @Summary 域名详情
// @Tags Domain (域名管理)
// @Produce json
// @Param id path string true "域名 ID"
// @Success 200 {object} gateway.Domain
// @Router /api/admin/domains/{id} [get]
func (c *DomainController) GetDetail(ctx *gin.Context) {
	domain, err := c.domainSvc.Get(ctx.Request.Context(), c.actor(ctx), ctx.Param("id"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, domain)
}

// Delete 删除域名（幂等：已删除的 id 重复删按成功处理）
// @Summary 删除域名
// @Tags Domain (域名管理)
// @Param id path string true "域名 ID"
// @Success 204 "已删除"
// @Router /api/admin/domains/{id} [delete]
func (c *DomainController) Delete(ctx *gin.Context) {
	if err := c.domainSvc.Delete(ctx.Request.Context(), c.actor(ctx), ctx.Param("id")); err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Update 局部更新 (redirect_url / archived)
// @Summary 更新域名
// @Tags Domain (域名管理)
// @Accept json
// @Produce json
// @Param id path string true "域名 ID"
// @Param body body dto.UpdateDomainReq true "更新字段，缺省字段不动"
// @Success 200 {object} gateway.Domain
// @Router /api/admin/domains/{id} [patch]
func (c *DomainController) Update(ctx *gin.Context) {
	var req dto.UpdateDomainReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	domain, err := c.domainSvc.Update(ctx.Request.Context(), c.actor(ctx), ctx.Param("id"), gateway.UpdateRequest{
		RedirectURL: req.RedirectURL,
		Archived:    req.Archived,
	})
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, domain)
}

// Verify 触发 DNS 验证
// @Summary 触发域名验证
// @Description 验证不保证同步完成，Verified=false 表示 TXT 尚未生效
// @Tags Domain (域名管理)
// @Produce json
// @Param id path string true "域名 ID"
// @Success 200 {object} gateway.VerifyResult
// @Router /api/admin/domains/{id}/verify [post]
func (c *DomainController) Verify(ctx *gin.Context) {
	result, err := c.domainSvc.Verify(ctx.Request.Context(), c.actor(ctx), ctx.Param("id"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SetPrimary 设为主域名
// @Summary 设为主域名
// @Description 同租户旧主域名由网关原子取消；响应为回读确认后的记录
// @Tags Domain (域名管理)
// @Produce json
// @Param id path string true "域名 ID"
// @Success 200 {object} gateway.Domain
// @Failure 400 {object} map[string]string "未验证域名不可设主（网关原样返回）"
// @Router /api/admin/domains/{id}/primary [post]
func (c *DomainController) SetPrimary(ctx *gin.Context) {
	domain, err := c.domainSvc.SetPrimary(ctx.Request.Context(), c.actor(ctx), ctx.Param("id"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, domain)
}
