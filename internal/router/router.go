package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	controller2 "moment_dev_v1_202609/internal/controller"
	"moment_dev_v1_202609/internal/middleware"

	_ "moment_dev_v1_202609/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	tenantCtl *controller2.TenantController,
	themeCtl *controller2.ThemeController,
	domainCtl *controller2.DomainController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 运维端点
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 3. API 路由组
	api := r.Group("/api")
	api.Use(middleware.GinMetricsMiddleware())
	{
		// tenant 租户解析（店面入口，公开）
		// GET /api/tenant?hostname=shop1.example.com
		api.GET("/tenant", tenantCtl.Resolve)

		// theme 主题组
		themes := api.Group("/themes")
		{
			// 公开读取：店面渲染依赖这些接口，不挂鉴权
			themes.GET("", themeCtl.List)
			themes.GET("/active", themeCtl.GetActive)
			themes.GET("/tenant/:slug", themeCtl.GetByTenant)
			themes.GET("/:id", themeCtl.GetDetail)

			// 写操作走管理员会话
			authed := themes.Group("")
			authed.Use(middleware.JWTAuth(), middleware.RequireRole("admin"))
			{
				authed.POST("/activate", themeCtl.Activate)
				authed.POST("/customize", themeCtl.Customize)
			}
		}

		// admin 管理组：域名操作全部需要管理员身份
		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(), middleware.RequireRole("admin"))
		{
			domains := admin.Group("/domains")
			{
				domains.GET("", domainCtl.List)
				domains.POST("", domainCtl.Create)
				domains.GET("/:id", domainCtl.GetDetail)
				domains.DELETE("/:id", domainCtl.Delete)
				domains.PATCH("/:id", domainCtl.Update)
				// 验证触发 DNS 查询，按域名 ID 做冷却限流
				domains.POST("/:id/verify",
					middleware.VerifyCooldown(middleware.NewVerifyRateLimiter(), 30*time.Second),
					domainCtl.Verify)
				domains.POST("/:id/primary", domainCtl.SetPrimary)
			}
		}
	}
}
