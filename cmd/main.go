package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moment_dev_v1_202609/internal/config"
	"moment_dev_v1_202609/internal/controller"
	"moment_dev_v1_202609/internal/middleware"
	"moment_dev_v1_202609/internal/model"
	"moment_dev_v1_202609/internal/repository"
	"moment_dev_v1_202609/internal/router"
	"moment_dev_v1_202609/internal/service"
	"moment_dev_v1_202609/internal/task"
	"moment_dev_v1_202609/pkg/database"
	"moment_dev_v1_202609/pkg/gateway"
	"moment_dev_v1_202609/pkg/metrics"
	"moment_dev_v1_202609/pkg/theme"
)

// @title Moment Store API
// @version 1.0
// @description 多租户店面：租户解析 / 主题 / 域名管理
// @host localhost:8080
// @BasePath /
func main() {
	// 1. 加载配置（生产环境空密钥在这里就会被拦下）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	// 2. 注册指标
	metrics.Register()

	// 3. 初始化数据库
	db := initDatabase(cfg)

	// 4. 初始化依赖
	deps := initDependencies(cfg, db, logger)

	// 5. 启动定时任务
	initTasks(cfg, deps, logger)

	// 6. 初始化路由
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers.Tenant, deps.Controllers.Theme, deps.Controllers.Domain)

	// 7. 启动服务
	startServer(r, cfg, logger)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	Tasks       *Tasks
}

// Repositories 仓库集合
type Repositories struct {
	Tenant repository.TenantRepository
	Theme  repository.ThemeRepository
}

// Services 服务集合
type Services struct {
	Token  *service.TokenIssuer
	Tenant *service.TenantService
	Theme  *service.ThemeService
	Domain *service.DomainService
}

// Controllers 控制器集合
type Controllers struct {
	Tenant *controller.TenantController
	Theme  *controller.ThemeController
	Domain *controller.DomainController
}

// Tasks 后台任务集合
type Tasks struct {
	DomainRefresh *task.DomainRefreshTask
}

// ==================== 初始化函数 ====================

// initLogger 初始化日志
func initLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	return logger
}

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN,
		&model.Tenant{},
		&model.Theme{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Tenant: repository.NewTenantRepository(db),
		Theme:  repository.NewThemeRepository(db),
	}

	// redis 配置了就给租户解析热路径套缓存
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repos.Tenant = repository.NewCachedTenantRepository(repos.Tenant, rdb, cfg.Redis.TTL, logger)
		logger.Info("租户缓存已启用", zap.String("addr", cfg.Redis.Addr))
	}

	// -------- 管理端会话 --------
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenTTL: 2 * time.Hour,
		Issuer:         "moment-store",
	})

	// -------- 基础组件 --------
	registry := theme.NewRegistry(logger)
	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, logger)

	// -------- 业务服务 --------
	services := &Services{}
	services.Token = service.NewTokenIssuer(cfg.JWT)
	services.Tenant = service.NewTenantService(repos.Tenant, repos.Theme, cfg.Tenant, logger)
	services.Theme = service.NewThemeService(repos.Theme, repos.Tenant, services.Tenant, registry, logger)
	services.Domain = service.NewDomainService(repos.Tenant, services.Token, gw, cfg.Tenant.DefaultSlug, logger)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Tenant: controller.NewTenantController(services.Tenant),
		Theme:  controller.NewThemeController(services.Theme),
		Domain: controller.NewDomainController(services.Domain),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Tasks:       &Tasks{},
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies, logger *zap.Logger) {
	if !cfg.Task.DomainRefreshEnabled {
		logger.Info("域名巡检任务已禁用")
		return
	}

	refreshTask := task.NewDomainRefreshTask(deps.Services.Domain, cfg.Task.DomainRefreshSpec, logger)
	refreshTask.Start()
	deps.Tasks.DomainRefresh = refreshTask
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.Info("服务启动", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("服务强制关闭", zap.Error(err))
	}

	logger.Info("服务已退出")
}
