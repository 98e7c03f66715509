package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moment_dev_v1_202609/internal/config"
	"moment_dev_v1_202609/internal/model"
	"moment_dev_v1_202609/internal/repository"
	"moment_dev_v1_202609/pkg/utils"
)

// ResolvedTenant hostname 解析结果：租户身份 + 生效主题
type ResolvedTenant struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Slug              string         `json:"slug"`
	Domain            *string        `json:"domain"`
	Subdomain         *string        `json:"subdomain"`
	Plan              string         `json:"plan"`
	Status            string         `json:"status"`
	ActiveTheme       string         `json:"activeTheme"`
	ActiveThemeConfig datatypes.JSON `json:"activeThemeConfig"`
}

// TenantService 租户解析服务
type TenantService struct {
	tenantRepo repository.TenantRepository
	themeRepo  repository.ThemeRepository
	logger     *zap.Logger

	defaultSlug string
	cache       *utils.Cache // hostname -> *ResolvedTenant 备忘录，TTL=0 时关闭
}

// NewTenantService 创建租户解析服务
func NewTenantService(
	tenantRepo repository.TenantRepository,
	themeRepo repository.ThemeRepository,
	cfg config.TenantConfig,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		themeRepo:   themeRepo,
		logger:      logger,
		defaultSlug: cfg.DefaultSlug,
		cache:       utils.NewCache(cfg.ResolverCacheTTL),
	}
}

// ResolveHostname 入站 hostname -> 租户
// 解析顺序：
//  1. localhost / localhost:<port> 直接走兜底租户（本地开发快捷路径，不做子域查询）
//  2. 自定义顶级域整串匹配 tenants.domain
//  3. 取首个 label 作为子域候选（单 label 按 www 处理），匹配 tenants.subdomain
//  4. 未命中回落到兜底 slug；兜底也没有则 ErrNoTenantFound
//
// 主题解析失败不会让本方法报错 —— 前台渲染永远要有结果
func (s *TenantService) ResolveHostname(ctx context.Context, hostname string) (*ResolvedTenant, error) {
	if hostname == "" {
		hostname = "localhost"
	}

	if cached, ok := s.cache.Get(hostname); ok {
		return cached.(*ResolvedTenant), nil
	}

	tenant, err := s.findTenant(ctx, hostname)
	if err != nil {
		return nil, err
	}

	resolved := s.augmentTheme(ctx, tenant)
	s.cache.Set(hostname, resolved)
	return resolved, nil
}

// findTenant 定位租户记录
func (s *TenantService) findTenant(ctx context.Context, hostname string) (*model.Tenant, error) {
	// 1. 开发快捷路径
	if hostname == "localhost" || strings.HasPrefix(hostname, "localhost:") {
		tenant, err := s.tenantRepo.GetBySlug(ctx, s.defaultSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoDefaultTenant
			}
			return nil, err
		}
		return tenant, nil
	}

	// 去端口后再做域名匹配
	host := hostname
	if idx := strings.IndexByte(host, ':'); idx > 0 {
		host = host[:idx]
	}

	// 2. 自定义顶级域整串匹配
	tenant, err := s.tenantRepo.GetByDomain(ctx, host)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. 子域匹配：tenant1.example.com -> tenant1；裸域按 www
	parts := strings.Split(host, ".")
	subdomain := "www"
	if len(parts) > 1 {
		subdomain = parts[0]
	}

	tenant, err = s.tenantRepo.GetBySubdomain(ctx, subdomain)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 4. 兜底租户
	tenant, err = s.tenantRepo.GetBySlug(ctx, s.defaultSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTenantFound
		}
		return nil, err
	}
	return tenant, nil
}

// augmentTheme 补全生效主题
// 任何一步失败都降级为 default + 空配置并记 warning，绝不向上抛
func (s *TenantService) augmentTheme(ctx context.Context, tenant *model.Tenant) *ResolvedTenant {
	resolved := &ResolvedTenant{
		ID:          tenant.ID,
		Name:        tenant.Name,
		Slug:        tenant.Slug,
		Domain:      tenant.Domain,
		Subdomain:   tenant.Subdomain,
		Plan:        tenant.Plan,
		Status:      tenant.Status,
		ActiveTheme: "default",
	}

	if tenant.ActiveThemeID == nil || *tenant.ActiveThemeID == "" {
		return resolved
	}

	theme, err := s.themeRepo.GetByID(ctx, *tenant.ActiveThemeID)
	if err != nil {
		s.logger.Warn("激活主题查询失败，降级到默认主题",
			zap.String("tenant", tenant.Slug),
			zap.Stringp("theme_id", tenant.ActiveThemeID),
			zap.Error(err),
		)
		return resolved
	}

	resolved.ActiveTheme = theme.Name
	resolved.ActiveThemeConfig = theme.Config
	return resolved
}
