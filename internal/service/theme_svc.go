package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moment_dev_v1_202609/internal/model"
	"moment_dev_v1_202609/internal/repository"
	"moment_dev_v1_202609/pkg/theme"
)

// ThemeService 主题管理 + 组件解析
type ThemeService struct {
	themeRepo  repository.ThemeRepository
	tenantRepo repository.TenantRepository
	tenantSvc  *TenantService
	registry   *theme.Registry
	logger     *zap.Logger
}

// NewThemeService 创建主题服务
func NewThemeService(
	themeRepo repository.ThemeRepository,
	tenantRepo repository.TenantRepository,
	tenantSvc *TenantService,
	registry *theme.Registry,
	logger *zap.Logger,
) *ThemeService {
	return &ThemeService{
		themeRepo:  themeRepo,
		tenantRepo: tenantRepo,
		tenantSvc:  tenantSvc,
		registry:   registry,
		logger:     logger,
	}
}

// List 主题列表
func (s *ThemeService) List(ctx context.Context, onlyActive bool) ([]model.Theme, error) {
	return s.themeRepo.List(ctx, onlyActive)
}

// GetByID 主题详情
func (s *ThemeService) GetByID(ctx context.Context, id string) (*model.Theme, error) {
	t, err := s.themeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByTenantSlug 取某租户的生效主题（没有则回默认主题记录）
func (s *ThemeService) GetByTenantSlug(ctx context.Context, slug string) (*model.Theme, error) {
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTenantFound
		}
		return nil, err
	}

	if tenant.ActiveThemeID != nil && *tenant.ActiveThemeID != "" {
		if t, err := s.themeRepo.GetByID(ctx, *tenant.ActiveThemeID); err == nil {
			return t, nil
		}
		// 绑定的主题查不到按默认处理，渲染路径不报错
		s.logger.Warn("租户绑定的主题缺失，回落默认",
			zap.String("tenant", slug),
		)
	}

	t, err := s.themeRepo.GetByName(ctx, theme.DefaultSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}
	return t, nil
}

// Activate 把主题设为租户的生效主题
// 只允许激活已发布 (is_active) 的主题；换主题靠重新解析生效，不做原地热改
func (s *ThemeService) Activate(ctx context.Context, tenantID, themeID string) error {
	t, err := s.themeRepo.GetByID(ctx, themeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThemeNotFound
		}
		return err
	}
	if !t.IsActive {
		return ErrThemeInactive
	}

	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoTenantFound
		}
		return err
	}

	return s.tenantRepo.UpdateActiveTheme(ctx, tenantID, &themeID)
}

// Customize 语义合并主题配置
// 传入的是增量：嵌套 map 按键位合并，未提到的键保留旧值，而不是整体替换
func (s *ThemeService) Customize(ctx context.Context, themeID string, patch map[string]interface{}) (*model.Theme, error) {
	t, err := s.themeRepo.GetByID(ctx, themeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}

	current := map[string]interface{}{}
	if len(t.Config) > 0 {
		if err := json.Unmarshal(t.Config, &current); err != nil {
			return nil, fmt.Errorf("主题配置损坏: %w", err)
		}
	}

	merged := mergeConfig(current, patch)

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}

	if err := s.themeRepo.UpdateConfig(ctx, themeID, datatypes.JSON(data)); err != nil {
		return nil, err
	}

	t.Config = datatypes.JSON(data)
	return t, nil
}

// ResolveComponents 按 hostname 解析生效主题的完整组件集
// 租户解析和注册表解析都自带兜底，这里不会因为主题问题失败
func (s *ThemeService) ResolveComponents(ctx context.Context, hostname string) (*ResolvedTenant, *theme.Resolved, error) {
	tenant, err := s.tenantSvc.ResolveHostname(ctx, hostname)
	if err != nil {
		return nil, nil, err
	}
	return tenant, s.registry.Resolve(tenant.ActiveTheme), nil
}

// mergeConfig 递归合并：双方都是 map 的键继续下钻，其余以 patch 为准
func mergeConfig(base, patch map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, pv := range patch {
		if bm, ok := out[k].(map[string]interface{}); ok {
			if pm, ok := pv.(map[string]interface{}); ok {
				out[k] = mergeConfig(bm, pm)
				continue
			}
		}
		out[k] = pv
	}
	return out
}
