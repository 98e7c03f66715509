package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"moment_dev_v1_202609/internal/model"
	"moment_dev_v1_202609/internal/repository"
	"moment_dev_v1_202609/pkg/gateway"
)

// Actor 当前操作者（由会话中间件解析，绝不来自请求体）
// TenantID 为空时按兜底租户处理（单店部署的管理后台就是这种形态）
type Actor struct {
	TenantID string
	UserID   string
}

// DomainService 域名操作编排
// 职责：定位操作租户 -> 现签凭证 -> 转发网关 -> 原样回显。
// 不改任何本地状态，域名数据的唯一权威在网关
type DomainService struct {
	tenantRepo  repository.TenantRepository
	issuer      *TokenIssuer
	gw          *gateway.Client
	logger      *zap.Logger
	defaultSlug string
}

// NewDomainService 创建域名服务
func NewDomainService(
	tenantRepo repository.TenantRepository,
	issuer *TokenIssuer,
	gw *gateway.Client,
	defaultSlug string,
	logger *zap.Logger,
) *DomainService {
	return &DomainService{
		tenantRepo:  tenantRepo,
		issuer:      issuer,
		gw:          gw,
		logger:      logger,
		defaultSlug: defaultSlug,
	}
}

// credential 解析操作租户并现签一张凭证
// 每次调用都重新签发，不跨请求复用
func (s *DomainService) credential(ctx context.Context, actor Actor) (string, *model.Tenant, error) {
	var tenant *model.Tenant
	var err error

	if actor.TenantID != "" {
		tenant, err = s.tenantRepo.GetByID(ctx, actor.TenantID)
	} else {
		tenant, err = s.tenantRepo.GetBySlug(ctx, s.defaultSlug)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNoDefaultTenant
		}
		return "", nil, err
	}

	userID := actor.UserID
	if userID == "" {
		userID = tenant.ID
	}

	token, _, err := s.issuer.Issue(tenant.ID, userID, "admin")
	if err != nil {
		return "", nil, err
	}
	return token, tenant, nil
}

// List 列出操作租户的全部域名
func (s *DomainService) List(ctx context.Context, actor Actor) ([]gateway.Domain, error) {
	token, _, err := s.credential(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.gw.List(ctx, token)
}

// Create 注册新域名
// 只校验非空；格式/唯一性交给网关判定并原样带回
func (s *DomainService) Create(ctx context.Context, actor Actor, domain string) (*gateway.CreateResult, error) {
	token, tenant, err := s.credential(ctx, actor)
	if err != nil {
		return nil, err
	}

	result, err := s.gw.Create(ctx, token, domain)
	if err != nil {
		return nil, err
	}

	s.logger.Info("域名注册已提交",
		zap.String("tenant", tenant.Slug),
		zap.String("domain", domain),
	)
	return result, nil
}

// Get 查询单个域名
func (s *DomainService) Get(ctx context.Context, actor Actor, id string) (*gateway.Domain, error) {
	token, _, err := s.credential(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.gw.Get(ctx, token, id)
}

// Delete 删除域名（幂等）
// 网关回 404 说明早已删除，当成功处理，不给操作者报错
func (s *DomainService) Delete(ctx context.Context, actor Actor, id string) error {
	token, _, err := s.credential(ctx, actor)
	if err != nil {
		return err
	}

	if err := s.gw.Delete(ctx, token, id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			s.logger.Info("域名已不存在，按删除成功处理", zap.String("id", id))
			return nil
		}
		return err
	}
	return nil
}

// Update 局部更新 redirect_url / archived
func (s *DomainService) Update(ctx context.Context, actor Actor, id string, req gateway.UpdateRequest) (*gateway.Domain, error) {
	token, _, err := s.credential(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.gw.Update(ctx, token, id, req)
}

// Verify 触发验证
// 不假设同步完成：结果可能是中间态 (Verified=false)，由 UI 轮询
func (s *DomainService) Verify(ctx context.Context, actor Actor, id string) (*gateway.VerifyResult, error) {
	token, _, err := s.credential(ctx, actor)
	if err != nil {
		return nil, err
	}

	result, err := s.gw.Verify(ctx, token, id)
	if err != nil {
		return nil, err
	}

	if result.Verified {
		s.logger.Info("域名验证通过", zap.String("id", id))
	}
	return result, nil
}

// SetPrimary 设为主域名，随后回读确认网关的原子换主已生效
func (s *DomainService) SetPrimary(ctx context.Context, actor Actor, id string) (*gateway.Domain, error) {
	token, _, err := s.credential(ctx, actor)
	if err != nil {
		return nil, err
	}

	if err := s.gw.SetPrimary(ctx, token, id); err != nil {
		return nil, err
	}

	// 换主由网关原子完成，这里只回读确认，不做本地补偿
	return s.gw.Get(ctx, token, id)
}
