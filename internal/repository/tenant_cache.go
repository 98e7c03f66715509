package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"moment_dev_v1_202609/internal/model"
)

// cachedTenantRepo 租户仓储的 redis 读穿透装饰器
// 只缓存解析热路径 (slug/subdomain/domain 查询)；写路径同步失效。
// 缓存层任何故障都降级回库查询，不能因为 redis 挂了影响开店渲染
type cachedTenantRepo struct {
	inner  TenantRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTenantRepository 包装租户仓储，加 redis 缓存
func NewCachedTenantRepository(inner TenantRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) TenantRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &cachedTenantRepo{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

const (
	tenantKeySlug      = "tenant:slug:"
	tenantKeySubdomain = "tenant:subdomain:"
	tenantKeyDomain    = "tenant:domain:"
)

func (r *cachedTenantRepo) Create(ctx context.Context, tenant *model.Tenant) error {
	return r.inner.Create(ctx, tenant)
}

func (r *cachedTenantRepo) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	// 按 ID 查不走缓存：调用频率低且是写前读
	return r.inner.GetByID(ctx, id)
}

func (r *cachedTenantRepo) GetBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	return r.lookup(ctx, tenantKeySlug+slug, func() (*model.Tenant, error) {
		return r.inner.GetBySlug(ctx, slug)
	})
}

func (r *cachedTenantRepo) GetBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	return r.lookup(ctx, tenantKeySubdomain+subdomain, func() (*model.Tenant, error) {
		return r.inner.GetBySubdomain(ctx, subdomain)
	})
}

func (r *cachedTenantRepo) GetByDomain(ctx context.Context, domain string) (*model.Tenant, error) {
	return r.lookup(ctx, tenantKeyDomain+domain, func() (*model.Tenant, error) {
		return r.inner.GetByDomain(ctx, domain)
	})
}

func (r *cachedTenantRepo) Update(ctx context.Context, tenant *model.Tenant) error {
	if err := r.inner.Update(ctx, tenant); err != nil {
		return err
	}
	r.invalidate(ctx, tenant)
	return nil
}

func (r *cachedTenantRepo) UpdateActiveTheme(ctx context.Context, id string, themeID *string) error {
	if err := r.inner.UpdateActiveTheme(ctx, id, themeID); err != nil {
		return err
	}
	// 改完主题要让下一次解析立刻看到新值
	if tenant, err := r.inner.GetByID(ctx, id); err == nil {
		r.invalidate(ctx, tenant)
	}
	return nil
}

func (r *cachedTenantRepo) List(ctx context.Context, filter TenantFilter) ([]model.Tenant, int64, error) {
	return r.inner.List(ctx, filter)
}

// lookup 读穿透：命中返回，未命中查库回填
func (r *cachedTenantRepo) lookup(ctx context.Context, key string, load func() (*model.Tenant, error)) (*model.Tenant, error) {
	raw, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var tenant model.Tenant
		if err := json.Unmarshal([]byte(raw), &tenant); err == nil {
			return &tenant, nil
		}
		// 缓存坏数据，直接删掉走库
		r.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis 读取失败，降级直查数据库", zap.String("key", key), zap.Error(err))
	}

	tenant, err := load()
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(tenant); jsonErr == nil {
		if setErr := r.rdb.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("redis 回填失败", zap.String("key", key), zap.Error(setErr))
		}
	}

	return tenant, nil
}

// invalidate 删除该租户的所有查询键
func (r *cachedTenantRepo) invalidate(ctx context.Context, tenant *model.Tenant) {
	keys := []string{tenantKeySlug + tenant.Slug}
	if tenant.Subdomain != nil {
		keys = append(keys, tenantKeySubdomain+*tenant.Subdomain)
	}
	if tenant.Domain != nil {
		keys = append(keys, tenantKeyDomain+*tenant.Domain)
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("redis 缓存失效失败", zap.Error(err))
	}
}
