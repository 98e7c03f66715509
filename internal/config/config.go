package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Tenant   TenantConfig   `mapstructure:"tenant"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"` // development / production
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// GatewayConfig 域名网关配置
type GatewayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// JWTConfig 签名凭证配置
// Secret 同时用于管理端会话和网关出站凭证，生产环境必填
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Issuer string        `mapstructure:"issuer"`
}

// TenantConfig 租户解析配置
type TenantConfig struct {
	// DefaultSlug 兜底租户 slug，localhost 快捷路径也指向它
	DefaultSlug string `mapstructure:"default_slug"`
	// ResolverCacheTTL hostname->tenant 备忘录有效期，0 表示关闭
	ResolverCacheTTL time.Duration `mapstructure:"resolver_cache_ttl"`
}

// RedisConfig 租户缓存配置，Addr 为空则不启用
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// TaskConfig 后台任务配置
type TaskConfig struct {
	DomainRefreshEnabled bool   `mapstructure:"domain_refresh_enabled"`
	DomainRefreshSpec    string `mapstructure:"domain_refresh_spec"` // cron 表达式（带秒）
}

// Load 加载配置：默认值 < 环境变量 (MOMENT_*)
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")

	v.SetDefault("database.dsn", "host=localhost user=moment password=moment dbname=moment_store port=5432 sslmode=disable")

	v.SetDefault("gateway.base_url", "http://localhost:8090")
	v.SetDefault("gateway.timeout", "10s")

	// 出站凭证统一 1 小时：每次调用现签，不需要长有效期
	v.SetDefault("jwt.ttl", "1h")
	v.SetDefault("jwt.issuer", "domain-gateway")

	v.SetDefault("tenant.default_slug", "default")
	v.SetDefault("tenant.resolver_cache_ttl", "0s")

	v.SetDefault("redis.ttl", "60s")

	v.SetDefault("task.domain_refresh_enabled", true)
	v.SetDefault("task.domain_refresh_spec", "0 0/5 * * * *")

	v.SetEnvPrefix("MOMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 兼容裸环境变量
	_ = v.BindEnv("database.dsn", "DATABASE_DSN")
	_ = v.BindEnv("gateway.base_url", "DOMAIN_GATEWAY_URL")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 生产环境拒绝不安全的空配置，宁可起不来也不能带默认密钥上线
func (c *Config) Validate() error {
	if c.Server.Environment == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret 未配置，生产环境拒绝启动")
		}
		if c.Gateway.BaseURL == "" {
			return fmt.Errorf("gateway.base_url 未配置，生产环境拒绝启动")
		}
	}
	if c.Tenant.DefaultSlug == "" {
		return fmt.Errorf("tenant.default_slug 不能为空")
	}
	return nil
}
