package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("默认配置加载失败: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("默认端口错误: %q", cfg.Server.Port)
	}
	if cfg.Tenant.DefaultSlug != "default" {
		t.Errorf("默认租户 slug 错误: %q", cfg.Tenant.DefaultSlug)
	}
	if cfg.JWT.TTL.Hours() != 1 {
		t.Errorf("凭证有效期默认应为 1h，得到 %v", cfg.JWT.TTL)
	}
	if cfg.JWT.Issuer != "domain-gateway" {
		t.Errorf("默认 issuer 错误: %q", cfg.JWT.Issuer)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MOMENT_SERVER_PORT", "9000")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("配置加载失败: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("环境变量未覆盖端口: %q", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("裸环境变量 JWT_SECRET 未生效")
	}
}

func TestValidateProductionFailsClosed(t *testing.T) {
	// 生产环境空密钥必须拒绝启动
	cfg := &Config{}
	cfg.Server.Environment = "production"
	cfg.Gateway.BaseURL = "http://gateway:8090"
	cfg.Tenant.DefaultSlug = "default"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "jwt.secret") {
		t.Fatalf("应因 jwt.secret 缺失拒绝，得到: %v", err)
	}

	cfg.JWT.Secret = "s"
	cfg.Gateway.BaseURL = ""
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "gateway.base_url") {
		t.Fatalf("应因 gateway.base_url 缺失拒绝，得到: %v", err)
	}
}

func TestValidateDevelopmentAllowsEmptySecret(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Environment = "development"
	cfg.Tenant.DefaultSlug = "default"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("开发环境允许空密钥（运行时 fail closed），得到: %v", err)
	}
}
