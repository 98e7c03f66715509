package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"moment_dev_v1_202609/internal/config"
)

func TestIssueFailsClosedOnEmptySecret(t *testing.T) {
	issuer := NewTokenIssuer(config.JWTConfig{Secret: ""})

	_, _, err := issuer.Issue("tenant-1", "user-1", "admin")
	if !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("空密钥必须拒签，得到: %v", err)
	}
}

func TestIssueRoundTrip(t *testing.T) {
	secret := "test-secret"
	issuer := NewTokenIssuer(config.JWTConfig{
		Secret: secret,
		TTL:    time.Hour,
		Issuer: "domain-gateway",
	})

	signed, claims, err := issuer.Issue("tenant-1", "user-1", "admin")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	if claims.TenantID != "tenant-1" || claims.UserID != "user-1" || claims.Role != "admin" {
		t.Errorf("声明字段错误: %+v", claims)
	}

	// 网关侧的校验方式：HS256 + 同一密钥
	parsed := &GatewayClaims{}
	token, err := jwt.ParseWithClaims(signed, parsed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("签名算法错误")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("凭证校验失败: %v", err)
	}
	if parsed.TenantID != "tenant-1" {
		t.Errorf("tenant_id 丢失: %+v", parsed)
	}
	if parsed.Issuer != "domain-gateway" {
		t.Errorf("issuer 错误: %q", parsed.Issuer)
	}

	// 有效期约一小时
	ttl := time.Until(parsed.ExpiresAt.Time)
	if ttl < 55*time.Minute || ttl > 65*time.Minute {
		t.Errorf("有效期应接近 1 小时，得到 %v", ttl)
	}
}

func TestIssueDefaults(t *testing.T) {
	// TTL/issuer 未配置时走默认值，而不是签出永不过期的 token
	issuer := NewTokenIssuer(config.JWTConfig{Secret: "s"})

	_, claims, err := issuer.Issue("t", "u", "admin")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("必须带过期时间")
	}
	if claims.Issuer != "domain-gateway" {
		t.Errorf("默认 issuer 错误: %q", claims.Issuer)
	}
}
