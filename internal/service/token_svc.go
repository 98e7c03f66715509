package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"moment_dev_v1_202609/internal/config"
)

// GatewayClaims 出站凭证声明
// 租户身份从会话/上下文解析得来，绝不信任请求体里带的 tenant_id
type GatewayClaims struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer 网关凭证签发器
// 每次网关调用现签一张短时效 token，从不复用、从不落盘、从不打日志
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenIssuer 创建签发器
func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "domain-gateway"
	}
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

// Issue 签发租户级凭证
// 密钥为空直接拒签 (fail closed)：宁可操作失败也不能签出可预测的 token
func (t *TokenIssuer) Issue(tenantID, userID, role string) (string, *GatewayClaims, error) {
	if len(t.secret) == 0 {
		return "", nil, ErrNoSigningKey
	}

	now := time.Now()
	claims := &GatewayClaims{
		TenantID: tenantID,
		UserID:   userID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", nil, err
	}

	return signed, claims, nil
}
