package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func withTestJWTConfig(t *testing.T) {
	t.Helper()
	old := jwtConfig
	SetJWTConfig(&JWTConfig{
		SecretKey:      "unit-test-secret",
		AccessTokenTTL: time.Hour,
		Issuer:         "moment-store",
	})
	t.Cleanup(func() { SetJWTConfig(old) })
}

func TestGenerateFailsWithoutSecret(t *testing.T) {
	old := jwtConfig
	SetJWTConfig(DefaultJWTConfig()) // 默认配置没有密钥
	t.Cleanup(func() { SetJWTConfig(old) })

	if _, err := GenerateSessionToken("u1", "t1", "admin"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("无密钥应拒签，得到: %v", err)
	}
	if _, err := ParseSessionToken("whatever"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("无密钥应拒验，得到: %v", err)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	withTestJWTConfig(t)

	token, err := GenerateSessionToken("u1", "t1", "admin")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.UserID != "u1" || claims.TenantID != "t1" || claims.Role != "admin" {
		t.Errorf("声明字段错误: %+v", claims)
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	withTestJWTConfig(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", JWTAuth(), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetString(ContextKeyUserID),
			"tenant_id": c.GetString(ContextKeyTenantID),
		})
	})

	do := func(authHeader string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		r.ServeHTTP(w, req)
		return w
	}

	// 无凭证
	if w := do(""); w.Code != http.StatusUnauthorized {
		t.Errorf("无凭证应 401，得到 %d", w.Code)
	}

	// 格式错误
	if w := do("Basic abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("非 Bearer 应 401，得到 %d", w.Code)
	}

	// 伪造凭证
	if w := do("Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("伪造凭证应 401，得到 %d", w.Code)
	}

	// 角色不足
	viewer, _ := GenerateSessionToken("u2", "t1", "viewer")
	if w := do("Bearer " + viewer); w.Code != http.StatusForbidden {
		t.Errorf("角色不足应 403，得到 %d", w.Code)
	}

	// 正常通过
	admin, _ := GenerateSessionToken("u1", "t1", "admin")
	if w := do("Bearer " + admin); w.Code != http.StatusOK {
		t.Errorf("合法凭证应 200，得到 %d: %s", w.Code, w.Body.String())
	}
}
