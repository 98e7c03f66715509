package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== VerifyRateLimiter 验证冷却限流器 ====================

// VerifyRateLimiter 手动验证冷却限流
// 防止操作者连点"验证"把网关的 DNS 查询打爆：同一个域名 id
// 冷却期内只放行一次，其余请求带剩余时间拒绝
type VerifyRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewVerifyRateLimiter 创建限流器
func NewVerifyRateLimiter() *VerifyRateLimiter {
	return &VerifyRateLimiter{}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "domain:verify:<id>"
// interval: 冷却间隔
func (r *VerifyRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除某个键的冷却 (域名删除后调用)
func (r *VerifyRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Gin 中间件 ====================

// VerifyCooldown 验证接口冷却中间件，按路径里的域名 id 限流
func VerifyCooldown(limiter *VerifyRateLimiter, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "domain:verify:" + c.Param("id")
		result := limiter.Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("验证过于频繁，请 %.0f 秒后重试", result.RetryAfter.Seconds()),
				"code":  "verify_cooldown",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
