package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"moment_dev_v1_202609/pkg/metrics"
)

// Client 域名网关客户端
// 纯转发层：不持有任何本地状态，所有状态以网关返回为准。
// 凭证由调用方每次现签传入，客户端从不缓存 token
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient 创建网关客户端
// 统一超时兜底：网关挂了最多拖住调用方 timeout，之后按不可达上报。
// 变更类请求不做自动重试 —— 网络断在响应路上时盲重试会重复建域名
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "Moment-Go-App/1.0")

	return &Client{
		http:   client,
		logger: logger,
	}
}

// List 列出当前租户（凭证声明的租户）的全部域名
func (c *Client) List(ctx context.Context, token string) ([]Domain, error) {
	resp, err := c.do(ctx, "list", token, http.MethodGet, "/api/domains", nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, newRejectedError(resp.StatusCode(), resp.Body())
	}

	var out listResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("解析域名列表失败: %w", err)
	}
	return out.Domains, nil
}

// Create 注册新域名
// 唯一性/格式校验交给网关，409 domain_exists 原样带回
func (c *Client) Create(ctx context.Context, token, domain string) (*CreateResult, error) {
	body := map[string]string{"domain": domain}

	resp, err := c.do(ctx, "create", token, http.MethodPost, "/api/domains", body)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, newRejectedError(resp.StatusCode(), resp.Body())
	}

	var out CreateResult
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("解析创建响应失败: %w", err)
	}
	return &out, nil
}

// Get 查询单个域名
func (c *Client) Get(ctx context.Context, token, id string) (*Domain, error) {
	resp, err := c.do(ctx, "get", token, http.MethodGet, "/api/domains/"+id, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if !resp.IsSuccess() {
		return nil, newRejectedError(resp.StatusCode(), resp.Body())
	}

	var out Domain
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("解析域名失败: %w", err)
	}
	return &out, nil
}

// Delete 删除域名
// 404 返回 ErrNotFound，由调用方决定是否按幂等成功处理
func (c *Client) Delete(ctx context.Context, token, id string) error {
	resp, err := c.do(ctx, "delete", token, http.MethodDelete, "/api/domains/"+id, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if !resp.IsSuccess() {
		return newRejectedError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// Update 局部更新 (redirect_url / archived)，nil 字段网关不动
func (c *Client) Update(ctx context.Context, token, id string, req UpdateRequest) (*Domain, error) {
	resp, err := c.do(ctx, "update", token, http.MethodPatch, "/api/domains/"+id, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if !resp.IsSuccess() {
		return nil, newRejectedError(resp.StatusCode(), resp.Body())
	}

	var out Domain
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("解析更新响应失败: %w", err)
	}
	return &out, nil
}

// Verify 触发 DNS 归属检查
// 不保证同步完成：Verified=false 表示 TXT 还没查到，属正常中间态。
// 已验证的域名重复触发是幂等的，网关直接回终态
func (c *Client) Verify(ctx context.Context, token, id string) (*VerifyResult, error) {
	resp, err := c.do(ctx, "verify", token, http.MethodPost, "/api/domains/"+id+"/verify", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if !resp.IsSuccess() {
		return nil, newRejectedError(resp.StatusCode(), resp.Body())
	}

	var out VerifyResult
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("解析验证响应失败: %w", err)
	}
	return &out, nil
}

// SetPrimary 设为主域名
// 原子换主是网关的不变量：同租户旧主域名由网关一并取消，
// 客户端不自己维护这个约束，改完重新拉取确认即可
func (c *Client) SetPrimary(ctx context.Context, token, id string) error {
	resp, err := c.do(ctx, "set_primary", token, http.MethodPost, "/api/domains/"+id+"/primary", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if !resp.IsSuccess() {
		return newRejectedError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// do 统一出口：挂凭证、计指标、网络错误归一成 ErrUnreachable
func (c *Client) do(ctx context.Context, op, token, method, path string, body interface{}) (*resty.Response, error) {
	start := time.Now()

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)

	metrics.GatewayRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "unreachable").Inc()
		c.logger.Warn("网关请求失败",
			zap.String("operation", op),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	outcome := "ok"
	if !resp.IsSuccess() {
		outcome = "rejected"
	}
	metrics.GatewayRequestsTotal.WithLabelValues(op, outcome).Inc()

	return resp, nil
}
