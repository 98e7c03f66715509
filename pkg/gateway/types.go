package gateway

import (
	"time"
)

// DomainType 域名类型
const (
	DomainTypeSubdomain = "subdomain" // 平台子域，建即验证（泛域名证书覆盖）
	DomainTypeCustom    = "custom"    // 第三方顶级域，需 DNS TXT 验证
)

// Domain 生命周期状态
// 状态机归网关所有，客户端只请求迁移并回显网关的权威结果
const (
	DomainStatePending   = "pending"   // 已创建，未验证
	DomainStateVerifying = "verifying" // 仅客户端瞬时态：验证请求在途
	DomainStateVerified  = "verified"
	DomainStateArchived  = "archived" // 软删除，终态
)

// Domain 网关侧域名记录的本地视图，不落库
type Domain struct {
	ID                string     `json:"id"`
	TenantID          string     `json:"tenant_id"`
	Domain            string     `json:"domain"`
	Type              string     `json:"type"`
	Verified          bool       `json:"verified"`
	VerificationToken string     `json:"verification_token,omitempty"`
	IsPrimary         bool       `json:"is_primary"`
	SSLIssued         bool       `json:"ssl_issued"`
	RedirectURL       string     `json:"redirect_url,omitempty"`
	Archived          bool       `json:"archived"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
}

// State 根据网关字段推导展示状态
// ssl_issued / is_primary 是 verified 之后的正交标记，不参与主状态
func (d *Domain) State() string {
	switch {
	case d.Archived:
		return DomainStateArchived
	case d.Verified:
		return DomainStateVerified
	default:
		return DomainStatePending
	}
}

// VerificationInfo 自定义域的 DNS TXT 配置指引
type VerificationInfo struct {
	RecordType   string `json:"record_type"`
	RecordName   string `json:"record_name"`
	RecordValue  string `json:"record_value"`
	Instructions string `json:"instructions"`
}

// CreateResult 创建返回：域名记录 + 验证指引（子域无指引）
type CreateResult struct {
	Domain           *Domain           `json:"domain"`
	VerificationInfo *VerificationInfo `json:"verification_info,omitempty"`
}

// VerifyResult 验证触发结果
// Verified=false 不是错误：TXT 还没生效，网关让稍后再试
type VerifyResult struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// UpdateRequest PATCH 局部更新：nil 字段不动
type UpdateRequest struct {
	RedirectURL *string `json:"redirect_url,omitempty"`
	Archived    *bool   `json:"archived,omitempty"`
}

// listResponse GET /api/domains 响应
type listResponse struct {
	Domains []Domain `json:"domains"`
	Total   int      `json:"total"`
}

// errorBody 网关标准错误体
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
