package dto

// CreateDomainReq 注册域名请求
// 只要求非空；格式/唯一性由网关判定
type CreateDomainReq struct {
	Domain string `json:"domain" binding:"required"`
}

// UpdateDomainReq 局部更新请求：nil 字段不动
type UpdateDomainReq struct {
	RedirectURL *string `json:"redirect_url,omitempty"`
	Archived    *bool   `json:"archived,omitempty"`
}
