package dto

// TenantResolveReq 按 hostname 解析租户
type TenantResolveReq struct {
	Hostname string `form:"hostname"`
}
