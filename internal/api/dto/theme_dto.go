package dto

// ActivateThemeReq 激活主题请求
// 租户必须显式指定：激活是管理动作，不从 hostname 猜
type ActivateThemeReq struct {
	TenantID string `json:"tenantId" binding:"required"`
	ThemeID  string `json:"themeId" binding:"required"`
}

// CustomizeThemeReq 主题配置增量更新
type CustomizeThemeReq struct {
	ThemeID string                 `json:"themeId" binding:"required"`
	Config  map[string]interface{} `json:"config" binding:"required"`
}

// ActiveThemeResp /api/themes/active 响应：生效主题 + 完整组件集
type ActiveThemeResp struct {
	Tenant     string                 `json:"tenant"`
	Theme      string                 `json:"theme"` // 实际生效的主题名（降级后如实报 default）
	Components map[string]interface{} `json:"components"`
	Config     map[string]interface{} `json:"config,omitempty"`
}
