package model

import (
	"gorm.io/datatypes"
)

// Tenant 状态常量
const (
	TenantStatusActive    = "active"    // 正常
	TenantStatusSuspended = "suspended" // 已停用
)

// Tenant 套餐常量
const (
	TenantPlanFree = "free"
	TenantPlanPro  = "pro"
)

// Tenant 租户（一个独立的店铺站点实例）
// 本子系统只读写 active_theme_id 和 settings，租户的创建/删除归租户管理模块
type Tenant struct {
	BaseModel

	// 1. 核心身份
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:50;uniqueIndex;not null" json:"slug"` // 全局唯一标识，默认租户 slug 由配置指定

	// 2. 路由入口
	// Subdomain: shop1.example.com 里的 shop1
	// Domain: 绑定成功的自定义顶级域（权威数据在网关，这里是冗余快照）
	Subdomain *string `gorm:"size:63;uniqueIndex" json:"subdomain"`
	Domain    *string `gorm:"size:255;index" json:"domain"`

	// 3. 订阅信息
	Plan   string `gorm:"size:20;default:'free'" json:"plan"`
	Status string `gorm:"size:20;default:'active'" json:"status"`

	// 4. 主题绑定
	// 为空表示使用系统默认主题
	ActiveThemeID *string `gorm:"size:36;index" json:"active_theme_id"`
	ActiveTheme   *Theme  `gorm:"foreignKey:ActiveThemeID" json:"active_theme,omitempty"`

	// 5. 自由配置 (店铺级开关、联系方式等)
	Settings datatypes.JSON `json:"settings,omitempty"`
}
