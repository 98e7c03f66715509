package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Theme 主题（可被多个租户共享引用）
type Theme struct {
	BaseModel

	// Name 即主题 slug，注册表按它查组件集
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"size:100" json:"display_name"`
	Description string `gorm:"type:text" json:"description"`

	// IsActive=false 的主题不可被租户激活（下架/开发中）
	// 不挂列默认值：bool 零值配 default 标签会让 Create 写不进 false
	IsActive bool `gorm:"not null" json:"is_active"`

	// 检索用标签
	Tags pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	// Config 开放式结构文档 (colors/typography/layout...)
	// 更新走语义合并：未指定的字段保留旧值，见 ThemeService.Customize
	Config datatypes.JSON `json:"config,omitempty"`
}
