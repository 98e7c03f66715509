package service

import "errors"

// 租户/主题解析错误分级
// 前台渲染路径上这些错误大多就地兜底，只有管理端才原样抛出
var (
	// ErrNoTenantFound 子域没命中且兜底租户也不存在 (404 级，终态)
	ErrNoTenantFound = errors.New("未找到匹配的租户")

	// ErrNoDefaultTenant 兜底租户缺失 (500 级，属于部署配置错误，需要告警)
	ErrNoDefaultTenant = errors.New("默认租户不存在，请检查初始化数据")

	// ErrNoSigningKey 签名密钥未配置：拒绝签发而不是用空密钥硬签
	ErrNoSigningKey = errors.New("签名密钥未配置，拒绝签发凭证")

	// ErrThemeNotFound 主题不存在（管理端操作用；渲染路径自动降级不抛）
	ErrThemeNotFound = errors.New("主题不存在")

	// ErrThemeInactive 未发布的主题不可被激活
	ErrThemeInactive = errors.New("主题未发布，不可激活")
)
