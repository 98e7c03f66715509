package theme

import (
	"go.uber.org/zap"

	"moment_dev_v1_202609/pkg/metrics"
)

// DefaultSlug 兜底主题，注册表保证它永远存在且槽位齐全
const DefaultSlug = "default"

// Slot 展示能力槽位
// 每个槽位独立可覆盖：主题只提供一部分，其余继承默认主题
type Slot string

const (
	SlotHeader       Slot = "Header"
	SlotHero         Slot = "Hero"
	SlotServiceCard  Slot = "ServiceCard"
	SlotCategoryCard Slot = "CategoryCard"
	SlotFooter       Slot = "Footer"
	SlotLayout       Slot = "Layout"

	// SlotPromoBanner 可选能力位：默认主题不提供
	// 解析到 ok=false 时按“该主题无此功能”处理，前台隐藏该区块
	SlotPromoBanner Slot = "PromoBanner"
)

// RequiredSlots 默认主题必须覆盖的槽位，保证任何解析结果都能渲染整页
var RequiredSlots = []Slot{SlotHeader, SlotHero, SlotServiceCard, SlotCategoryCard, SlotFooter, SlotLayout}

// Component 一个可渲染组件的描述 (实现名 + 模板路径)
type Component struct {
	Name     string `json:"name"`
	Template string `json:"template"`
}

// Definition 主题定义：slug -> 组件集 + 静态配置
type Definition struct {
	Slug       string
	Components map[Slot]Component
	Config     map[string]interface{}
}

// Registry 静态主题注册表
// 进程启动后只读，解析过程无锁
type Registry struct {
	defs   map[string]Definition
	logger *zap.Logger
}

// NewRegistry 创建注册表并装载内置主题
func NewRegistry(logger *zap.Logger) *Registry {
	r := &Registry{
		defs:   make(map[string]Definition),
		logger: logger,
	}
	for _, def := range builtinDefinitions() {
		r.register(def)
	}
	return r
}

// register 仅在构造期调用，启动后注册表不再变化
func (r *Registry) register(def Definition) {
	r.defs[def.Slug] = def
}

// Has 判断主题是否已注册
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Resolve 按主题名解析出完整组件集
// 未注册/空名一律落到默认主题，且 EffectiveName 如实报 "default"，
// 绝不声称自己跑在一个不认识的主题上
func (r *Registry) Resolve(name string) *Resolved {
	base := r.defs[DefaultSlug]

	if name == "" || name == DefaultSlug {
		return newResolved(DefaultSlug, base.Components, base.Config)
	}

	def, ok := r.defs[name]
	if !ok {
		metrics.ThemeFallbacksTotal.Inc()
		r.logger.Warn("未注册的主题，降级到默认组件集",
			zap.String("theme", name),
		)
		return newResolved(DefaultSlug, base.Components, base.Config)
	}

	// 槽位级合并：主题自己的槽位覆盖默认，缺的继承默认
	merged := make(map[Slot]Component, len(base.Components))
	for slot, comp := range base.Components {
		merged[slot] = comp
	}
	for slot, comp := range def.Components {
		merged[slot] = comp
	}

	cfg := def.Config
	if cfg == nil {
		cfg = base.Config
	}

	return newResolved(def.Slug, merged, cfg)
}

// Resolved 某个租户-主题对的解析结果
// 一次解析后不可变；换主题要重新 Resolve 而不是原地改
type Resolved struct {
	effectiveName string
	components    map[Slot]Component
	config        map[string]interface{}
}

func newResolved(name string, components map[Slot]Component, config map[string]interface{}) *Resolved {
	return &Resolved{
		effectiveName: name,
		components:    components,
		config:        config,
	}
}

// EffectiveName 实际生效的主题名
func (rv *Resolved) EffectiveName() string {
	return rv.effectiveName
}

// Component 取单个槽位的渲染组件
// 槽位缺失返回 ok=false，调用方按“该主题不提供此功能”优雅降级，不是错误
func (rv *Resolved) Component(slot Slot) (Component, bool) {
	comp, ok := rv.components[slot]
	return comp, ok
}

// Components 全量槽位快照（拷贝，防止调用方改到内部表）
func (rv *Resolved) Components() map[Slot]Component {
	out := make(map[Slot]Component, len(rv.components))
	for slot, comp := range rv.components {
		out[slot] = comp
	}
	return out
}

// Config 注册表内置的静态配置
func (rv *Resolved) Config() map[string]interface{} {
	return rv.config
}
