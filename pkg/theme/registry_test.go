package theme

import (
	"testing"

	"go.uber.org/zap"
)

func newTestRegistry() *Registry {
	return NewRegistry(zap.NewNop())
}

func TestResolveDefault(t *testing.T) {
	r := newTestRegistry()

	for _, name := range []string{"", DefaultSlug} {
		resolved := r.Resolve(name)
		if resolved.EffectiveName() != DefaultSlug {
			t.Fatalf("Resolve(%q) 生效主题应为 default，得到 %q", name, resolved.EffectiveName())
		}
		// 默认主题必须覆盖全部必需槽位，否则整页渲染不出来
		for _, slot := range RequiredSlots {
			if _, ok := resolved.Component(slot); !ok {
				t.Errorf("默认主题缺槽位 %s", slot)
			}
		}
	}
}

func TestResolveUnknownFallsBack(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("no-such-theme")
	if resolved.EffectiveName() != DefaultSlug {
		t.Fatalf("未注册主题应降级 default，EffectiveName=%q", resolved.EffectiveName())
	}
	for _, slot := range RequiredSlots {
		if _, ok := resolved.Component(slot); !ok {
			t.Errorf("降级结果缺槽位 %s", slot)
		}
	}
}

func TestResolveSlotInheritance(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("elegant")
	if resolved.EffectiveName() != "elegant" {
		t.Fatalf("EffectiveName=%q", resolved.EffectiveName())
	}

	// 自己覆盖的槽位用自己的实现
	header, ok := resolved.Component(SlotHeader)
	if !ok || header.Name != "ElegantHeader" {
		t.Errorf("Header 应被 elegant 覆盖，得到 %+v", header)
	}

	// 没覆盖的槽位继承默认
	card, ok := resolved.Component(SlotServiceCard)
	if !ok || card.Name != "DefaultServiceCard" {
		t.Errorf("ServiceCard 应继承默认，得到 %+v", card)
	}

	// 可选槽位：elegant 提供了 PromoBanner
	if _, ok := resolved.Component(SlotPromoBanner); !ok {
		t.Error("elegant 应提供 PromoBanner")
	}
}

func TestOptionalSlotAbsent(t *testing.T) {
	r := newTestRegistry()

	// minimal 没有 PromoBanner，默认主题也没有 —— ok=false 表示该功能不存在
	resolved := r.Resolve("minimal")
	if _, ok := resolved.Component(SlotPromoBanner); ok {
		t.Error("minimal 不应有 PromoBanner")
	}
	// 但必需槽位仍然齐全
	for _, slot := range RequiredSlots {
		if _, ok := resolved.Component(slot); !ok {
			t.Errorf("minimal 解析结果缺槽位 %s", slot)
		}
	}
}

func TestComponentsSnapshotIsolated(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("minimal")
	snapshot := resolved.Components()
	delete(snapshot, SlotHeader)

	if _, ok := resolved.Component(SlotHeader); !ok {
		t.Error("改动快照不应影响解析结果")
	}
}
