package theme

// builtinDefinitions 内置主题
// default 必须覆盖全部槽位；其余主题按需覆盖，缺的槽位继承 default
func builtinDefinitions() []Definition {
	return []Definition{
		{
			Slug: DefaultSlug,
			Components: map[Slot]Component{
				SlotHeader:       {Name: "DefaultHeader", Template: "themes/default/header.html"},
				SlotHero:         {Name: "DefaultHero", Template: "themes/default/hero.html"},
				SlotServiceCard:  {Name: "DefaultServiceCard", Template: "themes/default/service_card.html"},
				SlotCategoryCard: {Name: "DefaultCategoryCard", Template: "themes/default/category_card.html"},
				SlotFooter:       {Name: "DefaultFooter", Template: "themes/default/footer.html"},
				SlotLayout:       {Name: "DefaultLayout", Template: "themes/default/layout.html"},
			},
			Config: map[string]interface{}{
				"colors": map[string]interface{}{
					"primary":    "#1f2937",
					"secondary":  "#6b7280",
					"background": "#ffffff",
					"foreground": "#111827",
				},
				"layout": map[string]interface{}{
					"maxWidth": "1200px",
					"rtl":      true,
				},
			},
		},
		{
			// 高端婚礼/活动场景主题：只换视觉重点槽位，页面骨架继承默认
			Slug: "elegant",
			Components: map[Slot]Component{
				SlotHeader:      {Name: "ElegantHeader", Template: "themes/elegant/header.html"},
				SlotHero:        {Name: "ElegantHero", Template: "themes/elegant/hero.html"},
				SlotFooter:      {Name: "ElegantFooter", Template: "themes/elegant/footer.html"},
				SlotPromoBanner: {Name: "ElegantPromoBanner", Template: "themes/elegant/promo_banner.html"},
			},
			Config: map[string]interface{}{
				"colors": map[string]interface{}{
					"primary":    "#7c5c3e",
					"secondary":  "#d4af37",
					"background": "#faf7f2",
					"foreground": "#2d2a26",
				},
				"layout": map[string]interface{}{
					"maxWidth": "1100px",
					"rtl":      true,
				},
			},
		},
		{
			// 极简主题：只覆盖三个槽位，其余继承默认主题
			Slug: "minimal",
			Components: map[Slot]Component{
				SlotHeader:       {Name: "MinimalHeader", Template: "themes/minimal/header.html"},
				SlotCategoryCard: {Name: "MinimalCategoryCard", Template: "themes/minimal/category_card.html"},
				SlotLayout:       {Name: "MinimalLayout", Template: "themes/minimal/layout.html"},
			},
			Config: map[string]interface{}{
				"colors": map[string]interface{}{
					"primary":    "#000000",
					"secondary":  "#444444",
					"background": "#ffffff",
					"foreground": "#000000",
				},
				"layout": map[string]interface{}{
					"maxWidth": "960px",
					"rtl":      true,
				},
			},
		},
	}
}
