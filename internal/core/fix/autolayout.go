package fix

// Auto-layout fixes operate on frame nodes. Property names follow the
// design tool's node model: layoutMode is NONE, HORIZONTAL, or VERTICAL;
// itemSpacing is the gap between children; layoutWrap is NO_WRAP or WRAP.

func addAutoLayout() Handler {
	return &rule{
		category: CategoryAutoLayout,
		typ:      TypeAddAutoLayout,
		millis:   300,
		applies: func(v Violation) bool {
			if strProp(v.Snapshot, "type") != "FRAME" {
				return false
			}
			mode := strProp(v.Snapshot, "layoutMode")
			return mode == "" || mode == "NONE"
		},
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{
				"layoutMode":  "VERTICAL",
				"itemSpacing": float64(8),
			}
		},
	}
}

func changeDirection() Handler {
	return &rule{
		category: CategoryAutoLayout,
		typ:      TypeChangeDirection,
		millis:   150,
		applies:  hasActiveLayout,
		after: func(v Violation, node map[string]any) map[string]any {
			direction := "VERTICAL"
			if strProp(node, "layoutMode") == "VERTICAL" {
				direction = "HORIZONTAL"
			}
			return map[string]any{"layoutMode": direction}
		},
	}
}

func setGap() Handler {
	return &rule{
		category: CategoryAutoLayout,
		typ:      TypeSetGap,
		millis:   100,
		applies:  hasActiveLayout,
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{"itemSpacing": float64(8)}
		},
	}
}

func enableWrap() Handler {
	return &rule{
		category: CategoryAutoLayout,
		typ:      TypeEnableWrap,
		millis:   120,
		applies: func(v Violation) bool {
			return strProp(v.Snapshot, "layoutMode") == "HORIZONTAL"
		},
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{"layoutWrap": "WRAP"}
		},
	}
}

func hasActiveLayout(v Violation) bool {
	mode := strProp(v.Snapshot, "layoutMode")
	return mode == "HORIZONTAL" || mode == "VERTICAL"
}
