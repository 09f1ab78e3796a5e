package fix

// Size-constraint fixes adjust how a node sizes itself inside an
// auto-layout parent: FIXED pins the current dimensions, AUTO hugs the
// content, and STRETCH fills the container along the counter axis.

func setFixedSize() Handler {
	return &rule{
		category: CategorySizeConstraint,
		typ:      TypeSetFixedSize,
		millis:   130,
		applies: func(v Violation) bool {
			return hasProp(v.Snapshot, "width") && hasProp(v.Snapshot, "height")
		},
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{
				"primaryAxisSizingMode": "FIXED",
				"counterAxisSizingMode": "FIXED",
			}
		},
	}
}

func hugContents() Handler {
	return &rule{
		category: CategorySizeConstraint,
		typ:      TypeHugContents,
		millis:   130,
		applies:  hasActiveLayout,
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{
				"primaryAxisSizingMode": "AUTO",
				"counterAxisSizingMode": "AUTO",
			}
		},
	}
}

func fillContainer() Handler {
	return &rule{
		category: CategorySizeConstraint,
		typ:      TypeFillContainer,
		millis:   140,
		applies: func(v Violation) bool {
			// Only meaningful for children of an auto-layout parent.
			return strProp(v.Snapshot, "parentLayoutMode") != ""
		},
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{
				"layoutAlign": "STRETCH",
				"layoutGrow":  float64(1),
			}
		},
	}
}
