package fix

func resetOverrides() Handler {
	return &rule{
		category: CategoryComponent,
		typ:      TypeResetOverrides,
		millis:   200,
		applies: func(v Violation) bool {
			return strProp(v.Snapshot, "type") == "INSTANCE" && hasProp(v.Snapshot, "overrides")
		},
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{"overrides": map[string]any{}}
		},
	}
}

func linkLibraryComponent() Handler {
	return &rule{
		category: CategoryComponent,
		typ:      TypeLinkLibraryComponent,
		millis:   250,
		applies: func(v Violation) bool {
			// Detached instances keep a back-reference to their source
			// component, which is what relinking restores.
			return strProp(v.Snapshot, "detachedFrom") != "" && strProp(v.Snapshot, "componentKey") == ""
		},
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{"componentKey": strProp(node, "detachedFrom")}
		},
	}
}
