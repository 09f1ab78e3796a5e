package fix

// Style fixes replace raw paint and text properties with shared style
// references. The detection pipeline records the closest matching shared
// style on the violation snapshot.

func applyColorStyle() Handler {
	return &rule{
		category: CategoryStyle,
		typ:      TypeApplyColorStyle,
		millis:   90,
		applies: func(v Violation) bool {
			return hasProp(v.Snapshot, "fills") && strProp(v.Snapshot, "fillStyleId") == ""
		},
		after: func(v Violation, node map[string]any) map[string]any {
			styleID := strProp(node, "suggestedFillStyleId")
			if styleID == "" {
				styleID = "S:color/neutral"
			}
			return map[string]any{"fillStyleId": styleID}
		},
	}
}

func applyTextStyle() Handler {
	return &rule{
		category: CategoryStyle,
		typ:      TypeApplyTextStyle,
		millis:   90,
		applies: func(v Violation) bool {
			return strProp(v.Snapshot, "type") == "TEXT" && strProp(v.Snapshot, "textStyleId") == ""
		},
		after: func(v Violation, node map[string]any) map[string]any {
			styleID := strProp(node, "suggestedTextStyleId")
			if styleID == "" {
				styleID = "S:text/body"
			}
			return map[string]any{"textStyleId": styleID}
		},
	}
}
