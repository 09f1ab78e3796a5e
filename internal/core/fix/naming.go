package fix

import (
	"regexp"
	"strings"
)

// defaultNamePattern matches tool-generated names like "Frame 427",
// "Rectangle 12", or "Group 3 Copy".
var defaultNamePattern = regexp.MustCompile(`^(Frame|Group|Rectangle|Ellipse|Vector|Line|Component|Instance|Text)\s+\d+(\s+Copy)?$`)

func renameSemantic() Handler {
	return &rule{
		category: CategoryNaming,
		typ:      TypeRenameSemantic,
		millis:   80,
		applies: func(v Violation) bool {
			name := strProp(v.Snapshot, "name")
			return name == "" || defaultNamePattern.MatchString(name)
		},
		after: func(v Violation, node map[string]any) map[string]any {
			return map[string]any{"name": semanticName(node)}
		},
	}
}

func stripDefaultName() Handler {
	return &rule{
		category: CategoryNaming,
		typ:      TypeStripDefaultName,
		millis:   60,
		applies: func(v Violation) bool {
			return defaultNamePattern.MatchString(strProp(v.Snapshot, "name"))
		},
		after: func(v Violation, node map[string]any) map[string]any {
			fields := strings.Fields(strProp(node, "name"))
			if len(fields) == 0 {
				return map[string]any{"name": semanticName(node)}
			}
			return map[string]any{"name": strings.ToLower(fields[0])}
		},
	}
}

// semanticName proposes a deterministic kebab-case name for a node.
// A role hint on the node ("role": "header") wins; otherwise the node
// type is used.
func semanticName(node map[string]any) string {
	if role := strProp(node, "role"); role != "" {
		return kebab(role)
	}
	if typ := strProp(node, "type"); typ != "" {
		return kebab(typ)
	}
	return "node"
}

func kebab(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
