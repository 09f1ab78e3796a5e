package fix

// rule is the concrete Handler implementation shared by all fix variants.
// Each variant supplies an applicability predicate and an after-state
// builder; rule derives the before-snapshot from the keys the after-state
// touches, which is exactly what rollback needs to revert the fix.
type rule struct {
	category Category
	typ      Type
	millis   int64
	applies  func(v Violation) bool
	after    func(v Violation, node map[string]any) map[string]any
}

func (r *rule) Category() Category     { return r.category }
func (r *rule) Type() Type             { return r.typ }
func (r *rule) EstimatedMillis() int64 { return r.millis }

func (r *rule) Applies(v Violation) bool {
	return r.applies(v)
}

func (r *rule) Plan(v Violation, node map[string]any, opts PlanOptions) (FixOperation, error) {
	after := r.after(v, node)

	if opts.DeleteComments {
		if _, ok := node["annotation"]; ok {
			after["annotation"] = ""
		}
	}

	before := make(map[string]any, len(after))
	for key := range after {
		before[key] = node[key] // nil for properties the node does not have yet
	}

	return FixOperation{
		ViolationID:     v.ID,
		Category:        r.category,
		Type:            r.typ,
		NodeID:          v.NodeID,
		Before:          before,
		After:           after,
		EstimatedMillis: r.millis,
	}, nil
}

// strProp reads a string property from a node snapshot.
func strProp(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

// hasProp reports whether the node has a non-nil value for key.
func hasProp(node map[string]any, key string) bool {
	v, ok := node[key]
	return ok && v != nil
}
