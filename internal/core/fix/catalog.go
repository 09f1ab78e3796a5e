package fix

import (
	"fmt"

	"github.com/example/autofix/internal/core/faults"
)

// Handler is the capability set every fix variant implements.
type Handler interface {
	// Category returns the fix category this handler belongs to.
	Category() Category

	// Type returns the concrete fix type.
	Type() Type

	// EstimatedMillis returns the per-item duration estimate.
	EstimatedMillis() int64

	// Applies reports whether this fix can remediate the given violation.
	Applies(v Violation) bool

	// Plan produces the proposed mutation for the violation given the
	// node's current properties. Pure - no I/O, no side effects.
	Plan(v Violation, node map[string]any, opts PlanOptions) (FixOperation, error)
}

type catalogKey struct {
	category Category
	typ      Type
}

// Catalog maps (category, type) to fix handlers. It is populated once at
// startup and never mutated afterward, so lookups need no locking.
type Catalog struct {
	handlers map[catalogKey]Handler
}

// NewCatalog builds a catalog from the given handlers.
// Duplicate (category, type) registration is a construction-time error.
func NewCatalog(handlers ...Handler) (*Catalog, error) {
	c := &Catalog{handlers: make(map[catalogKey]Handler, len(handlers))}
	for _, h := range handlers {
		key := catalogKey{category: h.Category(), typ: h.Type()}
		if _, exists := c.handlers[key]; exists {
			return nil, fmt.Errorf("duplicate fix handler for (%s, %s)", key.category, key.typ)
		}
		c.handlers[key] = h
	}
	return c, nil
}

// Lookup resolves the handler for a (category, type) pair.
func (c *Catalog) Lookup(category Category, typ Type) (Handler, error) {
	h, ok := c.handlers[catalogKey{category: category, typ: typ}]
	if !ok {
		return nil, faults.Newf(faults.CodeUnsupportedFix, "no fix handler registered for (%s, %s)", category, typ)
	}
	return h, nil
}

// Len returns the number of registered handlers.
func (c *Catalog) Len() int {
	return len(c.handlers)
}

// DefaultCatalog returns the catalog of all built-in fix handlers.
// Panics on registration conflicts, which only happen on programming error.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		addAutoLayout(),
		changeDirection(),
		setGap(),
		enableWrap(),
		setFixedSize(),
		hugContents(),
		fillContainer(),
		renameSemantic(),
		stripDefaultName(),
		resetOverrides(),
		linkLibraryComponent(),
		applyColorStyle(),
		applyTextStyle(),
	)
	if err != nil {
		panic(err)
	}
	return c
}
