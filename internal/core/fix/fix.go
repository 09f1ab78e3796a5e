// Package fix contains the pure planning logic for automated remediations.
// This is part of the Functional Core - handlers read node snapshots and
// propose after-states; nothing in this package touches the live design file.
package fix

// Category groups fix types by the design concern they remediate.
type Category string

const (
	CategoryAutoLayout     Category = "AUTO_LAYOUT"
	CategorySizeConstraint Category = "SIZE_CONSTRAINT"
	CategoryNaming         Category = "NAMING"
	CategoryComponent      Category = "COMPONENT"
	CategoryStyle          Category = "STYLE"
)

// Type identifies one concrete fix within a category.
// Each category has a closed set of types, registered in DefaultCatalog.
type Type string

const (
	// AUTO_LAYOUT
	TypeAddAutoLayout   Type = "ADD_AUTO_LAYOUT"
	TypeChangeDirection Type = "CHANGE_DIRECTION"
	TypeSetGap          Type = "SET_GAP"
	TypeEnableWrap      Type = "ENABLE_WRAP"

	// SIZE_CONSTRAINT
	TypeSetFixedSize  Type = "SET_FIXED_SIZE"
	TypeHugContents   Type = "HUG_CONTENTS"
	TypeFillContainer Type = "FILL_CONTAINER"

	// NAMING
	TypeRenameSemantic   Type = "RENAME_SEMANTIC"
	TypeStripDefaultName Type = "STRIP_DEFAULT_NAME"

	// COMPONENT
	TypeResetOverrides       Type = "RESET_OVERRIDES"
	TypeLinkLibraryComponent Type = "LINK_LIBRARY_COMPONENT"

	// STYLE
	TypeApplyColorStyle Type = "APPLY_COLOR_STYLE"
	TypeApplyTextStyle  Type = "APPLY_TEXT_STYLE"
)

// Violation is a detected design-rule breach tied to one node.
// Violations are created by the external detection pipeline and are
// immutable here except for the Fixed flag, which the engine flips
// after a successful execution.
type Violation struct {
	ID        string
	ProjectID string
	Category  Category
	Type      Type
	NodeID    string
	NodeName  string
	Snapshot  map[string]any // node properties at detection time
	Fixed     bool
}

// FixOperation is a planned mutation for one violation.
// Before holds the current value of every property the fix will touch;
// After holds the proposed values. Immutable once produced for a plan.
type FixOperation struct {
	ViolationID     string
	Category        Category
	Type            Type
	NodeID          string
	Before          map[string]any
	After           map[string]any
	EstimatedMillis int64
}

// PlanOptions carries caller options that influence planning.
type PlanOptions struct {
	// DeleteComments clears the node's annotation alongside the fix.
	DeleteComments bool
}
