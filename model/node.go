package model

// NodeKind identifies the type of an IR node. The set is closed; every
// backend switches over it exhaustively.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindGrid
	KindTable
	KindStack
	KindCell
	KindRow
	KindLabel
	KindField
	KindNestedLayout
	KindLine
	KindHeader
	KindFooter
)

// String returns the discriminator used in serialized output.
func (k NodeKind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindTable:
		return "table"
	case KindStack:
		return "stack"
	case KindCell:
		return "cell"
	case KindRow:
		return "row"
	case KindLabel:
		return "label"
	case KindField:
		return "field"
	case KindNestedLayout:
		return "nested_layout"
	case KindLine:
		return "line"
	case KindHeader:
		return "header"
	case KindFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// IsLayout reports whether k is one of the three layout kinds.
func (k NodeKind) IsLayout() bool {
	return k == KindGrid || k == KindTable || k == KindStack
}

// Node is implemented by every IR node.
type Node interface {
	Type() NodeKind
}

// Child is a direct child of a layout: a Cell or a Row.
type Child interface {
	Node
	isChild()
}

// Content is a leaf or nested entry inside a Cell: a Label, a Field or a
// NestedLayout.
type Content interface {
	Node
	isContent()
}
