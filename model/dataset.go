package model

// Dataset is the materialized input produced by the query layer. The
// renderer only reads it.
type Dataset struct {
	Records   []map[string]any
	Variables map[string]any
	Groups    []Group

	// Direction is "ltr" (default) or "rtl".
	Direction string
}

// Group is a pre-aggregated record group. Records holds detail rows when
// Subgroups is empty.
type Group struct {
	Level      int
	Key        string
	Value      any
	Aggregates map[string]any
	Records    []map[string]any
	Subgroups  []Group
}

// IsLeaf reports whether the group holds detail records directly.
func (g Group) IsLeaf() bool { return len(g.Subgroups) == 0 }

// RecordCount returns the number of detail records under the group.
func (g Group) RecordCount() int {
	if g.IsLeaf() {
		return len(g.Records)
	}
	n := 0
	for _, sg := range g.Subgroups {
		n += sg.RecordCount()
	}
	return n
}

// RTL reports whether the dataset requests right-to-left text.
func (d Dataset) RTL() bool { return d.Direction == "rtl" }
