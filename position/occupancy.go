package position

import "github.com/tsawler/folio/model"

// maxLayers bounds lookup cost; deeper chains are flattened into one map.
const maxLayers = 32

// Occupancy is an immutable set of occupied slots. Each slot maps to the
// anchor of the cell that occupies it.
type Occupancy struct {
	slots  map[model.Position]model.Position
	parent *Occupancy
	depth  int
	size   int
	bottom int
}

// Empty returns an empty occupancy set.
func Empty() Occupancy {
	return Occupancy{}
}

// Owner returns the anchor of the cell occupying p.
func (o Occupancy) Owner(p model.Position) (model.Position, bool) {
	for layer := &o; layer != nil; layer = layer.parent {
		if owner, ok := layer.slots[p]; ok {
			return owner, true
		}
	}
	return model.Position{}, false
}

// Occupied reports whether p is taken.
func (o Occupancy) Occupied(p model.Position) bool {
	_, ok := o.Owner(p)
	return ok
}

// Conflict returns the first slot of r that is already occupied together
// with its owner.
func (o Occupancy) Conflict(r model.Rect) (slot, owner model.Position, found bool) {
	for _, s := range r.Slots() {
		if ow, ok := o.Owner(s); ok {
			return s, ow, true
		}
	}
	return model.Position{}, model.Position{}, false
}

// Mark returns a new set with every slot of r owned by the cell anchored
// at r's origin. The receiver is unchanged.
func (o Occupancy) Mark(r model.Rect) Occupancy {
	anchor := model.Position{Col: r.Col, Row: r.Row}
	layer := make(map[model.Position]model.Position, r.Area())
	for _, s := range r.Slots() {
		layer[s] = anchor
	}

	next := Occupancy{
		slots:  layer,
		depth:  o.depth + 1,
		size:   o.size + len(layer),
		bottom: max(o.bottom, r.Bottom()),
	}
	if o.slots != nil || o.parent != nil {
		parent := o
		next.parent = &parent
	}
	if next.depth > maxLayers {
		return next.flatten()
	}
	return next
}

// flatten collapses all layers into a single map.
func (o Occupancy) flatten() Occupancy {
	flat := make(map[model.Position]model.Position, o.size)
	var layers []*Occupancy
	for layer := &o; layer != nil; layer = layer.parent {
		layers = append(layers, layer)
	}
	// oldest first so that newer layers win, although slots never repeat
	for i := len(layers) - 1; i >= 0; i-- {
		for k, v := range layers[i].slots {
			flat[k] = v
		}
	}
	return Occupancy{slots: flat, depth: 1, size: o.size, bottom: o.bottom}
}

// Len returns the number of occupied slots.
func (o Occupancy) Len() int { return o.size }

// Bottom returns one past the last occupied row.
func (o Occupancy) Bottom() int { return o.bottom }

// Gaps returns every unoccupied slot in the first Bottom() rows, in
// row-major order.
func (o Occupancy) Gaps(columns int) []model.Position {
	var gaps []model.Position
	for row := 0; row < o.bottom; row++ {
		for col := 0; col < columns; col++ {
			p := model.Position{Col: col, Row: row}
			if !o.Occupied(p) {
				gaps = append(gaps, p)
			}
		}
	}
	return gaps
}
