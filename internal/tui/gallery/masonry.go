package gallery

import (
	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

const (
	// columnWidth is the terminal width of one grid column including gaps.
	columnWidth = 30
	// pixelsPerRow maps an item's pixel height preset to terminal rows.
	pixelsPerRow = 50
	minItemRows  = 4
)

// Masonry packs items into columns, always placing the next item into the
// currently shortest column. Ties go to the leftmost column.
type Masonry struct{}

var _ core.LayoutEngine = Masonry{}

// Layout returns, per column, the indices of the items placed there.
func (Masonry) Layout(items []core.GridItem, columns int) [][]int {
	if columns < 1 {
		columns = 1
	}
	out := make([][]int, columns)
	heights := make([]int, columns)
	for i, item := range items {
		shortest := 0
		for c := 1; c < columns; c++ {
			if heights[c] < heights[shortest] {
				shortest = c
			}
		}
		out[shortest] = append(out[shortest], i)
		heights[shortest] += item.Height
	}
	return out
}

// columnsFor returns how many columns fit in width.
func columnsFor(width int) int {
	if width < columnWidth {
		return 1
	}
	return width / columnWidth
}

// itemRows is the terminal height of an item box.
func itemRows(item core.GridItem) int {
	rows := item.Height / pixelsPerRow
	if rows < minItemRows {
		rows = minItemRows
	}
	return rows
}

// placement is where an item sits in the rendered grid.
type placement struct {
	column int
	top    int
	rows   int
	// slot is the item's position within its column.
	slot int
}

// gridLayout is the result of laying out one sequence.
type gridLayout struct {
	columns    [][]int
	placements []placement
	height     int
}

func computeLayout(engine core.LayoutEngine, items []core.GridItem, columns int) gridLayout {
	cols := engine.Layout(items, columns)
	layout := gridLayout{
		columns:    cols,
		placements: make([]placement, len(items)),
	}
	for c, indices := range cols {
		top := 0
		for slot, idx := range indices {
			rows := itemRows(items[idx])
			layout.placements[idx] = placement{column: c, top: top, rows: rows, slot: slot}
			top += rows
		}
		if top > layout.height {
			layout.height = top
		}
	}
	return layout
}

// lastVisible returns the highest item index intersecting rows
// [offset, offset+viewport), or -1 when nothing is visible.
func (l gridLayout) lastVisible(offset, viewport int) int {
	last := -1
	for idx, p := range l.placements {
		if p.top < offset+viewport && p.top+p.rows > offset && idx > last {
			last = idx
		}
	}
	return last
}

// neighbour returns the item reached from index by moving one column in
// dir, choosing the item whose top is closest to the current one.
func (l gridLayout) neighbour(index, dir int) int {
	if index < 0 || index >= len(l.placements) {
		return index
	}
	from := l.placements[index]
	target := from.column + dir
	if target < 0 || target >= len(l.columns) || len(l.columns[target]) == 0 {
		return index
	}
	best, bestDist := index, -1
	for _, idx := range l.columns[target] {
		dist := l.placements[idx].top - from.top
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = idx, dist
		}
	}
	return best
}

// vertical returns the item above (dir -1) or below (dir 1) index in its column.
func (l gridLayout) vertical(index, dir int) int {
	if index < 0 || index >= len(l.placements) {
		return index
	}
	p := l.placements[index]
	col := l.columns[p.column]
	slot := p.slot + dir
	if slot < 0 || slot >= len(col) {
		return index
	}
	return col[slot]
}
