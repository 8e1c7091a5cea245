package engine

import (
	"wavecollapse.dev/wfc/bitset"
	"wavecollapse.dev/wfc/tileset"
)

// Field is a W x H grid of candidate sets, one bitset of length N per
// cell, indexed row-major: idx(x,y) = y*W + x.
type Field struct {
	width, height, tiles int
	cells                []*bitset.Set
}

// newField allocates a W x H field of N-bit-wide candidate sets, every
// cell initialized to "all tiles possible".
func newField(width, height, tiles int) *Field {
	f := &Field{
		width:  width,
		height: height,
		tiles:  tiles,
		cells:  make([]*bitset.Set, width*height),
	}
	for i := range f.cells {
		s := bitset.New(tiles)
		s.Reset(true)
		f.cells[i] = s
	}
	return f
}

// Width returns the field's width in cells.
func (f *Field) Width() int { return f.width }

// Height returns the field's height in cells.
func (f *Field) Height() int { return f.height }

// idx converts (x, y) to a flat cell index.
func (f *Field) idx(x, y int) int { return y*f.width + x }

// inBounds reports whether (x, y) lies within the field.
func (f *Field) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// At returns the candidate set for cell (x, y).
func (f *Field) At(x, y int) *bitset.Set {
	return f.cells[f.idx(x, y)]
}

// AtIndex returns the candidate set for a flat cell index.
func (f *Field) AtIndex(i int) *bitset.Set {
	return f.cells[i]
}

// Len returns the number of cells, W*H.
func (f *Field) Len() int {
	return len(f.cells)
}

// Uncertainty is the sum over every cell of its candidate count;
// solved fields sum to exactly Len().
func (f *Field) Uncertainty() int {
	total := 0
	for _, c := range f.cells {
		total += c.Count()
	}
	return total
}

// neighborIndex returns the flat index of the cell one step from (x, y)
// in direction d, and whether that neighbor lies within the field.
func (f *Field) neighborIndex(x, y int, d tileset.Direction) (int, bool) {
	nx, ny := x, y
	switch d {
	case tileset.Up:
		ny--
	case tileset.Down:
		ny++
	case tileset.Left:
		nx--
	case tileset.Right:
		nx++
	}
	if !f.inBounds(nx, ny) {
		return -1, false
	}
	return f.idx(nx, ny), true
}
