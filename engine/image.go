package engine

import (
	"fmt"
	"strings"
)

// Image assembles the solved field into a flat W*H slice of tile
// values, mapping each cell to tiles()[first_set_bit]. Cells left
// with more than one candidate by the contradiction fallback are
// resolved to their lowest surviving tile id.
func (e *Engine[T]) Image() []T {
	out := make([]T, e.field.Len())
	for i := range out {
		out[i] = e.table.Values[e.field.AtIndex(i).First()]
	}
	return out
}

// Grid is a read-only W x H view over a solved (or in-progress) field's
// output values.
type Grid[T comparable] struct {
	width, height int
	cells         []T
}

// NewGrid wraps a flat, row-major values slice as a Grid.
func NewGrid[T comparable](values []T, width, height int) Grid[T] {
	return Grid[T]{width: width, height: height, cells: values}
}

// Grid materializes the engine's current image as a Grid.
func (e *Engine[T]) Grid() Grid[T] {
	return NewGrid(e.Image(), e.field.width, e.field.height)
}

func (g Grid[T]) Width() int  { return g.width }
func (g Grid[T]) Height() int { return g.height }

func (g Grid[T]) Get(x, y int) T {
	return g.cells[y*g.width+x]
}

// Repr renders the grid as one line per row, cells separated by spaces
// and formatted with fmt's default verb for T.
func (g Grid[T]) Repr() string {
	lines := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		cells := make([]string, g.width)
		for x := 0; x < g.width; x++ {
			cells[x] = fmt.Sprintf("%v", g.Get(x, y))
		}
		lines[y] = strings.Join(cells, " ")
	}
	return strings.Join(lines, "\n")
}

func (g Grid[T]) DebugString() string {
	return fmt.Sprintf("Grid{width: %d, height: %d}", g.width, g.height)
}
