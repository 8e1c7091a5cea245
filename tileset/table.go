package tileset

import "wavecollapse.dev/wfc/bitset"

// Neighbors holds, for a single tile, the set of tile ids that may
// legally sit adjacent to it in each of the four cardinal directions.
type Neighbors [numDirections]*bitset.Set

// NewNeighbors allocates four empty bitsets of length n (the number of
// tiles in the table this Neighbors belongs to).
func NewNeighbors(n int) Neighbors {
	var nb Neighbors
	for d := range nb {
		nb[d] = bitset.New(n)
	}
	return nb
}

// Table is the learned vocabulary for one exemplar: N tiles, each with a
// representative value, an occurrence weight, and adjacency rules.
//
// A Table is immutable once built: the rule set and tile table are set
// at initialization and never mutated afterward.
type Table[T comparable] struct {
	Values  []T
	Weights []uint32
	Rules   []Neighbors
}

// Len returns the number of distinct tiles, N.
func (t *Table[T]) Len() int {
	return len(t.Values)
}

// AllowedFrom returns the bitset of tiles allowed in direction d from
// tile i.
func (t *Table[T]) AllowedFrom(i int, d Direction) *bitset.Set {
	return t.Rules[i][d]
}
