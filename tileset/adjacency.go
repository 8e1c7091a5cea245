package tileset

// LearnAdjacency computes, for every tile pair and every direction,
// whether the two tw x th blocks may sit adjacent to each other, and
// records the result as a symmetric bitset-per-direction-per-tile
// structure.
//
// For each unordered pair (i, j) with i <= j, and for each of the four
// directions, isCompatible tests whether block j fits at that direction
// from block i; a hit is recorded both as i-accepts-j-in-d and (by the
// reversed-direction symmetry invariant) j-accepts-i-in-rev(d). Looping
// over all four directions for every pair covers both halves of any
// asymmetric relationship without a second pass, since Up and Down (and
// Left and Right) are each tested independently from i's perspective.
func LearnAdjacency[T comparable](blocks [][]T, tw, th int) []Neighbors {
	n := len(blocks)
	rules := make([]Neighbors, n)
	for i := range rules {
		rules[i] = NewNeighbors(n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			for _, d := range Directions {
				if isCompatible(blocks[i], blocks[j], d, tw, th) {
					rules[i][d].Put(j, true)
					rules[j][d.Reverse()].Put(i, true)
				}
			}
		}
	}

	return rules
}

// isCompatible tests whether block b may be placed at direction d from
// block a: the tw*(th-1) or th*(tw-1) overlap region, after sliding b by
// one cell in direction d, must match a element-wise.
func isCompatible[T comparable](a, b []T, d Direction, tw, th int) bool {
	switch d {
	case Up, Down:
		offsetA, offsetB := 0, 1
		if d == Down {
			offsetA, offsetB = 1, 0
		}
		rows := th - 1
		for r := 0; r < rows; r++ {
			aRow := a[(offsetA+r)*tw : (offsetA+r+1)*tw]
			bRow := b[(offsetB+r)*tw : (offsetB+r+1)*tw]
			if !blockEqual(aRow, bRow) {
				return false
			}
		}
		return true

	case Left, Right:
		offsetA, offsetB := 0, 1
		if d == Right {
			offsetA, offsetB = 1, 0
		}
		cols := tw - 1
		for row := 0; row < th; row++ {
			base := row * tw
			aSeg := a[base+offsetA : base+offsetA+cols]
			bSeg := b[base+offsetB : base+offsetB+cols]
			if !blockEqual(aSeg, bSeg) {
				return false
			}
		}
		return true
	}

	return true
}
