package tileset

import "testing"

func TestLearnAdjacency_SymmetryInvariant(t *testing.T) {
	blocks := [][]rune{
		{'A', 'B'}, // tile 0, tw=2, th=1
		{'B', 'A'}, // tile 1
		{'A', 'A'}, // tile 2
	}
	rules := LearnAdjacency(blocks, 2, 1)

	for i := range rules {
		for _, d := range Directions {
			rules[i][d].Each(func(j int) bool {
				if !rules[j][d.Reverse()].Get(i) {
					t.Errorf("asymmetric rule: tile %d allows tile %d in %s, but tile %d does not allow tile %d in %s",
						i, j, d, j, i, d.Reverse())
				}
				return true
			})
		}
	}
}

func TestLearnAdjacency_HorizontalStripe(t *testing.T) {
	// Single-row (th=1) tiles only ever get compared on Left/Right;
	// Up/Down overlap regions are empty (rows := th-1 == 0) so they
	// trivially match everywhere.
	blocks := [][]rune{
		{'A', 'B'}, // tile 0
		{'B', 'A'}, // tile 1
	}
	rules := LearnAdjacency(blocks, 2, 1)

	// tile 0 = A B: its right column is B, which must match tile x's left
	// column to sit to its Right. tile 0's left col is A, tile 1's left col is B.
	if got := rules[0][Right].Get(1); !got {
		t.Errorf("tile 0 should allow tile 1 to its Right (B|B..A matches on shared column)")
	}

	for i := range rules {
		for _, d := range []Direction{Up, Down} {
			if got, want := rules[i][d].Count(), 2; got != want {
				t.Errorf("tile %d direction %s allows %d, want %d (th=1 has no vertical overlap to violate)", i, d, got, want)
			}
		}
	}
}

func TestLearnAdjacency_IncompatiblePairExcluded(t *testing.T) {
	// tw=th=2 blocks whose overlap rows/columns never agree.
	blocks := [][]rune{
		{'A', 'A', 'A', 'A'},
		{'B', 'B', 'B', 'B'},
	}
	rules := LearnAdjacency(blocks, 2, 2)

	for i := range rules {
		for _, d := range Directions {
			if got, want := rules[i][d].Count(), 1; got != want {
				t.Errorf("tile %d direction %s allows %d tiles, want %d (only itself)", i, d, got, want)
			}
			if !rules[i][d].Get(i) {
				t.Errorf("tile %d direction %s should allow itself", i, d)
			}
		}
	}
}

func TestLearnAdjacency_SingleTileAllowsSelfEveryDirection(t *testing.T) {
	blocks := [][]rune{{'A', 'A', 'A', 'A'}}
	rules := LearnAdjacency(blocks, 2, 2)

	for _, d := range Directions {
		if got, want := rules[0][d].Count(), 1; got != want {
			t.Fatalf("direction %s: count = %d, want %d", d, got, want)
		}
		if !rules[0][d].Get(0) {
			t.Fatalf("direction %s: tile 0 should allow itself", d)
		}
	}
}
