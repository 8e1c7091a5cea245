package tileset

import "testing"

func TestExtract_DegenerateUniform(t *testing.T) {
	pattern := []rune{'A', 'A', 'A', 'A'}
	table, err := Extract(pattern, 2, 2, 1, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got, want := table.Len(), 1; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := table.Values[0], 'A'; got != want {
		t.Errorf("Values[0] = %q, want %q", got, want)
	}
	if got, want := table.Weights[0], uint32(4); got != want {
		t.Errorf("Weights[0] = %d, want %d", got, want)
	}
}

func TestExtract_TwoTileStripe(t *testing.T) {
	pattern := []rune{'A', 'B', 'A', 'B', 'A', 'B', 'A', 'B'}
	table, err := Extract(pattern, 4, 2, 1, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got, want := table.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	for i, w := range table.Weights {
		if w != 4 {
			t.Errorf("Weights[%d] = %d, want 4", i, w)
		}
	}

	// tw=th=1 makes every direction's overlap region empty (zero rows or
	// columns to compare), so isCompatible trivially returns true and
	// both tiles allow both tiles in every direction.
	for i := 0; i < table.Len(); i++ {
		for _, d := range Directions {
			if got, want := table.Rules[i][d].Count(), 2; got != want {
				t.Errorf("tile %d direction %s allows %d tiles, want %d", i, d, got, want)
			}
		}
	}
}

func TestExtract_ChekerboardSingleTile(t *testing.T) {
	pattern := []rune{'A', 'B', 'B', 'A'}
	table, err := Extract(pattern, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got, want := table.Len(), 1; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := table.Weights[0], uint32(1); got != want {
		t.Errorf("Weights[0] = %d, want %d", got, want)
	}
	if got, want := table.Values[0], 'A'; got != want {
		t.Errorf("Values[0] = %q, want %q (top-left representative)", got, want)
	}
}

func TestExtract_OverlappingWindows(t *testing.T) {
	// 3x3 pattern:
	// A A B
	// A A B
	// B B A
	pattern := []rune{
		'A', 'A', 'B',
		'A', 'A', 'B',
		'B', 'B', 'A',
	}
	table, err := Extract(pattern, 3, 3, 2, 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got, want := table.Len(), 4; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	total := uint32(0)
	for _, w := range table.Weights {
		if w == 0 {
			t.Error("found a tile with zero weight; weights must never be zero by construction")
		}
		total += w
	}
	if got, want := total, uint32(4); got != want {
		t.Errorf("sum of weights = %d, want %d (2x2 origins in a 3x3 pattern)", got, want)
	}
}

func TestExtract_PatternSizeMismatch(t *testing.T) {
	_, err := Extract([]rune{'A', 'B'}, 2, 2, 1, 1)
	if err != ErrPatternSizeMismatch {
		t.Fatalf("err = %v, want ErrPatternSizeMismatch", err)
	}
}

func TestExtract_WindowTooLarge(t *testing.T) {
	_, err := Extract([]rune{'A', 'B', 'C', 'D'}, 2, 2, 3, 1)
	if err != ErrWindowTooLarge {
		t.Fatalf("err = %v, want ErrWindowTooLarge", err)
	}
}

func TestExtract_FullWindowYieldsSingleTile(t *testing.T) {
	pattern := []rune{'X', 'Y', 'Z', 'W'}
	table, err := Extract(pattern, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got, want := table.Len(), 1; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := table.Weights[0], uint32(1); got != want {
		t.Errorf("Weights[0] = %d, want %d", got, want)
	}
}

func TestExtract_WeightsNeverZero(t *testing.T) {
	pattern := make([]rune, 6*6)
	letters := []rune{'A', 'B', 'C'}
	for i := range pattern {
		pattern[i] = letters[i%len(letters)]
	}
	table, err := Extract(pattern, 6, 6, 2, 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for i, w := range table.Weights {
		if w < 1 {
			t.Errorf("tile %d has weight %d, want >= 1", i, w)
		}
	}
}
