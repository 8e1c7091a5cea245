package engine

import "testing"

func newForPattern(t *testing.T, pattern []rune, pw, ph, tw, th, w, h int, seed uint64) *Engine[rune] {
	t.Helper()
	e, err := New[rune](w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.InitFromPattern(pattern, pw, ph, tw, th, seed); err != nil {
		t.Fatalf("InitFromPattern: %v", err)
	}
	return e
}

func TestCollapse_DegenerateUniform(t *testing.T) {
	e := newForPattern(t, []rune{'A', 'A', 'A', 'A'}, 2, 2, 1, 1, 3, 3, 1)

	if got, want := len(e.Tiles()), 1; got != want {
		t.Fatalf("tile count = %d, want %d", got, want)
	}

	if !e.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}

	for _, v := range e.Image() {
		if v != 'A' {
			t.Fatalf("cell = %q, want 'A'", v)
		}
	}
}

func TestCollapse_TwoTileStripeDeterministic(t *testing.T) {
	pattern := []rune{'A', 'B', 'A', 'B', 'A', 'B', 'A', 'B'}

	e1 := newForPattern(t, pattern, 4, 2, 1, 1, 4, 1, 7)
	if !e1.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}

	e2 := newForPattern(t, pattern, 4, 2, 1, 1, 4, 1, 7)
	if !e2.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}

	img1, img2 := e1.Image(), e2.Image()
	for i := range img1 {
		if img1[i] != img2[i] {
			t.Fatalf("cell %d diverged between identically-seeded runs: %q vs %q", i, img1[i], img2[i])
		}
	}
}

func TestCollapse_CheckerboardLearnsSingleTile(t *testing.T) {
	pattern := []rune{'A', 'B', 'B', 'A'}
	e := newForPattern(t, pattern, 2, 2, 2, 2, 4, 4, 42)

	if got, want := len(e.Tiles()), 1; got != want {
		t.Fatalf("tile count = %d, want %d", got, want)
	}

	if !e.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	for _, v := range e.Image() {
		if v != 'A' {
			t.Fatalf("cell = %q, want 'A' (top-left representative)", v)
		}
	}
}

func TestCollapse_OverlappingWindowsFullySingleton(t *testing.T) {
	pattern := []rune{
		'A', 'A', 'B',
		'A', 'A', 'B',
		'B', 'B', 'A',
	}
	e := newForPattern(t, pattern, 3, 3, 2, 2, 5, 5, 99)

	if got, want := len(e.Tiles()), 4; got != want {
		t.Fatalf("tile count = %d, want %d", got, want)
	}

	if !e.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	for i := 0; i < e.Field().Len(); i++ {
		if got, want := e.Field().AtIndex(i).Count(), 1; got != want {
			t.Fatalf("cell %d has %d candidates, want %d", i, got, want)
		}
	}
}

func TestCollapse_ForcedContradictionStillFullySingleton(t *testing.T) {
	// A pattern where the tile compatible above a given cell and the tile
	// compatible to its left share no common tile, forcing the empty
	// intersection / contradiction fallback in candidateFilter to fire
	// for at least one interior cell during propagation.
	pattern := []rune{
		'A', 'B', 'C',
		'D', 'E', 'F',
		'G', 'H', 'I',
	}
	e := newForPattern(t, pattern, 3, 3, 2, 2, 6, 6, 5)

	if !e.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	for i := 0; i < e.Field().Len(); i++ {
		if got, want := e.Field().AtIndex(i).Count(), 1; got != want {
			t.Fatalf("cell %d has %d candidates after collapse, want %d (fallback must never leave a cell non-singleton)", i, got, want)
		}
	}
}

func TestCollapse_ReproducibilityExplicitSeed(t *testing.T) {
	pattern := []rune{
		'A', 'A', 'B',
		'A', 'A', 'B',
		'B', 'B', 'A',
	}

	run := func() []rune {
		e := newForPattern(t, pattern, 3, 3, 2, 2, 5, 5, 99)
		if !e.Collapse(false, nil) {
			t.Fatal("Collapse() = false, want true")
		}
		return e.Image()
	}

	img1 := run()
	img2 := run()
	for i := range img1 {
		if img1[i] != img2[i] {
			t.Fatalf("cell %d diverged across two runs with the same explicit seed: %q vs %q", i, img1[i], img2[i])
		}
	}
}

func TestCollapse_ZeroSeedResolvesToNonZeroAndReproduces(t *testing.T) {
	pattern := []rune{
		'A', 'A', 'B',
		'A', 'A', 'B',
		'B', 'B', 'A',
	}

	e1 := newForPattern(t, pattern, 3, 3, 2, 2, 5, 5, 0)
	if !e1.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	resolved := e1.Seed()
	if resolved == 0 {
		t.Fatal("Seed() = 0, want a resolved non-zero value")
	}
	img1 := e1.Image()

	e2 := newForPattern(t, pattern, 3, 3, 2, 2, 5, 5, resolved)
	if !e2.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	img2 := e2.Image()

	for i := range img1 {
		if img1[i] != img2[i] {
			t.Fatalf("cell %d diverged when re-running with the resolved seed: %q vs %q", i, img1[i], img2[i])
		}
	}
}

func TestCollapse_OneStepAdvancesGradually(t *testing.T) {
	pattern := []rune{
		'A', 'A', 'B',
		'A', 'A', 'B',
		'B', 'B', 'A',
	}
	e := newForPattern(t, pattern, 3, 3, 2, 2, 4, 4, 17)

	steps := 0
	solved := false
	for steps < e.Field().Len()+1 && !solved {
		solved = e.Collapse(true, nil)
		steps++
	}
	if !solved {
		t.Fatalf("did not converge within %d one-steps", steps)
	}
	for i := 0; i < e.Field().Len(); i++ {
		if got, want := e.Field().AtIndex(i).Count(), 1; got != want {
			t.Fatalf("cell %d has %d candidates, want %d", i, got, want)
		}
	}
}

func TestCollapse_FullWindowSingleTileUniformOutput(t *testing.T) {
	pattern := []rune{'X', 'Y', 'Z', 'W'}
	e := newForPattern(t, pattern, 2, 2, 2, 2, 6, 6, 3)

	if got, want := len(e.Tiles()), 1; got != want {
		t.Fatalf("tile count = %d, want %d", got, want)
	}
	if !e.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	for _, v := range e.Image() {
		if v != 'X' {
			t.Fatalf("cell = %q, want 'X'", v)
		}
	}
}

func TestForceCell_CollapsesAndPropagates(t *testing.T) {
	pattern := []rune{
		'A', 'A', 'B',
		'A', 'A', 'B',
		'B', 'B', 'A',
	}
	e := newForPattern(t, pattern, 3, 3, 2, 2, 4, 4, 11)

	forcedID := 0
	if err := e.ForceCell(0, 0, forcedID); err != nil {
		t.Fatalf("ForceCell: %v", err)
	}
	cell := e.Field().At(0, 0)
	if got, want := cell.Count(), 1; got != want {
		t.Fatalf("forced cell count = %d, want %d", got, want)
	}
	if !cell.Get(forcedID) {
		t.Fatalf("forced cell does not contain forced tile id %d", forcedID)
	}

	if !e.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	if got := e.Field().At(0, 0).First(); got != forcedID {
		t.Fatalf("forced cell tile id changed to %d after collapse, want %d", got, forcedID)
	}
}

func TestForceCell_OutOfBounds(t *testing.T) {
	e := newForPattern(t, []rune{'A', 'A', 'A', 'A'}, 2, 2, 1, 1, 3, 3, 1)
	if err := e.ForceCell(-1, 0, 0); err != ErrOutOfBounds {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestNew_RejectsNonPositiveDimensions(t *testing.T) {
	if _, err := New[rune](0, 5); err != ErrZeroField {
		t.Fatalf("err = %v, want ErrZeroField", err)
	}
	if _, err := New[rune](5, -1); err != ErrZeroField {
		t.Fatalf("err = %v, want ErrZeroField", err)
	}
}

func TestInitFromSeed_RejectsMismatchedLengths(t *testing.T) {
	e, err := New[rune](3, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	seed := SeedRecord[rune]{
		Tiles:   []rune{'A', 'B'},
		Weights: []uint32{1},
	}
	if err := e.InitFromSeed(seed); err != ErrDimensionMismatch {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestUncertainty_ReachesOneWhenSolved(t *testing.T) {
	e := newForPattern(t, []rune{'A', 'A', 'A', 'A'}, 2, 2, 1, 1, 3, 3, 1)
	if !e.Collapse(false, nil) {
		t.Fatal("Collapse() = false, want true")
	}
	if got, want := e.Uncertainty(), 1.0; got != want {
		t.Fatalf("Uncertainty() = %v, want %v", got, want)
	}
}

func TestCollapse_ProgressCallbackInvoked(t *testing.T) {
	pattern := []rune{
		'A', 'A', 'B',
		'A', 'A', 'B',
		'B', 'B', 'A',
	}
	e := newForPattern(t, pattern, 3, 3, 2, 2, 5, 5, 99)

	calls := 0
	e.Collapse(false, func(e *Engine[rune], x, y int) {
		calls++
	})
	if calls == 0 {
		t.Fatal("progress callback was never invoked")
	}
}
