// Package engine implements the observe/propagate wave function collapse
// loop over a Field of candidate bitsets: entropy-based cell selection,
// weighted random observation, and BFS constraint propagation, driven by
// an Engine facade that owns the tile table, the field, and the RNG.
package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"wavecollapse.dev/wfc/bitset"
	"wavecollapse.dev/wfc/rng"
	"wavecollapse.dev/wfc/tileset"
)

// ProgressFunc is invoked once for the observed cell itself, then once
// for every cell that propagation re-filters, whether or not its
// candidate set changed. It must not mutate the engine.
type ProgressFunc[T comparable] func(e *Engine[T], x, y int)

// Engine drives the collapse loop over a field of the given tile table.
// The tile table and adjacency rules are immutable once set; the field
// and RNG are the only state that changes across steps.
type Engine[T comparable] struct {
	table   *tileset.Table[T]
	field   *Field
	rnd     *rand.Rand
	rndSeed uint64

	// Per-step scratch, reused across observations rather than
	// allocated fresh.
	visited        []bool
	queue          []int
	pool           []int
	scratchAllowed [4]*bitset.Set
	allTiles       *bitset.Set
}

// New constructs an empty engine over a W x H field. The tile table is
// unset until InitFromSeed or InitFromPattern is called.
func New[T comparable](width, height int) (*Engine[T], error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroField
	}
	return &Engine[T]{
		field: &Field{width: width, height: height},
	}, nil
}

// Width returns the field's configured width.
func (e *Engine[T]) Width() int { return e.field.width }

// Height returns the field's configured height.
func (e *Engine[T]) Height() int { return e.field.height }

// Field exposes the current field of candidate sets.
func (e *Engine[T]) Field() *Field { return e.field }

// Tiles returns the representative value for every tile id.
func (e *Engine[T]) Tiles() []T { return e.table.Values }

// SeedRecord captures the engine's current tile table and resolved RNG
// seed as a durable record suitable for InitFromSeed on a future run.
func (e *Engine[T]) SeedRecord() SeedRecord[T] {
	return SeedRecord[T]{
		Tiles:     e.table.Values,
		Weights:   e.table.Weights,
		Neighbors: e.table.Rules,
		RndSeed:   e.rndSeed,
	}
}

// Seed returns the RNG seed that produced the current run; if the
// engine was initialized with rndSeed 0, this is the resolved
// nondeterministic value, recorded so the run can be reproduced.
func (e *Engine[T]) Seed() uint64 { return e.rndSeed }

// Uncertainty returns normalized progress: W*H / sum(popcount), which
// reaches 1.0 once every cell is a singleton.
func (e *Engine[T]) Uncertainty() float64 {
	total := e.field.Uncertainty()
	if total == 0 {
		return 1
	}
	return float64(e.field.Len()) / float64(total)
}

// InitFromSeed (re)initializes the engine's tile table, field, and RNG
// from a precomputed seed record.
func (e *Engine[T]) InitFromSeed(seed SeedRecord[T]) error {
	n := len(seed.Tiles)
	if n == 0 {
		return ErrEmptyTileTable
	}
	if len(seed.Weights) != n || len(seed.Neighbors) != n {
		return ErrDimensionMismatch
	}

	e.table = &tileset.Table[T]{
		Values:  seed.Tiles,
		Weights: seed.Weights,
		Rules:   seed.Neighbors,
	}
	e.field = newField(e.field.width, e.field.height, n)
	e.resolveSeed(seed.RndSeed)
	e.resetScratch()

	Logger().Sugar().Debugw("engine initialized from seed",
		"tiles", n, "width", e.field.width, "height", e.field.height, "rndSeed", e.rndSeed)
	return nil
}

// InitFromPattern extracts a tile table from a flat exemplar and learns
// its adjacency rules, then initializes the field and RNG.
func (e *Engine[T]) InitFromPattern(pattern []T, pw, ph, tw, th int, rndSeed uint64) error {
	table, err := tileset.Extract(pattern, pw, ph, tw, th)
	if err != nil {
		return fmt.Errorf("engine: extracting tiles: %w", err)
	}

	e.table = table
	e.field = newField(e.field.width, e.field.height, table.Len())
	e.resolveSeed(rndSeed)
	e.resetScratch()

	Logger().Sugar().Debugw("engine initialized from pattern",
		"tiles", table.Len(), "width", e.field.width, "height", e.field.height, "rndSeed", e.rndSeed)
	return nil
}

// resolveSeed sets up the RNG. A zero seed is replaced with a value
// drawn from a nondeterministic entropy source and retained so the run
// can be reproduced later.
func (e *Engine[T]) resolveSeed(seed uint64) {
	if seed == 0 {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err != nil {
			// crypto/rand failing is effectively unrecoverable on any
			// real platform; fall back to a fixed non-zero value so
			// the engine never silently keeps seed == 0.
			seed = 0x9E3779B97F4A7C15
		} else {
			seed = binary.LittleEndian.Uint64(buf[:])
			if seed == 0 {
				seed = 0x9E3779B97F4A7C15
			}
		}
	}
	e.rndSeed = seed
	e.rnd = rand.New(rng.NewSource64(seed))
}

func (e *Engine[T]) resetScratch() {
	e.visited = make([]bool, e.field.Len())
	e.queue = e.queue[:0]
	e.pool = e.pool[:0]
	for d := range e.scratchAllowed {
		e.scratchAllowed[d] = bitset.New(e.table.Len())
	}
	e.allTiles = bitset.New(e.table.Len())
	e.allTiles.Reset(true)
}

// ForceCell collapses cell (x, y) to tileID immediately and propagates
// the consequences, bypassing entropy-based selection. Supplemental to
// the core loop: useful for seeding a collapse with a known feature
// before letting the observer take over the rest of the field.
func (e *Engine[T]) ForceCell(x, y, tileID int) error {
	if !e.field.inBounds(x, y) {
		return ErrOutOfBounds
	}
	if tileID < 0 || tileID >= e.table.Len() {
		return fmt.Errorf("engine: tile id %d out of range [0,%d)", tileID, e.table.Len())
	}

	c := e.field.At(x, y)
	c.Reset(false)
	c.Put(tileID, true)

	idx := e.field.idx(x, y)
	e.resetPropagationState()
	e.enqueueUnvisitedNeighbors(x, y)
	e.propagate(idx, nil)
	return nil
}

// Collapse runs the observe/propagate loop. In one-step mode it performs
// exactly one observation plus its propagation and returns whether the
// field is now solved; in full mode it loops until solved.
func (e *Engine[T]) Collapse(oneStep bool, callback ProgressFunc[T]) bool {
	solved := e.field.Len()

	c0, total, ok := e.selectMinEntropyCell()
	if !ok {
		return true
	}

	for total > solved {
		e.observeAndPropagate(c0, callback)

		c0, total, ok = e.selectMinEntropyCell()
		if !ok {
			return true
		}
		if oneStep {
			return total == solved
		}
	}
	return true
}
