package engine

// selectMinEntropyCell finds the cell(s) with the fewest remaining
// candidates among cells that aren't already singleton, breaks ties by a
// uniform random draw over the tied set, and reports the field's current
// total uncertainty alongside it.
func (e *Engine[T]) selectMinEntropyCell() (idx int, total int, ok bool) {
	tied := e.pool[:0]
	min := e.table.Len() + 1

	for i := 0; i < e.field.Len(); i++ {
		c := e.field.AtIndex(i).Count()
		total += c
		if c <= 1 {
			continue
		}
		switch {
		case c < min:
			min = c
			tied = tied[:0]
			tied = append(tied, i)
		case c == min:
			tied = append(tied, i)
		}
	}
	e.pool = tied

	if len(tied) == 0 {
		return 0, total, false
	}
	return tied[e.rnd.IntN(len(tied))], total, true
}

// observeAndPropagate performs one observation at cell idx: refine its
// candidates, weighted-randomly collapse it to a single tile, then BFS
// propagate the consequences to its neighbors.
func (e *Engine[T]) observeAndPropagate(idx int, callback ProgressFunc[T]) {
	e.candidateFilter(idx)

	t := e.weightedChoice(idx)

	cell := e.field.AtIndex(idx)
	cell.Reset(false)
	cell.Put(t, true)

	x, y := idx%e.field.width, idx/e.field.width
	e.resetPropagationState()
	e.enqueueUnvisitedNeighbors(x, y)
	e.propagate(idx, callback)
}

// weightedChoice builds a weighted multiset over the tiles still
// possible in cell idx (or, if the cell is empty, over every tile in the
// table) and draws one at random.
func (e *Engine[T]) weightedChoice(idx int) int {
	pool := e.buildPool(idx)
	return pool[e.rnd.IntN(len(pool))]
}

// buildPool refills the engine's reusable weighted-selection buffer and
// returns it. Reused across calls to avoid per-observation allocation.
func (e *Engine[T]) buildPool(idx int) []int {
	cell := e.field.AtIndex(idx)
	pool := e.pool[:0]

	if cell.IsEmpty() {
		for i, w := range e.table.Weights {
			for k := uint32(0); k < w; k++ {
				pool = append(pool, i)
			}
		}
	} else {
		cell.Each(func(i int) bool {
			w := e.table.Weights[i]
			for k := uint32(0); k < w; k++ {
				pool = append(pool, i)
			}
			return true
		})
	}

	e.pool = pool
	return pool
}
