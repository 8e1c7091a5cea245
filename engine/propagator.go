package engine

import "wavecollapse.dev/wfc/tileset"

// candidateFilter refines the candidate set of cell idx against its four
// neighbors' current possibilities. It is the only operation that
// mutates a cell during propagation.
func (e *Engine[T]) candidateFilter(idx int) {
	cell := e.field.AtIndex(idx)
	if cell.IsEmpty() {
		cell.Reset(true)
	}

	x, y := idx%e.field.width, idx/e.field.width

	for _, d := range tileset.Directions {
		allowed := e.scratchAllowed[d]
		allowed.Reset(false)

		neighborIdx, ok := e.field.neighborIndex(x, y, d)
		if !ok {
			// Off-field neighbor: no constraint, any tile allowed.
			allowed.CopyFrom(e.allTiles)
			continue
		}

		rev := d.Reverse()
		e.field.AtIndex(neighborIdx).Each(func(j int) bool {
			allowed.Union(e.table.AllowedFrom(j, rev))
			return true
		})
	}

	for _, d := range tileset.Directions {
		cell.Intersect(e.scratchAllowed[d])
	}

	if cell.IsEmpty() {
		for _, d := range tileset.Directions {
			cell.Union(e.scratchAllowed[d])
		}
	}
}

// resetPropagationState clears the visited bitmap and empties the
// pending queue ahead of a fresh observation, preseeding visited=true
// for every cell already a singleton.
func (e *Engine[T]) resetPropagationState() {
	for i := range e.visited {
		e.visited[i] = e.field.AtIndex(i).Single()
	}
	e.queue = e.queue[:0]
}

// enqueueUnvisitedNeighbors appends the in-bounds, non-visited,
// non-singleton neighbors of (x, y) to the propagation queue.
func (e *Engine[T]) enqueueUnvisitedNeighbors(x, y int) {
	for _, d := range tileset.Directions {
		ni, ok := e.field.neighborIndex(x, y, d)
		if !ok || e.visited[ni] || e.field.AtIndex(ni).Single() {
			continue
		}
		e.queue = append(e.queue, ni)
	}
}

// propagate drains the BFS queue seeded by an observation at c0,
// re-filtering neighbor candidate sets and widening the wavefront
// whenever a cell's candidate count actually changes.
func (e *Engine[T]) propagate(c0 int, callback ProgressFunc[T]) {
	e.emit(callback, c0)

	for len(e.queue) > 0 {
		c := e.queue[0]
		e.queue = e.queue[1:]

		if e.visited[c] {
			continue
		}
		e.visited[c] = true

		prev := e.field.AtIndex(c).Count()
		if prev == 1 {
			continue
		}

		e.candidateFilter(c)

		if e.field.AtIndex(c).Count() != prev {
			x, y := c%e.field.width, c/e.field.width
			e.enqueueUnvisitedNeighbors(x, y)
		}

		e.emit(callback, c)
	}
}

func (e *Engine[T]) emit(callback ProgressFunc[T], idx int) {
	if callback == nil {
		return
	}
	callback(e, idx%e.field.width, idx/e.field.width)
}
