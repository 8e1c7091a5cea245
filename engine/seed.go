package engine

import "wavecollapse.dev/wfc/tileset"

// SeedRecord is the durable artifact produced by an engine run: the
// learned tile table, weights, adjacency rules, and the RNG seed that
// produced (or reproduces) a collapse. Its byte layout on disk is
// left to whoever persists it; catalog.StoreSeed writes it to a BigQuery
// row with the weights and neighbors JSON-encoded.
type SeedRecord[T comparable] struct {
	Tiles     []T                `json:"tiles"`
	Weights   []uint32           `json:"weights"`
	Neighbors []tileset.Neighbors `json:"-"`
	RndSeed   uint64             `json:"rnd_seed"`
}
