package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"wavecollapse.dev/wfc/engine"
	"wavecollapse.dev/wfc/tileset"
)

// wireNeighbors is the JSON-friendly encoding of a tileset.Neighbors: the
// four per-direction candidate sets as sorted tile id lists. BigQuery
// rows can't carry a *bitset.Set directly, so seeds are round-tripped
// through this shape.
type wireNeighbors [4][]int

func encodeNeighbors(n []tileset.Neighbors) ([]byte, error) {
	wire := make([]wireNeighbors, len(n))
	for i, nb := range n {
		for d := range nb {
			nb[d].Each(func(j int) bool {
				wire[i][d] = append(wire[i][d], j)
				return true
			})
		}
	}
	return json.Marshal(wire)
}

func decodeNeighbors(raw []byte, tileCount int) ([]tileset.Neighbors, error) {
	var wire []wireNeighbors
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("catalog: decoding neighbors: %w", err)
	}

	out := make([]tileset.Neighbors, len(wire))
	for i, nb := range wire {
		out[i] = tileset.NewNeighbors(tileCount)
		for d, ids := range nb {
			for _, j := range ids {
				out[i][d].Put(j, true)
			}
		}
	}
	return out, nil
}

type seedRow struct {
	Name      string `bigquery:"name"`
	Tiles     string `bigquery:"tiles"`
	Weights   string `bigquery:"weights"`
	Neighbors string `bigquery:"neighbors"`
	RndSeed   int64  `bigquery:"rnd_seed"`
}

// StoreSeed persists a rune-tiled engine seed record under name, so a
// later run can reproduce the collapse exactly via LoadSeed.
func (c *Catalog) StoreSeed(ctx context.Context, name string, seed engine.SeedRecord[rune]) error {
	weights, err := json.Marshal(seed.Weights)
	if err != nil {
		return fmt.Errorf("catalog: marshaling weights: %w", err)
	}
	neighbors, err := encodeNeighbors(seed.Neighbors)
	if err != nil {
		return fmt.Errorf("catalog: marshaling neighbors: %w", err)
	}

	row := seedRow{
		Name:      name,
		Tiles:     string(seed.Tiles),
		Weights:   string(weights),
		Neighbors: string(neighbors),
		RndSeed:   int64(seed.RndSeed),
	}

	inserter := c.client.Dataset(c.dataset).Table("seeds").Inserter()
	if err := inserter.Put(ctx, &row); err != nil {
		return fmt.Errorf("catalog: inserting seed %q: %w", name, err)
	}
	return nil
}

// LoadSeed fetches a previously stored seed record by name.
func (c *Catalog) LoadSeed(ctx context.Context, name string) (engine.SeedRecord[rune], error) {
	query := fmt.Sprintf("SELECT tiles, weights, neighbors, rnd_seed FROM %s WHERE name = %q LIMIT 1", c.table("seeds"), name)
	q := c.client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return engine.SeedRecord[rune]{}, fmt.Errorf("catalog: q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return engine.SeedRecord[rune]{}, fmt.Errorf("catalog: job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return engine.SeedRecord[rune]{}, fmt.Errorf("catalog: status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return engine.SeedRecord[rune]{}, fmt.Errorf("catalog: job.Read: %w", err)
	}

	var row []bigquery.Value
	if err := it.Next(&row); err != nil {
		if err == iterator.Done {
			return engine.SeedRecord[rune]{}, fmt.Errorf("catalog: no seed named %q", name)
		}
		return engine.SeedRecord[rune]{}, fmt.Errorf("catalog: it.Next: %w", err)
	}

	tilesRaw, _ := row[0].(string)
	weightsRaw, _ := row[1].(string)
	neighborsRaw, _ := row[2].(string)
	rndSeed, _ := row[3].(int64)

	tiles := []rune(tilesRaw)

	var weights []uint32
	if err := json.Unmarshal([]byte(weightsRaw), &weights); err != nil {
		return engine.SeedRecord[rune]{}, fmt.Errorf("catalog: decoding weights: %w", err)
	}

	neighbors, err := decodeNeighbors([]byte(neighborsRaw), len(tiles))
	if err != nil {
		return engine.SeedRecord[rune]{}, err
	}

	return engine.SeedRecord[rune]{
		Tiles:     tiles,
		Weights:   weights,
		Neighbors: neighbors,
		RndSeed:   uint64(rndSeed),
	}, nil
}
