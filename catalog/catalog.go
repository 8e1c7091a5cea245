// Package catalog persists exemplar patterns and collapse seed records to
// BigQuery, so a caller can replay a prior run without re-shipping the
// exemplar or re-drawing the RNG seed.
package catalog

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// Catalog wraps a BigQuery client scoped to a single project and
// dataset.
type Catalog struct {
	client  *bigquery.Client
	dataset string
}

// Open connects to the given GCP project and returns a Catalog backed by
// the named dataset. The caller must call Close when done.
func Open(ctx context.Context, project, dataset string) (*Catalog, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("catalog: bigquery.NewClient: %w", err)
	}
	return &Catalog{client: client, dataset: dataset}, nil
}

// Close releases the underlying BigQuery client.
func (c *Catalog) Close() error {
	return c.client.Close()
}

func (c *Catalog) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", c.client.Project(), c.dataset, name)
}

// Pattern is a named exemplar: a flat row-major sequence of runes plus
// its declared dimensions.
type Pattern struct {
	Name   string
	Values []rune
	Width  int
	Height int
}

// LoadPattern fetches a single named exemplar pattern.
func (c *Catalog) LoadPattern(ctx context.Context, name string) (Pattern, error) {
	query := fmt.Sprintf("SELECT values, width, height FROM %s WHERE name = %q LIMIT 1", c.table("patterns"), name)
	q := c.client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return Pattern{}, fmt.Errorf("catalog: q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return Pattern{}, fmt.Errorf("catalog: job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return Pattern{}, fmt.Errorf("catalog: status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return Pattern{}, fmt.Errorf("catalog: job.Read: %w", err)
	}

	var row []bigquery.Value
	if err := it.Next(&row); err != nil {
		if err == iterator.Done {
			return Pattern{}, fmt.Errorf("catalog: no pattern named %q", name)
		}
		return Pattern{}, fmt.Errorf("catalog: it.Next: %w", err)
	}

	raw, ok := row[0].(string)
	if !ok {
		return Pattern{}, fmt.Errorf("catalog: values column is not a string: %v", row[0])
	}
	width, ok := row[1].(int64)
	if !ok {
		return Pattern{}, fmt.Errorf("catalog: width column is not an int64: %v", row[1])
	}
	height, ok := row[2].(int64)
	if !ok {
		return Pattern{}, fmt.Errorf("catalog: height column is not an int64: %v", row[2])
	}

	return Pattern{
		Name:   name,
		Values: []rune(raw),
		Width:  int(width),
		Height: int(height),
	}, nil
}

// StorePattern inserts a named exemplar pattern into the catalog.
func (c *Catalog) StorePattern(ctx context.Context, p Pattern) error {
	inserter := c.client.Dataset(c.dataset).Table("patterns").Inserter()
	row := patternRow{
		Name:   p.Name,
		Values: string(p.Values),
		Width:  p.Width,
		Height: p.Height,
	}
	if err := inserter.Put(ctx, &row); err != nil {
		return fmt.Errorf("catalog: inserting pattern %q: %w", p.Name, err)
	}
	return nil
}

type patternRow struct {
	Name   string `bigquery:"name"`
	Values string `bigquery:"values"`
	Width  int    `bigquery:"width"`
	Height int    `bigquery:"height"`
}
