package stats

import "context"

// Repository stores the singleton statistics row. Upsert overwrites the
// existing row or creates it when absent.
type Repository interface {
	Get(ctx context.Context) (Statistics, error)
	Upsert(ctx context.Context, s Statistics) error
}
