package tip

import "context"

// Filter narrows tip listings. Nil fields mean no constraint.
type Filter struct {
	Sport *string
	IsVIP *bool
}

// StatusCount is one row of the status histogram used for statistics
// recomputation.
type StatusCount struct {
	Status string
	Count  int64
}

// Repository persists generated tips. Save is a plain bulk insert, not an
// upsert: repeated generation runs over the same matches accumulate
// duplicate rows.
type Repository interface {
	Save(ctx context.Context, tips []Tip) error
	List(ctx context.Context, filter Filter) ([]Tip, error)
	GetByID(ctx context.Context, id int64) (Tip, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}
