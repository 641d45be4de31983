package match

import (
	"context"
	"time"
)

// Repository persists provider match records. Save operations are bulk
// upserts keyed by the provider identifier; re-syncing the same id
// overwrites mutable fields and bumps the modification timestamp.
type Repository interface {
	SaveFootball(ctx context.Context, matches []FootballMatch) error
	SaveBasketball(ctx context.Context, games []BasketballGame) error
	ListFootballByDay(ctx context.Context, day time.Time) ([]FootballMatch, error)
	ListBasketballByDay(ctx context.Context, day time.Time) ([]BasketballGame, error)
}
