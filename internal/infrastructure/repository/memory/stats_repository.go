package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/greentips/tips-platform/internal/domain/stats"
	"github.com/greentips/tips-platform/internal/usecase"
)

// StatsRepository is an in-memory stats.Repository used by tests.
type StatsRepository struct {
	mu      sync.RWMutex
	current *stats.Statistics
	now     func() time.Time
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{now: time.Now}
}

func (r *StatsRepository) Get(_ context.Context) (stats.Statistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return stats.Statistics{}, fmt.Errorf("%w: statistics row", usecase.ErrNotFound)
	}
	return *r.current, nil
}

func (r *StatsRepository) Upsert(_ context.Context, s stats.Statistics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = 1
	s.UpdatedAt = r.now()
	r.current = &s
	return nil
}
