package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/greentips/tips-platform/internal/domain/match"
)

// MatchRepository is an in-memory match.Repository used by tests. It mirrors
// the postgres upsert semantics: provider ids are unique per sport and
// re-saves overwrite mutable fields while bumping UpdatedAt.
type MatchRepository struct {
	mu         sync.RWMutex
	football   map[int64]match.FootballMatch
	basketball map[int64]match.BasketballGame
	nextID     int64
	now        func() time.Time
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		football:   make(map[int64]match.FootballMatch),
		basketball: make(map[int64]match.BasketballGame),
		nextID:     1,
		now:        time.Now,
	}
}

func (r *MatchRepository) SaveFootball(_ context.Context, matches []match.FootballMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, m := range matches {
		if existing, ok := r.football[m.FixtureID]; ok {
			m.ID = existing.ID
			m.CreatedAt = existing.CreatedAt
		} else {
			m.ID = r.nextID
			r.nextID++
			m.CreatedAt = now
		}
		m.UpdatedAt = now
		r.football[m.FixtureID] = m
	}

	return nil
}

func (r *MatchRepository) SaveBasketball(_ context.Context, games []match.BasketballGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, g := range games {
		if existing, ok := r.basketball[g.GameID]; ok {
			g.ID = existing.ID
			g.CreatedAt = existing.CreatedAt
		} else {
			g.ID = r.nextID
			r.nextID++
			g.CreatedAt = now
		}
		g.UpdatedAt = now
		r.basketball[g.GameID] = g
	}

	return nil
}

func (r *MatchRepository) ListFootballByDay(_ context.Context, day time.Time) ([]match.FootballMatch, error) {
	start, end := match.DayRange(day)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.FootballMatch, 0, len(r.football))
	for _, m := range r.football {
		if m.KickoffAt.Before(start) || !m.KickoffAt.Before(end) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})

	return out, nil
}

func (r *MatchRepository) ListBasketballByDay(_ context.Context, day time.Time) ([]match.BasketballGame, error) {
	start, end := match.DayRange(day)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.BasketballGame, 0, len(r.basketball))
	for _, g := range r.basketball {
		if g.StartsAt.Before(start) || !g.StartsAt.Before(end) {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartsAt.Before(out[j].StartsAt)
	})

	return out, nil
}
