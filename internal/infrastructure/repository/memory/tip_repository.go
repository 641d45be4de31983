package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/greentips/tips-platform/internal/domain/tip"
	"github.com/greentips/tips-platform/internal/usecase"
)

// TipRepository is an in-memory tip.Repository used by tests. Save appends
// rows unconditionally, matching the accumulate-duplicates behavior of the
// postgres implementation.
type TipRepository struct {
	mu     sync.RWMutex
	tips   []tip.Tip
	nextID int64
	now    func() time.Time
}

func NewTipRepository() *TipRepository {
	return &TipRepository{
		nextID: 1,
		now:    time.Now,
	}
}

func (r *TipRepository) Save(_ context.Context, tips []tip.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, t := range tips {
		if err := t.ValidateBasic(); err != nil {
			return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		t.ID = r.nextID
		r.nextID++
		t.CreatedAt = now
		t.UpdatedAt = now
		r.tips = append(r.tips, t)
	}

	return nil
}

func (r *TipRepository) List(_ context.Context, filter tip.Filter) ([]tip.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tip.Tip, 0, len(r.tips))
	for _, t := range r.tips {
		if filter.Sport != nil && t.Sport != *filter.Sport {
			continue
		}
		if filter.IsVIP != nil && t.IsVIP != *filter.IsVIP {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *TipRepository) GetByID(_ context.Context, id int64) (tip.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tips {
		if t.ID == id {
			return t, nil
		}
	}

	return tip.Tip{}, fmt.Errorf("%w: tip id=%d", usecase.ErrNotFound, id)
}

func (r *TipRepository) UpdateStatus(_ context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tips {
		if r.tips[i].ID == id {
			r.tips[i].Status = status
			r.tips[i].UpdatedAt = r.now()
			return nil
		}
	}

	return fmt.Errorf("%w: tip id=%d", usecase.ErrNotFound, id)
}

func (r *TipRepository) CountByStatus(_ context.Context) ([]tip.StatusCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, t := range r.tips {
		counts[t.Status]++
	}

	out := make([]tip.StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, tip.StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })

	return out, nil
}
