package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/greentips/tips-platform/internal/domain/user"
	"github.com/greentips/tips-platform/internal/usecase"
)

// UserRepository is an in-memory user.Repository used by tests.
type UserRepository struct {
	mu           sync.RWMutex
	usersByEmail map[string]user.User
	transactions []user.Transaction
	nextID       int64
}

func NewUserRepository(users []user.User) *UserRepository {
	byEmail := make(map[string]user.User, len(users))
	nextID := int64(1)
	for _, u := range users {
		if u.ID == 0 {
			u.ID = nextID
		}
		if u.ID >= nextID {
			nextID = u.ID + 1
		}
		byEmail[user.NormalizeEmail(u.Email)] = u
	}

	return &UserRepository{
		usersByEmail: byEmail,
		nextID:       nextID,
	}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.usersByEmail[user.NormalizeEmail(email)]
	if !ok {
		return user.User{}, fmt.Errorf("%w: user email=%s", usecase.ErrNotFound, user.NormalizeEmail(email))
	}
	return u, nil
}

func (r *UserRepository) ActivateVIP(_ context.Context, email string, at time.Time) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := user.NormalizeEmail(email)
	u, ok := r.usersByEmail[key]
	if !ok {
		return user.User{}, fmt.Errorf("%w: user email=%s", usecase.ErrNotFound, key)
	}

	u.IsVIP = true
	u.VIPActivatedAt = &at
	u.UpdatedAt = at
	r.usersByEmail[key] = u

	return u, nil
}

func (r *UserRepository) SaveTransaction(_ context.Context, tx user.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = r.nextID
	r.nextID++
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	r.transactions = append(r.transactions, tx)
	return nil
}

// Transactions returns a copy of recorded transactions for assertions.
func (r *UserRepository) Transactions() []user.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out
}
