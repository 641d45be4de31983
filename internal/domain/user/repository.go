package user

import (
	"context"
	"time"
)

// Repository manages subscriber accounts and their payment records.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	ActivateVIP(ctx context.Context, email string, at time.Time) (User, error)
	SaveTransaction(ctx context.Context, tx Transaction) error
}
