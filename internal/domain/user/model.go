package user

import (
	"strings"
	"time"
)

// User is a subscriber account. IsVIP gates paid tips and is flipped by the
// payment provider webhook, never by this service on its own.
type User struct {
	ID             int64
	Email          string
	Name           string
	IsVIP          bool
	VIPActivatedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Transaction records one approved payment as reported by the provider.
// ProviderRef is the provider's transaction identifier.
type Transaction struct {
	ID            int64
	UserID        int64
	ProviderRef   string
	Amount        float64
	Status        string
	PaymentMethod string
	CreatedAt     time.Time
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
