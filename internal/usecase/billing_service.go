package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/greentips/tips-platform/internal/domain/user"
	"github.com/greentips/tips-platform/internal/platform/logging"
)

const (
	paymentApprovedEvent  = "payment.approved"
	paymentApprovedStatus = "approved"
)

// PaymentEvent is a provider payment notification. The provider is not
// consistent about which fields it fills, so approval and the customer
// email are each resolved from two candidates.
type PaymentEvent struct {
	Event         string
	Status        string
	CustomerEmail string
	Email         string
	TransactionID string
	Amount        float64
	PaymentMethod string
}

func (e PaymentEvent) approved() bool {
	return e.Event == paymentApprovedEvent || e.Status == paymentApprovedStatus
}

func (e PaymentEvent) customerEmail() string {
	if e.CustomerEmail != "" {
		return e.CustomerEmail
	}
	return e.Email
}

type BillingServiceConfig struct {
	Users  user.Repository
	Logger *logging.Logger
	Now    func() time.Time
}

// BillingService applies provider payment events to user accounts.
type BillingService struct {
	users  user.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewBillingService(cfg BillingServiceConfig) *BillingService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &BillingService{
		users:  cfg.Users,
		logger: logger,
		now:    now,
	}
}

// ActivateVIP flips the paying user to VIP and records the transaction.
// The transaction record is best effort: a failure there is logged but
// does not undo the activation.
func (s *BillingService) ActivateVIP(ctx context.Context, event PaymentEvent) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "BillingService.ActivateVIP")
	defer span.End()

	if !event.approved() {
		return user.User{}, fmt.Errorf("%w: event is not an approved payment", ErrInvalidInput)
	}

	email := event.customerEmail()
	if email == "" {
		return user.User{}, fmt.Errorf("%w: customer email is missing", ErrInvalidInput)
	}

	activated, err := s.users.ActivateVIP(ctx, email, s.now())
	if err != nil {
		return user.User{}, fmt.Errorf("activate vip for %q: %w", email, err)
	}

	method := event.PaymentMethod
	if method == "" {
		method = "unknown"
	}
	tx := user.Transaction{
		UserID:        activated.ID,
		ProviderRef:   event.TransactionID,
		Amount:        event.Amount,
		Status:        paymentApprovedStatus,
		PaymentMethod: method,
	}
	if err := s.users.SaveTransaction(ctx, tx); err != nil {
		s.logger.WarnContext(ctx, "transaction record failed", "email", email, "error", err)
	}

	s.logger.InfoContext(ctx, "vip activated", "email", email, "transaction_id", event.TransactionID)
	return activated, nil
}
