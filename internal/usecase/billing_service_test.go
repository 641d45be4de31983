package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greentips/tips-platform/internal/domain/user"
	"github.com/greentips/tips-platform/internal/infrastructure/repository/memory"
	"github.com/greentips/tips-platform/internal/platform/logging"
	"github.com/greentips/tips-platform/internal/usecase"
)

var billingTestNow = time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)

func newBillingService(users *memory.UserRepository) *usecase.BillingService {
	return usecase.NewBillingService(usecase.BillingServiceConfig{
		Users:  users,
		Logger: logging.NewNop(),
		Now:    func() time.Time { return billingTestNow },
	})
}

func TestBillingService_ActivateVIP(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository([]user.User{
		{Email: "fan@example.com", Name: "Fan", IsVIP: false},
	})
	svc := newBillingService(users)

	activated, err := svc.ActivateVIP(context.Background(), usecase.PaymentEvent{
		Event:         "payment.approved",
		CustomerEmail: "fan@example.com",
		TransactionID: "trx-123",
		Amount:        99.90,
		PaymentMethod: "pix",
	})
	if err != nil {
		t.Fatalf("ActivateVIP error: %v", err)
	}

	if !activated.IsVIP {
		t.Fatal("expected user flagged VIP")
	}
	if activated.VIPActivatedAt == nil || !activated.VIPActivatedAt.Equal(billingTestNow) {
		t.Fatalf("unexpected activation time: %v", activated.VIPActivatedAt)
	}

	recorded := users.Transactions()
	if len(recorded) != 1 {
		t.Fatalf("expected 1 transaction, got=%d", len(recorded))
	}
	tx := recorded[0]
	if tx.UserID != activated.ID || tx.ProviderRef != "trx-123" || tx.Status != "approved" || tx.PaymentMethod != "pix" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestBillingService_ActivateVIP_AcceptsStatusFallback(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository([]user.User{
		{Email: "fan@example.com", Name: "Fan"},
	})
	svc := newBillingService(users)

	// Some provider payloads omit the event name but carry an approved
	// status, and identify the customer via the bare email field.
	activated, err := svc.ActivateVIP(context.Background(), usecase.PaymentEvent{
		Status: "approved",
		Email:  "fan@example.com",
	})
	if err != nil {
		t.Fatalf("ActivateVIP error: %v", err)
	}
	if !activated.IsVIP {
		t.Fatal("expected user flagged VIP")
	}

	tx := users.Transactions()
	if len(tx) != 1 || tx[0].PaymentMethod != "unknown" {
		t.Fatalf("unexpected transactions: %+v", tx)
	}
}

func TestBillingService_ActivateVIP_RejectsUnapprovedEvent(t *testing.T) {
	t.Parallel()

	svc := newBillingService(memory.NewUserRepository(nil))

	_, err := svc.ActivateVIP(context.Background(), usecase.PaymentEvent{
		Event:         "payment.refused",
		Status:        "refused",
		CustomerEmail: "fan@example.com",
	})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestBillingService_ActivateVIP_RejectsMissingEmail(t *testing.T) {
	t.Parallel()

	svc := newBillingService(memory.NewUserRepository(nil))

	_, err := svc.ActivateVIP(context.Background(), usecase.PaymentEvent{Event: "payment.approved"})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestBillingService_ActivateVIP_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newBillingService(memory.NewUserRepository(nil))

	_, err := svc.ActivateVIP(context.Background(), usecase.PaymentEvent{
		Event:         "payment.approved",
		CustomerEmail: "ghost@example.com",
	})
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}
