package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/greentips/tips-platform/internal/domain/stats"
	"github.com/greentips/tips-platform/internal/domain/tip"
	statsmock "github.com/greentips/tips-platform/internal/mocks/domain/stats"
	tipmock "github.com/greentips/tips-platform/internal/mocks/domain/tip"
	"github.com/greentips/tips-platform/internal/platform/logging"
)

func TestTipService_UpdateTipStatus_SettlesTipUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tipRepo := tipmock.NewRepository(t)
	statsRepo := statsmock.NewRepository(t)

	service := NewTipService(TipServiceConfig{
		Tips:   tipRepo,
		Stats:  statsRepo,
		Logger: logging.NewNop(),
	})

	sameCtx := mock.MatchedBy(func(v context.Context) bool { return v == ctx })
	counts := []tip.StatusCount{
		{Status: tip.StatusGreen, Count: 3},
		{Status: tip.StatusRed, Count: 1},
		{Status: tip.StatusPending, Count: 2},
	}
	settled := tip.Tip{ID: 7, Sport: "football", Market: "Home Win", Status: tip.StatusGreen}

	tipRepo.On("UpdateStatus", sameCtx, int64(7), tip.StatusGreen).Return(nil).Once()
	tipRepo.On("CountByStatus", sameCtx).Return(counts, nil).Once()
	statsRepo.On("Upsert", sameCtx, stats.Compute(3, 1, 2)).Return(nil).Once()
	tipRepo.On("GetByID", sameCtx, int64(7)).Return(settled, nil).Once()

	got, err := service.UpdateTipStatus(ctx, 7, tip.StatusGreen)
	if err != nil {
		t.Fatalf("update tip status: %v", err)
	}
	if got.Status != tip.StatusGreen {
		t.Fatalf("unexpected tip status: got=%s want=%s", got.Status, tip.StatusGreen)
	}
}

func TestTipService_GetStatistics_RecomputesWhenMissingUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tipRepo := tipmock.NewRepository(t)
	statsRepo := statsmock.NewRepository(t)

	service := NewTipService(TipServiceConfig{
		Tips:   tipRepo,
		Stats:  statsRepo,
		Logger: logging.NewNop(),
	})

	sameCtx := mock.MatchedBy(func(v context.Context) bool { return v == ctx })
	counts := []tip.StatusCount{
		{Status: tip.StatusGreen, Count: 1},
		{Status: tip.StatusRed, Count: 1},
	}
	want := stats.Compute(1, 1, 0)

	statsRepo.On("Get", sameCtx).Return(stats.Statistics{}, ErrNotFound).Once()
	tipRepo.On("CountByStatus", sameCtx).Return(counts, nil).Once()
	statsRepo.On("Upsert", sameCtx, want).Return(nil).Once()

	got, err := service.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected statistics: got=%+v want=%+v", got, want)
	}
}

func TestTipService_UpdateTipStatus_RepositoryFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tipRepo := tipmock.NewRepository(t)
	statsRepo := statsmock.NewRepository(t)

	service := NewTipService(TipServiceConfig{
		Tips:   tipRepo,
		Stats:  statsRepo,
		Logger: logging.NewNop(),
	})

	sameCtx := mock.MatchedBy(func(v context.Context) bool { return v == ctx })
	tipRepo.On("UpdateStatus", sameCtx, int64(99), tip.StatusRed).Return(ErrNotFound).Once()

	_, err := service.UpdateTipStatus(ctx, 99, tip.StatusRed)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
