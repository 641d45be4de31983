package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/greentips/tips-platform/internal/domain/match"
	"github.com/greentips/tips-platform/internal/domain/tip"
	"github.com/greentips/tips-platform/internal/infrastructure/repository/memory"
	"github.com/greentips/tips-platform/internal/platform/logging"
	"github.com/greentips/tips-platform/internal/usecase"
)

func seedTip(sport, market string, vip bool) tip.Tip {
	return tip.Tip{
		Sport:      sport,
		League:     "Premier League",
		MatchLabel: "Arsenal vs Chelsea",
		MatchDate:  "04/05/2026",
		MatchTime:  "16:00",
		Market:     market,
		Odds:       1.85,
		Confidence: 65,
		Analysis:   "Strong home form.",
		Status:     tip.StatusPending,
		IsVIP:      vip,
	}
}

func newTipService(t *testing.T) (*usecase.TipService, *memory.TipRepository, *memory.StatsRepository) {
	t.Helper()
	tipRepo := memory.NewTipRepository()
	statsRepo := memory.NewStatsRepository()
	svc := usecase.NewTipService(usecase.TipServiceConfig{
		Tips:   tipRepo,
		Stats:  statsRepo,
		Logger: logging.NewNop(),
	})
	return svc, tipRepo, statsRepo
}

func TestTipService_ListTips_RejectsUnknownSport(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTipService(t)

	sport := "cricket"
	_, err := svc.ListTips(context.Background(), tip.Filter{Sport: &sport})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestTipService_FreeAndVIPSplit(t *testing.T) {
	t.Parallel()

	svc, tipRepo, _ := newTipService(t)
	ctx := context.Background()

	err := tipRepo.Save(ctx, []tip.Tip{
		seedTip(match.SportFootball, "Arsenal Win", false),
		seedTip(match.SportFootball, "Both Teams To Score", true),
		seedTip(match.SportBasketball, "Over 220.5 Points", false),
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	free, err := svc.FreeTips(ctx, nil)
	if err != nil {
		t.Fatalf("FreeTips error: %v", err)
	}
	if len(free) != 2 {
		t.Fatalf("expected 2 free tips, got=%d", len(free))
	}
	for _, tp := range free {
		if tp.IsVIP {
			t.Fatalf("free listing contains VIP tip: %+v", tp)
		}
	}

	football := match.SportFootball
	vip, err := svc.VIPTips(ctx, &football)
	if err != nil {
		t.Fatalf("VIPTips error: %v", err)
	}
	if len(vip) != 1 || vip[0].Market != "Both Teams To Score" {
		t.Fatalf("unexpected VIP listing: %+v", vip)
	}
}

func TestTipService_UpdateTipStatus_RecomputesStatistics(t *testing.T) {
	t.Parallel()

	svc, tipRepo, statsRepo := newTipService(t)
	ctx := context.Background()

	err := tipRepo.Save(ctx, []tip.Tip{
		seedTip(match.SportFootball, "Arsenal Win", false),
		seedTip(match.SportFootball, "Under 2.5 Goals", false),
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	updated, err := svc.UpdateTipStatus(ctx, 1, tip.StatusGreen)
	if err != nil {
		t.Fatalf("UpdateTipStatus error: %v", err)
	}
	if updated.ID != 1 || updated.Status != tip.StatusGreen {
		t.Fatalf("unexpected updated tip: %+v", updated)
	}

	current, err := statsRepo.Get(ctx)
	if err != nil {
		t.Fatalf("Get statistics error: %v", err)
	}
	if current.TotalTips != 2 || current.GreenTips != 1 || current.RedTips != 0 {
		t.Fatalf("unexpected counts: %+v", current)
	}
	if current.WinRate != 50 {
		t.Fatalf("expected win rate 50, got=%v", current.WinRate)
	}
	if current.ROI != "+0%" {
		t.Fatalf("expected ROI %q, got=%q", "+0%", current.ROI)
	}
}

func TestTipService_UpdateTipStatus_RejectsNonOutcomeStatus(t *testing.T) {
	t.Parallel()

	svc, tipRepo, _ := newTipService(t)
	ctx := context.Background()

	if err := tipRepo.Save(ctx, []tip.Tip{seedTip(match.SportFootball, "Arsenal Win", false)}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// A tip can be settled, never moved back to pending.
	if _, err := svc.UpdateTipStatus(ctx, 1, tip.StatusPending); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestTipService_UpdateTipStatus_UnknownTip(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTipService(t)

	if _, err := svc.UpdateTipStatus(context.Background(), 999, tip.StatusRed); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestTipService_GetStatistics_ComputesWhenMissing(t *testing.T) {
	t.Parallel()

	svc, tipRepo, statsRepo := newTipService(t)
	ctx := context.Background()

	err := tipRepo.Save(ctx, []tip.Tip{
		seedTip(match.SportFootball, "Arsenal Win", false),
		seedTip(match.SportBasketball, "Over 220.5 Points", false),
		seedTip(match.SportBasketball, "Lakers Win", true),
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	current, err := svc.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics error: %v", err)
	}
	if current.TotalTips != 3 || current.GreenTips != 0 || current.WinRate != 0 {
		t.Fatalf("unexpected statistics: %+v", current)
	}

	// The recomputed row is persisted for subsequent reads.
	if _, err := statsRepo.Get(ctx); err != nil {
		t.Fatalf("expected persisted statistics, got error: %v", err)
	}
}
