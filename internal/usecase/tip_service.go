package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/greentips/tips-platform/internal/domain/match"
	"github.com/greentips/tips-platform/internal/domain/stats"
	"github.com/greentips/tips-platform/internal/domain/tip"
	"github.com/greentips/tips-platform/internal/platform/logging"
)

type TipServiceConfig struct {
	Tips   tip.Repository
	Stats  stats.Repository
	Logger *logging.Logger
}

// TipService serves tip listings and settles tip outcomes. Settling a tip
// recomputes the statistics singleton from the full status histogram.
type TipService struct {
	tips   tip.Repository
	stats  stats.Repository
	logger *logging.Logger
}

func NewTipService(cfg TipServiceConfig) *TipService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &TipService{
		tips:   cfg.Tips,
		stats:  cfg.Stats,
		logger: logger,
	}
}

// ListTips returns tips matching the filter, newest first.
func (s *TipService) ListTips(ctx context.Context, filter tip.Filter) ([]tip.Tip, error) {
	ctx, span := startUsecaseSpan(ctx, "TipService.ListTips")
	defer span.End()

	if err := validateSportFilter(filter.Sport); err != nil {
		return nil, err
	}

	items, err := s.tips.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	return items, nil
}

// FreeTips lists non-VIP tips, optionally narrowed to one sport.
func (s *TipService) FreeTips(ctx context.Context, sport *string) ([]tip.Tip, error) {
	isVIP := false
	return s.ListTips(ctx, tip.Filter{Sport: sport, IsVIP: &isVIP})
}

// VIPTips lists VIP tips, optionally narrowed to one sport.
func (s *TipService) VIPTips(ctx context.Context, sport *string) ([]tip.Tip, error) {
	isVIP := true
	return s.ListTips(ctx, tip.Filter{Sport: sport, IsVIP: &isVIP})
}

// GetTip returns one tip by id.
func (s *TipService) GetTip(ctx context.Context, id int64) (tip.Tip, error) {
	ctx, span := startUsecaseSpan(ctx, "TipService.GetTip")
	defer span.End()

	item, err := s.tips.GetByID(ctx, id)
	if err != nil {
		return tip.Tip{}, fmt.Errorf("get tip %d: %w", id, err)
	}
	return item, nil
}

// UpdateTipStatus settles a pending tip as green or red, then recomputes
// the statistics singleton. Returns the updated tip.
func (s *TipService) UpdateTipStatus(ctx context.Context, id int64, status string) (tip.Tip, error) {
	ctx, span := startUsecaseSpan(ctx, "TipService.UpdateTipStatus")
	defer span.End()

	if !tip.IsValidOutcome(status) {
		return tip.Tip{}, fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, tip.StatusGreen, tip.StatusRed)
	}

	if err := s.tips.UpdateStatus(ctx, id, status); err != nil {
		return tip.Tip{}, fmt.Errorf("update tip %d status: %w", id, err)
	}

	if _, err := s.recomputeStatistics(ctx); err != nil {
		return tip.Tip{}, err
	}

	updated, err := s.tips.GetByID(ctx, id)
	if err != nil {
		return tip.Tip{}, fmt.Errorf("reload tip %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "tip settled", "tip_id", id, "status", status)
	return updated, nil
}

// GetStatistics returns the aggregate row, recomputing it from the tip
// table when none has been stored yet.
func (s *TipService) GetStatistics(ctx context.Context) (stats.Statistics, error) {
	ctx, span := startUsecaseSpan(ctx, "TipService.GetStatistics")
	defer span.End()

	current, err := s.stats.Get(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return stats.Statistics{}, fmt.Errorf("get statistics: %w", err)
	}

	return s.recomputeStatistics(ctx)
}

func (s *TipService) recomputeStatistics(ctx context.Context) (stats.Statistics, error) {
	counts, err := s.tips.CountByStatus(ctx)
	if err != nil {
		return stats.Statistics{}, fmt.Errorf("count tips by status: %w", err)
	}

	var green, red, pending int64
	for _, c := range counts {
		switch c.Status {
		case tip.StatusGreen:
			green = c.Count
		case tip.StatusRed:
			red = c.Count
		case tip.StatusPending:
			pending = c.Count
		}
	}

	computed := stats.Compute(green, red, pending)
	if err := s.stats.Upsert(ctx, computed); err != nil {
		return stats.Statistics{}, fmt.Errorf("upsert statistics: %w", err)
	}
	return computed, nil
}

func validateSportFilter(sport *string) error {
	if sport == nil {
		return nil
	}
	switch *sport {
	case match.SportFootball, match.SportBasketball:
		return nil
	default:
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, *sport)
	}
}
