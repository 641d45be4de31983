package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/greentips/tips-platform/internal/domain/match"
	"github.com/greentips/tips-platform/internal/domain/tip"
	"github.com/greentips/tips-platform/internal/platform/logging"
)

// FixtureProvider fetches raw fixture records for one calendar day. Fetch
// failures must be returned as errors, never as silent empty lists, so the
// orchestrator can tell "provider down" apart from "no events today".
type FixtureProvider interface {
	FetchFootballFixtures(ctx context.Context, day time.Time) ([]match.FootballMatch, error)
	FetchBasketballGames(ctx context.Context, day time.Time) ([]match.BasketballGame, error)
}

// StageResult reports one stage of a sync run.
type StageResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

// SyncSummary aggregates the three stages of a full sync run. Stages are
// independent: one failing does not abort the others, but tip generation
// only runs when at least one match stage succeeded.
type SyncSummary struct {
	Football   StageResult `json:"football"`
	Basketball StageResult `json:"basketball"`
	Tips       StageResult `json:"tips"`
}

type SyncServiceConfig struct {
	Provider       FixtureProvider
	Matches        match.Repository
	Tips           tip.Repository
	MinConfidence  int
	MatchChunkSize int
	MaxWorkers     int
	Logger         *logging.Logger
	Now            func() time.Time
}

// SyncService coordinates fetch, persist, and tip generation. A run-in-progress
// guard rejects overlapping full-sync runs with ErrSyncInProgress.
type SyncService struct {
	provider       FixtureProvider
	matches        match.Repository
	tips           tip.Repository
	minConfidence  int
	matchChunkSize int
	maxWorkers     int
	logger         *logging.Logger
	now            func() time.Time
	running        atomic.Bool
}

func NewSyncService(cfg SyncServiceConfig) *SyncService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 60
	}
	chunkSize := cfg.MatchChunkSize
	if chunkSize <= 0 {
		chunkSize = 50
	}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	return &SyncService{
		provider:       cfg.Provider,
		matches:        cfg.Matches,
		tips:           cfg.Tips,
		minConfidence:  minConfidence,
		matchChunkSize: chunkSize,
		maxWorkers:     maxWorkers,
		logger:         logger,
		now:            now,
	}
}

// SyncFootball fetches today's fixtures and upserts them. Returns the
// number of fixtures persisted.
func (s *SyncService) SyncFootball(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncFootball")
	defer span.End()

	day := s.now()
	matches, err := s.provider.FetchFootballFixtures(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("fetch football fixtures: %w", err)
	}
	if len(matches) == 0 {
		s.logger.InfoContext(ctx, "no football fixtures for today")
		return 0, nil
	}

	if err := saveChunked(ctx, matches, s.matchChunkSize, s.maxWorkers, s.matches.SaveFootball); err != nil {
		return 0, fmt.Errorf("save football matches: %w", err)
	}

	s.logger.InfoContext(ctx, "football fixtures synced", "count", len(matches))
	return len(matches), nil
}

// SyncBasketball fetches today's games and upserts them.
func (s *SyncService) SyncBasketball(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncBasketball")
	defer span.End()

	day := s.now()
	games, err := s.provider.FetchBasketballGames(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("fetch basketball games: %w", err)
	}
	if len(games) == 0 {
		s.logger.InfoContext(ctx, "no basketball games for today")
		return 0, nil
	}

	if err := saveChunked(ctx, games, s.matchChunkSize, s.maxWorkers, s.matches.SaveBasketball); err != nil {
		return 0, fmt.Errorf("save basketball games: %w", err)
	}

	s.logger.InfoContext(ctx, "basketball games synced", "count", len(games))
	return len(games), nil
}

// GenerateDailyTips reads today's persisted matches for both sports,
// derives candidate tips, applies the confidence floor, sorts descending by
// confidence, and persists the batch. Returns the number of tips saved.
func (s *SyncService) GenerateDailyTips(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.GenerateDailyTips")
	defer span.End()

	day := s.now()

	var footballMatches []match.FootballMatch
	var basketballGames []match.BasketballGame

	readers := pool.New().WithContext(ctx)
	readers.Go(func(ctx context.Context) error {
		var err error
		footballMatches, err = s.matches.ListFootballByDay(ctx, day)
		return err
	})
	readers.Go(func(ctx context.Context) error {
		var err error
		basketballGames, err = s.matches.ListBasketballByDay(ctx, day)
		return err
	})
	if err := readers.Wait(); err != nil {
		return 0, fmt.Errorf("read today matches: %w", err)
	}

	var candidates []tip.Tip
	for _, m := range footballMatches {
		candidates = append(candidates, tip.GenerateFootballTips(m)...)
	}
	for _, g := range basketballGames {
		candidates = append(candidates, tip.GenerateBasketballTips(g)...)
	}
	if len(candidates) == 0 {
		s.logger.InfoContext(ctx, "no tips generated for today")
		return 0, nil
	}

	selected := tip.SortByConfidence(tip.FilterByConfidence(candidates, s.minConfidence))
	if len(selected) == 0 {
		s.logger.InfoContext(ctx, "all candidate tips below confidence floor",
			"candidates", len(candidates),
			"min_confidence", s.minConfidence,
		)
		return 0, nil
	}

	if err := s.tips.Save(ctx, selected); err != nil {
		return 0, fmt.Errorf("save tips: %w", err)
	}

	s.logger.InfoContext(ctx, "daily tips generated", "count", len(selected), "candidates", len(candidates))
	return len(selected), nil
}

// RunFullSync runs football sync, basketball sync, and tip generation in
// sequence. Match-stage failures are captured per stage instead of aborting
// the run; tip generation is skipped when both match stages failed. A
// second invocation while one is in flight fails with ErrSyncInProgress.
func (s *SyncService) RunFullSync(ctx context.Context) (SyncSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return SyncSummary{}, ErrSyncInProgress
	}
	defer s.running.Store(false)

	ctx, span := startUsecaseSpan(ctx, "SyncService.RunFullSync")
	defer span.End()

	var summary SyncSummary

	count, err := s.SyncFootball(ctx)
	summary.Football = newStageResult(count, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "football sync failed", "error", err)
	}

	count, err = s.SyncBasketball(ctx)
	summary.Basketball = newStageResult(count, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "basketball sync failed", "error", err)
	}

	if !summary.Football.Success && !summary.Basketball.Success {
		summary.Tips = StageResult{Success: false, Error: "both match syncs failed"}
		return summary, nil
	}

	count, err = s.GenerateDailyTips(ctx)
	summary.Tips = newStageResult(count, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "tip generation failed", "error", err)
	}

	return summary, nil
}

// RunEvery runs a full sync immediately, then repeats on the interval until
// the context is cancelled. Overlapping runs are rejected by the
// run-in-progress guard and logged rather than stacked.
func (s *SyncService) RunEvery(ctx context.Context, interval time.Duration) {
	run := func() {
		summary, err := s.RunFullSync(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "scheduled sync skipped", "error", err)
			return
		}
		s.logger.InfoContext(ctx, "scheduled sync finished",
			"football_count", summary.Football.Count,
			"basketball_count", summary.Basketball.Count,
			"tips_count", summary.Tips.Count,
		)
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func newStageResult(count int, err error) StageResult {
	if err != nil {
		return StageResult{Success: false, Error: err.Error()}
	}
	return StageResult{Success: true, Count: count}
}

// saveChunked splits a batch across a bounded worker pool. Each chunk is one
// independent upsert round-trip; the first failure is reported after all
// workers drain.
func saveChunked[T any](ctx context.Context, items []T, chunkSize, maxWorkers int, save func(context.Context, []T) error) error {
	if len(items) <= chunkSize {
		return save(ctx, items)
	}

	workers, err := ants.NewPool(maxWorkers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]

		wg.Add(1)
		if submitErr := workers.Submit(func() {
			defer wg.Done()
			if saveErr := save(ctx, chunk); saveErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = saveErr
				}
				mu.Unlock()
			}
		}); submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit save chunk: %w", submitErr)
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	return firstErr
}
