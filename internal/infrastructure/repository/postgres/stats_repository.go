package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/greentips/tips-platform/internal/domain/stats"
	qb "github.com/greentips/tips-platform/internal/platform/querybuilder"
	"github.com/greentips/tips-platform/internal/usecase"
)

type statisticsTableModel struct {
	ID        int64     `db:"id"`
	TotalTips int64     `db:"total_tips"`
	GreenTips int64     `db:"green_tips"`
	RedTips   int64     `db:"red_tips"`
	WinRate   float64   `db:"win_rate"`
	ROI       string    `db:"roi"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StatsRepository stores the singleton statistics row. The table carries a
// fixed id=1 row enforced by a unique constraint, so upsert keeps exactly
// one row alive.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Get(ctx context.Context) (stats.Statistics, error) {
	query, args, err := qb.Select("*").From("statistics").
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return stats.Statistics{}, fmt.Errorf("build get statistics query: %w", err)
	}

	var row statisticsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stats.Statistics{}, fmt.Errorf("%w: statistics row", usecase.ErrNotFound)
		}
		return stats.Statistics{}, fmt.Errorf("get statistics: %w", err)
	}

	return stats.Statistics{
		ID:        row.ID,
		TotalTips: row.TotalTips,
		GreenTips: row.GreenTips,
		RedTips:   row.RedTips,
		WinRate:   row.WinRate,
		ROI:       row.ROI,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *StatsRepository) Upsert(ctx context.Context, s stats.Statistics) error {
	query, args, err := qb.InsertInto("statistics").
		Columns("id", "total_tips", "green_tips", "red_tips", "win_rate", "roi").
		Values(int64(1), s.TotalTips, s.GreenTips, s.RedTips, s.WinRate, s.ROI).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
	total_tips = EXCLUDED.total_tips,
	green_tips = EXCLUDED.green_tips,
	red_tips = EXCLUDED.red_tips,
	win_rate = EXCLUDED.win_rate,
	roi = EXCLUDED.roi,
	updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert statistics query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert statistics: %w", err)
	}

	return nil
}
