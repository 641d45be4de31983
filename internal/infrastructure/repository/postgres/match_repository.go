package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/greentips/tips-platform/internal/domain/match"
	qb "github.com/greentips/tips-platform/internal/platform/querybuilder"
)

const footballUpsertSuffix = `ON CONFLICT (fixture_id) DO UPDATE SET
	match_date = EXCLUDED.match_date,
	league_id = EXCLUDED.league_id,
	league_name = EXCLUDED.league_name,
	country = EXCLUDED.country,
	home_team_id = EXCLUDED.home_team_id,
	home_team_name = EXCLUDED.home_team_name,
	away_team_id = EXCLUDED.away_team_id,
	away_team_name = EXCLUDED.away_team_name,
	home_goals = EXCLUDED.home_goals,
	away_goals = EXCLUDED.away_goals,
	status = EXCLUDED.status,
	updated_at = NOW()`

const basketballUpsertSuffix = `ON CONFLICT (game_id) DO UPDATE SET
	match_date = EXCLUDED.match_date,
	league_id = EXCLUDED.league_id,
	league_name = EXCLUDED.league_name,
	home_team_id = EXCLUDED.home_team_id,
	home_team_name = EXCLUDED.home_team_name,
	away_team_id = EXCLUDED.away_team_id,
	away_team_name = EXCLUDED.away_team_name,
	home_score = EXCLUDED.home_score,
	away_score = EXCLUDED.away_score,
	status = EXCLUDED.status,
	updated_at = NOW()`

// MatchRepository stores provider match rows for both sports. Saves are
// last-write-wins upserts keyed by the provider id.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) SaveFootball(ctx context.Context, matches []match.FootballMatch) error {
	if len(matches) == 0 {
		return nil
	}

	rows := make([]footballMatchInsertModel, 0, len(matches))
	for _, m := range matches {
		if m.FixtureID <= 0 {
			return fmt.Errorf("football match fixture id is required")
		}
		rows = append(rows, newFootballMatchInsertModel(m))
	}

	query, args, err := qb.InsertModels("football_matches", rows, footballUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert football matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert football matches: %w", err)
	}

	return nil
}

func (r *MatchRepository) SaveBasketball(ctx context.Context, games []match.BasketballGame) error {
	if len(games) == 0 {
		return nil
	}

	rows := make([]basketballGameInsertModel, 0, len(games))
	for _, g := range games {
		if g.GameID <= 0 {
			return fmt.Errorf("basketball game id is required")
		}
		rows = append(rows, newBasketballGameInsertModel(g))
	}

	query, args, err := qb.InsertModels("basketball_matches", rows, basketballUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert basketball games query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert basketball games: %w", err)
	}

	return nil
}

func (r *MatchRepository) ListFootballByDay(ctx context.Context, day time.Time) ([]match.FootballMatch, error) {
	start, end := match.DayRange(day)
	query, args, err := qb.Select("*").From("football_matches").
		Where(
			qb.Gte("match_date", start),
			qb.Expr("match_date < ?", end),
		).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list football matches query: %w", err)
	}

	var rows []footballMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list football matches by day: %w", err)
	}

	out := make([]match.FootballMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) ListBasketballByDay(ctx context.Context, day time.Time) ([]match.BasketballGame, error) {
	start, end := match.DayRange(day)
	query, args, err := qb.Select("*").From("basketball_matches").
		Where(
			qb.Gte("match_date", start),
			qb.Expr("match_date < ?", end),
		).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list basketball games query: %w", err)
	}

	var rows []basketballGameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list basketball games by day: %w", err)
	}

	out := make([]match.BasketballGame, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
