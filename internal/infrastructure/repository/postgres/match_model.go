package postgres

import (
	"database/sql"
	"time"

	"github.com/greentips/tips-platform/internal/domain/match"
)

type footballMatchTableModel struct {
	ID         int64         `db:"id"`
	FixtureID  int64         `db:"fixture_id"`
	MatchDate  time.Time     `db:"match_date"`
	LeagueID   int64         `db:"league_id"`
	LeagueName string        `db:"league_name"`
	Country    string        `db:"country"`
	HomeTeamID int64         `db:"home_team_id"`
	HomeTeam   string        `db:"home_team_name"`
	AwayTeamID int64         `db:"away_team_id"`
	AwayTeam   string        `db:"away_team_name"`
	HomeGoals  sql.NullInt64 `db:"home_goals"`
	AwayGoals  sql.NullInt64 `db:"away_goals"`
	Status     string        `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// footballMatchInsertModel carries only the insertable columns so the
// generic model-insert helper never touches id or the timestamps, which the
// database owns.
type footballMatchInsertModel struct {
	FixtureID  int64         `db:"fixture_id"`
	MatchDate  time.Time     `db:"match_date"`
	LeagueID   int64         `db:"league_id"`
	LeagueName string        `db:"league_name"`
	Country    string        `db:"country"`
	HomeTeamID int64         `db:"home_team_id"`
	HomeTeam   string        `db:"home_team_name"`
	AwayTeamID int64         `db:"away_team_id"`
	AwayTeam   string        `db:"away_team_name"`
	HomeGoals  sql.NullInt64 `db:"home_goals"`
	AwayGoals  sql.NullInt64 `db:"away_goals"`
	Status     string        `db:"status"`
}

func newFootballMatchInsertModel(m match.FootballMatch) footballMatchInsertModel {
	return footballMatchInsertModel{
		FixtureID:  m.FixtureID,
		MatchDate:  m.KickoffAt,
		LeagueID:   m.LeagueID,
		LeagueName: m.LeagueName,
		Country:    m.Country,
		HomeTeamID: m.HomeTeamID,
		HomeTeam:   m.HomeTeam,
		AwayTeamID: m.AwayTeamID,
		AwayTeam:   m.AwayTeam,
		HomeGoals:  intPtrToNullInt64(m.HomeGoals),
		AwayGoals:  intPtrToNullInt64(m.AwayGoals),
		Status:     m.Status,
	}
}

func (row footballMatchTableModel) toDomain() match.FootballMatch {
	return match.FootballMatch{
		ID:         row.ID,
		FixtureID:  row.FixtureID,
		LeagueID:   row.LeagueID,
		LeagueName: row.LeagueName,
		Country:    row.Country,
		HomeTeamID: row.HomeTeamID,
		HomeTeam:   row.HomeTeam,
		AwayTeamID: row.AwayTeamID,
		AwayTeam:   row.AwayTeam,
		KickoffAt:  row.MatchDate,
		HomeGoals:  nullInt64ToIntPtr(row.HomeGoals),
		AwayGoals:  nullInt64ToIntPtr(row.AwayGoals),
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type basketballGameTableModel struct {
	ID         int64         `db:"id"`
	GameID     int64         `db:"game_id"`
	MatchDate  time.Time     `db:"match_date"`
	LeagueID   int64         `db:"league_id"`
	LeagueName string        `db:"league_name"`
	HomeTeamID int64         `db:"home_team_id"`
	HomeTeam   string        `db:"home_team_name"`
	AwayTeamID int64         `db:"away_team_id"`
	AwayTeam   string        `db:"away_team_name"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type basketballGameInsertModel struct {
	GameID     int64         `db:"game_id"`
	MatchDate  time.Time     `db:"match_date"`
	LeagueID   int64         `db:"league_id"`
	LeagueName string        `db:"league_name"`
	HomeTeamID int64         `db:"home_team_id"`
	HomeTeam   string        `db:"home_team_name"`
	AwayTeamID int64         `db:"away_team_id"`
	AwayTeam   string        `db:"away_team_name"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
}

func newBasketballGameInsertModel(g match.BasketballGame) basketballGameInsertModel {
	return basketballGameInsertModel{
		GameID:     g.GameID,
		MatchDate:  g.StartsAt,
		LeagueID:   g.LeagueID,
		LeagueName: g.LeagueName,
		HomeTeamID: g.HomeTeamID,
		HomeTeam:   g.HomeTeam,
		AwayTeamID: g.AwayTeamID,
		AwayTeam:   g.AwayTeam,
		HomeScore:  intPtrToNullInt64(g.HomeScore),
		AwayScore:  intPtrToNullInt64(g.AwayScore),
		Status:     g.Status,
	}
}

func (row basketballGameTableModel) toDomain() match.BasketballGame {
	return match.BasketballGame{
		ID:         row.ID,
		GameID:     row.GameID,
		LeagueID:   row.LeagueID,
		LeagueName: row.LeagueName,
		HomeTeamID: row.HomeTeamID,
		HomeTeam:   row.HomeTeam,
		AwayTeamID: row.AwayTeamID,
		AwayTeam:   row.AwayTeam,
		StartsAt:   row.MatchDate,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
