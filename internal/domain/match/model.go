package match

import (
	"strings"
	"time"
)

const (
	SportFootball   = "football"
	SportBasketball = "basketball"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
)

// FootballMatch represents one fixture as delivered by the sports provider.
// FixtureID is the provider's identifier and the upsert key.
type FootballMatch struct {
	ID         int64
	FixtureID  int64
	LeagueID   int64
	LeagueName string
	Country    string
	HomeTeamID int64
	HomeTeam   string
	AwayTeamID int64
	AwayTeam   string
	KickoffAt  time.Time
	HomeGoals  *int
	AwayGoals  *int
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m FootballMatch) Label() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// BasketballGame mirrors FootballMatch for the basketball provider feed,
// keyed by GameID. Basketball has no country dimension.
type BasketballGame struct {
	ID         int64
	GameID     int64
	LeagueID   int64
	LeagueName string
	HomeTeamID int64
	HomeTeam   string
	AwayTeamID int64
	AwayTeam   string
	StartsAt   time.Time
	HomeScore  *int
	AwayScore  *int
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (g BasketballGame) Label() string {
	return g.HomeTeam + " vs " + g.AwayTeam
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN", "AOT":
		return true
	default:
		return false
	}
}

// DayRange returns the calendar-day window around t in t's location,
// from 00:00:00 up to but not including the next midnight.
func DayRange(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
