package sportsapi

import (
	"strings"
	"time"

	"github.com/greentips/tips-platform/internal/domain/match"
)

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type footballFixturesEnvelope struct {
	Response []footballFixtureItem `json:"response"`
}

type footballFixtureItem struct {
	Fixture struct {
		ID        int64  `json:"id"`
		Date      string `json:"date"`
		Timestamp int64  `json:"timestamp"`
		Status    struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type basketballGamesEnvelope struct {
	Response []basketballGameItem `json:"response"`
}

type basketballGameItem struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
	Status    struct {
		Short string `json:"short"`
	} `json:"status"`
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Scores struct {
		Home struct {
			Total *int `json:"total"`
		} `json:"home"`
		Away struct {
			Total *int `json:"total"`
		} `json:"away"`
	} `json:"scores"`
}

func mapFootballFixture(item footballFixtureItem) match.FootballMatch {
	out := match.FootballMatch{
		FixtureID:  item.Fixture.ID,
		LeagueID:   item.League.ID,
		LeagueName: strings.TrimSpace(item.League.Name),
		Country:    strings.TrimSpace(item.League.Country),
		HomeTeamID: item.Teams.Home.ID,
		HomeTeam:   strings.TrimSpace(item.Teams.Home.Name),
		AwayTeamID: item.Teams.Away.ID,
		AwayTeam:   strings.TrimSpace(item.Teams.Away.Name),
		KickoffAt:  parseProviderDateTime(item.Fixture.Date, item.Fixture.Timestamp),
		HomeGoals:  item.Goals.Home,
		AwayGoals:  item.Goals.Away,
	}

	// The provider only fills goals once the match concludes, but a few
	// finished status codes arrive before the score backfill.
	out.Status = match.StatusScheduled
	if out.HomeGoals != nil || match.IsFinishedStatus(item.Fixture.Status.Short) {
		out.Status = match.StatusFinished
	}

	return out
}

func mapBasketballGame(item basketballGameItem) match.BasketballGame {
	out := match.BasketballGame{
		GameID:     item.ID,
		LeagueID:   item.League.ID,
		LeagueName: strings.TrimSpace(item.League.Name),
		HomeTeamID: item.Teams.Home.ID,
		HomeTeam:   strings.TrimSpace(item.Teams.Home.Name),
		AwayTeamID: item.Teams.Away.ID,
		AwayTeam:   strings.TrimSpace(item.Teams.Away.Name),
		StartsAt:   parseProviderDateTime(item.Date, item.Timestamp),
		HomeScore:  item.Scores.Home.Total,
		AwayScore:  item.Scores.Away.Total,
	}

	out.Status = match.StatusScheduled
	if out.HomeScore != nil || match.IsFinishedStatus(item.Status.Short) {
		out.Status = match.StatusFinished
	}

	return out
}

func parseProviderDateTime(raw string, timestamp int64) time.Time {
	value := strings.TrimSpace(raw)
	if value != "" {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
			return parsed.UTC()
		}
	}
	if timestamp > 0 {
		return time.Unix(timestamp, 0).UTC()
	}
	return time.Time{}
}
