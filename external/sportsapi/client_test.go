package sportsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/greentips/tips-platform/internal/domain/match"
	"github.com/greentips/tips-platform/internal/platform/resilience"
	"github.com/greentips/tips-platform/internal/usecase"
)

const footballFixturesBody = `{
  "response": [
    {
      "fixture": {"id": 9001, "date": "2026-08-28T16:30:00+00:00", "timestamp": 1787502600, "status": {"short": "NS"}},
      "league": {"id": 39, "name": "Premier League", "country": "England"},
      "teams": {"home": {"id": 33, "name": "Arsenal"}, "away": {"id": 49, "name": "Chelsea"}},
      "goals": {"home": null, "away": null}
    },
    {
      "fixture": {"id": 9002, "date": "2026-08-28T13:00:00+00:00", "timestamp": 1787490000, "status": {"short": "FT"}},
      "league": {"id": 71, "name": "Brasileirão", "country": "Brazil"},
      "teams": {"home": {"id": 121, "name": "Palmeiras"}, "away": {"id": 127, "name": "Flamengo"}},
      "goals": {"home": 2, "away": 1}
    }
  ]
}`

const basketballGamesBody = `{
  "response": [
    {
      "id": 5001,
      "date": "2026-08-28T20:00:00+00:00",
      "timestamp": 1787515200,
      "status": {"short": "NS"},
      "league": {"id": 12, "name": "NBA"},
      "teams": {"home": {"id": 139, "name": "Lakers"}, "away": {"id": 134, "name": "Celtics"}},
      "scores": {"home": {"total": null}, "away": {"total": null}}
    }
  ]
}`

func TestFetchFootballFixtures_MapsAndAuthenticates(t *testing.T) {
	t.Parallel()

	var gotKey, gotDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-rapidapi-key")
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(footballFixturesBody))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		FootballBaseURL: server.URL,
		APIKey:          "test-key",
	})

	day := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	matches, err := client.FetchFootballFixtures(context.Background(), day)
	if err != nil {
		t.Fatalf("fetch football fixtures: %v", err)
	}

	if gotKey != "test-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if gotDate != "2026-08-28" {
		t.Fatalf("unexpected date query: %q", gotDate)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	scheduled := matches[0]
	if scheduled.FixtureID != 9001 || scheduled.LeagueName != "Premier League" || scheduled.Country != "England" {
		t.Fatalf("unexpected scheduled match: %+v", scheduled)
	}
	if scheduled.Status != match.StatusScheduled || scheduled.HomeGoals != nil {
		t.Fatalf("expected scheduled match without goals: %+v", scheduled)
	}

	finished := matches[1]
	if finished.Status != match.StatusFinished {
		t.Fatalf("expected finished status once goals are set: %+v", finished)
	}
	if finished.HomeGoals == nil || *finished.HomeGoals != 2 {
		t.Fatalf("unexpected home goals: %+v", finished.HomeGoals)
	}
}

func TestFetchBasketballGames_Maps(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(basketballGamesBody))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BasketballBaseURL: server.URL,
		APIKey:            "test-key",
	})

	games, err := client.FetchBasketballGames(context.Background(), time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch basketball games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	game := games[0]
	if game.GameID != 5001 || game.LeagueName != "NBA" || game.HomeTeam != "Lakers" {
		t.Fatalf("unexpected game: %+v", game)
	}
	if game.Status != match.StatusScheduled {
		t.Fatalf("expected scheduled status: %+v", game)
	}
}

func TestFetchFootballFixtures_SurfacesProviderFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		FootballBaseURL: server.URL,
		APIKey:          "bad-key",
	})

	if _, err := client.FetchFootballFixtures(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected error on non-success provider status")
	}
}

func TestClient_CircuitBreakerOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		FootballBaseURL: server.URL,
		APIKey:          "test-key",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	day := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if _, err := client.FetchFootballFixtures(context.Background(), day.AddDate(0, 0, i)); err == nil {
			t.Fatalf("expected transient failure on attempt %d", i)
		}
	}

	_, err := client.FetchFootballFixtures(context.Background(), day.AddDate(0, 0, 5))
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable once circuit opens, got %v", err)
	}
}

func TestMapFootballFixture_FinishedStatusBeforeScoreBackfill(t *testing.T) {
	t.Parallel()

	var item footballFixtureItem
	item.Fixture.ID = 9003
	item.Fixture.Status.Short = "AET"
	item.Teams.Home = teamRef{ID: 1, Name: "Lyon"}
	item.Teams.Away = teamRef{ID: 2, Name: "Marseille"}

	mapped := mapFootballFixture(item)
	if mapped.Status != match.StatusFinished {
		t.Fatalf("expected finished status from provider code, got %q", mapped.Status)
	}
	if mapped.HomeGoals != nil {
		t.Fatalf("expected goals to stay unset: %+v", mapped.HomeGoals)
	}

	item.Fixture.Status.Short = "NS"
	if got := mapFootballFixture(item).Status; got != match.StatusScheduled {
		t.Fatalf("expected scheduled status for NS, got %q", got)
	}
}

func TestMapBasketballGame_FinishedStatusBeforeScoreBackfill(t *testing.T) {
	t.Parallel()

	var item basketballGameItem
	item.ID = 5002
	item.Status.Short = "AOT"

	if got := mapBasketballGame(item).Status; got != match.StatusFinished {
		t.Fatalf("expected finished status from provider code, got %q", got)
	}

	item.Status.Short = "Q3"
	if got := mapBasketballGame(item).Status; got != match.StatusScheduled {
		t.Fatalf("expected non-finished code to stay scheduled, got %q", got)
	}
}
