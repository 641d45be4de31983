package tip

import (
	"testing"
	"time"

	"github.com/greentips/tips-platform/internal/domain/match"
)

func footballMatch(league string) match.FootballMatch {
	return match.FootballMatch{
		FixtureID:  1001,
		LeagueID:   39,
		LeagueName: league,
		Country:    "England",
		HomeTeamID: 1,
		HomeTeam:   "Arsenal",
		AwayTeamID: 2,
		AwayTeam:   "Chelsea",
		KickoffAt:  time.Date(2026, 8, 28, 16, 30, 0, 0, time.UTC),
		Status:     match.StatusScheduled,
	}
}

func basketballGame(league string) match.BasketballGame {
	return match.BasketballGame{
		GameID:     2002,
		LeagueID:   12,
		LeagueName: league,
		HomeTeamID: 10,
		HomeTeam:   "Lakers",
		AwayTeamID: 11,
		AwayTeam:   "Celtics",
		StartsAt:   time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC),
		Status:     match.StatusScheduled,
	}
}

func TestGenerateFootballTips_TopLeague(t *testing.T) {
	tips := GenerateFootballTips(footballMatch("Premier League"))

	if len(tips) != 3 {
		t.Fatalf("expected 3 tips for a top league, got %d", len(tips))
	}

	homeWin := tips[0]
	if homeWin.Market != "Arsenal Win" {
		t.Fatalf("unexpected first market: %q", homeWin.Market)
	}
	if homeWin.Confidence != 65 || homeWin.Odds != 1.85 || homeWin.IsVIP {
		t.Fatalf("unexpected home-win tip: %+v", homeWin)
	}

	btts := tips[2]
	if btts.Market != "Both Teams To Score" {
		t.Fatalf("unexpected last market: %q", btts.Market)
	}
	if btts.Confidence != 68 || btts.Odds != 1.80 || !btts.IsVIP {
		t.Fatalf("unexpected both-teams-score tip: %+v", btts)
	}

	for _, tp := range tips {
		if tp.Status != StatusPending {
			t.Fatalf("expected pending status, got %q", tp.Status)
		}
		if tp.MatchLabel != "Arsenal vs Chelsea" {
			t.Fatalf("unexpected match label: %q", tp.MatchLabel)
		}
		if tp.MatchDate != "28/08/2026" || tp.MatchTime != "16:30" {
			t.Fatalf("unexpected display date/time: %q %q", tp.MatchDate, tp.MatchTime)
		}
	}
}

func TestGenerateFootballTips_GoalLineMutuallyExclusive(t *testing.T) {
	tests := []struct {
		name       string
		league     string
		wantMarket string
		wantConf   int
	}{
		{name: "offensive league", league: "Eredivisie", wantMarket: "Over 2.5 Goals", wantConf: 70},
		{name: "offensive substring", league: "Bundesliga 2", wantMarket: "Over 2.5 Goals", wantConf: 70},
		{name: "defensive league", league: "Ligue 1", wantMarket: "Under 2.5 Goals", wantConf: 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tips := GenerateFootballTips(footballMatch(tc.league))

			var over, under int
			for _, tp := range tips {
				switch tp.Market {
				case "Over 2.5 Goals":
					over++
					if tp.Confidence != 70 || tp.Odds != 1.90 {
						t.Fatalf("unexpected over tip: %+v", tp)
					}
				case "Under 2.5 Goals":
					under++
					if tp.Confidence != 60 || tp.Odds != 1.75 {
						t.Fatalf("unexpected under tip: %+v", tp)
					}
				}
			}
			if over+under != 1 {
				t.Fatalf("expected exactly one goal-line tip, got over=%d under=%d", over, under)
			}

			want := 0
			if tc.wantMarket == "Over 2.5 Goals" {
				want = over
			} else {
				want = under
			}
			if want != 1 {
				t.Fatalf("expected %q (confidence %d) to fire for %q", tc.wantMarket, tc.wantConf, tc.league)
			}
		})
	}
}

func TestGenerateFootballTips_NeutralLeagueSingleTip(t *testing.T) {
	tips := GenerateFootballTips(footballMatch("Ligue 1"))

	if len(tips) != 1 {
		t.Fatalf("expected exactly one tip for a neutral league, got %d", len(tips))
	}
	if tips[0].Market != "Under 2.5 Goals" || tips[0].Confidence != 60 {
		t.Fatalf("unexpected tip: %+v", tips[0])
	}

	if got := FilterByConfidence(tips, 65); len(got) != 0 {
		t.Fatalf("expected tip excluded at 65 threshold, got %d", len(got))
	}
	if got := FilterByConfidence(tips, 60); len(got) != 1 {
		t.Fatalf("expected tip included at 60 threshold, got %d", len(got))
	}
}

func TestGenerateBasketballTips_NBA(t *testing.T) {
	tips := GenerateBasketballTips(basketballGame("NBA"))

	if len(tips) != 2 {
		t.Fatalf("expected 2 tips for NBA, got %d", len(tips))
	}

	over := tips[0]
	if over.Market != "Over 220.5 Points" || over.Confidence != 72 || over.Odds != 1.85 || over.IsVIP {
		t.Fatalf("unexpected over tip: %+v", over)
	}

	homeWin := tips[1]
	if homeWin.Market != "Lakers Win" || homeWin.Confidence != 63 || homeWin.Odds != 1.90 || !homeWin.IsVIP {
		t.Fatalf("unexpected home-win tip: %+v", homeWin)
	}

	sorted := SortByConfidence(tips)
	if sorted[0].IsVIP || !sorted[1].IsVIP {
		t.Fatalf("expected non-VIP tip to precede VIP tip after sorting")
	}
}

func TestGenerateBasketballTips_OtherLeague(t *testing.T) {
	tips := GenerateBasketballTips(basketballGame("Euroleague"))

	if len(tips) != 1 {
		t.Fatalf("expected single tip for non-NBA league, got %d", len(tips))
	}
	if tips[0].Market != "Over 160.5 Points" || tips[0].Confidence != 65 || tips[0].Odds != 1.80 {
		t.Fatalf("unexpected tip: %+v", tips[0])
	}
}

func TestFilterByConfidence_PreservesOrder(t *testing.T) {
	tips := []Tip{
		{Market: "a", Confidence: 72},
		{Market: "b", Confidence: 55},
		{Market: "c", Confidence: 60},
		{Market: "d", Confidence: 90},
	}

	got := FilterByConfidence(tips, 60)
	if len(got) != 3 {
		t.Fatalf("expected 3 tips, got %d", len(got))
	}
	if got[0].Market != "a" || got[1].Market != "c" || got[2].Market != "d" {
		t.Fatalf("relative order not preserved: %+v", got)
	}
}

func TestSortByConfidence_StableDescending(t *testing.T) {
	tips := []Tip{
		{Market: "a", Confidence: 65},
		{Market: "b", Confidence: 72},
		{Market: "c", Confidence: 65},
	}

	got := SortByConfidence(tips)
	if got[0].Market != "b" {
		t.Fatalf("expected highest confidence first, got %q", got[0].Market)
	}
	if got[1].Market != "a" || got[2].Market != "c" {
		t.Fatalf("expected stable order among equal confidence: %+v", got)
	}
	if tips[0].Market != "a" {
		t.Fatalf("input slice mutated")
	}
}

func TestGroupByMarket(t *testing.T) {
	tips := []Tip{
		{Market: "Over 2.5 Goals", Confidence: 70},
		{Market: "Under 2.5 Goals", Confidence: 60},
		{Market: "Over 2.5 Goals", Confidence: 70},
	}

	groups := GroupByMarket(tips)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups["Over 2.5 Goals"]) != 2 {
		t.Fatalf("unexpected over group size: %d", len(groups["Over 2.5 Goals"]))
	}
}

func TestSummarize(t *testing.T) {
	tips := []Tip{
		{Confidence: 72},
		{Confidence: 65},
		{Confidence: 55},
	}

	summary := Summarize(tips)
	if summary.Total != 3 {
		t.Fatalf("unexpected total: %d", summary.Total)
	}
	if summary.HighConfidence != 1 || summary.MediumConfidence != 1 || summary.LowConfidence != 1 {
		t.Fatalf("unexpected bands: %+v", summary)
	}
	if summary.AvgConfidence != 64 {
		t.Fatalf("unexpected average: %v", summary.AvgConfidence)
	}

	if empty := Summarize(nil); empty.Total != 0 || empty.AvgConfidence != 0 {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
}
