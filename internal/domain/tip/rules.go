package tip

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/greentips/tips-platform/internal/domain/match"
)

// Static league heuristics the rule engine keys off. Membership in
// topFootballLeagues is an exact match; offensiveFootballLeagues and the
// NBA check are substring matches against the provider league name.
var topFootballLeagues = []string{
	"Premier League",
	"La Liga",
	"Serie A",
	"Bundesliga",
	"Champions League",
	"Brasileirão",
}

var offensiveFootballLeagues = []string{
	"Bundesliga",
	"Eredivisie",
	"Brasileirão",
}

const (
	displayDateLayout = "02/01/2006"
	displayTimeLayout = "15:04"
)

func formatKickoff(t time.Time) (string, string) {
	return t.Format(displayDateLayout), t.Format(displayTimeLayout)
}

func isTopFootballLeague(league string) bool {
	for _, name := range topFootballLeagues {
		if league == name {
			return true
		}
	}
	return false
}

func isOffensiveFootballLeague(league string) bool {
	for _, name := range offensiveFootballLeagues {
		if strings.Contains(league, name) {
			return true
		}
	}
	return false
}

// GenerateFootballTips derives candidate tips for one fixture. The rules are
// a fixed lookup table: top leagues add a home-win tip and a VIP
// both-teams-score tip, and exactly one of over-2.5 or under-2.5 always
// fires depending on the league's scoring profile.
func GenerateFootballTips(m match.FootballMatch) []Tip {
	date, clock := formatKickoff(m.KickoffAt)
	base := Tip{
		Sport:      match.SportFootball,
		League:     m.LeagueName,
		MatchLabel: m.Label(),
		MatchDate:  date,
		MatchTime:  clock,
		Status:     StatusPending,
	}

	var tips []Tip
	topLeague := isTopFootballLeague(m.LeagueName)

	if topLeague {
		homeWin := base
		homeWin.Market = fmt.Sprintf("%s Win", m.HomeTeam)
		homeWin.Odds = 1.85
		homeWin.Confidence = 65
		homeWin.Analysis = fmt.Sprintf("%s at home in a top-flight league. Strong record and home advantage.", m.HomeTeam)
		tips = append(tips, homeWin)
	}

	if isOffensiveFootballLeague(m.LeagueName) {
		over := base
		over.Market = "Over 2.5 Goals"
		over.Odds = 1.90
		over.Confidence = 70
		over.Analysis = fmt.Sprintf("%s is known for open, attacking football. Both sides score regularly.", m.LeagueName)
		tips = append(tips, over)
	} else {
		under := base
		under.Market = "Under 2.5 Goals"
		under.Odds = 1.75
		under.Confidence = 60
		under.Analysis = "League trends defensive. Teams tend to play cautiously."
		tips = append(tips, under)
	}

	if topLeague {
		btts := base
		btts.Market = "Both Teams To Score"
		btts.Odds = 1.80
		btts.Confidence = 68
		btts.Analysis = fmt.Sprintf("High-level sides with strong attacks: %s. Both carry real goal threat.", m.Label())
		btts.IsVIP = true
		tips = append(tips, btts)
	}

	return tips
}

// GenerateBasketballTips derives candidate tips for one game. NBA games get
// a high-total over plus a VIP home-win tip, everything else a single
// lower-total over.
func GenerateBasketballTips(g match.BasketballGame) []Tip {
	date, clock := formatKickoff(g.StartsAt)
	base := Tip{
		Sport:      match.SportBasketball,
		League:     g.LeagueName,
		MatchLabel: g.Label(),
		MatchDate:  date,
		MatchTime:  clock,
		Status:     StatusPending,
	}

	if strings.Contains(g.LeagueName, "NBA") {
		over := base
		over.Market = "Over 220.5 Points"
		over.Odds = 1.85
		over.Confidence = 72
		over.Analysis = "NBA games run high-scoring. Both teams play at a strong offensive pace."

		homeWin := base
		homeWin.Market = fmt.Sprintf("%s Win", g.HomeTeam)
		homeWin.Odds = 1.90
		homeWin.Confidence = 63
		homeWin.Analysis = fmt.Sprintf("%s with home-court advantage. Crowd and court familiarity matter in the NBA.", g.HomeTeam)
		homeWin.IsVIP = true

		return []Tip{over, homeWin}
	}

	over := base
	over.Market = "Over 160.5 Points"
	over.Odds = 1.80
	over.Confidence = 65
	over.Analysis = "Solid scoring expected. Both teams have offensive capability."
	return []Tip{over}
}

// FilterByConfidence keeps tips at or above the minimum, preserving order.
func FilterByConfidence(tips []Tip, minConfidence int) []Tip {
	out := make([]Tip, 0, len(tips))
	for _, t := range tips {
		if t.Confidence >= minConfidence {
			out = append(out, t)
		}
	}
	return out
}

// SortByConfidence returns a copy sorted descending by confidence. The sort
// is stable so equal-confidence tips keep their generation order.
func SortByConfidence(tips []Tip) []Tip {
	out := make([]Tip, len(tips))
	copy(out, tips)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// GroupByMarket buckets tips by their recommendation label.
func GroupByMarket(tips []Tip) map[string][]Tip {
	out := make(map[string][]Tip)
	for _, t := range tips {
		out[t.Market] = append(out[t.Market], t)
	}
	return out
}

// Summary aggregates a tip batch by confidence band.
type Summary struct {
	Total            int
	AvgConfidence    float64
	HighConfidence   int
	MediumConfidence int
	LowConfidence    int
}

func Summarize(tips []Tip) Summary {
	summary := Summary{Total: len(tips)}
	if summary.Total == 0 {
		return summary
	}

	var sum int
	for _, t := range tips {
		sum += t.Confidence
		switch {
		case t.Confidence >= 70:
			summary.HighConfidence++
		case t.Confidence >= 60:
			summary.MediumConfidence++
		default:
			summary.LowConfidence++
		}
	}
	summary.AvgConfidence = math.Round(float64(sum)/float64(summary.Total)*100) / 100

	return summary
}
