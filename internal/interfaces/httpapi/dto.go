package httpapi

import (
	"time"

	"github.com/greentips/tips-platform/internal/domain/stats"
	"github.com/greentips/tips-platform/internal/domain/tip"
)

type tipDTO struct {
	ID         int64     `json:"id"`
	Sport      string    `json:"sport"`
	League     string    `json:"league"`
	Match      string    `json:"match"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Tip        string    `json:"tip"`
	Odds       float64   `json:"odds"`
	Confidence int       `json:"confidence"`
	Analysis   string    `json:"analysis"`
	Status     string    `json:"status"`
	IsVIP      bool      `json:"is_vip"`
	CreatedAt  time.Time `json:"created_at"`
}

func tipToDTO(t tip.Tip) tipDTO {
	return tipDTO{
		ID:         t.ID,
		Sport:      t.Sport,
		League:     t.League,
		Match:      t.MatchLabel,
		Date:       t.MatchDate,
		Time:       t.MatchTime,
		Tip:        t.Market,
		Odds:       t.Odds,
		Confidence: t.Confidence,
		Analysis:   t.Analysis,
		Status:     t.Status,
		IsVIP:      t.IsVIP,
		CreatedAt:  t.CreatedAt,
	}
}

func tipsToDTO(tips []tip.Tip) []tipDTO {
	items := make([]tipDTO, 0, len(tips))
	for _, t := range tips {
		items = append(items, tipToDTO(t))
	}
	return items
}

type statisticsDTO struct {
	TotalTips int64     `json:"total_tips"`
	GreenTips int64     `json:"green_tips"`
	RedTips   int64     `json:"red_tips"`
	WinRate   float64   `json:"win_rate"`
	ROI       string    `json:"roi"`
	UpdatedAt time.Time `json:"updated_at"`
}

func statisticsToDTO(s stats.Statistics) statisticsDTO {
	return statisticsDTO{
		TotalTips: s.TotalTips,
		GreenTips: s.GreenTips,
		RedTips:   s.RedTips,
		WinRate:   s.WinRate,
		ROI:       s.ROI,
		UpdatedAt: s.UpdatedAt,
	}
}
