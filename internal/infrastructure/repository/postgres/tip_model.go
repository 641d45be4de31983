package postgres

import (
	"time"

	"github.com/greentips/tips-platform/internal/domain/tip"
)

type tipTableModel struct {
	ID         int64     `db:"id"`
	Sport      string    `db:"sport"`
	League     string    `db:"league"`
	MatchLabel string    `db:"match"`
	MatchDate  string    `db:"date"`
	MatchTime  string    `db:"time"`
	Market     string    `db:"tip"`
	Odds       float64   `db:"odds"`
	Confidence int       `db:"confidence"`
	Analysis   string    `db:"analysis"`
	Status     string    `db:"status"`
	IsVIP      bool      `db:"is_vip"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type tipInsertModel struct {
	Sport      string  `db:"sport"`
	League     string  `db:"league"`
	MatchLabel string  `db:"match"`
	MatchDate  string  `db:"date"`
	MatchTime  string  `db:"time"`
	Market     string  `db:"tip"`
	Odds       float64 `db:"odds"`
	Confidence int     `db:"confidence"`
	Analysis   string  `db:"analysis"`
	Status     string  `db:"status"`
	IsVIP      bool    `db:"is_vip"`
}

func newTipInsertModel(t tip.Tip) tipInsertModel {
	return tipInsertModel{
		Sport:      t.Sport,
		League:     t.League,
		MatchLabel: t.MatchLabel,
		MatchDate:  t.MatchDate,
		MatchTime:  t.MatchTime,
		Market:     t.Market,
		Odds:       t.Odds,
		Confidence: t.Confidence,
		Analysis:   t.Analysis,
		Status:     t.Status,
		IsVIP:      t.IsVIP,
	}
}

func (row tipTableModel) toDomain() tip.Tip {
	return tip.Tip{
		ID:         row.ID,
		Sport:      row.Sport,
		League:     row.League,
		MatchLabel: row.MatchLabel,
		MatchDate:  row.MatchDate,
		MatchTime:  row.MatchTime,
		Market:     row.Market,
		Odds:       row.Odds,
		Confidence: row.Confidence,
		Analysis:   row.Analysis,
		Status:     row.Status,
		IsVIP:      row.IsVIP,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
