package tip

import (
	"fmt"
	"time"
)

const (
	StatusPending = "pending"
	StatusGreen   = "green"
	StatusRed     = "red"
)

// Tip is one generated betting recommendation. MatchDate and MatchTime are
// display strings derived once from the match kickoff at generation time;
// there is no foreign key back to the match row, linkage is by MatchLabel.
type Tip struct {
	ID         int64
	Sport      string
	League     string
	MatchLabel string
	MatchDate  string
	MatchTime  string
	Market     string
	Odds       float64
	Confidence int
	Analysis   string
	Status     string
	IsVIP      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusGreen, StatusRed:
		return true
	default:
		return false
	}
}

// IsValidOutcome reports whether status is a settled outcome. Outcome
// updates may not move a tip back to pending.
func IsValidOutcome(status string) bool {
	return status == StatusGreen || status == StatusRed
}

func (t Tip) ValidateBasic() error {
	if t.Sport == "" {
		return fmt.Errorf("tip sport is required")
	}
	if t.League == "" {
		return fmt.Errorf("tip league is required")
	}
	if t.MatchLabel == "" {
		return fmt.Errorf("tip match label is required")
	}
	if t.Market == "" {
		return fmt.Errorf("tip market is required")
	}
	if t.Odds <= 1.0 {
		return fmt.Errorf("tip odds must be greater than 1.0")
	}
	if t.Confidence < 0 || t.Confidence > 100 {
		return fmt.Errorf("tip confidence must be between 0 and 100")
	}
	if !IsValidStatus(t.Status) {
		return fmt.Errorf("invalid tip status %q", t.Status)
	}

	return nil
}
