package stats

import (
	"math"
	"time"
)

// Statistics is the singleton aggregate row derived from the full tip set.
// ROI is display-only and not computed by this service.
type Statistics struct {
	ID        int64
	TotalTips int64
	GreenTips int64
	RedTips   int64
	WinRate   float64
	ROI       string
	UpdatedAt time.Time
}

const DefaultROI = "+0%"

// Compute derives the aggregate from status counts. Pending tips count
// toward the denominator, so the win rate understates until tips settle.
func Compute(green, red, pending int64) Statistics {
	total := green + red + pending
	var winRate float64
	if total > 0 {
		winRate = math.Round(float64(green)/float64(total)*100*100) / 100
	}

	return Statistics{
		TotalTips: total,
		GreenTips: green,
		RedTips:   red,
		WinRate:   winRate,
		ROI:       DefaultROI,
	}
}
