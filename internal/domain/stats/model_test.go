package stats

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		green       int64
		red         int64
		pending     int64
		wantTotal   int64
		wantWinRate float64
	}{
		{name: "empty", wantTotal: 0, wantWinRate: 0},
		{name: "all green", green: 4, wantTotal: 4, wantWinRate: 100},
		{name: "mixed", green: 2, red: 1, pending: 1, wantTotal: 4, wantWinRate: 50},
		{name: "pending dilutes rate", green: 1, red: 0, pending: 2, wantTotal: 3, wantWinRate: 33.33},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.green, tc.red, tc.pending)
			if got.TotalTips != tc.wantTotal {
				t.Fatalf("unexpected total: %d", got.TotalTips)
			}
			if got.WinRate != tc.wantWinRate {
				t.Fatalf("unexpected win rate: %v", got.WinRate)
			}
			if got.ROI != DefaultROI {
				t.Fatalf("unexpected roi: %q", got.ROI)
			}
		})
	}
}
