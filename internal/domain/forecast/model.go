package forecast

import "math"

type Input struct {
	Team1Name        string `json:"team1Name" validate:"required"`
	Team2Name        string `json:"team2Name" validate:"required"`
	MatchConditions  string `json:"matchConditions"`
	PlayerStatistics string `json:"playerStatistics,omitempty"`
}

type Forecast struct {
	Team1WinPercentage float64
	Team2WinPercentage float64
	Rationale          string
}

// Normalize rescales the two percentages to sum to 100, rounded to one decimal.
// Negative or non-finite values count as zero; if both are zero the split is even.
func (f Forecast) Normalize() Forecast {
	a, b := clean(f.Team1WinPercentage), clean(f.Team2WinPercentage)
	total := a + b
	if total == 0 {
		f.Team1WinPercentage, f.Team2WinPercentage = 50, 50
		return f
	}

	f.Team1WinPercentage = math.Round(a/total*1000) / 10
	f.Team2WinPercentage = math.Round((100-f.Team1WinPercentage)*10) / 10
	return f
}

func clean(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
