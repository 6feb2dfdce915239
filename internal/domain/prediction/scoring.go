package prediction

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
)

// NoWinnerPolicy decides the outcome of a pick on an ended match whose winner cannot be determined.
type NoWinnerPolicy string

const (
	NoWinnerLost    NoWinnerPolicy = "lost"
	NoWinnerPending NoWinnerPolicy = "pending"
)

func ParseNoWinnerPolicy(raw string) (NoWinnerPolicy, error) {
	switch NoWinnerPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", NoWinnerLost:
		return NoWinnerLost, nil
	case NoWinnerPending:
		return NoWinnerPending, nil
	default:
		return "", fmt.Errorf("invalid no-winner policy %q: valid values are %s, %s", raw, NoWinnerLost, NoWinnerPending)
	}
}

// Score derives the outcome of every prediction from the given matches. Predictions
// whose match is missing or not ended stay pending. The input slice is not modified.
func Score(predictions []Prediction, matches []match.Match, policy NoWinnerPolicy) []Scored {
	byID := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	out := make([]Scored, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, scoreOne(p, byID, policy))
	}
	return out
}

func scoreOne(p Prediction, matches map[string]match.Match, policy NoWinnerPolicy) Scored {
	scored := Scored{Prediction: p, Outcome: OutcomePending}

	m, ok := matches[p.MatchID]
	if !ok {
		return scored
	}
	scored.MatchFound = true
	if !m.MatchEnded {
		return scored
	}

	winner, found := ExtractWinner(m.Status, m.TeamNames())
	switch {
	case found:
		scored.ActualWinner = winner
		if sameTeam(p.PredictedWinner, winner) {
			scored.Outcome = OutcomeWon
			scored.PointsAwarded = p.PointValue
		} else {
			scored.Outcome = OutcomeLost
		}
	case policy == NoWinnerPending:
		scored.Outcome = OutcomePending
	default:
		scored.Outcome = OutcomeLost
	}
	return scored
}

func sameTeam(left, right string) bool {
	return strings.EqualFold(strings.TrimSpace(left), strings.TrimSpace(right))
}

// ComputeStats aggregates scored predictions. Points come from each record's own
// point value. Accuracy is round-half-up of 100*won/completed and 0 when nothing completed.
func ComputeStats(scored []Scored) Stats {
	var stats Stats
	for _, s := range scored {
		switch s.Outcome {
		case OutcomeWon:
			stats.Won++
			stats.TotalPoints += s.PointValue
		case OutcomeLost:
			stats.Lost++
		default:
			stats.Pending++
		}
	}

	stats.Completed = stats.Won + stats.Lost
	if stats.Completed > 0 {
		stats.Accuracy = (200*stats.Won + stats.Completed) / (2 * stats.Completed)
	}
	return stats
}
