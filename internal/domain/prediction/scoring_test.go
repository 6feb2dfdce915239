package prediction

import (
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
)

func endedMatch(id, status string) match.Match {
	return match.Match{
		ID:           id,
		Status:       status,
		Teams:        []string{"India", "Australia"},
		MatchStarted: true,
		MatchEnded:   true,
	}
}

func pick(matchID, team string, points int) Prediction {
	return Prediction{
		ID:              "p-" + matchID,
		UserID:          "user-1",
		MatchID:         matchID,
		PredictedWinner: team,
		PredictedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		PointValue:      points,
	}
}

func TestScore_Outcomes(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		endedMatch("m-won", "India won by 5 wickets"),
		endedMatch("m-lost", "Australia won by 20 runs"),
		endedMatch("m-tied", "Match tied"),
		{ID: "m-live", Status: "India need 40 runs", Teams: []string{"India", "Australia"}, MatchStarted: true},
	}
	predictions := []Prediction{
		pick("m-won", "india", DefaultPointValue),
		pick("m-lost", "India", DefaultPointValue),
		pick("m-tied", "India", DefaultPointValue),
		pick("m-live", "India", DefaultPointValue),
		pick("m-missing", "India", DefaultPointValue),
	}

	got := Score(predictions, matches, NoWinnerLost)
	if len(got) != len(predictions) {
		t.Fatalf("expected %d scored predictions, got %d", len(predictions), len(got))
	}

	want := []struct {
		outcome Outcome
		winner  string
		found   bool
		points  int
	}{
		{OutcomeWon, "India", true, DefaultPointValue},
		{OutcomeLost, "Australia", true, 0},
		{OutcomeLost, "", true, 0},
		{OutcomePending, "", true, 0},
		{OutcomePending, "", false, 0},
	}
	for i, w := range want {
		s := got[i]
		if s.Outcome != w.outcome || s.ActualWinner != w.winner || s.MatchFound != w.found || s.PointsAwarded != w.points {
			t.Fatalf("prediction %s: got outcome=%s winner=%q found=%v points=%d, want %+v",
				s.MatchID, s.Outcome, s.ActualWinner, s.MatchFound, s.PointsAwarded, w)
		}
	}
}

func TestScore_NoWinnerPendingPolicy(t *testing.T) {
	t.Parallel()

	got := Score(
		[]Prediction{pick("m-1", "India", DefaultPointValue)},
		[]match.Match{endedMatch("m-1", "Match abandoned without a result")},
		NoWinnerPending,
	)
	if got[0].Outcome != OutcomePending {
		t.Fatalf("expected pending under pending policy, got %s", got[0].Outcome)
	}
}

func TestScore_IsIdempotentAndLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	predictions := []Prediction{pick("m-1", "India", LegacyPointValue)}
	original := append([]Prediction(nil), predictions...)
	matches := []match.Match{endedMatch("m-1", "India won by 1 run")}

	first := Score(predictions, matches, NoWinnerLost)
	second := Score(predictions, matches, NoWinnerLost)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected repeated scoring to match: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(predictions, original) {
		t.Fatalf("input predictions were modified")
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	scored := func(outcome Outcome, points int) Scored {
		return Scored{Prediction: Prediction{PointValue: points}, Outcome: outcome}
	}

	cases := []struct {
		name   string
		input  []Scored
		points int
		acc    int
	}{
		{
			name:   "two won one lost one pending",
			input:  []Scored{scored(OutcomeWon, 2), scored(OutcomeWon, 2), scored(OutcomeLost, 2), scored(OutcomePending, 2)},
			points: 4,
			acc:    67,
		},
		{
			name:   "legacy point value",
			input:  []Scored{scored(OutcomeWon, LegacyPointValue), scored(OutcomeWon, DefaultPointValue)},
			points: 102,
			acc:    100,
		},
		{
			name:   "half rounds up",
			input:  []Scored{scored(OutcomeWon, 2), scored(OutcomeLost, 2)},
			points: 2,
			acc:    50,
		},
		{
			name:   "one of three rounds down",
			input:  []Scored{scored(OutcomeWon, 2), scored(OutcomeLost, 2), scored(OutcomeLost, 2)},
			points: 2,
			acc:    33,
		},
		{
			name:   "nothing completed",
			input:  []Scored{scored(OutcomePending, 2)},
			points: 0,
			acc:    0,
		},
		{
			name: "empty",
		},
	}

	for _, tc := range cases {
		stats := ComputeStats(tc.input)
		if stats.TotalPoints != tc.points || stats.Accuracy != tc.acc {
			t.Fatalf("%s: got points=%d accuracy=%d, want points=%d accuracy=%d", tc.name, stats.TotalPoints, stats.Accuracy, tc.points, tc.acc)
		}
		if stats.Completed != stats.Won+stats.Lost {
			t.Fatalf("%s: completed %d != won %d + lost %d", tc.name, stats.Completed, stats.Won, stats.Lost)
		}
	}
}

func TestParseNoWinnerPolicy(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]NoWinnerPolicy{"": NoWinnerLost, "LOST": NoWinnerLost, " pending ": NoWinnerPending} {
		got, err := ParseNoWinnerPolicy(raw)
		if err != nil || got != want {
			t.Fatalf("ParseNoWinnerPolicy(%q) = (%q, %v), want %q", raw, got, err, want)
		}
	}
	if _, err := ParseNoWinnerPolicy("void"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
