package prediction

import (
	"errors"
	"time"
)

const (
	// LegacyPointValue was awarded per correct pick under the first scoring scheme.
	LegacyPointValue = 100
	// DefaultPointValue is awarded per correct pick for new predictions.
	DefaultPointValue = 2
)

var (
	ErrLocked      = errors.New("prediction is locked")
	ErrUnknownTeam = errors.New("predicted team is not playing in this match")
)

// Prediction is one user's pick for one match. (UserID, MatchID) identifies it.
type Prediction struct {
	ID              string
	UserID          string
	MatchID         string
	MatchName       string
	PredictedWinner string
	PredictedAt     time.Time
	PointValue      int
	AIBonus         bool
}

type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

func (o Outcome) Completed() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// Scored is a prediction joined with the outcome derived from the current match feed.
type Scored struct {
	Prediction
	Outcome       Outcome
	ActualWinner  string
	MatchFound    bool
	PointsAwarded int
}

type Stats struct {
	TotalPoints int
	Accuracy    int
	Completed   int
	Won         int
	Lost        int
	Pending     int
}
