package profile

import (
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
)

// Profile holds the denormalised scoring totals shown on the leaderboard.
// TotalPoints and Accuracy are recomputed from predictions, never edited directly.
type Profile struct {
	UserID      string
	DisplayName string
	AvatarURL   string
	TotalPoints int
	Accuracy    int
	Guest       bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatsDiffer reports whether the stored totals diverge from freshly computed stats.
func (p Profile) StatsDiffer(stats prediction.Stats) bool {
	return p.TotalPoints != stats.TotalPoints || p.Accuracy != stats.Accuracy
}

// Less orders profiles for the leaderboard: points desc, accuracy desc, then name and id.
func Less(a, b Profile) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.Accuracy != b.Accuracy {
		return a.Accuracy > b.Accuracy
	}
	if a.DisplayName != b.DisplayName {
		return a.DisplayName < b.DisplayName
	}
	return a.UserID < b.UserID
}
