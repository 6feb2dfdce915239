package match

import (
	"sort"
	"strings"
	"time"
)

const statusSuccess = "success"

type Team struct {
	ID        string
	Name      string
	ShortName string
	ImageURL  string
}

// Match is one fixture of a tracked series as reported by the data provider.
type Match struct {
	ID           string
	Name         string
	MatchType    string
	Status       string
	Venue        string
	Date         string
	StartsAt     time.Time
	Teams        []string
	TeamInfo     []Team
	SeriesID     string
	MatchStarted bool
	MatchEnded   bool
}

// Normalize enforces that an ended match has also started.
func (m Match) Normalize() Match {
	if m.MatchEnded {
		m.MatchStarted = true
	}
	return m
}

// TeamNames returns the candidate full team names, preferring team info over the bare teams list.
func (m Match) TeamNames() []string {
	out := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}

	for _, t := range m.TeamInfo {
		add(t.Name)
	}
	if len(out) == 0 {
		for _, name := range m.Teams {
			add(name)
		}
	}
	return out
}

// HasTeam reports whether name matches one of the match teams, ignoring case and outer spaces.
func (m Match) HasTeam(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, candidate := range m.TeamNames() {
		if strings.EqualFold(candidate, name) {
			return candidate, true
		}
	}
	return "", false
}

func (m Match) IsLive() bool {
	if strings.Contains(strings.ToLower(m.Status), "live") {
		return true
	}
	return m.MatchStarted && !m.MatchEnded
}

// HasStartedAt reports whether predictions for the match are closed at now.
func (m Match) HasStartedAt(now time.Time) bool {
	if m.MatchStarted || m.MatchEnded {
		return true
	}
	return !m.StartsAt.IsZero() && !now.Before(m.StartsAt)
}

type SeriesInfo struct {
	ID         string
	Name       string
	StartDate  string
	EndDate    string
	MatchCount int
}

// SeriesSnapshot is the decoded provider response for one series.
type SeriesSnapshot struct {
	Status  string
	Info    SeriesInfo
	Matches []Match
}

func (s SeriesSnapshot) Succeeded() bool {
	return strings.EqualFold(strings.TrimSpace(s.Status), statusSuccess)
}

func (s SeriesSnapshot) FindMatch(matchID string) (Match, bool) {
	for _, m := range s.Matches {
		if m.ID == matchID {
			return m, true
		}
	}
	return Match{}, false
}

// SortedByStart returns a copy ordered by start time, earliest first. Unknown start times go last.
func (s SeriesSnapshot) SortedByStart() []Match {
	out := append([]Match(nil), s.Matches...)
	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i].StartsAt, out[j].StartsAt
		switch {
		case left.IsZero() != right.IsZero():
			return right.IsZero()
		case !left.Equal(right):
			return left.Before(right)
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}

// ByID indexes matches by id for scoring lookups.
func (s SeriesSnapshot) ByID() map[string]Match {
	out := make(map[string]Match, len(s.Matches))
	for _, m := range s.Matches {
		out[m.ID] = m
	}
	return out
}
