package cricapi

import (
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
)

type seriesInfoEnvelope struct {
	Status string         `json:"status"`
	Reason string         `json:"reason"`
	Data   seriesInfoData `json:"data"`
}

type seriesInfoData struct {
	Info      seriesInfo    `json:"info"`
	MatchList []matchRecord `json:"matchList"`
}

type seriesInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
	Matches   int    `json:"matches"`
}

type matchRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	MatchType    string       `json:"matchType"`
	Status       string       `json:"status"`
	Venue        string       `json:"venue"`
	Date         string       `json:"date"`
	DateTimeGMT  string       `json:"dateTimeGMT"`
	Teams        []string     `json:"teams"`
	TeamInfo     []teamRecord `json:"teamInfo"`
	SeriesID     string       `json:"series_id"`
	MatchStarted bool         `json:"matchStarted"`
	MatchEnded   bool         `json:"matchEnded"`
}

type teamRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
	Img       string `json:"img"`
}

// DecodeSeriesPayload decodes a stored or fresh series_info response body.
func (c *Client) DecodeSeriesPayload(payload []byte) (match.SeriesSnapshot, error) {
	return decodeSeriesPayload(payload)
}

func decodeSeriesPayload(payload []byte) (match.SeriesSnapshot, error) {
	if len(payload) == 0 {
		return match.SeriesSnapshot{}, fmt.Errorf("decode series payload: empty body")
	}

	var envelope seriesInfoEnvelope
	if err := sonic.Unmarshal(payload, &envelope); err != nil {
		return match.SeriesSnapshot{}, fmt.Errorf("decode series payload: %w", err)
	}

	snapshot := match.SeriesSnapshot{
		Status: strings.TrimSpace(envelope.Status),
		Info: match.SeriesInfo{
			ID:         strings.TrimSpace(envelope.Data.Info.ID),
			Name:       strings.TrimSpace(envelope.Data.Info.Name),
			StartDate:  strings.TrimSpace(envelope.Data.Info.StartDate),
			EndDate:    strings.TrimSpace(envelope.Data.Info.EndDate),
			MatchCount: envelope.Data.Info.Matches,
		},
		Matches: make([]match.Match, 0, len(envelope.Data.MatchList)),
	}
	for _, item := range envelope.Data.MatchList {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		snapshot.Matches = append(snapshot.Matches, mapMatch(item))
	}
	return snapshot, nil
}

func mapMatch(item matchRecord) match.Match {
	out := match.Match{
		ID:           strings.TrimSpace(item.ID),
		Name:         strings.TrimSpace(item.Name),
		MatchType:    strings.TrimSpace(item.MatchType),
		Status:       strings.TrimSpace(item.Status),
		Venue:        strings.TrimSpace(item.Venue),
		Date:         strings.TrimSpace(item.Date),
		Teams:        make([]string, 0, len(item.Teams)),
		TeamInfo:     make([]match.Team, 0, len(item.TeamInfo)),
		SeriesID:     strings.TrimSpace(item.SeriesID),
		MatchStarted: item.MatchStarted,
		MatchEnded:   item.MatchEnded,
	}
	if startsAt, ok := match.ParseStartTime(item.DateTimeGMT); ok {
		out.StartsAt = startsAt
	} else if startsAt, ok := match.ParseStartTime(item.Date); ok {
		out.StartsAt = startsAt
	}

	for _, name := range item.Teams {
		if name = strings.TrimSpace(name); name != "" {
			out.Teams = append(out.Teams, name)
		}
	}
	for _, team := range item.TeamInfo {
		name := strings.TrimSpace(team.Name)
		if name == "" {
			continue
		}
		out.TeamInfo = append(out.TeamInfo, match.Team{
			ID:        strings.TrimSpace(team.ID),
			Name:      name,
			ShortName: strings.TrimSpace(team.ShortName),
			ImageURL:  strings.TrimSpace(team.Img),
		})
	}
	return out.Normalize()
}
