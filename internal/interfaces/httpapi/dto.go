package httpapi

import (
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
	"github.com/riskibarqy/cricket-predictions/internal/usecase"
)

type seriesDTO struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	MatchCount int        `json:"match_count"`
	Matches    []matchDTO `json:"matches"`
}

type teamDTO struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	ImageURL  string `json:"image_url"`
}

type matchDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MatchType    string    `json:"match_type"`
	Status       string    `json:"status"`
	Venue        string    `json:"venue"`
	Date         string    `json:"date"`
	StartsAt     string    `json:"starts_at,omitempty"`
	Teams        []string  `json:"teams"`
	TeamInfo     []teamDTO `json:"team_info"`
	SeriesID     string    `json:"series_id"`
	MatchStarted bool      `json:"match_started"`
	MatchEnded   bool      `json:"match_ended"`
	Live         bool      `json:"live"`
	Winner       string    `json:"winner,omitempty"`
}

type predictionDTO struct {
	ID              string `json:"id"`
	MatchID         string `json:"match_id"`
	MatchName       string `json:"match_name"`
	PredictedWinner string `json:"predicted_winner"`
	PredictedAt     string `json:"predicted_at"`
	PointValue      int    `json:"point_value"`
	AIBonus         bool   `json:"ai_bonus"`
}

type scoredPredictionDTO struct {
	predictionDTO
	Outcome       string `json:"outcome"`
	ActualWinner  string `json:"actual_winner,omitempty"`
	MatchFound    bool   `json:"match_found"`
	PointsAwarded int    `json:"points_awarded"`
}

type statsDTO struct {
	TotalPoints int `json:"total_points"`
	Accuracy    int `json:"accuracy"`
	Completed   int `json:"completed"`
	Won         int `json:"won"`
	Lost        int `json:"lost"`
	Pending     int `json:"pending"`
}

type scoredPredictionsDTO struct {
	Items         []scoredPredictionDTO `json:"items"`
	Stats         statsDTO              `json:"stats"`
	Profile       profileDTO            `json:"profile"`
	FeedAvailable bool                  `json:"feed_available"`
}

type profileDTO struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	TotalPoints int    `json:"total_points"`
	Accuracy    int    `json:"accuracy"`
	Guest       bool   `json:"guest"`
}

type leaderboardEntryDTO struct {
	Rank int `json:"rank"`
	profileDTO
}

type forecastDTO struct {
	MatchID            string  `json:"match_id"`
	Team1Name          string  `json:"team1_name"`
	Team2Name          string  `json:"team2_name"`
	Team1WinPercentage float64 `json:"team1_win_percentage"`
	Team2WinPercentage float64 `json:"team2_win_percentage"`
	Rationale          string  `json:"rationale,omitempty"`
}

func seriesToDTO(snapshot match.SeriesSnapshot) seriesDTO {
	out := seriesDTO{
		ID:         snapshot.Info.ID,
		Name:       snapshot.Info.Name,
		StartDate:  snapshot.Info.StartDate,
		EndDate:    snapshot.Info.EndDate,
		MatchCount: snapshot.Info.MatchCount,
		Matches:    make([]matchDTO, 0, len(snapshot.Matches)),
	}
	for _, item := range snapshot.Matches {
		out.Matches = append(out.Matches, matchToDTO(item))
	}
	return out
}

func matchToDTO(item match.Match) matchDTO {
	out := matchDTO{
		ID:           item.ID,
		Name:         item.Name,
		MatchType:    item.MatchType,
		Status:       item.Status,
		Venue:        item.Venue,
		Date:         item.Date,
		StartsAt:     formatTime(item.StartsAt),
		Teams:        append([]string{}, item.Teams...),
		TeamInfo:     make([]teamDTO, 0, len(item.TeamInfo)),
		SeriesID:     item.SeriesID,
		MatchStarted: item.MatchStarted,
		MatchEnded:   item.MatchEnded,
		Live:         item.IsLive(),
	}
	for _, team := range item.TeamInfo {
		out.TeamInfo = append(out.TeamInfo, teamDTO{
			ID:        team.ID,
			Name:      team.Name,
			ShortName: team.ShortName,
			ImageURL:  team.ImageURL,
		})
	}
	if item.MatchEnded {
		if winner, ok := prediction.ExtractWinner(item.Status, item.TeamNames()); ok {
			out.Winner = winner
		}
	}
	return out
}

func predictionToDTO(item prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:              item.ID,
		MatchID:         item.MatchID,
		MatchName:       item.MatchName,
		PredictedWinner: item.PredictedWinner,
		PredictedAt:     formatTime(item.PredictedAt),
		PointValue:      item.PointValue,
		AIBonus:         item.AIBonus,
	}
}

func scoredPredictionsToDTO(result usecase.ScoredPredictions) scoredPredictionsDTO {
	out := scoredPredictionsDTO{
		Items: make([]scoredPredictionDTO, 0, len(result.Items)),
		Stats: statsDTO{
			TotalPoints: result.Stats.TotalPoints,
			Accuracy:    result.Stats.Accuracy,
			Completed:   result.Stats.Completed,
			Won:         result.Stats.Won,
			Lost:        result.Stats.Lost,
			Pending:     result.Stats.Pending,
		},
		Profile:       profileToDTO(result.Profile),
		FeedAvailable: result.FeedAvailable,
	}
	for _, item := range result.Items {
		out.Items = append(out.Items, scoredPredictionDTO{
			predictionDTO: predictionToDTO(item.Prediction),
			Outcome:       string(item.Outcome),
			ActualWinner:  item.ActualWinner,
			MatchFound:    item.MatchFound,
			PointsAwarded: item.PointsAwarded,
		})
	}
	return out
}

func profileToDTO(item profile.Profile) profileDTO {
	return profileDTO{
		UserID:      item.UserID,
		DisplayName: item.DisplayName,
		AvatarURL:   item.AvatarURL,
		TotalPoints: item.TotalPoints,
		Accuracy:    item.Accuracy,
		Guest:       item.Guest,
	}
}

func leaderboardEntryToDTO(entry usecase.LeaderboardEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:       entry.Rank,
		profileDTO: profileToDTO(entry.Profile),
	}
}

func forecastToDTO(result usecase.MatchForecast) forecastDTO {
	return forecastDTO{
		MatchID:            result.Match.ID,
		Team1Name:          result.Input.Team1Name,
		Team2Name:          result.Input.Team2Name,
		Team1WinPercentage: result.Forecast.Team1WinPercentage,
		Team2WinPercentage: result.Forecast.Team2WinPercentage,
		Rationale:          result.Forecast.Rationale,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
