package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-predictions/internal/domain/forecast"
	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
)

type WinProbabilityProvider interface {
	PredictWinningPercentage(ctx context.Context, input forecast.Input) (forecast.Forecast, error)
}

const (
	fallbackTeam1Name = "Team 1"
	fallbackTeam2Name = "Team 2"
)

type MatchForecast struct {
	Match    match.Match
	Input    forecast.Input
	Forecast forecast.Forecast
}

type ForecastService struct {
	feed     matchFeedReader
	provider WinProbabilityProvider
}

// NewForecastService accepts a nil provider when forecasting is disabled.
func NewForecastService(feed matchFeedReader, provider WinProbabilityProvider) *ForecastService {
	return &ForecastService{
		feed:     feed,
		provider: provider,
	}
}

func (s *ForecastService) Generate(ctx context.Context, matchID, playerStatistics string) (MatchForecast, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ForecastService.Generate")
	defer span.End()

	if s.provider == nil {
		return MatchForecast{}, fmt.Errorf("%w: forecast provider is disabled", ErrDependencyUnavailable)
	}

	item, err := s.feed.GetMatch(ctx, matchID)
	if err != nil {
		return MatchForecast{}, err
	}

	input := forecastInput(item, playerStatistics)
	result, err := s.provider.PredictWinningPercentage(ctx, input)
	if err != nil {
		return MatchForecast{}, fmt.Errorf("%w: generate forecast match=%s: %v", ErrDependencyUnavailable, item.ID, err)
	}

	return MatchForecast{
		Match:    item,
		Input:    input,
		Forecast: result.Normalize(),
	}, nil
}

func forecastInput(item match.Match, playerStatistics string) forecast.Input {
	team1, team2 := fallbackTeam1Name, fallbackTeam2Name
	names := item.TeamNames()
	if len(names) > 0 {
		team1 = names[0]
	}
	if len(names) > 1 {
		team2 = names[1]
	}

	return forecast.Input{
		Team1Name:        team1,
		Team2Name:        team2,
		MatchConditions:  fmt.Sprintf("Playing at %s. Match Type: %s.", strings.TrimSpace(item.Venue), strings.TrimSpace(item.MatchType)),
		PlayerStatistics: strings.TrimSpace(playerStatistics),
	}
}
