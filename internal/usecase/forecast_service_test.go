package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-predictions/internal/domain/forecast"
	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
)

type stubWinProbabilityProvider struct {
	result forecast.Forecast
	err    error
	input  forecast.Input
}

func (p *stubWinProbabilityProvider) PredictWinningPercentage(_ context.Context, input forecast.Input) (forecast.Forecast, error) {
	p.input = input
	return p.result, p.err
}

func TestForecastService_Generate(t *testing.T) {
	t.Parallel()

	feed := &stubMatchFeed{snapshot: match.SeriesSnapshot{Matches: []match.Match{
		{ID: "m-1", Venue: "Wankhede Stadium, Mumbai", MatchType: "t20", TeamInfo: testTeams},
	}}}
	provider := &stubWinProbabilityProvider{result: forecast.Forecast{Team1WinPercentage: 0.55, Team2WinPercentage: 0.45, Rationale: "home form"}}
	service := NewForecastService(feed, provider)

	got, err := service.Generate(context.Background(), "m-1", " India bat deep ")
	if err != nil {
		t.Fatalf("generate forecast: %v", err)
	}
	if provider.input.Team1Name != "India" || provider.input.Team2Name != "Australia" {
		t.Fatalf("unexpected teams sent: %+v", provider.input)
	}
	if provider.input.MatchConditions != "Playing at Wankhede Stadium, Mumbai. Match Type: t20." {
		t.Fatalf("unexpected match conditions: %q", provider.input.MatchConditions)
	}
	if provider.input.PlayerStatistics != "India bat deep" {
		t.Fatalf("unexpected player statistics: %q", provider.input.PlayerStatistics)
	}
	if got.Forecast.Team1WinPercentage != 55 || got.Forecast.Team2WinPercentage != 45 {
		t.Fatalf("expected normalized percentages, got %+v", got.Forecast)
	}
}

func TestForecastService_Generate_FallsBackToPlaceholderTeams(t *testing.T) {
	t.Parallel()

	feed := &stubMatchFeed{snapshot: match.SeriesSnapshot{Matches: []match.Match{{ID: "m-1"}}}}
	provider := &stubWinProbabilityProvider{result: forecast.Forecast{Team1WinPercentage: 50, Team2WinPercentage: 50}}

	if _, err := NewForecastService(feed, provider).Generate(context.Background(), "m-1", ""); err != nil {
		t.Fatalf("generate forecast: %v", err)
	}
	if provider.input.Team1Name != fallbackTeam1Name || provider.input.Team2Name != fallbackTeam2Name {
		t.Fatalf("expected placeholder team names, got %+v", provider.input)
	}
}

func TestForecastService_Generate_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewForecastService(testFeed(), nil).Generate(context.Background(), "m-upcoming", ""); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable for disabled provider, got %v", err)
	}

	failing := &stubWinProbabilityProvider{err: errors.New("model overloaded")}
	if _, err := NewForecastService(testFeed(), failing).Generate(context.Background(), "m-upcoming", ""); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable for provider failure, got %v", err)
	}

	ok := &stubWinProbabilityProvider{}
	if _, err := NewForecastService(testFeed(), ok).Generate(context.Background(), "m-404", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
