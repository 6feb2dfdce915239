package forecaster

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/cricket-predictions/internal/domain/forecast"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
	"github.com/riskibarqy/cricket-predictions/internal/platform/resilience"
	"github.com/riskibarqy/cricket-predictions/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const winningPercentagePath = "/v1/forecasts/winning-percentage"

var errForecasterTransient = crerr.New("forecaster transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the hosted model that estimates win probabilities for a fixture.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid FORECAST_BASE_URL")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		breaker:    resilience.NewFromConfig(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
	}, nil
}

type forecastResponse struct {
	Team1WinPercentage float64 `json:"team1WinPercentage"`
	Team2WinPercentage float64 `json:"team2WinPercentage"`
	Rationale          string  `json:"rationale"`
}

func (c *Client) PredictWinningPercentage(ctx context.Context, input forecast.Input) (forecast.Forecast, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "forecaster circuit breaker rejected request", "state", c.breaker.State())
		return forecast.Forecast{}, fmt.Errorf("%w: forecaster is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	out, err := c.post(ctx, input)
	c.breaker.Record(isCircuitFailure(err))
	if err != nil {
		c.logger.WarnContext(ctx, "forecast request failed", "team1", input.Team1Name, "team2", input.Team2Name, "error", err)
		return forecast.Forecast{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, input forecast.Input) (forecast.Forecast, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := jsoniter.NewEncoder(buf).Encode(input); err != nil {
		return forecast.Forecast{}, crerr.Wrap(err, "marshal forecast input")
	}

	endpoint := c.baseURL + winningPercentagePath
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("forecaster.url", endpoint),
			attribute.String("forecaster.team1", input.Team1Name),
			attribute.String("forecaster.team2", input.Team2Name),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return forecast.Forecast{}, crerr.Wrap(err, "create forecast request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return forecast.Forecast{}, fmt.Errorf("%w: send forecast request: %v", errForecasterTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return forecast.Forecast{}, fmt.Errorf("%w: read forecast response: %v", errForecasterTransient, err)
	}
	if resp.StatusCode/100 != 2 {
		if isRetryableStatus(resp.StatusCode) {
			return forecast.Forecast{}, fmt.Errorf("%w: forecast status=%d body=%s", errForecasterTransient, resp.StatusCode, truncateForLog(string(raw), 240))
		}
		return forecast.Forecast{}, fmt.Errorf("forecast status=%d body=%s", resp.StatusCode, truncateForLog(string(raw), 240))
	}

	var payload forecastResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return forecast.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}

	return forecast.Forecast{
		Team1WinPercentage: payload.Team1WinPercentage,
		Team2WinPercentage: payload.Team2WinPercentage,
		Rationale:          strings.TrimSpace(payload.Rationale),
	}, nil
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errForecasterTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func truncateForLog(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
