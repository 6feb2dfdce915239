package cricapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
	"github.com/riskibarqy/cricket-predictions/internal/platform/resilience"
	"github.com/riskibarqy/cricket-predictions/internal/usecase"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://api.cricapi.com/v1"
	seriesInfoPath  = "/series_info"
	maxResponseSize = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apikey=[^&\s"']+`)
var errCricAPITransient = crerr.New("cricapi transient failure")

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "cricapi_request_duration_seconds",
	Help:    "Duration of CricAPI requests including retries",
	Buckets: prometheus.DefBuckets,
}, []string{"outcome"})

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// MinInterval spaces outgoing requests. Zero disables rate limiting.
	MinInterval    time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	limiter    *rate.Limiter
	flight     singleflight.Group

	backoff func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    resilience.NewFromConfig(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
		limiter:    rate.NewLimiter(limit, 1),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

// FetchSeriesInfo returns the series snapshot and the raw response body it was decoded from.
func (c *Client) FetchSeriesInfo(ctx context.Context, seriesID string) (match.SeriesSnapshot, []byte, error) {
	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return match.SeriesSnapshot{}, nil, fmt.Errorf("%w: series id is required", usecase.ErrInvalidInput)
	}

	raw, err := c.get(ctx, seriesInfoPath, url.Values{"id": []string{seriesID}})
	if err != nil {
		return match.SeriesSnapshot{}, nil, fmt.Errorf("fetch series info series_id=%s: %w", seriesID, err)
	}

	snapshot, err := c.DecodeSeriesPayload(raw)
	if err != nil {
		return match.SeriesSnapshot{}, nil, fmt.Errorf("series_id=%s: %w", seriesID, err)
	}
	return snapshot, raw, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "cricapi circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: cricket data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	values := url.Values{}
	for key, items := range query {
		values[key] = append([]string(nil), items...)
	}
	values.Set("apikey", c.apiKey)
	fullURL := c.baseURL + path + "?" + values.Encode()

	key := path + "?" + query.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		start := time.Now()
		raw, reqErr := c.executeRequest(ctx, fullURL)
		c.breaker.Record(isCircuitFailure(reqErr))

		outcome := "success"
		if reqErr != nil {
			outcome = "error"
		}
		requestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %s", sanitizeSensitiveText(err.Error(), c.apiKey))
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errCricAPITransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errCricAPITransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errCricAPITransient, resp.StatusCode, abbreviateBody(raw, c.apiKey))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw, c.apiKey))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "cricapi request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errCricAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apiKeyParamRegex.ReplaceAllString(rawURL, "apikey=REDACTED")
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte, apiKey string) string {
	text := sanitizeSensitiveText(string(body), apiKey)
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
