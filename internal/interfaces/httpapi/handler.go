package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
	"github.com/riskibarqy/cricket-predictions/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type Handler struct {
	matchFeed     *usecase.MatchFeedService
	predictions   *usecase.PredictionService
	leaderboard   *usecase.LeaderboardService
	profileResync *usecase.ProfileResyncService
	forecasts     *usecase.ForecastService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	matchFeed *usecase.MatchFeedService,
	predictions *usecase.PredictionService,
	leaderboard *usecase.LeaderboardService,
	profileResync *usecase.ProfileResyncService,
	forecasts *usecase.ForecastService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchFeed:     matchFeed,
		predictions:   predictions,
		leaderboard:   leaderboard,
		profileResync: profileResync,
		forecasts:     forecasts,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSONBody rejects unknown fields. An empty body leaves dst untouched when allowEmpty is set.
func decodeJSONBody(r *http.Request, dst any, allowEmpty bool) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// logFailure logs server-side failures at error and caller mistakes at warn.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
