package httpapi

import (
	"net/http"
	"strings"
)

type forecastRequest struct {
	PlayerStatistics string `json:"player_statistics" validate:"max=20000"`
}

func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeries")
	defer span.End()

	snapshot, err := h.matchFeed.ListMatches(ctx)
	if err != nil {
		h.logFailure(ctx, "list matches failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seriesToDTO(snapshot))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.matchFeed.GetMatch(ctx, matchID)
	if err != nil {
		h.logFailure(ctx, "get match failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GenerateForecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateForecast")
	defer span.End()

	var req forecastRequest
	if err := decodeJSONBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.forecasts.Generate(ctx, matchID, req.PlayerStatistics)
	if err != nil {
		h.logFailure(ctx, "generate forecast failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, forecastToDTO(result))
}
