package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-predictions/internal/usecase"
)

type profileResyncRequest struct {
	MaxWorkers int  `json:"max_workers" validate:"gte=0,lte=64"`
	DryRun     bool `json:"dry_run"`
}

func (h *Handler) RunProfileResync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunProfileResync")
	defer span.End()

	var req profileResyncRequest
	if err := decodeJSONBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.profileResync.Resync(ctx, usecase.ProfileResyncInput{
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logFailure(ctx, "profile resync failed", err, "dry_run", req.DryRun)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile resync finished",
		"users", result.UserCount,
		"success", result.SuccessCount,
		"unchanged", result.UnchangedCount,
		"failed", result.FailedCount,
		"dry_run", result.DryRun,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
