package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/cricket-predictions/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/series", handler.GetSeries)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/leaderboard", handler.ListLeaderboard)
}

// registerPrincipalRoutes serves routes that act on behalf of a user or the shared guest account.
func registerPrincipalRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, guest user.GuestAccount) {
	resolved := func(fn http.HandlerFunc) http.Handler {
		return ResolvePrincipal(verifier, guest, fn)
	}

	mux.Handle("POST /v1/matches/{matchID}/forecast", resolved(handler.GenerateForecast))
	mux.Handle("PUT /v1/matches/{matchID}/prediction", resolved(handler.SubmitPrediction))
	mux.Handle("GET /v1/predictions/me", resolved(handler.ListMyPredictions))
	mux.Handle("GET /v1/profiles/me", resolved(handler.GetMyProfile))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/profiles/resync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunProfileResync)))
}
