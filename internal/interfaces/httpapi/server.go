package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-predictions/internal/domain/user"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
)

type RouterConfig struct {
	Verifier           TokenVerifier
	Guest              user.GuestAccount
	CORSAllowedOrigins []string
	InternalJobToken   string
	Logger             *logging.Logger
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Guest.ID == "" {
		cfg.Guest = user.NewGuestAccount("", "")
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerPrincipalRoutes(mux, handler, cfg.Verifier, cfg.Guest)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}
