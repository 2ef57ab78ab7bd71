// Package webui is the server-rendered HTML adapter: it owns the routes,
// the session cookie and the templates, and delegates all behavior to the
// application services.
package webui

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/revquotes/console/internal/app/quoteflow"
	"github.com/revquotes/console/internal/app/session"
)

type Server struct {
	Sessions *session.Service
	Flow     *quoteflow.Service
	Cookies  *CookieManager

	// AuthRateLimit requests per AuthRateWindow per client IP on the
	// credential-accepting endpoints. Zero disables rate limiting.
	AuthRateLimit  int
	AuthRateWindow time.Duration

	logger zerolog.Logger
}

func NewServer(sessions *session.Service, flow *quoteflow.Service, cookies *CookieManager, logger zerolog.Logger) *Server {
	return &Server{
		Sessions: sessions,
		Flow:     flow,
		Cookies:  cookies,
		logger:   logger,
	}
}
