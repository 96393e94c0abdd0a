package http

import (
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/validators"
	"go.uber.org/atomic"
)

// cookieSettings controls the attributes of the session and flash cookies.
type cookieSettings struct {
	secretKey string
	secure    bool
}

type Handler struct {
	services  *service.Services
	validator validators.Validator
	templates templates

	cookies        cookieSettings
	staticDir      string
	requestTimeout time.Duration
	externalURL    string

	ready *atomic.Bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:  services,
		validator: validators.NewFormValidator(),
		cookies: cookieSettings{
			secretKey: cfg.App.SecretKey,
			secure:    cfg.App.CookieSecure,
		},
		staticDir:      cfg.Server.StaticDir,
		requestTimeout: cfg.Server.RequestTimeout,
		externalURL:    cfg.Server.ExternalURL,
		ready:          atomic.NewBool(false),
		logger:         logger,
	}
	h.templates = mustParseTemplates(h.templateFuncs())

	logger.Info().Msg("http handler created")
	return h
}

// SetReady flips the state reported by /readyz.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}
