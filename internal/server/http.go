package server

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	myHTTP "github.com/MKhiriev/go-blog/internal/handler/http"
	"github.com/MKhiriev/go-blog/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 15 * time.Second
)

type httpServer struct {
	handler *myHTTP.Handler

	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(handler *myHTTP.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		handler: handler,
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler.Init(),
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			ErrorLog:          stdlog.New(logger, "", 0),
		},
		logger: logger,
	}
}

// listen binds the configured address so that bind errors surface before
// the server is reported ready.
func (h *httpServer) listen() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return err
	}
	h.listener = ln
	return nil
}

func (h *httpServer) RunServer() {
	if h.listener == nil {
		if err := h.listen(); err != nil {
			h.logger.Error().Err(err).Str("addr", h.server.Addr).Msg("HTTP server listen")
			return
		}
	}

	h.logger.Info().Str("addr", h.listener.Addr().String()).Msg("HTTP server is listening")
	h.handler.SetReady(true)

	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Msg("HTTP server Serve")
	}
}

func (h *httpServer) Shutdown() {
	h.handler.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		// listener close errors or connections still open at the deadline
		h.logger.Error().Err(err).Msg("HTTP server Shutdown")
	}
}
