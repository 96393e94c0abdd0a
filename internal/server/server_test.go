package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/handler"
	myHTTP "github.com/MKhiriev/go-blog/internal/handler/http"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T, address string) *handler.Handlers {
	t.Helper()
	cfg := config.StructuredConfig{
		App:    config.App{SecretKey: "secret"},
		Server: config.Server{HTTPAddress: address, StaticDir: "static"},
	}
	h, err := handler.NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.NoError(t, err)
	return h
}

func readyStatus(h *myHTTP.Handler) int {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	return rec.Code
}

func TestNewServer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		address  string
	}{
		{name: "nil handlers", handlers: nil, address: ":5000"},
		{name: "no HTTP handler", handlers: &handler.Handlers{}, address: ":5000"},
		{name: "no address", handlers: newTestHandlers(t, ":5000"), address: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.handlers, config.Server{HTTPAddress: tt.address}, logger.Nop())

			assert.ErrorIs(t, err, errNoServersAreCreated)
			assert.Nil(t, s)
		})
	}
}

func TestHTTPServer_Lifecycle(t *testing.T) {
	handlers := newTestHandlers(t, "127.0.0.1:0")
	srv := newHTTPServer(handlers.HTTP, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, srv.listen())

	assert.Equal(t, http.StatusServiceUnavailable, readyStatus(handlers.HTTP))

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.RunServer()
	}()

	url := "http://" + srv.listener.Addr().String() + "/readyz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	srv.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunServer did not return after Shutdown")
	}
	assert.Equal(t, http.StatusServiceUnavailable, readyStatus(handlers.HTTP))
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	handlers := newTestHandlers(t, "127.0.0.1:0")
	s, err := NewServer(handlers, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- s.(*server).run(ctx) }()

	require.Eventually(t, func() bool {
		return readyStatus(handlers.HTTP) == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestServer_RunFailsOnBusyAddress(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	address := busy.Addr().String()
	s, err := NewServer(newTestHandlers(t, address), config.Server{HTTPAddress: address}, logger.Nop())
	require.NoError(t, err)

	err = s.(*server).run(context.Background())
	assert.ErrorIs(t, err, errListenFailed)
}
