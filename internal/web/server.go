// Package web serves the dashboard: the rendered page, the JSON API behind
// its controls and the WebSocket that pushes updates.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// Options configures NewRouter.
type Options struct {
	// WebSocket is mounted at /ws when set.
	WebSocket      http.Handler
	RequestTimeout time.Duration
	Logger         *zerolog.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc Dashboard, opts Options) (*gin.Engine, error) {
	if svc == nil {
		return nil, errors.New("dashboard service is nil")
	}
	logger := log.With().Str("component", "web").Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.MaxMultipartMemory = maxDatasetBytes

	page, err := NewPageController(svc)
	if err != nil {
		return nil, err
	}
	if err := page.RegisterRoutes(router); err != nil {
		return nil, err
	}

	api, err := NewAPIController(svc, opts.RequestTimeout)
	if err != nil {
		return nil, err
	}
	if err := api.RegisterRoutes(router); err != nil {
		return nil, err
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})
	if opts.WebSocket != nil {
		router.GET("/ws", gin.WrapH(opts.WebSocket))
	}
	return router, nil
}

// Serve runs handler on addr until ctx is cancelled, then shuts down.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
