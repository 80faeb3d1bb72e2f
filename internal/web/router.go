// Package web serves the infographic pipeline over HTTP with gin.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ironsheep/indic-infographic-mcp/internal/infographic"
	"github.com/ironsheep/indic-infographic-mcp/internal/logging"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 * 1024

// Options configures the HTTP surface.
type Options struct {
	// RateLimit is requests per minute per client IP on the API routes.
	// Zero disables limiting.
	RateLimit int

	// Version is reported by /healthz.
	Version string
}

// NewRouter builds the gin engine.
func NewRouter(gen *infographic.Generator, opts Options) *gin.Engine {
	log := logging.For(logging.ComponentHTTP)
	h := &handlers{generator: gen, version: opts.Version, log: log}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", h.health)

	api := router.Group("/api")
	if opts.RateLimit > 0 {
		api.Use(NewRateLimiter(opts.RateLimit, log).Middleware())
	}
	api.GET("/languages", h.languages)
	api.POST("/translate", RequestSizeLimit(maxBodyBytes), h.translate)
	api.POST("/infographic", RequestSizeLimit(maxBodyBytes), h.infographic)

	return router
}

// Serve runs handler on addr until ctx is canceled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	log := logging.For(logging.ComponentHTTP)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// requestLog tags log with the request id.
func requestLog(c *gin.Context, log *slog.Logger) *slog.Logger {
	return log.With("request_id", c.GetString(requestIDKey))
}
