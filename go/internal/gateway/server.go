package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerOptions configures the ops HTTP surface
type HandlerOptions struct {
	WebSocket      *WebSocketHandler
	Ready          Pinger
	AllowedOrigins []string
}

// NewHandler builds the CORS-wrapped mux with feed, health and metrics routes
func NewHandler(opts HandlerOptions) http.Handler {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedOrigins: opts.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	if opts.WebSocket != nil {
		opts.WebSocket.RegisterRoutes(mux)
	}
	setupHealthCheck(mux, opts.Ready)
	mux.Handle("/metrics", promhttp.Handler())

	return c.Handler(mux)
}

func setupHealthCheck(mux *http.ServeMux, ready Pinger) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ready.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health check failed")
				http.Error(w, "UNAVAILABLE", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}

// NewServer serves handler over HTTP/1.1 and cleartext HTTP/2
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve runs srv until ctx is done, then shuts it down
func Serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("HTTP server shutting down")
	return srv.Shutdown(shutdownCtx)
}
