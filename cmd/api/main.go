// cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/d4lvl13n/Finalboss-FE-sub000/cache"
	"github.com/d4lvl13n/Finalboss-FE-sub000/igdb"
	"github.com/d4lvl13n/Finalboss-FE-sub000/internal/config"
	"github.com/d4lvl13n/Finalboss-FE-sub000/internal/http/routes"
	"github.com/d4lvl13n/Finalboss-FE-sub000/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("config error")
	}

	// Logger
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if !cfg.HasIGDB() {
		logger.Warn().Msg("IGDB credentials not set; metadata calls will fail")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	// Metadata client with in-memory result cache
	client := igdb.New(cfg.IGDB.ClientID, cfg.IGDB.ClientSecret,
		igdb.WithAPIURL(cfg.IGDB.APIURL),
		igdb.WithTokenURL(cfg.IGDB.TokenURL),
		igdb.WithHTTPClient(&http.Client{Timeout: cfg.IGDB.Timeout}),
		igdb.WithCache(cache.NewMemoryCache(), cfg.IGDB.CacheTTL),
		igdb.WithMaxSearchLimit(cfg.IGDB.SearchLimit),
		igdb.WithLogger(logger),
		igdb.WithObserver(m),
	)

	// Router / server
	s := routes.New(routes.ServerOptions{
		Games:       client,
		SiteBaseURL: cfg.SiteBaseURL,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	})(s.Router)
	h = hlog.NewHandler(logger)(h)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting api server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}
