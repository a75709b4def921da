package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httprate"

	"github.com/irevlogix/irevlogix-console/internal/app"
	"github.com/irevlogix/irevlogix-console/internal/gateway"
	"github.com/irevlogix/irevlogix-console/internal/observability"
	"github.com/irevlogix/irevlogix-console/internal/permissions"
	"github.com/irevlogix/irevlogix-console/internal/platform/cache"
	"github.com/irevlogix/irevlogix-console/internal/platform/ratelimit"
	"github.com/irevlogix/irevlogix-console/internal/resources"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	var limitCounter httprate.LimitCounter
	if cfg.RedisAddr != "" && !app.InTestMode() {
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer client.Close()
		limitCounter = ratelimit.NewRedisCounter(client, "")
	}

	resolver := permissions.NewResolver(cfg.UpstreamBaseURL,
		permissions.WithPath(cfg.UpstreamPermissionsPath),
		permissions.WithLogger(logger),
		permissions.WithTimeout(cfg.AppRequestTimeout),
	)

	gw := gateway.New(cfg.UpstreamBaseURL,
		gateway.WithLogger(logger),
		gateway.WithObserver(metrics),
	)
	if err := gw.Register(resources.Routes()...); err != nil {
		logger.Error("register routes", slog.Any("error", err))
		os.Exit(1)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Gateway:            gw,
		PermissionsHandler: permissions.NewHandler(resolver),
		Metrics:            metrics,
		LimitCounter:       limitCounter,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("console listening",
			slog.String("addr", cfg.AppAddr),
			slog.String("upstream", cfg.UpstreamBaseURL),
			slog.Int("routes", len(gw.Routes())),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down console")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
