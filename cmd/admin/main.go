package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rentadmin/internal/api"
	"rentadmin/internal/bot"
	"rentadmin/internal/config"
	"rentadmin/internal/events"
	"rentadmin/internal/logging"
	"rentadmin/internal/media"
	"rentadmin/internal/metrics"
	"rentadmin/internal/store"
	"rentadmin/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create exports directory")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	eventBus := events.NewEventBus()
	client := api.New(cfg.Platform, &logger)
	resolver := media.NewResolver(cfg.Platform.AssetBaseURL)
	stores := store.New(client, resolver, eventBus, &logger)

	refresher := worker.NewRefreshWorker([]worker.Target{
		{Name: "users", Fetch: stores.Users.FetchAll},
		{Name: "properties", Fetch: stores.Properties.FetchAll},
		{Name: "bookings", Fetch: stores.Bookings.FetchAll},
	}, cfg.Bot.RefreshInterval(), &logger)
	go refresher.Start(ctx)

	adminBot, err := bot.NewBot(cfg.Telegram.BotToken, cfg, stores, eventBus, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize bot")
		return err
	}

	adminBot.Start(ctx)
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := logging.WithComponent(baseLogger, "admin-main")

	return cfg, logger, closer, nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		logger.Info().Int("port", port).Msg("Metrics server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
}
