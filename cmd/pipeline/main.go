package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agsports/valuepicks/internal/model"
	"github.com/agsports/valuepicks/internal/notify"
	"github.com/agsports/valuepicks/internal/pipeline"
	pkgconfig "github.com/agsports/valuepicks/internal/pkg/config"
	"github.com/agsports/valuepicks/internal/pkg/logging"
	"github.com/agsports/valuepicks/internal/pkg/storage"
	"github.com/agsports/valuepicks/internal/provider/apifootball"
)

const defaultConfigPath = "configs/production.yaml"

type flags struct {
	configPath string
	envPath    string
	timeout    time.Duration
}

func main() {
	if err := run(); err != nil {
		slog.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	if err := godotenv.Load(cfg.envPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load env file, continuing with environment", "path", cfg.envPath, "error", err)
	}

	slog.Info("Loading config", "path", cfg.configPath)
	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(&appConfig.Logging, "pipeline")

	store, err := storage.NewPostgresStore(&appConfig.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer store.Close()

	prov := apifootball.New(&appConfig.Provider.APIFootball)

	var notifier pipeline.Notifier
	if appConfig.Telegram.Enabled {
		if tg := notify.NewTelegramNotifier(appConfig.Telegram.Token, appConfig.Telegram.ChatID); tg != nil {
			notifier = tg
		}
	}

	p := pipeline.New(
		prov,
		prov,
		store,
		model.NewEstimator(model.ParamsFromConfig(appConfig.Model)),
		model.NewGenerator(model.GeneratorConfigFromConfig(appConfig.Model)),
		notifier,
		appConfig.Pipeline,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Pipeline run finished",
		"run_id", result.RunID,
		"status", result.Status,
		"fixtures_processed", result.FixturesProcessed,
		"recommendations_generated", result.RecommendationsGenerated,
		"quote_fetch_failures", result.QuoteFetchFailures,
		"top_picks", result.TopPicks,
		"execution_time", result.ExecutionTime)
	return nil
}

func parseFlags() flags {
	var cfg flags
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file")
	flag.StringVar(&cfg.envPath, "env", ".env", "Path to env file with secrets")
	flag.DurationVar(&cfg.timeout, "timeout", 30*time.Minute, "Abort the run after this duration")
	flag.Parse()
	return cfg
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
