package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naratip/goldwatch/internal/alert"
	"github.com/naratip/goldwatch/internal/api"
	"github.com/naratip/goldwatch/internal/app"
	"github.com/naratip/goldwatch/internal/collector/binance"
	"github.com/naratip/goldwatch/internal/collector/goldapi"
	"github.com/naratip/goldwatch/internal/config"
	"github.com/naratip/goldwatch/internal/logger"
	"github.com/naratip/goldwatch/internal/metrics"
	"github.com/naratip/goldwatch/internal/notifier"
	"github.com/naratip/goldwatch/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the goldwatch server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(logLevel, debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	log.Info("starting goldwatch server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Type),
	)

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	a := app.New(cfg, log)
	a.SetMetrics(reg)

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("creating storage: %w", err)
	}
	a.SetPersister(storage.NewPersister(store))

	if cfg.Collectors.Gold.Enabled {
		if cfg.Collectors.Gold.BaseURL != "" {
			a.SetGoldSource(goldapi.NewWithBaseURL(cfg.Collectors.Gold.BaseURL))
		} else {
			a.SetGoldSource(goldapi.New())
		}
	}
	if cfg.Collectors.Candles.Enabled {
		a.SetCandleSource(binance.New())
	}

	var notifiers []alert.Notifier
	for name, n := range cfg.Notifiers {
		if !n.Enabled {
			continue
		}
		notifiers = append(notifiers, notifier.NewWebhook(n.URL, n.Headers))
		log.Info("notifier enabled", zap.String("name", name))
	}
	a.SetNotifiers(notifiers)

	server := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		MetricsPath: cfg.Metrics.Path,
	}, a, log, reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := a.Start(ctx); err != nil && err != context.Canceled {
			log.Error("app error", zap.Error(err))
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down goldwatch")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "s3":
		return storage.NewS3(storage.S3Config{
			Bucket:    cfg.Storage.S3.Bucket,
			Endpoint:  cfg.Storage.S3.Endpoint,
			Region:    cfg.Storage.S3.Region,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Prefix:    cfg.Storage.S3.Prefix,
		})
	case "memory":
		return storage.NewMemory(), nil
	default:
		return storage.NewLocalFS(cfg.Storage.Path)
	}
}
