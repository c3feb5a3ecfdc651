// Command dreamforge serves a local text-to-image generation UI backed by
// a single exclusively-owned diffusion model. Requests queue FIFO for the
// model; everything around it (validation, prompt shaping, persistence,
// the web UI) runs concurrently.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dreamforge/db"
	"dreamforge/generation"
	"dreamforge/logging"
	"dreamforge/metrics"
	"dreamforge/scheduler"
	"dreamforge/sdruntime"
	"dreamforge/shutdown"
	"dreamforge/store"
	"dreamforge/styles"
	"dreamforge/webui"
)

func main() {
	// Load .env if present; the logger is not up yet, so plain output.
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Note: no .env file loaded: %v\n", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{
		Level:       logging.ParseLevel("DREAMFORGE_LOG_LEVEL", zapcore.InfoLevel),
		FilePath:    cfg.LogFile,
		Development: cfg.DevMode,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !runStartupChecks(cfg, os.Stdout) {
		os.Exit(1)
	}

	logger.Info("Configuration loaded",
		zap.String("model_path", cfg.ModelPath),
		zap.String("outputs_dir", cfg.OutputsDir),
		zap.String("db_path", cfg.DatabasePath),
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("queue_depth", cfg.QueueDepth),
		zap.Bool("dev_mode", cfg.DevMode))

	// The model is the one component we cannot run without.
	model, err := sdruntime.LoadModel(cfg.ModelPath)
	if err != nil {
		logger.Fatal("Failed to load model", zap.Error(err))
	}
	logger.Info("Model loaded",
		zap.String("path", cfg.ModelPath),
		zap.String("backend", sdruntime.BackendInfo()))

	catalog := styles.NewCatalog()
	if cfg.StylePresetPath != "" {
		catalog, err = styles.LoadCatalog(cfg.StylePresetPath)
		if err != nil {
			logger.Fatal("Failed to load style presets", zap.Error(err))
		}
		logger.Info("Style presets loaded",
			zap.String("path", cfg.StylePresetPath),
			zap.Int("presets", len(catalog.List())))
	}

	sched := scheduler.New(model, logger, scheduler.WithQueueDepth(cfg.QueueDepth))

	// The history index is optional: a broken database degrades to
	// file-only persistence instead of blocking generation.
	var repo *db.Repository
	if cfg.DatabasePath != "" {
		if err := db.RunMigrations(cfg.DatabasePath, cfg.MigrationsPath); err != nil {
			logger.Warn("History index disabled: migrations failed", zap.Error(err))
		} else if conn, err := db.OpenWithDefaults(cfg.DatabasePath); err != nil {
			logger.Warn("History index disabled: open failed", zap.Error(err))
		} else {
			repo = db.NewRepository(conn)
			defer conn.Close()
		}
	}

	storeOpts := []store.Option{store.WithBackend(sdruntime.BackendInfo())}
	if repo != nil {
		storeOpts = append(storeOpts, store.WithIndex(repo))
	}
	outputs, err := store.NewOutputStore(cfg.OutputsDir, logger, storeOpts...)
	if err != nil {
		logger.Fatal("Failed to initialize output store", zap.Error(err))
	}

	collector := metrics.NewCollector(metrics.DefaultRecentCapacity)
	service := generation.NewService(catalog, sched, outputs, collector, logger)

	serverCfg := webui.DefaultServerConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	serverCfg.OutputsDir = cfg.OutputsDir
	serverCfg.ShutdownTimeout = cfg.ShutdownTimeout

	var history webui.History
	if repo != nil {
		history = repo
	}
	server := webui.NewServer(serverCfg, service, catalog, history, collector, logger)

	manager := shutdown.NewManager(logger, shutdown.WithTimeout(cfg.ShutdownTimeout))
	manager.Register("http server", 10, func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})
	manager.Register("scheduler", 20, func(ctx context.Context) error {
		return sched.Close()
	})
	manager.Register("model", 30, func(ctx context.Context) error {
		return model.Close()
	})
	manager.Register("logger", 40, func(ctx context.Context) error {
		logger.Sync()
		return nil
	})
	manager.Start()

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Web UI server failed", zap.Error(err))
			manager.Trigger()
		}
	}()

	logger.Info("DreamForge ready", zap.String("url", "http://"+server.Addr()))
	<-manager.Context().Done()
	manager.Shutdown()
	logger.Info("Goodbye")
}
