package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"starpro_store/internal/config"
	"starpro_store/internal/handler"
	"starpro_store/internal/kv"
	"starpro_store/internal/repository"
	"starpro_store/internal/service"
	"starpro_store/internal/utils"
	"starpro_store/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	ctx := context.Background()

	// --- Key-value backend ---
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.KVBackend, err)
	}
	defer closeStore()

	// --- Record store ---
	records := repository.NewRecordStore(store, logger)
	if err := records.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to hydrate store: %w", err)
	}
	sessions := repository.NewSessionHolder(store, logger)

	loc, _ := cfg.Location()
	formatter := view.Formatter{Location: loc}
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	var notifier service.Notifier = service.NoopNotifier{}
	if cfg.NotifyMode == config.NotifyWhatsApp {
		notifier = service.NewWhatsAppNotifier(cfg.WhatsAppNumber)
	}

	// --- Services ---
	deps := handler.Deps{
		Auth:      service.NewAuthService(records, sessions, jwtUtil, logger),
		Customers: service.NewCustomerService(records, logger),
		Orders:    service.NewOrderService(records, sessions, notifier, cfg.OrderDelay, logger),
		Pages:     service.NewPageService(records, formatter),
		Sessions:  sessions,
		JWT:       jwtUtil,
		Formatter: formatter,
		Logger:    logger,
	}
	if p, ok := store.(kv.Pinger); ok {
		deps.Backend = p
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(deps)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "backend", cfg.KVBackend, "business", cfg.BusinessName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

// openStore opens the configured backend and returns its close func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (kv.Store, func(), error) {
	switch cfg.KVBackend {
	case config.BackendMemory:
		return kv.NewMemory(), func() {}, nil

	case config.BackendPostgres:
		dbCfg, err := cfg.DBConfig()
		if err != nil {
			return nil, nil, err
		}
		pool, err := config.ConnectDB(ctx, dbCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := config.AutoMigrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv.NewPostgres(pool), pool.Close, nil

	default:
		db, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
}
