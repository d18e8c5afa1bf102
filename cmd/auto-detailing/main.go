package main

import (
	"autoDetailing/internal/config"
	"autoDetailing/internal/http-server/router"
	"autoDetailing/internal/identity"
	"autoDetailing/internal/lib/logger/handlers/slogpretty"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/metrics"
	"autoDetailing/internal/session"
	"autoDetailing/internal/storage/memory"
	"autoDetailing/internal/storage/postgres"
	"context"
	"errors"
	"github.com/joho/godotenv"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type appStorage interface {
	identity.UserStorage
	router.Storage
}

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting auto detailing", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, closeStorage, err := setupStorage(ctx, log, &cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	sessions, closeSessions, err := setupSessions(ctx, log, cfg)
	if err != nil {
		log.Error("failed to init session registry", sl.Err(err))
		os.Exit(1)
	}

	metrics.Register()

	ids := identity.New(log, storage, sessions, cfg.Auth)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router.New(log, ids, storage, cfg.RateLimit),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	if ms, ok := sessions.(*session.MemoryStore); ok {
		go purgeSessions(ctx, log, ms)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = closeSessions.Close(); err != nil {
		log.Error("failed to close session registry", sl.Err(err))
	}

	if err = closeStorage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var noopCloser = closerFunc(func() error { return nil })

func setupStorage(ctx context.Context, log *slog.Logger, cfg *config.Database) (appStorage, io.Closer, error) {
	if cfg.InMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), noopCloser, nil
	}

	pg, err := postgres.InitDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return pg, pg, nil
}

func setupSessions(ctx context.Context, log *slog.Logger, cfg *config.Config) (identity.SessionRegistry, io.Closer, error) {
	if cfg.Redis.Address == "" {
		log.Warn("using in-memory sessions")
		return session.NewMemoryStore(cfg.Auth.TokenTTL), noopCloser, nil
	}

	client := session.NewRedisClient(cfg.Redis)

	if err := session.Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return session.NewRedisStore(client, cfg.Auth.TokenTTL), client, nil
}

// purgeSessions sweeps expired in-memory sessions. Redis expires its own keys.
func purgeSessions(ctx context.Context, log *slog.Logger, store *session.MemoryStore) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := store.PurgeExpired(); n > 0 {
				log.Debug("purged expired sessions", slog.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
