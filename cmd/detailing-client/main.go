package main

import (
	"autoDetailing/internal/client/app"
	"autoDetailing/internal/client/cli"
	"autoDetailing/internal/client/remote"
	"autoDetailing/internal/config"
	"autoDetailing/internal/lib/logger/handlers/slogpretty"
	"autoDetailing/internal/lib/logger/sl"
	"context"
	"github.com/joho/godotenv"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoadClient()

	log := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.Client.Timeout}

	ids := remote.NewIdentityClient(log, cfg.Client.ServerURL, httpClient)
	records := remote.NewRecordsClient(cfg.Client.ServerURL, httpClient, ids)

	a := app.New(ctx, log, ids, records, cli.NewConsole(os.Stdout))
	defer a.Close()

	log.Debug("client started", slog.String("server", cfg.Client.ServerURL))

	if err := cli.New(log, a, records, records, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Error("client stopped", sl.Err(err))
		os.Exit(1)
	}
}

// setupLogger keeps logs on stderr and quiet so they do not interleave
// with the interactive prompt.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: slog.LevelWarn},
		}
		return slog.New(opts.NewPrettyHandler(os.Stderr))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}
}
