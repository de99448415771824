package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propalyze/config"
	"propalyze/di"
	"propalyze/logger"
)

const SESSION_JANITOR_INTERVAL = time.Minute

func main() {
	cfg := config.Load()
	l := logger.New(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
		Color: cfg.LogColor,
	})

	container, err := di.NewContainer(context.Background(), cfg, l)
	if err != nil {
		l.Error("Failed to initialize container", logger.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container.SessionStore.StartJanitor(ctx, SESSION_JANITOR_INTERVAL)

	runErr := container.PropalyzeHttpServer.Run(ctx)
	if err := container.Close(); err != nil {
		l.Error("Failed to release resources", logger.Err(err))
	}
	if runErr != nil {
		l.Error("Server stopped with error", logger.Err(runErr))
		os.Exit(1)
	}
}
