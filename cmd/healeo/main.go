package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"healeo-sense/internal/config"
	"healeo-sense/internal/logging"
)

var (
	// overridden during build with ldflags
	version = "dev"
)

func main() {
	logging.SetDefault(os.Stderr, "healeo", config.LogLevelFromEnv(slog.LevelWarn))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
