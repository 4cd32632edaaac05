// Command saturate runs a saturation analysis batch over a folder of
// earthquake documents.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ase-lab/saturate/internal/adapters/driving/cli"
	"github.com/ase-lab/saturate/internal/logger"
)

func main() {
	// A missing .env is normal; keys may come from the shell.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Could not load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{configDir: "."}
	cli.SetRunConfig(&cli.RunConfig{
		Settings: a.loadSettings,
		Build:    a.buildBatch,
		Ping:     a.ping,
	})

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
