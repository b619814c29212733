package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/avdeyev/shelfkeeper/internal/client/cli"
	"github.com/avdeyev/shelfkeeper/internal/client/config"
	"github.com/avdeyev/shelfkeeper/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
