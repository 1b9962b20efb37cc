package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/housekeeper/internal/client/cli"
	"github.com/dmitrijs2005/housekeeper/internal/client/config"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger, closer := logging.NewClientLogger(cfg.LogLevel, cfg.LogFile)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
