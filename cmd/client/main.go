package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/zapdesk/zapdesk/internal/buildinfo"
	"github.com/zapdesk/zapdesk/internal/client/cli"
	"github.com/zapdesk/zapdesk/internal/client/config"
	"github.com/zapdesk/zapdesk/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
