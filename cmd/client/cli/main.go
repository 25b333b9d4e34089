package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/metastore/internal/client/cli"
	"github.com/dmitrijs2005/metastore/internal/client/config"
	"github.com/dmitrijs2005/metastore/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Warnings and errors only: log lines must not interleave with the
	// interactive prompt.
	logger := logging.NewText(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
