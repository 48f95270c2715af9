package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pgbackup/internal/backup"
	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/config"
	"github.com/dmitrijs2005/pgbackup/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.NoPositionals(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := cfg.MaybePromptPassword(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := logging.New(cfg.Quiet)

	app, err := backup.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "initialization failed", "error", err.Error())
		return 1
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return common.ExitCode(err)
	}

	log.Info(ctx, "backup run finished")
	return 0
}
