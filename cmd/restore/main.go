package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/config"
	"github.com/dmitrijs2005/pgbackup/internal/logging"
	"github.com/dmitrijs2005/pgbackup/internal/restore"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req, err := restore.ParseRequest(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, restore.Usage)
		return 1
	}
	if req.Mode == restore.ModeHelp {
		fmt.Println(restore.Usage)
		return 0
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
	if req.Mode != restore.ModeList {
		if err := cfg.MaybePromptPassword(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	log := logging.New(cfg.Quiet)

	app, err := restore.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "initialization failed", "error", err.Error())
		return 1
	}

	if err := app.Run(ctx, req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return common.ExitCode(err)
	}

	return 0
}
