package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authdemo/internal/buildinfo"
	"github.com/dmitrijs2005/authdemo/internal/client/cli"
	"github.com/dmitrijs2005/authdemo/internal/client/config"
	"github.com/dmitrijs2005/authdemo/internal/filex"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

var newApp = cli.NewApp

func main() {
	buildinfo.PrintBuildData(os.Stdout)
	os.Exit(run(config.LoadConfig()))
}

// run owns everything main defers, so the log file is flushed and the
// signal handler released before the process exits.
func run(cfg *config.Config) int {
	if err := cfg.Validate(); err != nil {
		log.Printf("%v", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		log.Printf("open log file: %v", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "start failed", "error", err)
		log.Printf("%v", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "run failed", "error", err)
		log.Printf("%v", err)
		return 1
	}
	return 0
}

// newLogger writes to cfg.LogFile when set. Otherwise the REPL logs to
// stderr and the TUI, which owns the terminal, logs nowhere.
func newLogger(cfg *config.Config) (logging.Logger, func(), error) {
	if cfg.LogFile == "" {
		if cfg.Interface == config.InterfaceTUI {
			return logging.Discard(), func() {}, nil
		}
		return logging.New(cfg.LogLevel, os.Stderr), func() {}, nil
	}

	if err := filex.EnsureParentDir(cfg.LogFile); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	l := logging.New(cfg.LogLevel, f)
	return l, func() {
		l.Info(context.Background(), "log closed")
		_ = f.Close()
	}, nil
}
