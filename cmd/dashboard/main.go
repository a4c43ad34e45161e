package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"varboard/internal/bootstrap"
	"varboard/internal/config"
	"varboard/internal/logger"
	"varboard/internal/view"
)

func main() {
	var (
		profile   = flag.String("profile", "", "credential profile (overrides VARBOARD_PROFILE)")
		ephemeral = flag.Bool("ephemeral", false, "keep the session in memory only")
		logLevel  = flag.String("log-level", "", "log level (overrides LOG_LEVEL)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\nTerminal dashboard for varboard projects.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if *profile != "" {
		cfg.Dashboard.Profile = *profile
	}
	if *ephemeral {
		cfg.Dashboard.CredentialStore = config.StoreMemory
	}
	if *logLevel != "" {
		cfg.App.LogLevel = *logLevel
	}

	// log lines share the terminal with the dashboard, so they go to stderr
	log := logger.NewWithOutput(cfg.App.LogLevel, cfg.App.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash, err := bootstrap.NewDashboard(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Errorf("start dashboard failed")
		os.Exit(1)
	}
	defer func() {
		if err := dash.Close(); err != nil {
			log.WithError(err).Warnf("close dashboard failed")
		}
	}()

	console := view.NewConsole(os.Stdin, os.Stdout)
	shell := view.NewShell(dash.Client, dash.Session, console, os.Stdout, log)
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Errorf("dashboard stopped")
		os.Exit(1)
	}
}
