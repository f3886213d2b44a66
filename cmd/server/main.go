package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hoteldash/internal/api"
	"hoteldash/internal/config"
	"hoteldash/internal/dashboard"
	"hoteldash/internal/log"
	"hoteldash/internal/source"
	"hoteldash/internal/widgets"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Config + logging
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.New(log.Config{Level: level, Format: cfg.LogFormat, Component: log.ComponentApp})
	log.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	initial, err := cfg.DefaultRange()
	if err != nil {
		return err
	}

	// 2. Controller + widgets + API (live at once, 503 until data arrives)
	set := widgets.NewSet()
	ctrl := dashboard.New(initial, set.Bind(), cfg.RangeCacheSize, logger)
	e := api.NewServer(api.NewHandler(ctrl, set, loc), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server ready (data loading in background...)", "port", cfg.Port)
		return api.Start(ctx, e, ":"+cfg.Port)
	})

	// 3. Load the dataset in the background
	g.Go(func() error {
		loaderLog := logger.WithComponent(log.ComponentLoader)
		loaderLog.Info("Loading dataset", log.FieldSource, cfg.DataSource)
		t0 := time.Now()

		ds, err := source.Load(ctx, cfg)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		ctrl.SetRecords(ds.Records)

		loaderLog.Info("Dataset ready",
			log.FieldRecords, ds.Len(),
			"rejected", ds.Rejected,
			log.FieldDuration, time.Since(t0).Milliseconds())
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped", log.FieldError, err)
		return err
	}
	logger.Info("Server stopped", log.FieldOperation, log.OpShutdown)
	return nil
}
