// Command import copies a CSV or JSON bookings file into a SQL data source.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"hoteldash/internal/config"
	"hoteldash/internal/engine"
	"hoteldash/internal/log"
	"hoteldash/internal/source"
	"hoteldash/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "import:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	format := flag.String("format", engine.FormatCSV, "input format: csv or json")
	in := flag.String("in", cfg.DataPath, "input dataset file")
	target := flag.String("to", "sqlite", "target source: sqlite or postgres")
	dsn := flag.String("dsn", "", "target DSN (defaults to SQLITE_DB_PATH / POSTGRES_DSN)")
	flag.Parse()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentImport)
	log.SetDefault(logger)

	if *dsn == "" {
		cfg.DataSource = *target
		*dsn = source.DSN(cfg)
	}
	if *dsn == "" {
		return fmt.Errorf("no DSN for %s target", *target)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	t0 := time.Now()

	ds, err := engine.Load(*format, *in)
	if err != nil {
		return err
	}

	dst, err := storage.Open(ctx, *target, *dsn)
	if err != nil {
		return err
	}
	defer dst.Close()

	n, err := dst.Import(ctx, ds.Records)
	if err != nil {
		return err
	}

	logger.Info("Import complete",
		log.FieldOperation, log.OpImport,
		log.FieldSource, *in,
		log.FieldRecords, n,
		"rejected", ds.Rejected,
		log.FieldDuration, time.Since(t0).Milliseconds())
	return nil
}
