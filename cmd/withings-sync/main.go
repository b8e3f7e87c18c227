// Command withings-sync corre una sincronización puntual o reprocesa una
// notificación de Withings guardada, sin levantar el servidor HTTP.
//
//	withings-sync sync
//	withings-sync notify -form 'userid=1&appli=4&startdate=1700000000&enddate=1700000600'
//	withings-sync export -out measurements.xlsx -from 2024-01-01T00:00:00Z
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mem "withings-health-sync/internal/adapters/storage/memory"
	pg "withings-health-sync/internal/adapters/storage/postgres"
	"withings-health-sync/internal/adapters/withings"
	"withings-health-sync/internal/config"
	"withings-health-sync/internal/domain/measurements"
	"withings-health-sync/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: withings-sync <sync|notify|export> [flags]")
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	form := fs.String("form", "", "notify: cuerpo del callback (application/x-www-form-urlencoded)")
	outPath := fs.String("out", "measurements.xlsx", "export: archivo XLSX de salida")
	from := fs.String("from", "", "export: fecha mínima RFC3339")
	to := fs.String("to", "", "export: fecha máxima RFC3339")
	baseURL := fs.String("base-url", "", "URL base de la API (tests/proxy)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := withings.NewClient(withings.Config{
		APIHost:          cfg.WithingsAPIHost,
		BaseURL:          *baseURL,
		Timeout:          cfg.Timeout,
		RateLimit:        cfg.RateLimit,
		MaxResponseBytes: cfg.MaxResponseBytes,
		Logger:           log,
	})
	if err != nil {
		return err
	}
	defer client.Close()
	client.Authenticate(cfg.WithingsToken)

	repo := mem.NewMeasurementsRepo()
	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		repo = pg.NewMeasurementsRepo(db)
	}

	svc := measurements.NewService(repo, client, measurements.ServiceConfig{Types: cfg.Types, Logger: log})

	switch cmd {
	case "sync":
		res, err := svc.Sync(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run=%s since=%s groups=%d\n", res.RunID, res.Since.Format(time.RFC3339), res.Groups)
		return nil

	case "notify":
		values, err := url.ParseQuery(strings.TrimSpace(*form))
		if err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
		call, err := measurements.ParseWebhookCall(values)
		if err != nil {
			return err
		}
		res, err := svc.Notify(ctx, call)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run=%s category=%s groups=%d\n", res.RunID, call.Category, res.Groups)
		return nil

	case "export":
		filter, err := parseRange(*from, *to)
		if err != nil {
			return err
		}
		groups, err := svc.List(ctx, filter, nil)
		if err != nil {
			return err
		}
		b, err := measurements.BuildGroupsXLSX(groups)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*outPath, b, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %d groups to %s\n", len(groups), *outPath)
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func parseRange(from, to string) (measurements.ListFilter, error) {
	var f measurements.ListFilter
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return f, fmt.Errorf("from must be RFC3339: %w", err)
		}
		f.From = &t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return f, fmt.Errorf("to must be RFC3339: %w", err)
		}
		f.To = &t
	}
	return f, nil
}
