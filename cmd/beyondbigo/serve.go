package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/eringen/beyondbigo"
)

const shutdownTimeout = 10 * time.Second

func runServe(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.StringP("env-file", "e", ".env", "dotenv file to load before reading the environment")
	addr := fs.StringP("addr", "a", "", "listen address (overrides ADDR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := beyondbigo.LoadConfig(*envFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := beyondbigo.NewLogger(stderr, cfg.LogLevel)
	app := beyondbigo.New(cfg, beyondbigo.WithLogger(logger))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errc
}
