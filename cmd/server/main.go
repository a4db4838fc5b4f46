package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"visit-route-service/internal/adapters/repositories"
	"visit-route-service/internal/api"
	"visit-route-service/internal/config"
	"visit-route-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres) behind ports and starts the HTTP server.
func main() {
	envLoaded := config.LoadEnv()

	opts, err := config.ParseServer(os.Args[1:])
	if err != nil {
		if config.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	opts.Logger.Setup()
	if !envLoaded {
		log.Debug().Msg("no .env file found (using environment variables)")
	}

	if err := run(opts); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(opts *config.Server) error {
	dialect, err := db.ParseDialect(opts.Database.Driver)
	if err != nil {
		return err
	}

	conn, err := db.Open(dialect, opts.Database.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(conn); err != nil {
		return err
	}

	// Seed demo data on startup for local runs.
	if opts.SeedPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := repositories.SeedFromFile(ctx, conn, dialect, opts.SeedPath)
		cancel()
		if err != nil {
			return fmt.Errorf("seed %q: %w", opts.SeedPath, err)
		}
		log.Info().Str("path", opts.SeedPath).Msg("seed loaded")
	}

	outlets := repositories.NewSQLOutletRepository(conn, dialect)
	plans := repositories.NewSQLVisitPlanRepository(conn, dialect)
	router := api.NewRouter(outlets, plans, opts.MaxOutlets)

	addr := net.JoinHostPort(opts.Addr, strconv.Itoa(opts.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("db_driver", string(dialect)).
			Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
