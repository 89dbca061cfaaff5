// Command cantined serves the school canteen menus over HTTP.
//
// Configuration comes from an optional YAML file given with -config, then
// from CANTINE_* environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/cantine/catalogue"
	"github.com/tsawler/cantine/internal/config"
	"github.com/tsawler/cantine/internal/logging"
	"github.com/tsawler/cantine/internal/metrics"
	"github.com/tsawler/cantine/internal/server"
	"github.com/tsawler/cantine/internal/store"
	"github.com/tsawler/cantine/render"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cantined:", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)
	render.SetLogger(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// service is the wired daemon: the catalogue, its store and the routes.
type service struct {
	server *server.Server
	store  *store.Store
}

// newService opens the store, loads the persisted days into a fresh
// catalogue and builds the HTTP server around it.
func newService(ctx context.Context, cfg config.Config, logger *slog.Logger) (*service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	cat := catalogue.New(
		catalogue.WithLunchCutoff(cfg.Schedule.LunchCutoff),
		catalogue.WithLocation(loc),
	)
	m := metrics.New()
	opts := []server.Option{server.WithMetrics(m), server.WithLogger(logger)}

	svc := &service{}
	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		days, err := st.Load(ctx)
		if err != nil {
			st.Close()
			return nil, err
		}
		cat.Insert(days)
		logger.Info("catalogue restored", "path", cfg.Store.Path, "days", len(days))

		svc.store = st
		opts = append(opts, server.WithSaver(st))
	} else {
		logger.Warn("no store configured, uploaded menus will not survive a restart")
	}
	m.SetDays(cat.Len())

	svc.server = server.New(cfg, cat, opts...)
	return svc, nil
}

// Close releases the store.
func (s *service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	svc, err := newService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	httpServer := svc.server.HTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
