package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/httpapi"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run periodic scans and the local HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(flagDataDir)
		if err != nil {
			return err
		}
		defer a.close()
		return serve(a)
	},
}

func serve(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := httpapi.NewScanState()

	runScan := func(ctx context.Context, opts watch.Options) ([]feed.Item, int, error) {
		return a.runner.Scan(ctx, opts)
	}

	// Scheduled and manual scans contend on the same state, so at most
	// one scan runs at a time and the UI sees both kinds the same way.
	scheduled := func() {
		if !state.TryStart() {
			log.Printf("[serve] scan already running, skipping tick")
			return
		}
		items, kept, err := a.runner.Scan(ctx, watch.Options{
			NotifyWhenZero: a.cfg.Notify.NotifyWhenZero,
		})
		if err != nil {
			log.Printf("[serve] scan: %v", err)
		}
		state.Finish(len(items), kept, err)
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+a.cfg.Scan.Interval, scheduled); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	c.Start()
	defer c.Stop()

	mux := httpapi.NewMux(httpapi.Deps{
		Feed:       a.runner.Feed,
		Hub:        a.hub,
		ScanState:  state,
		RunScan:    runScan,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", a.cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[serve] listening on %s, scanning every %s", addr, a.cfg.Scan.Interval)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// First scan right away; the cron only covers subsequent ticks.
	go scheduled()

	select {
	case <-ctx.Done():
		log.Printf("[serve] shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
