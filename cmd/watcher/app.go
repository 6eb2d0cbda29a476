package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/cloud"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/config"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/enrich"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/events"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/notify"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/secrets"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/source"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/store"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/watch"
)

// app is everything a command needs after bootstrap.
type app struct {
	cfg    config.Config
	runner *watch.Runner
	hub    *events.Hub
	db     *store.DB
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

func resolveDataDir() string {
	if d := strings.TrimSpace(os.Getenv("WATCHER_DATA_DIR")); d != "" {
		return d
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".internship-watcher")
	}
	return "."
}

// newApp bootstraps config, storage and the scan runner. Configuration
// problems come back as errors so main can exit non-zero before any
// fetching starts.
func newApp(dataDir string) (*app, error) {
	if dataDir == "" {
		dataDir = resolveDataDir()
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("config bootstrap: %w", err)
	}
	raw, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load (%s): %w", cfgPath, err)
	}
	cfg, v := config.NormalizeAndValidate(raw)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !v.OK() {
		return nil, fmt.Errorf("config invalid (%s):\n- %s", cfgPath, strings.Join(v.Errors, "\n- "))
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}

	// The cloud mirror needs its token before the first fetch, not after.
	var mirror *cloud.Mirror
	if cfg.Cloud.Enabled {
		token, err := secrets.GetGistToken()
		if err != nil {
			return nil, errors.New("cloud mirror enabled but no gist token: " + err.Error())
		}
		mirror = cloud.NewMirror(cfg.Cloud.GistID, token,
			filepath.Join(cfg.App.DataDir, cloud.FileName))
	}

	db, err := store.Open(filepath.Join(cfg.App.DataDir, "seen.db"))
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	enr := enrich.New(enrich.NewHostLimiter(4, 8))
	enr.Workers = cfg.Scan.Workers

	hub := events.NewHub()
	runner := &watch.Runner{
		Cfg:      cfg,
		Fetcher:  source.New(cfg.Branches),
		Enricher: enr,
		DB:       db,
		Feed:     feed.NewFile(filepath.Join(cfg.App.DataDir, "feed.json")),
		Notifier: notify.New(cfg.Notify.Desktop, cfg.Notify.NtfyTopic),
		Mirror:   mirror,
		Hub:      hub,
	}

	return &app{cfg: cfg, runner: runner, hub: hub, db: db}, nil
}
