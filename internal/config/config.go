// Package config loads and persists the watcher's YAML configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one listing document to scan. Repo is an "owner/name" GitHub
// repo whose README is fetched raw; URL, when set, overrides the repo and
// is fetched as-is.
type Source struct {
	Label string `yaml:"label"`
	Repo  string `yaml:"repo,omitempty"`
	URL   string `yaml:"url,omitempty"`
}

// Filters shape which new postings get kept and which get flagged urgent.
// All lists are optional; an empty list means "no constraint".
type Filters struct {
	IncludeKeywords   []string `yaml:"include_keywords"`
	ExcludeKeywords   []string `yaml:"exclude_keywords"`
	CompanyAllowlist  []string `yaml:"company_allowlist"`
	CompanyBlocklist  []string `yaml:"company_blocklist"`
	LocationsAny      []string `yaml:"locations_any"`
	PriorityCompanies []string `yaml:"priority_companies"`
	PriorityKeywords  []string `yaml:"priority_keywords"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Sources []Source `yaml:"sources"`

	// Branch names tried in order when fetching a repo README.
	Branches []string `yaml:"branches"`

	Filters Filters `yaml:"filters"`

	Notify struct {
		Desktop        bool   `yaml:"desktop"`
		NtfyTopic      string `yaml:"ntfy_topic"`
		NotifyWhenZero bool   `yaml:"notify_when_zero"`
	} `yaml:"notify"`

	Cloud struct {
		Enabled bool   `yaml:"enabled"`
		GistID  string `yaml:"gist_id"`
	} `yaml:"cloud"`

	Scan struct {
		Workers  int    `yaml:"workers"`
		Interval string `yaml:"interval"`
	} `yaml:"scan"`
}

// Default is the config written on first run.
func Default() Config {
	var cfg Config
	cfg.App.Port = 8787
	cfg.App.DataDir = ""
	cfg.Sources = []Source{
		{Label: "Simplify 2026 Internships", Repo: "SimplifyJobs/Summer2026-Internships"},
	}
	cfg.Branches = []string{"dev", "main", "master"}
	cfg.Notify.Desktop = true
	cfg.Notify.NotifyWhenZero = true
	cfg.Scan.Workers = 16
	cfg.Scan.Interval = "30m"
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
