package config

import (
	"fmt"
	"strings"
	"time"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus what's wrong with it.
// Errors make the config unusable; warnings are logged and ignored.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.IncludeKeywords = trimList(out.Filters.IncludeKeywords)
	out.Filters.ExcludeKeywords = trimList(out.Filters.ExcludeKeywords)
	out.Filters.CompanyAllowlist = trimList(out.Filters.CompanyAllowlist)
	out.Filters.CompanyBlocklist = trimList(out.Filters.CompanyBlocklist)
	out.Filters.LocationsAny = trimList(out.Filters.LocationsAny)
	out.Filters.PriorityCompanies = trimList(out.Filters.PriorityCompanies)
	out.Filters.PriorityKeywords = trimList(out.Filters.PriorityKeywords)
	out.Branches = trimList(out.Branches)

	// Fill gaps rather than erroring on them.
	if len(out.Branches) == 0 {
		out.Branches = []string{"dev", "main", "master"}
	}
	if out.Scan.Workers <= 0 {
		out.Scan.Workers = 16
	}
	if strings.TrimSpace(out.Scan.Interval) == "" {
		out.Scan.Interval = "30m"
	}
	if out.App.Port == 0 {
		out.App.Port = 8787
	}

	// ---- Validation rules ----

	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if len(out.Sources) == 0 {
		res.addErr("sources is empty: nothing to scan")
	}
	for i, s := range out.Sources {
		if strings.TrimSpace(s.Repo) == "" && strings.TrimSpace(s.URL) == "" {
			res.addErr("sources[%d] needs a repo or a url", i)
		}
	}

	if _, err := time.ParseDuration(out.Scan.Interval); err != nil {
		res.addErr("scan.interval is not a duration: %q", out.Scan.Interval)
	}

	if out.Cloud.Enabled && strings.TrimSpace(out.Cloud.GistID) == "" {
		res.addErr("cloud.enabled is true but cloud.gist_id is empty")
	}

	if out.Scan.Workers > 64 {
		res.addWarn("scan.workers is very high (%d); vendors may rate-limit you.", out.Scan.Workers)
	}

	// simple conflict check
	blockSet := map[string]bool{}
	for _, b := range out.Filters.CompanyBlocklist {
		blockSet[strings.ToLower(b)] = true
	}
	for _, a := range out.Filters.CompanyAllowlist {
		if blockSet[strings.ToLower(a)] {
			res.addWarn("company appears in both allowlist and blocklist: %q", a)
		}
	}

	return out, res
}
