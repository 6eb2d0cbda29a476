// Package watch runs one full scan: fetch the listing documents, extract
// candidates, diff against the seen ledger, enrich the new ones, filter,
// then notify and append to the feed.
package watch

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/cloud"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/config"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/enrich"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/events"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/extract"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/notify"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/source"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/store"
)

// Options control one scan invocation.
type Options struct {
	// Seed records everything as seen without enriching or notifying.
	Seed bool
	// NotifyWhenZero sends a caught-up notification when nothing was kept.
	NotifyWhenZero bool
	// ZeroPrefix is prepended to the caught-up message ("Manual check").
	ZeroPrefix string
}

// Runner wires the scan stages together. Mirror and Hub are optional.
type Runner struct {
	Cfg      config.Config
	Fetcher  *source.Fetcher
	Enricher *enrich.Enricher
	DB       *store.DB
	Feed     *feed.File
	Notifier *notify.Notifier
	Mirror   *cloud.Mirror
	Hub      *events.Hub
}

type candidate struct {
	label string
	extract.Candidate
}

// Scan runs one pass and returns the kept items (post-filter) plus the
// kept count. Only a ledger failure aborts a scan; every network stage
// degrades and logs instead.
func (r *Runner) Scan(ctx context.Context, opts Options) ([]feed.Item, int, error) {
	r.publish(events.TypeScanStarted, map[string]bool{"seed": opts.Seed})

	// FETCH + EXTRACT
	docs := r.Fetcher.FetchAll(ctx, r.Cfg.Sources)
	var cands []candidate
	seenKey := map[string]bool{}
	for _, doc := range docs {
		for _, c := range extract.Jobs(doc.Body) {
			key := strings.ToLower(strings.TrimSpace(c.Company)) + "\x00" + strings.TrimSpace(c.URL)
			if seenKey[key] {
				continue
			}
			seenKey[key] = true
			cands = append(cands, candidate{label: doc.Label, Candidate: c})
		}
	}
	log.Printf("[watch] %d sources -> %d candidates", len(docs), len(cands))

	// DIFF against the ledger. New rows are recorded first, so a crash
	// later in the pipeline never re-offers them.
	var fresh []candidate
	for _, c := range cands {
		added, err := r.DB.InsertIfAbsent(ctx, c.Company, c.URL)
		if err != nil {
			return nil, 0, fmt.Errorf("ledger: %w", err)
		}
		if added {
			fresh = append(fresh, c)
		}
	}

	if opts.Seed {
		log.Printf("[watch] seeded %d items (no notifications on seed)", len(fresh))
		r.publish(events.TypeScanFinished, map[string]int{"new": len(fresh), "kept": 0})
		return nil, 0, nil
	}

	// ENRICH
	var urls []string
	for _, c := range fresh {
		urls = append(urls, c.URL)
	}
	details := r.Enricher.EnrichAll(ctx, urls, r.DB)

	// FILTER + NOTIFY
	var kept []feed.Item
	for _, c := range fresh {
		det := details[c.URL]
		title := strings.TrimSpace(det.Title)
		if title == "" {
			title = strings.TrimSpace(c.Role)
		}
		loc := strings.TrimSpace(det.Location)
		if loc == "" {
			loc = strings.TrimSpace(c.Location)
		}

		// Filters see only what enrichment and the row actually said; the
		// display placeholder must never satisfy a keyword.
		if !passes(r.Cfg.Filters, c.Company, title, loc) {
			continue
		}
		if title == "" {
			title = "New internship"
		}
		it := feed.Item{
			TS:       feed.NowTS(),
			Label:    c.label,
			Company:  c.Company,
			Title:    title,
			Location: loc,
			URL:      c.URL,
			Urgent:   isPriority(r.Cfg.Filters, c.Company, title),
		}
		kept = append(kept, it)
		log.Printf("[watch] [%s] %s — %s (%s) -> %s", it.Label, it.Company, it.Title, it.Location, it.URL)
		r.Notifier.Item(ctx, it)
	}

	// FEED + cloud mirror, both best-effort.
	if len(kept) > 0 {
		if err := r.Feed.Append(kept); err != nil {
			log.Printf("[watch] feed append: %v", err)
		} else {
			r.publish(events.TypeFeedAppended, map[string]int{"count": len(kept)})
		}
		if r.Mirror != nil {
			if err := r.Mirror.Append(ctx, kept); err != nil {
				log.Printf("[watch] cloud mirror: %v", err)
			}
		}
	}

	log.Printf("[watch] found %d new items; notified on %d after filters", len(fresh), len(kept))
	if len(kept) == 0 && opts.NotifyWhenZero {
		r.Notifier.CaughtUp(ctx, opts.ZeroPrefix)
	}

	r.publish(events.TypeScanFinished, map[string]int{"new": len(fresh), "kept": len(kept)})
	return kept, len(kept), nil
}

func (r *Runner) publish(typ string, data any) {
	if r.Hub != nil {
		r.Hub.Publish(typ, data)
	}
}
