package enrich

import (
	"context"
	"log"
	"sync"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/store"
)

// Cache is the read-through memo the pool consults before going to the
// network. Satisfied by *store.DB.
type Cache interface {
	GetDetail(ctx context.Context, url string) (*store.Detail, error)
	UpsertDetail(ctx context.Context, url string, det store.Detail) error
}

// EnrichAll resolves details for every URL, cache first. Cache misses fan
// out over a bounded worker pool; each worker's result is written back to
// the cache (upsert, so write order among workers doesn't matter) and
// merged into the returned map by URL.
func (e *Enricher) EnrichAll(ctx context.Context, urls []string, cache Cache) map[string]Result {
	out := make(map[string]Result, len(urls))
	var misses []string

	for _, u := range urls {
		if _, dup := out[u]; dup {
			continue
		}
		if cache != nil {
			det, err := cache.GetDetail(ctx, u)
			if err != nil {
				log.Printf("[enrich] cache read url=%q err=%v", u, err)
			}
			if det != nil {
				out[u] = Result{Title: det.Title, Location: det.Location}
				continue
			}
		}
		out[u] = Result{}
		misses = append(misses, u)
	}
	if len(misses) == 0 {
		return out
	}

	workers := e.Workers
	if workers <= 0 {
		workers = 16
	}
	if workers > len(misses) {
		workers = len(misses)
	}

	type fetched struct {
		url string
		res Result
	}

	workCh := make(chan string)
	resCh := make(chan fetched, len(misses))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for u := range workCh {
				res := e.Enrich(ctx, u)
				if !res.Resolved() {
					log.Printf("[enrich] unresolved url=%q reason=%s", u, res.Err)
				}
				if cache != nil {
					det := store.Detail{
						Title:    res.Title,
						Location: res.Location,
						Vendor:   string(ats.Classify(u).Vendor),
					}
					if err := cache.UpsertDetail(ctx, u, det); err != nil {
						log.Printf("[enrich] cache write url=%q err=%v", u, err)
					}
				}
				resCh <- fetched{url: u, res: res}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, u := range misses {
			select {
			case <-ctx.Done():
				return
			case workCh <- u:
			}
		}
	}()

	wg.Wait()
	close(resCh)

	for f := range resCh {
		out[f.url] = f.res
	}
	return out
}
