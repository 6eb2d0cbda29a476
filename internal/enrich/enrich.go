// Package enrich resolves an apply URL into a best-effort (title,
// location) pair. Vendors with public JSON endpoints get a structured
// lookup; everything else falls back to scraping Open Graph metadata off
// the page itself.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

const userAgent = "internship-watcher/1.0 (+local)"

// Result is the outcome of one enrichment. Err carries the failure reason
// for diagnostics; callers treat an unresolved result as empty detail and
// keep going; enrichment never aborts a scan.
type Result struct {
	Title    string
	Location string
	Err      string
}

func (r Result) Resolved() bool { return r.Err == "" }

func unresolved(err error) Result { return Result{Err: err.Error()} }

// Enricher fetches posting details. The API base fields default to the
// real vendor endpoints; tests point them at local servers. Company-scoped
// vendors (recruitee, bamboohr) use printf patterns with the company slug.
type Enricher struct {
	hc      *http.Client
	limiter *HostLimiter

	Workers int // enrichment pool size, default 16

	LeverAPI           string // https://api.lever.co
	GreenhouseAPI      string // https://boards-api.greenhouse.io
	AshbyAPI           string // https://api.ashbyhq.com
	SmartRecruitersAPI string // https://api.smartrecruiters.com
	RecruiteeBase      string // https://%s.recruitee.com
	BambooHRBase       string // https://%s.bamboohr.com
}

func New(limiter *HostLimiter) *Enricher {
	return &Enricher{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,

		Workers: 16,

		LeverAPI:           "https://api.lever.co",
		GreenhouseAPI:      "https://boards-api.greenhouse.io",
		AshbyAPI:           "https://api.ashbyhq.com",
		SmartRecruitersAPI: "https://api.smartrecruiters.com",
		RecruiteeBase:      "https://%s.recruitee.com",
		BambooHRBase:       "https://%s.bamboohr.com",
	}
}

// Enrich dispatches on the URL's vendor. Vendors whose URL carried enough
// identifiers get the structured lookup; otherwise, or when the board has
// nothing to match, the generic page scrape takes over. Any failure comes
// back as an unresolved Result, never an error.
func (e *Enricher) Enrich(ctx context.Context, url string) Result {
	id := ats.Classify(url)

	switch id.Vendor {
	case ats.VendorLever:
		if id.Company != "" && id.Job != "" {
			return e.lever(ctx, id)
		}
	case ats.VendorGreenhouse:
		if id.Company != "" && id.ID != "" {
			return e.greenhouse(ctx, id)
		}
	case ats.VendorAshby:
		if id.Company != "" {
			if res, ok := fallthroughLookup(e.ashby(ctx, id)); ok {
				return res
			}
		}
	case ats.VendorSmartRecruiters:
		if id.Company != "" && id.ID != "" {
			return e.smartrecruiters(ctx, id)
		}
	case ats.VendorRecruitee:
		if id.Company != "" {
			if res, ok := fallthroughLookup(e.recruitee(ctx, id)); ok {
				return res
			}
		}
	case ats.VendorBambooHR:
		if id.Company != "" {
			if res, ok := fallthroughLookup(e.bamboohr(ctx, id)); ok {
				return res
			}
		}
	}

	// workday / simplify / oracle / generic, and every vendor path that
	// could not identify a posting.
	return e.generic(ctx, url)
}

// fallthroughLookup keeps the failure reason of a board-level vendor
// lookup before the dispatch falls back to the generic scrape.
func fallthroughLookup(res Result, ok bool, err error) (Result, bool) {
	if err != nil {
		log.Printf("[enrich] %v; falling back to page scrape", err)
	}
	return res, ok
}

func (e *Enricher) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if e.limiter != nil {
		if err := e.limiter.WaitURL(ctx, url); err != nil {
			return err
		}
	}

	res, err := e.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(v)
}

func (e *Enricher) getDoc(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	if e.limiter != nil {
		if err := e.limiter.WaitURL(ctx, url); err != nil {
			return nil, err
		}
	}

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}
