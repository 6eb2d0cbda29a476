// Package source retrieves the markdown listing documents the scan reads.
package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/config"
)

const userAgent = "internship-watcher/1.0 (+local)"

// Doc is one fetched listing document.
type Doc struct {
	Label string
	Body  string
}

// Fetcher pulls README markdown for configured sources. RawBase defaults
// to GitHub's raw host; tests point it at a local server.
type Fetcher struct {
	hc       *http.Client
	RawBase  string
	Branches []string
}

func New(branches []string) *Fetcher {
	if len(branches) == 0 {
		branches = []string{"dev", "main", "master"}
	}
	return &Fetcher{
		hc:       &http.Client{Timeout: 15 * time.Second},
		RawBase:  "https://raw.githubusercontent.com",
		Branches: branches,
	}
}

// Fetch resolves one source. A repo source tries each branch in order;
// a 404 means "wrong branch, keep going", any other failure fails the
// source. An explicit URL is fetched as-is.
func (f *Fetcher) Fetch(ctx context.Context, src config.Source) (string, error) {
	if u := strings.TrimSpace(src.URL); u != "" {
		return f.get(ctx, u)
	}

	repo := strings.TrimSpace(src.Repo)
	if repo == "" {
		return "", fmt.Errorf("source %q has no repo or url", src.Label)
	}

	for _, branch := range f.Branches {
		u := fmt.Sprintf("%s/%s/%s/README.md", f.RawBase, repo, branch)
		body, err := f.get(ctx, u)
		if err == nil {
			return body, nil
		}
		if isNotFound(err) {
			continue
		}
		return "", fmt.Errorf("branch %s: %w", branch, err)
	}
	return "", fmt.Errorf("no README on branches %v", f.Branches)
}

// FetchAll fans out over all sources in parallel. Best-effort: a failed
// source is logged and skipped, never cancels its siblings.
func (f *Fetcher) FetchAll(ctx context.Context, sources []config.Source) []Doc {
	results := make([]*Doc, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			label := src.Label
			if label == "" {
				label = src.Repo
			}
			body, err := f.Fetch(ctx, src)
			if err != nil {
				log.Printf("[source] %s: %v", label, err)
				return nil
			}
			results[i] = &Doc{Label: label, Body: body}
			return nil
		})
	}
	_ = g.Wait()

	var docs []Doc
	for _, d := range results {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	return docs
}

type statusError struct{ code int }

func (e statusError) Error() string { return fmt.Sprintf("status %d", e.code) }

func isNotFound(err error) bool {
	se, ok := err.(statusError)
	return ok && se.code == http.StatusNotFound
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := f.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return "", statusError{code: res.StatusCode}
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
