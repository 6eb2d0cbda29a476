package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/config"
)

func newRawServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := routes[r.URL.Path]; ok {
			fmt.Fprint(w, body)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTriesBranchesInOrder(t *testing.T) {
	srv := newRawServer(t, map[string]string{
		"/acme/jobs/main/README.md": "# main branch",
	})

	f := New(nil)
	f.RawBase = srv.URL

	body, err := f.Fetch(context.Background(), config.Source{Repo: "acme/jobs"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != "# main branch" {
		t.Fatalf("got %q", body)
	}
}

func TestFetchPrefersDevBranch(t *testing.T) {
	srv := newRawServer(t, map[string]string{
		"/acme/jobs/dev/README.md":  "# dev",
		"/acme/jobs/main/README.md": "# main",
	})

	f := New(nil)
	f.RawBase = srv.URL

	body, err := f.Fetch(context.Background(), config.Source{Repo: "acme/jobs"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != "# dev" {
		t.Fatalf("got %q", body)
	}
}

func TestFetchErrorsWhenNoBranchHasReadme(t *testing.T) {
	srv := newRawServer(t, nil)

	f := New(nil)
	f.RawBase = srv.URL

	if _, err := f.Fetch(context.Background(), config.Source{Repo: "acme/jobs"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestFetchStopsOnServerError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(nil)
	f.RawBase = srv.URL

	_, err := f.Fetch(context.Background(), config.Source{Repo: "acme/jobs"})
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("a 500 must not fall through to the next branch, got %d hits", hits)
	}
}

func TestFetchExplicitURL(t *testing.T) {
	srv := newRawServer(t, map[string]string{"/custom.md": "# custom"})

	f := New(nil)
	body, err := f.Fetch(context.Background(), config.Source{URL: srv.URL + "/custom.md"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != "# custom" {
		t.Fatalf("got %q", body)
	}
}

func TestFetchAllSkipsFailedSources(t *testing.T) {
	srv := newRawServer(t, map[string]string{
		"/good/repo/dev/README.md": "# good",
	})

	f := New(nil)
	f.RawBase = srv.URL

	docs := f.FetchAll(context.Background(), []config.Source{
		{Label: "good", Repo: "good/repo"},
		{Label: "bad", Repo: "bad/repo"},
	})
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	if docs[0].Label != "good" || docs[0].Body != "# good" {
		t.Fatalf("got %+v", docs[0])
	}
}

func TestFetchAllLabelFallsBackToRepo(t *testing.T) {
	srv := newRawServer(t, map[string]string{
		"/acme/jobs/dev/README.md": "# x",
	})

	f := New(nil)
	f.RawBase = srv.URL

	docs := f.FetchAll(context.Background(), []config.Source{{Repo: "acme/jobs"}})
	if len(docs) != 1 || docs[0].Label != "acme/jobs" {
		t.Fatalf("got %+v", docs)
	}
}
