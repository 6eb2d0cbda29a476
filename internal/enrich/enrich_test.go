package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/store"
)

func testEnricher() *Enricher {
	e := New(nil)
	e.Workers = 4
	return e
}

func TestLeverStructuredLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/postings/acme/abc-123" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"text":"Software Engineer Intern","categories":{"location":"Remote - US"}}`)
	}))
	defer srv.Close()

	e := testEnricher()
	e.LeverAPI = srv.URL

	res := e.Enrich(context.Background(), "https://jobs.lever.co/acme/abc-123")
	if !res.Resolved() {
		t.Fatalf("unexpected failure: %s", res.Err)
	}
	if res.Title != "Software Engineer Intern" || res.Location != "Remote - US" {
		t.Fatalf("got %+v", res)
	}
}

func TestGreenhouseJoinsMultipleLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/boards/acme/jobs/4411" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"title":"Data Intern","locations":[{"name":"NYC"},{"name":"SF"}]}`)
	}))
	defer srv.Close()

	e := testEnricher()
	e.GreenhouseAPI = srv.URL

	res := e.Enrich(context.Background(), "https://boards.greenhouse.io/acme/jobs/4411")
	if res.Title != "Data Intern" || res.Location != "NYC, SF" {
		t.Fatalf("got %+v", res)
	}
}

func TestAshbyMatchesSlugAndDecodesLocationForms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobs":[
			{"title":"ML Intern","slug":"ml-intern","location":"Toronto"},
			{"title":"SWE Intern","slug":"swe-intern","location":{"name":"Austin, TX"}}
		]}`)
	}))
	defer srv.Close()

	e := testEnricher()
	e.AshbyAPI = srv.URL

	res := e.Enrich(context.Background(), "https://jobs.ashbyhq.com/acme/swe-intern")
	if res.Title != "SWE Intern" || res.Location != "Austin, TX" {
		t.Fatalf("object location: got %+v", res)
	}

	res = e.Enrich(context.Background(), "https://jobs.ashbyhq.com/acme/ml-intern")
	if res.Title != "ML Intern" || res.Location != "Toronto" {
		t.Fatalf("string location: got %+v", res)
	}
}

func TestGenericScrapesOpenGraphMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<meta property="og:title" content="Platform Intern - Acme"/>
			<meta property="og:description" content="Join us in Seattle, WA this summer."/>
			<title>fallback</title>
		</head><body></body></html>`)
	}))
	defer srv.Close()

	e := testEnricher()
	res := e.Enrich(context.Background(), srv.URL+"/careers/123")
	if res.Title != "Platform Intern - Acme" {
		t.Fatalf("title: got %+v", res)
	}
	if res.Location != "Seattle, WA" {
		t.Fatalf("location: got %+v", res)
	}
}

func TestGenericFallsBackToTitleTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Intern Opening | Acme</title></head></html>`)
	}))
	defer srv.Close()

	e := testEnricher()
	res := e.Enrich(context.Background(), srv.URL)
	if res.Title != "Intern Opening | Acme" {
		t.Fatalf("got %+v", res)
	}
}

func TestEnrichNeverReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close() // now unreachable

	e := testEnricher()
	e.LeverAPI = addr

	for _, u := range []string{
		"https://jobs.lever.co/acme/dead-posting", // connection refused
		"http://invalid host/careers",             // unusable URL
		addr + "/whatever",                        // generic against dead server
	} {
		res := e.Enrich(context.Background(), u)
		if res.Resolved() {
			t.Fatalf("%s: expected unresolved, got %+v", u, res)
		}
		if res.Title != "" || res.Location != "" {
			t.Fatalf("%s: unresolved result must carry empty detail, got %+v", u, res)
		}
	}
}

func TestBoardLookupsCarryFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := testEnricher()
	e.AshbyAPI = srv.URL
	e.RecruiteeBase = srv.URL + "/%s"
	e.BambooHRBase = srv.URL + "/%s"
	id := ats.Identity{Company: "acme", Slug: "swe-intern"}

	if _, ok, err := e.ashby(context.Background(), id); ok || err == nil || !strings.Contains(err.Error(), "ashby") {
		t.Fatalf("ashby: ok=%v err=%v", ok, err)
	}
	if _, ok, err := e.recruitee(context.Background(), id); ok || err == nil || !strings.Contains(err.Error(), "recruitee") {
		t.Fatalf("recruitee: ok=%v err=%v", ok, err)
	}
	if _, ok, err := e.bamboohr(context.Background(), id); ok || err == nil || !strings.Contains(err.Error(), "bamboohr") {
		t.Fatalf("bamboohr: ok=%v err=%v", ok, err)
	}
}

func TestEmptyBoardIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	e := testEnricher()
	e.AshbyAPI = srv.URL
	e.RecruiteeBase = srv.URL + "/%s"
	e.BambooHRBase = srv.URL + "/%s"
	id := ats.Identity{Company: "acme"}

	if _, ok, err := e.ashby(context.Background(), id); ok || err != nil {
		t.Fatalf("ashby: ok=%v err=%v", ok, err)
	}
	if _, ok, err := e.recruitee(context.Background(), id); ok || err != nil {
		t.Fatalf("recruitee: ok=%v err=%v", ok, err)
	}
	if _, ok, err := e.bamboohr(context.Background(), id); ok || err != nil {
		t.Fatalf("bamboohr: ok=%v err=%v", ok, err)
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string]store.Detail
}

func newMemCache() *memCache { return &memCache{data: map[string]store.Detail{}} }

func (m *memCache) GetDetail(_ context.Context, url string) (*store.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.data[url]; ok {
		return &d, nil
	}
	return nil, nil
}

func (m *memCache) UpsertDetail(_ context.Context, url string, det store.Detail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[url] = det
	return nil
}

func TestEnrichAllReadsThroughCache(t *testing.T) {
	var hits int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		fmt.Fprint(w, `{"text":"Fresh Intern","categories":{"location":"Boston, MA"}}`)
	}))
	defer srv.Close()

	e := testEnricher()
	e.LeverAPI = srv.URL

	cached := "https://jobs.lever.co/acme/cached-one"
	fresh := "https://jobs.lever.co/acme/fresh-one"

	cache := newMemCache()
	cache.data[cached] = store.Detail{Title: "Cached Intern", Location: "Denver, CO"}

	out := e.EnrichAll(context.Background(), []string{cached, fresh, fresh}, cache)

	if got := out[cached]; got.Title != "Cached Intern" || got.Location != "Denver, CO" {
		t.Fatalf("cached entry: got %+v", got)
	}
	if got := out[fresh]; got.Title != "Fresh Intern" || got.Location != "Boston, MA" {
		t.Fatalf("fresh entry: got %+v", got)
	}
	if hits != 1 {
		t.Fatalf("expected exactly one network fetch, got %d", hits)
	}
	if d, _ := cache.GetDetail(context.Background(), fresh); d == nil || d.Title != "Fresh Intern" {
		t.Fatalf("fresh result not written back to cache: %+v", d)
	}
}

func TestEnrichAllSurvivesFailures(t *testing.T) {
	e := testEnricher()
	e.LeverAPI = "http://127.0.0.1:1" // nothing listens here

	urls := []string{
		"https://jobs.lever.co/acme/a",
		"https://jobs.lever.co/acme/b",
	}
	out := e.EnrichAll(context.Background(), urls, newMemCache())
	if len(out) != 2 {
		t.Fatalf("expected a result per url, got %d", len(out))
	}
	for u, res := range out {
		if res.Resolved() {
			t.Fatalf("%s: expected unresolved, got %+v", u, res)
		}
	}
}
