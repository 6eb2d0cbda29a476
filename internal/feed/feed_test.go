package feed

import (
	"fmt"
	"path/filepath"
	"testing"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	return NewFile(filepath.Join(t.TempDir(), "feed.json"))
}

func TestAppendAndLoadNewestFirst(t *testing.T) {
	f := newTestFile(t)

	err := f.Append([]Item{
		{TS: "2026-08-01T10:00:00Z", Company: "Acme", URL: "https://a"},
		{TS: "2026-08-02T10:00:00Z", Company: "Beta", URL: "https://b"},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	items, err := f.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len: %d", len(items))
	}
	if items[0].Company != "Beta" || items[1].Company != "Acme" {
		t.Fatalf("order: %+v", items)
	}
}

func TestAppendTrimsToCap(t *testing.T) {
	f := newTestFile(t)

	var items []Item
	for i := 0; i < Cap+25; i++ {
		items = append(items, Item{
			TS:  fmt.Sprintf("2026-08-01T%02d:%02d:00Z", i/60, i%60),
			URL: fmt.Sprintf("https://jobs.example.com/%d", i),
		})
	}
	if err := f.Append(items); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != Cap {
		t.Fatalf("expected cap %d, got %d", Cap, len(got))
	}
	// Oldest 25 rolled off; the newest entry survives.
	if got[0].URL != fmt.Sprintf("https://jobs.example.com/%d", Cap+24) {
		t.Fatalf("newest: %+v", got[0])
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	f := newTestFile(t)
	items, err := f.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty, got %d", len(items))
	}
}

func TestAppendNothingIsNoop(t *testing.T) {
	f := newTestFile(t)
	if err := f.Append(nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	items, _ := f.Load()
	if len(items) != 0 {
		t.Fatalf("expected empty, got %d", len(items))
	}
}
