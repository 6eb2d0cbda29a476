package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
)

type push struct {
	title    string
	priority string
	body     string
}

func newNtfyServer(t *testing.T) (*httptest.Server, *[]push) {
	t.Helper()
	var got []push
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = append(got, push{
			title:    r.Header.Get("Title"),
			priority: r.Header.Get("Priority"),
			body:     string(b),
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestItemPushesWithNormalPriority(t *testing.T) {
	srv, got := newNtfyServer(t)

	n := New(false, "mytopic")
	n.NtfyBase = srv.URL

	n.Item(context.Background(), feed.Item{
		Label:    "Simplify 2026 Internships",
		Company:  "Acme",
		Title:    "SWE Intern",
		Location: "NYC",
		URL:      "https://jobs.lever.co/acme/x",
	})

	if len(*got) != 1 {
		t.Fatalf("pushes: %d", len(*got))
	}
	p := (*got)[0]
	if p.title != "Acme — SWE Intern" {
		t.Fatalf("title: %q", p.title)
	}
	if p.priority != "3" {
		t.Fatalf("priority: %q", p.priority)
	}
	if !strings.Contains(p.body, "https://jobs.lever.co/acme/x") {
		t.Fatalf("body: %q", p.body)
	}
}

func TestUrgentItemGetsPriorityFive(t *testing.T) {
	srv, got := newNtfyServer(t)

	n := New(false, "mytopic")
	n.NtfyBase = srv.URL

	n.Item(context.Background(), feed.Item{Company: "Acme", Title: "Intern", Urgent: true})

	if (*got)[0].priority != "5" {
		t.Fatalf("priority: %q", (*got)[0].priority)
	}
}

func TestCaughtUpUsesLowPriorityAndPrefix(t *testing.T) {
	srv, got := newNtfyServer(t)

	n := New(false, "mytopic")
	n.NtfyBase = srv.URL

	n.CaughtUp(context.Background(), "Manual check")

	p := (*got)[0]
	if p.priority != "2" {
		t.Fatalf("priority: %q", p.priority)
	}
	if !strings.HasPrefix(p.body, "Manual check: ") {
		t.Fatalf("body: %q", p.body)
	}
}

func TestEmptyCompanyAndTitleFallBack(t *testing.T) {
	srv, got := newNtfyServer(t)

	n := New(false, "mytopic")
	n.NtfyBase = srv.URL

	n.Item(context.Background(), feed.Item{URL: "https://x"})

	if (*got)[0].title != "New internship — New internship" {
		t.Fatalf("title: %q", (*got)[0].title)
	}
}

func TestNoTopicMeansNoPush(t *testing.T) {
	n := New(false, "")
	n.NtfyBase = "http://127.0.0.1:1"
	// Must not panic or hang; nothing listens and no topic is set.
	n.Item(context.Background(), feed.Item{Company: "Acme"})
	n.CaughtUp(context.Background(), "")
}
