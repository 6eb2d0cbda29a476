// Package notify delivers new-posting alerts. Both channels are
// best-effort: a failed notification is logged and never fails a scan.
package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
)

// ntfy priorities.
const (
	PriorityUrgent   = 5
	PriorityNormal   = 3
	PriorityCaughtUp = 2
)

// Notifier pushes to the desktop and to an ntfy.sh topic. Either channel
// can be off. NtfyBase is overridable for tests.
type Notifier struct {
	hc *http.Client

	Desktop   bool
	NtfyTopic string
	NtfyBase  string
}

func New(desktop bool, ntfyTopic string) *Notifier {
	return &Notifier{
		hc:        &http.Client{Timeout: 8 * time.Second},
		Desktop:   desktop,
		NtfyTopic: ntfyTopic,
		NtfyBase:  "https://ntfy.sh",
	}
}

// Item announces one new posting on both channels. Urgent items get a
// title prefix on the desktop and a higher ntfy priority.
func (n *Notifier) Item(ctx context.Context, it feed.Item) {
	company := it.Company
	if company == "" {
		company = "New internship"
	}
	title := fmt.Sprintf("%s — %s", company, orDefault(it.Title, "New internship"))
	body := fmt.Sprintf("%s  %s\n%s", it.Label, it.Location, it.URL)

	prio := PriorityNormal
	deskTitle := title
	if it.Urgent {
		prio = PriorityUrgent
		deskTitle = "URGENT: " + title
	}

	n.desktop(deskTitle, body)
	n.ntfy(ctx, title, body, prio)
}

// CaughtUp tells the user a scan found nothing worth keeping.
func (n *Notifier) CaughtUp(ctx context.Context, prefix string) {
	body := "You're all caught up"
	if prefix != "" {
		body = prefix + ": " + body
	}
	n.desktop("Internship Watcher", body)
	n.ntfy(ctx, "Internship Watcher", body, PriorityCaughtUp)
}

func (n *Notifier) desktop(title, body string) {
	if !n.Desktop {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s",
			appleQuote(body), appleQuote(title))
		cmd = exec.Command("osascript", "-e", script)
	default:
		cmd = exec.Command("notify-send", title, body)
	}
	if err := cmd.Run(); err != nil {
		log.Printf("[notify] desktop: %v", err)
	}
}

func (n *Notifier) ntfy(ctx context.Context, title, body string, priority int) {
	if n.NtfyTopic == "" {
		return
	}
	url := fmt.Sprintf("%s/%s", n.NtfyBase, n.NtfyTopic)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		log.Printf("[notify] ntfy: %v", err)
		return
	}
	req.Header.Set("Title", title)
	req.Header.Set("Priority", strconv.Itoa(priority))

	res, err := n.hc.Do(req)
	if err != nil {
		log.Printf("[notify] ntfy: %v", err)
		return
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	if res.StatusCode >= 400 {
		log.Printf("[notify] ntfy: status %d", res.StatusCode)
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func appleQuote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
