// Package cloud mirrors the feed into a GitHub gist as JSONL, so a phone
// or another machine can follow the feed without reaching this box.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
)

// FileName is the gist file the mirror appends to.
const FileName = "cloud_feed.jsonl"

// Mirror appends feed items to one gist file. APIBase is overridable for
// tests. FallbackPath, when set, receives the lines locally whenever the
// gist is unreachable.
type Mirror struct {
	hc *http.Client

	APIBase      string
	GistID       string
	Token        string
	FallbackPath string
}

func NewMirror(gistID, token, fallbackPath string) *Mirror {
	return &Mirror{
		hc:           &http.Client{Timeout: 15 * time.Second},
		APIBase:      "https://api.github.com",
		GistID:       gistID,
		Token:        token,
		FallbackPath: fallbackPath,
	}
}

// Append pushes items not yet present in the gist (diffed by url). On any
// gist failure the items land in the local fallback file instead and the
// original error comes back for the caller to log.
func (m *Mirror) Append(ctx context.Context, items []feed.Item) error {
	if len(items) == 0 {
		return nil
	}

	existing, err := m.fetchLines(ctx)
	if err != nil {
		m.fallback(items)
		return fmt.Errorf("read gist: %w", err)
	}

	have := map[string]bool{}
	for _, line := range existing {
		var row struct {
			URL string `json:"url"`
		}
		if json.Unmarshal([]byte(line), &row) == nil && row.URL != "" {
			have[row.URL] = true
		}
	}

	var fresh []feed.Item
	for _, it := range items {
		if it.URL != "" && !have[it.URL] {
			fresh = append(fresh, it)
			have[it.URL] = true
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, line := range existing {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, it := range fresh {
		b, err := json.Marshal(it)
		if err != nil {
			continue
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}

	if err := m.patch(ctx, buf.String()); err != nil {
		m.fallback(fresh)
		return fmt.Errorf("write gist: %w", err)
	}
	return nil
}

// fetchLines returns the gist file's current non-empty lines. A gist
// without the file yet is an empty mirror, not an error.
func (m *Mirror) fetchLines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/gists/%s", m.APIBase, m.GistID), nil)
	if err != nil {
		return nil, err
	}
	m.auth(req)

	res, err := m.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}

	var g struct {
		Files map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.NewDecoder(res.Body).Decode(&g); err != nil {
		return nil, err
	}

	var lines []string
	for _, raw := range strings.Split(g.Files[FileName].Content, "\n") {
		if raw = strings.TrimSpace(raw); raw != "" {
			lines = append(lines, raw)
		}
	}
	return lines, nil
}

func (m *Mirror) patch(ctx context.Context, content string) error {
	payload := map[string]any{
		"files": map[string]any{
			FileName: map[string]string{"content": content},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		fmt.Sprintf("%s/gists/%s", m.APIBase, m.GistID), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	m.auth(req)

	res, err := m.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	if res.StatusCode >= 400 {
		return fmt.Errorf("status %d", res.StatusCode)
	}
	return nil
}

func (m *Mirror) auth(req *http.Request) {
	if m.Token != "" {
		req.Header.Set("Authorization", "token "+m.Token)
	}
}

func (m *Mirror) fallback(items []feed.Item) {
	if m.FallbackPath == "" {
		return
	}
	f, err := os.OpenFile(m.FallbackPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[cloud] fallback open: %v", err)
		return
	}
	defer f.Close()
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			continue
		}
		f.Write(append(b, '\n'))
	}
}
