package httpapi

import (
	"context"
	"net/http"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/watch"
)

type ScanHandler struct {
	State   *ScanState
	RunScan func(ctx context.Context, opts watch.Options) ([]feed.Item, int, error)
}

func (h ScanHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.State.Status())
}

// Run kicks off a manual scan in the background. A scan already in flight
// is not interrupted or doubled.
func (h ScanHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.State.TryStart() {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	go func() {
		items, kept, err := h.RunScan(context.Background(), watch.Options{
			NotifyWhenZero: true,
			ZeroPrefix:     "Manual check",
		})
		h.State.Finish(len(items), kept, err)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
