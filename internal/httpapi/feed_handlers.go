package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
)

type FeedHandler struct {
	Feed *feed.File
}

// Get serves the feed newest-first; ?n= caps how many come back.
func (h FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, err := h.Feed.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []feed.Item{}
	}

	if s := r.URL.Query().Get("n"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
			return
		}
		if n < len(items) {
			items = items[:n]
		}
	}
	writeJSON(w, items)
}
