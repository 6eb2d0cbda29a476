package httpapi

import (
	"context"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/events"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/feed"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/watch"
)

type Deps struct {
	Feed *feed.File
	Hub  *events.Hub

	ScanState *ScanState

	// Scan entrypoint, injected for testability.
	RunScan func(ctx context.Context, opts watch.Options) ([]feed.Item, int, error)
}
