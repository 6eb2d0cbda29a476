// Package events fans scan lifecycle notifications out to SSE clients.
package events

import (
	"encoding/json"
	"time"
)

// Event types published over the SSE stream.
const (
	TypePing         = "ping"
	TypeScanStarted  = "scan.started"
	TypeScanFinished = "scan.finished"
	TypeFeedAppended = "feed.appended"
)

type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// New builds an event stamped now. Data that fails to marshal is dropped
// rather than blocking the event itself.
func New(typ string, data any) Event {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	return Event{Type: typ, At: time.Now().UTC(), Data: raw}
}

// Encode renders the SSE data payload.
func (e Event) Encode() string {
	b, _ := json.Marshal(e)
	return string(b)
}
