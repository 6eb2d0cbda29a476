package httpapi

import (
	"sync"
	"time"
)

// ScanStatus is what /scan/status reports.
type ScanStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastNew   int    `json:"last_new"`
	LastKept  int    `json:"last_kept"`
	Running   bool   `json:"running"`
}

// ScanState serializes scan starts across the cron schedule and the
// manual endpoint, and holds the status record both report.
type ScanState struct {
	mu sync.Mutex
	st ScanStatus
}

func NewScanState() *ScanState { return &ScanState{} }

// TryStart claims the running slot; exactly one caller wins until the
// matching Finish.
func (s *ScanState) TryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Running {
		return false
	}
	s.st.Running = true
	s.st.LastRunAt = time.Now().Format(time.RFC3339)
	return true
}

func (s *ScanState) Finish(newCount, kept int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().Format(time.RFC3339)
	s.st.Running = false
	s.st.LastRunAt = now
	s.st.LastNew = newCount
	s.st.LastKept = kept
	if err != nil {
		s.st.LastError = err.Error()
	} else {
		s.st.LastError = ""
		s.st.LastOkAt = now
	}
}

func (s *ScanState) Status() ScanStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}
