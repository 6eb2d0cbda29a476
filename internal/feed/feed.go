// Package feed maintains the rolling feed file the UI reads. The file is
// written by both the CLI and the serve daemon, so writes take a
// cross-process lock and land via atomic rename.
package feed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
)

// Cap is how many items the feed file retains; older entries roll off.
const Cap = 500

// Item is one feed entry. TS is UTC RFC3339.
type Item struct {
	TS       string `json:"ts"`
	Label    string `json:"label"`
	Company  string `json:"company"`
	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
	URL      string `json:"url"`
	Urgent   bool   `json:"urgent,omitempty"`
}

// NowTS returns the timestamp format feed items carry.
func NowTS() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// File is a feed.json at a fixed path.
type File struct {
	path string
	lock *flock.Flock
}

func NewFile(path string) *File {
	return &File{path: path, lock: flock.New(path + ".lock")}
}

// Append adds items and trims to the most recent Cap entries.
func (f *File) Append(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := f.lock.Lock(); err != nil {
		return err
	}
	defer f.lock.Unlock()

	cur, err := f.read()
	if err != nil {
		return err
	}
	cur = append(cur, items...)
	if len(cur) > Cap {
		cur = cur[len(cur)-Cap:]
	}
	return f.write(cur)
}

// Load returns the feed newest-first.
func (f *File) Load() ([]Item, error) {
	if err := f.lock.RLock(); err != nil {
		return nil, err
	}
	defer f.lock.Unlock()

	items, err := f.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].TS > items[j].TS })
	return items, nil
}

func (f *File) read() ([]Item, error) {
	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		// A mangled feed file is not worth failing a scan over.
		return nil, nil
	}
	return items, nil
}

func (f *File) write(items []Item) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".feed-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
