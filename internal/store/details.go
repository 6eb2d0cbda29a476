package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Detail is a cached enrichment result keyed by apply URL.
type Detail struct {
	Title    string
	Location string
	Vendor   string
}

// GetDetail returns the cached detail for url, or (nil, nil) on a miss.
func (d *DB) GetDetail(ctx context.Context, url string) (*Detail, error) {
	var det Detail
	err := d.Pool.QueryRowContext(ctx, `
SELECT title, location, vendor FROM details WHERE url = ?;`, url).
		Scan(&det.Title, &det.Location, &det.Vendor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &det, nil
}

// UpsertDetail stores (or refreshes) the enrichment for url. Last write
// wins; updated_at is always refreshed so stale rows are distinguishable.
func (d *DB) UpsertDetail(ctx context.Context, url string, det Detail) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO details(url, title, location, vendor, updated_at)
VALUES(?,?,?,?,?)
ON CONFLICT(url) DO UPDATE SET
  title = excluded.title,
  location = excluded.location,
  vendor = excluded.vendor,
  updated_at = excluded.updated_at;`,
		url, det.Title, det.Location, det.Vendor,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
