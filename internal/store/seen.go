package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"
)

// SeenEntry is one row of the identity ledger. ID anchors dedup: the same
// (company, url) pair is reported as new exactly once, ever.
type SeenEntry struct {
	ID        string
	Company   string
	URL       string
	FirstSeen time.Time
}

// SeenID is the ledger primary key: sha1 over "company|url" with both
// parts trimmed.
func SeenID(company, url string) string {
	sum := sha1.Sum([]byte(strings.TrimSpace(company) + "|" + strings.TrimSpace(url)))
	return hex.EncodeToString(sum[:])
}

// InsertIfAbsent attempts to record a (company, url) identity. It returns
// true when the row was newly inserted, false when the identity was
// already in the ledger. A duplicate is expected control flow, not an
// error.
func (d *DB) InsertIfAbsent(ctx context.Context, company, url string) (bool, error) {
	res, err := d.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO seen(id, company, url, first_seen)
VALUES(?,?,?,?);`,
		SeenID(company, url),
		strings.TrimSpace(company),
		strings.TrimSpace(url),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Fall back to changes(); some drivers are unreliable with IGNORE.
		var changes int
		if e := d.Pool.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
			return changes > 0, nil
		}
		return false, err
	}
	return n > 0, nil
}

// SeenCount reports how many identities the ledger holds.
func (d *DB) SeenCount(ctx context.Context) (int, error) {
	var n int
	err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen;`).Scan(&n)
	return n, err
}
