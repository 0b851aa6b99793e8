// Package store keeps privacy-conscious visitor metrics and per-item view
// counts in SQLite.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Retention is how long visitor rows are kept.
const Retention = 365 * 24 * time.Hour

// timestamps are stored as UTC text so they sort and compare lexically
const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	path TEXT NOT NULL DEFAULT '',
	timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE TABLE IF NOT EXISTS content_views (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	views INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (collection, id)
);`

// Visitor is one tracked page view. The client address is only kept as a
// salted hash.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ContentViews is the view counter of one blog post or project.
type ContentViews struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Views      int64  `json:"views"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64          `json:"total_visitors"`
	UniqueVisitors   int64          `json:"unique_visitors"`
	VisitorsToday    int64          `json:"visitors_today"`
	VisitorsThisWeek int64          `json:"visitors_this_week"`
	TotalViews       int64          `json:"total_views"`
	TopContent       []ContentViews `json:"top_content"`
	RecentVisitors   []Visitor      `json:"recent_visitors"`
}

// Store keeps visitor rows and per-item view counts in SQLite.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (creating if needed) the database at path. The IP hashing salt
// is generated per process.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// writes come from background goroutines; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		db.Close()
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	return &Store{
		db:   db,
		salt: hex.EncodeToString(salt),
		now:  time.Now,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashIP returns the salted, truncated hash stored in place of ip. The
// result is stable for the life of the process.
func (s *Store) HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}

// TrackVisit records a page view by the client at ip.
func (s *Store) TrackVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.stamp(s.now()))
	if err != nil {
		return fmt.Errorf("track visit: %w", err)
	}
	return nil
}

// RecordView increments the view counter of one item.
func (s *Store) RecordView(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_views (collection, id, views) VALUES (?, ?, 1)
		ON CONFLICT(collection, id) DO UPDATE SET views = views + 1`,
		collection, id)
	if err != nil {
		return fmt.Errorf("record view %s/%s: %w", collection, id, err)
	}
	return nil
}

// Views returns the view count of one item, zero when never viewed.
func (s *Store) Views(ctx context.Context, collection, id string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT views FROM content_views WHERE collection = ? AND id = ?`,
		collection, id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("views %s/%s: %w", collection, id, err)
	}
	return n, nil
}

// ResetViews deletes the counter of one item. It reports whether a counter
// existed.
func (s *Store) ResetViews(ctx context.Context, collection, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM content_views WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return false, fmt.Errorf("reset views %s/%s: %w", collection, id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CleanupOlderThan removes visitor rows recorded before cutoff and returns
// how many were deleted.
func (s *Store) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM visitors WHERE timestamp < ?`, s.stamp(cutoff))
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Stats summarizes visitors and views.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	stats := &Stats{}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE substr(timestamp, 1, 10) = ?`,
			[]any{now.Format(time.DateOnly)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`,
			[]any{s.stamp(now.AddDate(0, 0, -7))}},
		{&stats.TotalViews, `SELECT COALESCE(SUM(views), 0) FROM content_views`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	top, err := s.TopContent(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopContent = top

	recent, err := s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent

	return stats, nil
}

// TopContent returns the most viewed items, most views first.
func (s *Store) TopContent(ctx context.Context, limit int) ([]ContentViews, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT collection, id, views FROM content_views
		ORDER BY views DESC, collection, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top content: %w", err)
	}
	defer rows.Close()

	out := []ContentViews{}
	for rows.Next() {
		var cv ContentViews
		if err := rows.Scan(&cv.Collection, &cv.ID, &cv.Views); err != nil {
			return nil, fmt.Errorf("top content: %w", err)
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// RecentVisitors returns up to limit visitor rows, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	out := []Visitor{}
	for rows.Next() {
		var (
			v  Visitor
			ts string
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		v.Timestamp, err = time.ParseInLocation(timeLayout, ts, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("recent visitors: bad timestamp %q: %w", ts, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) stamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
