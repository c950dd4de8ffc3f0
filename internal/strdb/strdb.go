// Package strdb persists refined STR records in SQLite so the
// reference set is queryable by region after an index build.
package strdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/ropolomx/jcvi/internal/str"
)

// Store wraps a SQLite database of refined repeat records.
type Store struct {
	db      *sql.DB
	entropy *rand.Rand
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS strs (
		id             TEXT PRIMARY KEY,
		seqid          TEXT NOT NULL,
		start          INTEGER NOT NULL,
		end            INTEGER NOT NULL,
		period         INTEGER NOT NULL,
		copynum        REAL NOT NULL,
		consensus_size INTEGER NOT NULL,
		pct_match      INTEGER NOT NULL,
		pct_indel      INTEGER NOT NULL,
		score          INTEGER NOT NULL,
		a              INTEGER NOT NULL,
		c              INTEGER NOT NULL,
		g              INTEGER NOT NULL,
		t              INTEGER NOT NULL,
		entropy        REAL NOT NULL,
		motif          TEXT NOT NULL,
		created_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_strs_region ON strs(seqid, start, end);
	CREATE INDEX IF NOT EXISTS idx_strs_motif ON strs(motif);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts records in one transaction.
func (s *Store) Save(ctx context.Context, recs []*str.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO strs (id, seqid, start, end, period, copynum, consensus_size,
			pct_match, pct_indel, score, a, c, g, t, entropy, motif, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range recs {
		_, err := stmt.ExecContext(ctx, s.newID(),
			r.Seqid, r.Start, r.End, r.Period, r.CopyNum, r.ConsensusSize,
			r.PctMatch, r.PctIndel, r.Score, r.A, r.C, r.G, r.T,
			r.Entropy, r.Motif, now)
		if err != nil {
			return fmt.Errorf("insert %s:%d-%d: %w", r.Seqid, r.Start, r.End, err)
		}
	}
	return tx.Commit()
}

// ByRegion returns records overlapping [start, end] on a seqid, ordered
// by start coordinate.
func (s *Store) ByRegion(ctx context.Context, seqid string, start, end int) ([]*str.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seqid, start, end, period, copynum, consensus_size,
			pct_match, pct_indel, score, a, c, g, t, entropy, motif
		FROM strs
		WHERE seqid = ? AND start <= ? AND end >= ?
		ORDER BY start`, seqid, end, start)
	if err != nil {
		return nil, fmt.Errorf("query region: %w", err)
	}
	defer rows.Close()

	var recs []*str.Record
	for rows.Next() {
		r := &str.Record{}
		err := rows.Scan(&r.Seqid, &r.Start, &r.End, &r.Period, &r.CopyNum,
			&r.ConsensusSize, &r.PctMatch, &r.PctIndel, &r.Score,
			&r.A, &r.C, &r.G, &r.T, &r.Entropy, &r.Motif)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strs`).Scan(&n)
	return n, err
}
