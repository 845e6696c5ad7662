package sqlitearchive

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
	_ "modernc.org/sqlite"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

var ErrChainBroken = errors.New("snapshot chain broken")

// Archive stores lz4-compressed JSON snapshots of stations after each
// committed pass. Every record hashes its predecessor, so a station's history
// can be checked for tampering or loss.
type Archive struct {
	db *sql.DB
}

func Open(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot archive: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping snapshot archive: %w", err)
	}
	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}
	return &Archive{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			station_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			taken_at DATETIME NOT NULL,
			hash TEXT NOT NULL,
			prev_hash TEXT NOT NULL,
			state BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_station ON snapshots(station_id, seq);`,
	}
	for _, q := range schemas {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) Put(ctx context.Context, st station.Station, takenAt time.Time) (ports.SnapshotRecord, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return ports.SnapshotRecord{}, fmt.Errorf("encode snapshot: %w", err)
	}
	packed, err := compress(raw)
	if err != nil {
		return ports.SnapshotRecord{}, err
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.SnapshotRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var prev string
	err = tx.QueryRowContext(ctx,
		`SELECT hash FROM snapshots WHERE station_id = ? ORDER BY seq DESC LIMIT 1`, st.ID,
	).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ports.SnapshotRecord{}, fmt.Errorf("read chain head: %w", err)
	}
	rec := ports.SnapshotRecord{
		StationID: st.ID,
		Tick:      st.TickCount,
		TakenAt:   takenAt.UTC(),
		Hash:      chainHash(prev, raw),
		PrevHash:  prev,
		State:     st,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots(station_id, tick, taken_at, hash, prev_hash, state) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.StationID, rec.Tick, rec.TakenAt, rec.Hash, rec.PrevHash, packed,
	)
	if err != nil {
		return ports.SnapshotRecord{}, fmt.Errorf("insert snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return ports.SnapshotRecord{}, err
	}
	return rec, nil
}

func (a *Archive) Latest(ctx context.Context, stationID string) (ports.SnapshotRecord, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT station_id, tick, taken_at, hash, prev_hash, state FROM snapshots
		 WHERE station_id = ? ORDER BY seq DESC LIMIT 1`, stationID)
	rec, packed, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SnapshotRecord{}, err
	}
	raw, err := decompress(packed)
	if err != nil {
		return ports.SnapshotRecord{}, err
	}
	if chainHash(rec.PrevHash, raw) != rec.Hash {
		return ports.SnapshotRecord{}, fmt.Errorf("%w: latest record of %s", ErrChainBroken, stationID)
	}
	if err := json.Unmarshal(raw, &rec.State); err != nil {
		return ports.SnapshotRecord{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return rec, nil
}

// Verify walks a station's whole history and returns the number of records
// checked.
func (a *Archive) Verify(ctx context.Context, stationID string) (int, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT station_id, tick, taken_at, hash, prev_hash, state FROM snapshots
		 WHERE station_id = ? ORDER BY seq`, stationID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	prev := ""
	for rows.Next() {
		rec, packed, err := scanRecord(rows)
		if err != nil {
			return n, err
		}
		raw, err := decompress(packed)
		if err != nil {
			return n, err
		}
		if rec.PrevHash != prev || chainHash(prev, raw) != rec.Hash {
			return n, fmt.Errorf("%w: %s at tick %d", ErrChainBroken, stationID, rec.Tick)
		}
		prev = rec.Hash
		n++
	}
	return n, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (ports.SnapshotRecord, []byte, error) {
	var rec ports.SnapshotRecord
	var packed []byte
	if err := s.Scan(&rec.StationID, &rec.Tick, &rec.TakenAt, &rec.Hash, &rec.PrevHash, &packed); err != nil {
		return ports.SnapshotRecord{}, nil, err
	}
	rec.TakenAt = rec.TakenAt.UTC()
	return rec, packed, nil
}

func chainHash(prev string, raw []byte) string {
	h := blake3.New(32, nil)
	_, _ = h.Write([]byte(prev))
	_, _ = h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}

func compress(src []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := lz4.NewWriter(buf)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(src []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	return out, nil
}
