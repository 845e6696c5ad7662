package sqlitearchive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/app/stationbuild"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

var start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func openTemp(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "snapshots", "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestArchive_PutChainsAndLatestRestores(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	st, err := stationbuild.Starter("alpha", 3, start, catalog.Default())
	if err != nil {
		t.Fatalf("starter: %v", err)
	}

	first, err := a.Put(ctx, st, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("put first: %v", err)
	}
	if first.PrevHash != "" || len(first.Hash) != 64 {
		t.Fatalf("unexpected first record: prev=%q hash=%q", first.PrevHash, first.Hash)
	}
	st.TickCount = 5
	st.People[0].Health = 70
	second, err := a.Put(ctx, st, start.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("put second: %v", err)
	}
	if second.PrevHash != first.Hash {
		t.Fatalf("second record should chain to first")
	}

	latest, err := a.Latest(ctx, "alpha")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Tick != 5 || latest.State.People[0].Health != 70 || latest.Hash != second.Hash {
		t.Fatalf("latest mismatch: tick=%d health=%d", latest.Tick, latest.State.People[0].Health)
	}
	if !latest.TakenAt.Equal(start.Add(5 * time.Hour)) {
		t.Fatalf("taken_at mismatch: got=%s", latest.TakenAt)
	}
	n, err := a.Verify(ctx, "alpha")
	if err != nil || n != 2 {
		t.Fatalf("verify mismatch: n=%d err=%v", n, err)
	}
}

func TestArchive_ChainsArePerStation(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	cat := catalog.Default()
	for _, id := range []string{"alpha", "beta"} {
		st, err := stationbuild.Starter(id, 1, start, cat)
		if err != nil {
			t.Fatalf("starter: %v", err)
		}
		rec, err := a.Put(ctx, st, start)
		if err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
		if rec.PrevHash != "" {
			t.Fatalf("station %s should start its own chain", id)
		}
	}
}

func TestArchive_DetectsTampering(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	st, err := stationbuild.Starter("alpha", 3, start, catalog.Default())
	if err != nil {
		t.Fatalf("starter: %v", err)
	}
	if _, err := a.Put(ctx, st, start); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := a.Put(ctx, st, start.Add(time.Hour)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := a.db.Exec(`UPDATE snapshots SET prev_hash = 'forged' WHERE seq = 2`); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	if _, err := a.Verify(ctx, "alpha"); !errors.Is(err, ErrChainBroken) {
		t.Fatalf("expected ErrChainBroken, got %v", err)
	}
	if _, err := a.Latest(ctx, "alpha"); !errors.Is(err, ErrChainBroken) {
		t.Fatalf("expected ErrChainBroken from Latest, got %v", err)
	}
}

func TestArchive_LatestMissing(t *testing.T) {
	a := openTemp(t)
	if _, err := a.Latest(context.Background(), "ghost"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	src := []byte(`{"id":"alpha","tanks":[1,2,3,4,5,6,7,8,9,10,1,2,3,4,5,6,7,8,9,10]}`)
	packed, err := compress(src)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	out, err := decompress(packed)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(out) != string(src) {
		t.Fatalf("round trip mismatch: got=%s", out)
	}
}

var _ ports.SnapshotArchive = (*Archive)(nil)
