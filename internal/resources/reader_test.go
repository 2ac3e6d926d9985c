package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestReader(t *testing.T) (*Reader, string) {
	t.Helper()
	dir := t.TempDir()
	return NewReader(dir, zerolog.Nop()), dir
}

func TestLoad_AllArtifactsPresent(t *testing.T) {
	r, dir := newTestReader(t)

	if err := os.WriteFile(filepath.Join(dir, SocialFilename), []byte("market mood bullish\n"), 0644); err != nil {
		t.Fatalf("write social: %v", err)
	}
	snapJSON := `{"pair":"BTC/USDT","exchange":"binance","timeframe":"1h",
		"bars":[{"timestamp":1732280000,"open":1,"high":2,"low":0.5,"close":1.5,"volume":10}],
		"stats":{"close_latest":68000.5,"volume_24h":null}}`
	if err := os.WriteFile(filepath.Join(dir, "BTC.txt"), []byte(snapJSON), 0644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	ctx := r.Load("btc")

	if ctx.Social != "market mood bullish" {
		t.Errorf("unexpected social context: %q", ctx.Social)
	}
	if ctx.Snapshot == nil {
		t.Fatal("expected parsed snapshot")
	}
	if ctx.Snapshot.Pair != "BTC/USDT" {
		t.Errorf("unexpected pair: %q", ctx.Snapshot.Pair)
	}
	if v, ok := ctx.Snapshot.Stat("close_latest"); !ok || v != 68000.5 {
		t.Errorf("close_latest: got %v ok=%v", v, ok)
	}
	if _, ok := ctx.Snapshot.Stat("volume_24h"); ok {
		t.Error("null stat should read as absent")
	}
}

func TestLoad_MissingFilesAreAbsentNotFatal(t *testing.T) {
	r, _ := newTestReader(t)

	ctx := r.Load("ETH")

	if ctx.Social != "" {
		t.Errorf("expected empty social context, got %q", ctx.Social)
	}
	if ctx.Snapshot != nil || ctx.SnapshotRaw != "" {
		t.Errorf("expected absent snapshot, got %+v raw=%q", ctx.Snapshot, ctx.SnapshotRaw)
	}
}

func TestLoad_MalformedSnapshotDegradesToText(t *testing.T) {
	r, dir := newTestReader(t)

	if err := os.WriteFile(filepath.Join(dir, "SOL.txt"), []byte("not json at all"), 0644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	ctx := r.Load("SOL")

	if ctx.Snapshot != nil {
		t.Errorf("expected nil snapshot, got %+v", ctx.Snapshot)
	}
	if ctx.SnapshotRaw != "not json at all" {
		t.Errorf("expected raw fallback, got %q", ctx.SnapshotRaw)
	}
}
