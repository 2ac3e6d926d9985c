// Package resources loads the on-disk context artifacts produced by the
// upstream pipeline: the social-sentiment summary and the per-symbol 24h
// market snapshot.
package resources

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/user/crypto-advisor/internal/market"
)

// SocialFilename is the shared social-sentiment summary artifact.
const SocialFilename = "social_media_analysis.txt"

// Context is whatever of the two artifacts was available for a symbol.
// Either part may be absent; generation proceeds with degraded context.
type Context struct {
	// Social is the raw social-sentiment summary, empty when absent.
	Social string
	// Snapshot is the parsed 24h snapshot, nil when absent or malformed.
	Snapshot *market.Snapshot
	// SnapshotRaw keeps the snapshot file verbatim when it exists but is
	// not parseable, so it can still be fed to the model as opaque text.
	SnapshotRaw string
}

// Reader loads context artifacts from a resources directory.
type Reader struct {
	dir string
	log zerolog.Logger
}

// NewReader creates a reader over the given directory.
func NewReader(dir string, log zerolog.Logger) *Reader {
	return &Reader{dir: dir, log: log}
}

// Load returns the available context for a symbol. Missing or unreadable
// files are logged and reported as absent, never as an error: a degraded
// bundle must not block generation.
func (r *Reader) Load(symbol string) Context {
	var ctx Context

	socialPath := filepath.Join(r.dir, SocialFilename)
	social, err := os.ReadFile(socialPath)
	if err != nil {
		r.log.Warn().Err(err).Str("symbol", symbol).Str("path", socialPath).
			Msg("social context unavailable, continuing without it")
	} else {
		ctx.Social = strings.TrimSpace(string(social))
	}

	snapPath := filepath.Join(r.dir, strings.ToUpper(strings.TrimSpace(symbol))+".txt")
	raw, err := os.ReadFile(snapPath)
	if err != nil {
		r.log.Warn().Err(err).Str("symbol", symbol).Str("path", snapPath).
			Msg("symbol snapshot unavailable, continuing without it")
		return ctx
	}

	var snap market.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Malformed snapshot degrades to opaque text context.
		r.log.Warn().Err(err).Str("symbol", symbol).Str("path", snapPath).
			Msg("symbol snapshot not parseable, treating as plain text")
		ctx.SnapshotRaw = strings.TrimSpace(string(raw))
		return ctx
	}
	ctx.Snapshot = &snap
	return ctx
}
