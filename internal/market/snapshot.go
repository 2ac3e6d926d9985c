// Package market holds the 24h market snapshot types and price derivation.
package market

// Bar represents a single OHLCV bar from the snapshot resource. Indicator
// columns added by the upstream metrics builder are ignored on decode; the
// derived aggregates the advisor needs live in Snapshot.Stats.
type Bar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// Snapshot is the structured 24h market data for one symbol, as written by
// the upstream pipeline: an ordered sequence of bars plus derived aggregates
// (open_24h, close_latest, high_24h, low_24h, volume_24h, change_24h_*).
// Stats values are pointers because the upstream writer emits null for
// aggregates it could not compute.
type Snapshot struct {
	Pair      string              `json:"pair"`
	Exchange  string              `json:"exchange"`
	Timeframe string              `json:"timeframe"`
	Bars      []Bar               `json:"bars"`
	Stats     map[string]*float64 `json:"stats"`
}

// Stat returns the named aggregate when present and non-null.
func (s *Snapshot) Stat(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.Stats[name]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// LastBar returns the chronologically last bar, or nil when there are none.
func (s *Snapshot) LastBar() *Bar {
	if s == nil || len(s.Bars) == 0 {
		return nil
	}
	return &s.Bars[len(s.Bars)-1]
}
