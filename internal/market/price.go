package market

// PriceSource identifies where a resolved price came from.
type PriceSource string

const (
	SourceStats PriceSource = "stats.close_latest"
	SourceBars  PriceSource = "bars.last.close"
)

// PriceResolution is a latest price derived from a snapshot together with
// the field it was taken from.
type PriceResolution struct {
	Price  float64
	Source PriceSource
}

// ResolvePrice derives the latest price from a snapshot. Precedence:
// stats.close_latest first, then the close of the last bar. A nil result is
// a valid outcome (snapshot absent or carrying neither field), not an error.
// No unit conversion is applied; the value is whatever unit the snapshot
// uses (USD/USDT by convention).
func ResolvePrice(snap *Snapshot) *PriceResolution {
	if snap == nil {
		return nil
	}
	if price, ok := snap.Stat("close_latest"); ok {
		return &PriceResolution{Price: price, Source: SourceStats}
	}
	if last := snap.LastBar(); last != nil {
		return &PriceResolution{Price: last.Close, Source: SourceBars}
	}
	return nil
}
