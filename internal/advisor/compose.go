package advisor

import (
	"encoding/json"

	"github.com/user/crypto-advisor/internal/llm"
	"github.com/user/crypto-advisor/internal/market"
	"github.com/user/crypto-advisor/internal/resources"
)

// snapshotSummary is the compact form of the 24h snapshot sent to the
// model: aggregates, the last bar, and the resolved price — never the full
// bar list.
type snapshotSummary struct {
	Pair        string              `json:"pair,omitempty"`
	Exchange    string              `json:"exchange,omitempty"`
	Timeframe   string              `json:"timeframe,omitempty"`
	Stats       map[string]*float64 `json:"stats,omitempty"`
	LastBar     *market.Bar         `json:"last_bar,omitempty"`
	LatestPrice *float64            `json:"latest_price,omitempty"`
	PriceSource string              `json:"price_source,omitempty"`
}

// composeRequest merges symbol, available context, the resolved price and
// the analysis digest into one prompt payload. Pure: no I/O, deterministic
// for given inputs.
func composeRequest(symbol string, rc resources.Context, res *market.PriceResolution, analysisResults string) llm.AdviceRequest {
	req := llm.AdviceRequest{
		Symbol:          symbol,
		SocialContext:   rc.Social,
		AnalysisResults: analysisResults,
	}

	switch {
	case rc.Snapshot != nil:
		summary := snapshotSummary{
			Pair:      rc.Snapshot.Pair,
			Exchange:  rc.Snapshot.Exchange,
			Timeframe: rc.Snapshot.Timeframe,
			Stats:     rc.Snapshot.Stats,
			LastBar:   rc.Snapshot.LastBar(),
		}
		if res != nil {
			summary.LatestPrice = &res.Price
			summary.PriceSource = string(res.Source)
		}
		if data, err := json.Marshal(summary); err == nil {
			req.SnapshotSummary = string(data)
		}
	case rc.SnapshotRaw != "":
		// Malformed snapshot travels as opaque text.
		req.SnapshotSummary = rc.SnapshotRaw
	}

	return req
}
