package advisor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/user/crypto-advisor/internal/market"
	"github.com/user/crypto-advisor/internal/resources"
)

func TestComposeRequest_FullContext(t *testing.T) {
	rc := resources.Context{
		Social: "情绪面偏多",
		Snapshot: &market.Snapshot{
			Pair:      "BTC/USDT",
			Exchange:  "binance",
			Timeframe: "1h",
			Bars:      []market.Bar{{Close: 67000}, {Close: 68000}},
			Stats:     map[string]*float64{"close_latest": fp(68000.5)},
		},
	}
	res := market.ResolvePrice(rc.Snapshot)

	req := composeRequest("BTC", rc, res, "digest text")

	if req.Symbol != "BTC" || req.SocialContext != "情绪面偏多" || req.AnalysisResults != "digest text" {
		t.Errorf("unexpected request: %+v", req)
	}

	var summary snapshotSummary
	if err := json.Unmarshal([]byte(req.SnapshotSummary), &summary); err != nil {
		t.Fatalf("snapshot summary is not JSON: %v", err)
	}
	if summary.Pair != "BTC/USDT" {
		t.Errorf("pair = %q", summary.Pair)
	}
	if summary.LatestPrice == nil || *summary.LatestPrice != 68000.5 {
		t.Errorf("latest price = %v", summary.LatestPrice)
	}
	if summary.PriceSource != string(market.SourceStats) {
		t.Errorf("price source = %q", summary.PriceSource)
	}
	if summary.LastBar == nil || summary.LastBar.Close != 68000 {
		t.Errorf("last bar = %+v", summary.LastBar)
	}
	// The full bar list must never travel to the model.
	if strings.Contains(req.SnapshotSummary, `"bars"`) {
		t.Error("summary should not carry the full bar list")
	}
}

func TestComposeRequest_DegradedContext(t *testing.T) {
	req := composeRequest("ETH", resources.Context{}, nil, "digest")

	if req.SocialContext != "" || req.SnapshotSummary != "" {
		t.Errorf("expected empty optional parts, got %+v", req)
	}
	if req.AnalysisResults != "digest" {
		t.Errorf("analysis digest must always be carried, got %q", req.AnalysisResults)
	}
}

func TestComposeRequest_MalformedSnapshotTravelsAsText(t *testing.T) {
	rc := resources.Context{SnapshotRaw: "not json"}

	req := composeRequest("SOL", rc, nil, "digest")

	if req.SnapshotSummary != "not json" {
		t.Errorf("expected raw text fallback, got %q", req.SnapshotSummary)
	}
}

func TestComposeRequest_Deterministic(t *testing.T) {
	rc := resources.Context{Social: "s"}
	a := composeRequest("BTC", rc, nil, "d")
	b := composeRequest("BTC", rc, nil, "d")
	if a != b {
		t.Errorf("composer must be deterministic: %+v vs %+v", a, b)
	}
}
