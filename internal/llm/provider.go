// Package llm provides the model provider interface and implementations.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// AdviceRequest carries the composed context payload for one advice call.
type AdviceRequest struct {
	Symbol          string `json:"symbol"`
	SocialContext   string `json:"social_context,omitempty"`
	SnapshotSummary string `json:"snapshot_summary,omitempty"`
	AnalysisResults string `json:"analysis_results"`
}

// AdviceCandidate is the model's advice output, untrusted until validated.
type AdviceCandidate struct {
	Symbol      string   `json:"symbol" validate:"required"`
	Action      string   `json:"advice_action" validate:"required,oneof=buy hold sell"`
	Strength    string   `json:"advice_strength" validate:"required,oneof=high medium low"`
	Reason      string   `json:"reason" validate:"required"`
	PredictedAt int64    `json:"predicted_at" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price,omitempty"`
}

// Provider defines the interface for LLM providers: submit a payload,
// receive raw text. Parsing and validation stay outside the vendor seam.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends the advice request and returns the raw model output.
	Complete(ctx context.Context, req AdviceRequest) (string, error)
}

// systemPrompt fixes the output contract: one JSON object with exactly the
// candidate fields, Chinese reason, medium reasoning effort. This is a
// deployment constant, not a per-call knob.
const systemPrompt = `你是加密资产投资顾问。必须以严格 JSON 输出以下字段：` +
	`symbol(advice symbol), advice_action(buy|hold|sell), advice_strength(high|medium|low),` +
	`reason(中文), predicted_at(UNIX秒), price(number)。` +
	`请采用中等推理力度（medium reasoning effort），保持输出简洁、可读。` +
	`只输出该 JSON 对象，不要附加任何其他文本。`

// buildAdvicePrompt creates the variable user payload for an advice call.
func buildAdvicePrompt(req AdviceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "symbol: %s\n", req.Symbol)
	if req.SocialContext != "" {
		fmt.Fprintf(&b, "social_media_analysis: %s\n", req.SocialContext)
	}
	if req.SnapshotSummary != "" {
		fmt.Fprintf(&b, "symbol_24h_resource_summary: %s\n", req.SnapshotSummary)
	}
	fmt.Fprintf(&b, "analysis_results: %s\n", req.AnalysisResults)
	b.WriteString("请综合以上信息，输出上述 JSON 字段，reason 必须为中文。")
	return b.String()
}

// ParseCandidate extracts and parses an advice candidate from raw model
// output. Models occasionally wrap the object in prose or code fences, so
// the first balanced object in the text is used.
func ParseCandidate(response string) (*AdviceCandidate, error) {
	var candidate AdviceCandidate
	if err := parseJSONResponse(response, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// parseJSONResponse extracts and parses JSON from the LLM response.
func parseJSONResponse(response string, v interface{}) error {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")

	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON found in response: %s", response)
	}

	jsonStr := response[start : end+1]

	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w (json: %s)", err, jsonStr)
	}

	return nil
}
