// Package advisor implements the advice generation pipeline: context
// aggregation, model invocation, structured-output validation and ordered
// persistence.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/user/crypto-advisor/internal/llm"
	"github.com/user/crypto-advisor/internal/market"
	"github.com/user/crypto-advisor/internal/resources"
	"github.com/user/crypto-advisor/internal/storage"
)

// maxAttempts bounds the model invocation: one call plus one retry when the
// output cannot be parsed. An explicit counted loop, never unbounded.
const maxAttempts = 2

// hanText matches at least one Han character; the deployment mandates a
// Chinese reason field.
var hanText = regexp.MustCompile(`\p{Han}`)

// ContextLoader yields the on-disk context for a symbol.
type ContextLoader interface {
	Load(symbol string) resources.Context
}

// Store accepts validated advice rows.
type Store interface {
	InsertAdvice(ctx context.Context, advice *storage.Advice) error
}

// Engine runs one advice generation per call: compose context, invoke the
// model, validate, persist. Exactly zero or one row is written per
// invocation.
type Engine struct {
	reader   ContextLoader
	provider llm.Provider
	store    Store
	log      zerolog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewEngine creates a new advice engine.
func NewEngine(reader ContextLoader, provider llm.Provider, store Store, log zerolog.Logger) *Engine {
	v := validator.New()
	// Report violations under the wire field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Engine{
		reader:   reader,
		provider: provider,
		store:    store,
		log:      log,
		validate: v,
		now:      time.Now,
	}
}

// Generate produces and persists one advice for the symbol, given the
// upstream analysis digest. Its only observable effect is zero or one new
// row; every rejection path is logged with symbol and stage. The returned
// error matches one of the package's failure categories.
func (e *Engine) Generate(ctx context.Context, symbol, analysisResults string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must be non-empty"}
	}

	rc := e.reader.Load(symbol)
	resolution := market.ResolvePrice(rc.Snapshot)
	req := composeRequest(symbol, rc, resolution, analysisResults)

	candidate, err := e.invoke(ctx, symbol, req)
	if err != nil {
		return err
	}

	if err := e.validateCandidate(symbol, candidate); err != nil {
		return err
	}

	advice := &storage.Advice{
		Symbol:         symbol,
		AdviceAction:   candidate.Action,
		AdviceStrength: candidate.Strength,
		Reason:         strings.TrimSpace(candidate.Reason),
		PredictedAt:    candidate.PredictedAt,
		Price:          finalPrice(resolution, candidate),
	}
	if err := e.store.InsertAdvice(ctx, advice); err != nil {
		e.log.Error().Err(err).Str("symbol", symbol).Str("stage", "store").
			Msg("validated advice lost, storage rejected the insert")
		return fmt.Errorf("%w: %v", ErrDatabaseWrite, err)
	}

	e.log.Info().Str("symbol", symbol).Str("action", advice.AdviceAction).
		Int64("predicted_at", advice.PredictedAt).Msg("advice stored")
	return nil
}

// invoke calls the provider, retrying once when the raw output cannot be
// parsed. Transport failures are final immediately: re-sending the same
// payload is the orchestrator's call, on a later run.
func (e *Engine) invoke(ctx context.Context, symbol string, req llm.AdviceRequest) (*llm.AdviceCandidate, error) {
	var lastParseErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := e.provider.Complete(ctx, req)
		if err != nil {
			e.log.Error().Err(err).Str("symbol", symbol).Str("stage", "model").
				Msg("model call failed")
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}

		candidate, perr := llm.ParseCandidate(raw)
		if perr == nil {
			return candidate, nil
		}
		lastParseErr = perr
		e.log.Warn().Err(perr).Str("symbol", symbol).Str("stage", "parse").
			Int("attempt", attempt).Msg("model output not parseable")
	}
	return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, lastParseErr)
}

// validateCandidate enforces the acceptance contract. A single violation
// rejects the whole candidate; the only permitted default is substituting
// the current wall-clock seconds for a missing predicted_at.
func (e *Engine) validateCandidate(symbol string, candidate *llm.AdviceCandidate) error {
	if candidate.PredictedAt == 0 {
		candidate.PredictedAt = e.now().Unix()
	}

	if err := e.validate.Struct(candidate); err != nil {
		verr := &ValidationError{Field: "candidate", Reason: err.Error()}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			verr = &ValidationError{
				Field:  fieldErrs[0].Field(),
				Reason: "failed " + fieldErrs[0].Tag() + " constraint",
			}
		}
		e.logRejection(symbol, verr)
		return verr
	}

	if !strings.EqualFold(strings.TrimSpace(candidate.Symbol), symbol) {
		verr := &ValidationError{Field: "symbol", Reason: "does not match the requested symbol"}
		e.logRejection(symbol, verr)
		return verr
	}

	if !hanText.MatchString(candidate.Reason) {
		verr := &ValidationError{Field: "reason", Reason: "must be written in Chinese"}
		e.logRejection(symbol, verr)
		return verr
	}

	return nil
}

func (e *Engine) logRejection(symbol string, verr *ValidationError) {
	e.log.Warn().Str("symbol", symbol).Str("stage", "validate").
		Str("field", verr.Field).Str("reason", verr.Reason).
		Msg("advice candidate rejected")
}

// finalPrice picks the stored price: the context-resolved value wins; the
// model's own number fills in only when nothing could be resolved from the
// snapshot. Null when both are absent.
func finalPrice(res *market.PriceResolution, candidate *llm.AdviceCandidate) *float64 {
	if res != nil {
		price := res.Price
		return &price
	}
	return candidate.Price
}
