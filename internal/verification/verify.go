// Package verification checks whether the critical entities of an original document survive in a
// rewritten version, verbatim or near-verbatim.
package verification

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-entities/internal/metrics"
	"github.com/jonathan/resume-entities/internal/types"
)

const (
	DefaultWindowSize     = 50
	DefaultWindowStep     = 25
	DefaultMatchThreshold = 0.7
)

// Options tunes the fuzzy window matcher.
type Options struct {
	// WindowSize and WindowStep are measured in characters.
	WindowSize int
	WindowStep int
	// MatchThreshold is the fraction of an entity's tokens that must occur in one window.
	MatchThreshold float64
	// SingleTokenFuzzy lets one-token entities match case-insensitively. By default they
	// must appear verbatim, since a token-overlap ratio over one token is all or nothing.
	SingleTokenFuzzy bool
}

// DefaultOptions returns the options matching the documented defaults.
func DefaultOptions() Options {
	return Options{
		WindowSize:     DefaultWindowSize,
		WindowStep:     DefaultWindowStep,
		MatchThreshold: DefaultMatchThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.WindowSize <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.WindowStep <= 0 || o.WindowStep > o.WindowSize {
		o.WindowStep = min(DefaultWindowStep, o.WindowSize)
	}
	if o.MatchThreshold <= 0 || o.MatchThreshold > 1 {
		o.MatchThreshold = DefaultMatchThreshold
	}
	return o
}

// Verifier compares stored entities against candidate text. It holds no per-call state and
// is safe for concurrent use.
type Verifier struct {
	opts    Options
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger used for per-verification debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Verifier) { v.logger = l }
}

// WithMetrics records verification outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(v *Verifier) { v.metrics = c }
}

// New creates a Verifier. Out-of-range options fall back to defaults.
func New(opts Options, options ...Option) *Verifier {
	v := &Verifier{opts: opts.withDefaults(), logger: zerolog.Nop()}
	for _, o := range options {
		o(v)
	}
	return v
}

// Verify checks original against candidate with the default options.
func Verify(original []types.Entity, candidate string) *types.VerificationResult {
	return New(DefaultOptions()).Verify(original, candidate)
}

// Verify reports which critical entities of original are missing from or reworded in
// candidate. Non-critical entities are ignored. Every critical entity lands in at most one
// of the two lists, and Preserved is true iff none is missing.
func (v *Verifier) Verify(original []types.Entity, candidate string) *types.VerificationResult {
	result := &types.VerificationResult{
		MissingEntities:  []types.Entity{},
		ModifiedEntities: []types.ModifiedEntity{},
	}

	checked := 0
	for _, e := range original {
		if !e.Type.IsCritical() {
			continue
		}
		checked++

		if strings.Contains(candidate, e.Value) {
			continue
		}
		if modified, ok := v.reworded(e, candidate); ok {
			result.ModifiedEntities = append(result.ModifiedEntities, types.ModifiedEntity{Original: e, Modified: modified})
			continue
		}
		result.MissingEntities = append(result.MissingEntities, e)
	}
	result.Preserved = len(result.MissingEntities) == 0

	v.metrics.ObserveVerification(len(result.MissingEntities), len(result.ModifiedEntities))
	v.logger.Debug().
		Int("critical", checked).
		Int("missing", len(result.MissingEntities)).
		Int("modified", len(result.ModifiedEntities)).
		Bool("preserved", result.Preserved).
		Msg("verification complete")

	return result
}

// reworded looks for a reworded occurrence of e in candidate.
func (v *Verifier) reworded(e types.Entity, candidate string) (string, bool) {
	tokens := tokenize(e.Value)
	if len(tokens) <= 1 && !v.opts.SingleTokenFuzzy {
		return "", false
	}

	match, ok := firstWindow(tokens, candidate, v.opts.WindowSize, v.opts.WindowStep, v.opts.MatchThreshold)
	if !ok {
		return "", false
	}
	v.logger.Debug().
		Str("entity_type", string(e.Type)).
		Str("value", e.Value).
		Str("modified", match.text).
		Float64("ratio", match.ratio).
		Msg("entity recovered by fuzzy match")
	return match.text, true
}
