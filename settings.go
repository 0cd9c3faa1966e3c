// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// Settings holds the tunables of a single analysis (§6), built with
// functional options in the same style as the BDD table's own
// Nodesize/Cachesize/Maxnodesize constructors.
type Settings struct {
	limitOrder         int
	approximation      Approximation
	ccfAnalysis        bool
	importanceAnalysis bool
	maxBDDNodes        int // 0 means unlimited
}

// SettingsOption configures a new Settings value.
type SettingsOption func(*Settings)

// NewSettings builds a Settings value from zero or more options, in the
// same spirit as the BDD table's New(varnum, ...Option).
func NewSettings(opts ...SettingsOption) *Settings {
	s := &Settings{
		limitOrder:    _DEFAULTLIMITORDER,
		approximation: ApproxNone,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LimitOrder is a configuration option. It bounds the maximum size of a
// minimal cut set the extractor will report; cut sets larger than this are
// dropped and surfaced as a Truncated warning rather than silently omitted
// (§12, resolving the truncation-signal Open Question).
func LimitOrder(n int) SettingsOption {
	return func(s *Settings) { s.limitOrder = n }
}

// WithApproximation selects which closed-form probability approximation,
// if any, accompanies the exact BDD-computed total.
func WithApproximation(a Approximation) SettingsOption {
	return func(s *Settings) { s.approximation = a }
}

// CCFAnalysis toggles whether the caller has already expanded common-cause
// failure groups into the model it hands to Build; the flag is stored on
// Settings only, is not copied into the Result, and does not itself perform
// CCF expansion, which remains a model-layer concern (§4 Non-goals).
func CCFAnalysis(enabled bool) SettingsOption {
	return func(s *Settings) { s.ccfAnalysis = enabled }
}

// ImportanceAnalysis toggles computation of per-basic-event importance
// factors (§4.7).
func ImportanceAnalysis(enabled bool) SettingsOption {
	return func(s *Settings) { s.importanceAnalysis = enabled }
}

// MaxBDDNodes bounds the BDD node table; exceeding it during construction
// raises a LimitError (§7). Zero means unlimited.
func MaxBDDNodes(n int) SettingsOption {
	return func(s *Settings) { s.maxBDDNodes = n }
}

// _DEFAULTLIMITORDER mirrors the all-caps-underscore naming the teacher
// uses for its own package-level constants (_MINFREENODES,
// _DEFAULTMAXNODEINC in config.go and bkernel.go).
const _DEFAULTLIMITORDER = 20
