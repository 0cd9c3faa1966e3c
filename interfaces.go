// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// FormulaKind is the Boolean connective of a user-level Formula, before any
// normalization has run. It is an alias of Kind, with the same eight
// values.
type FormulaKind = Kind

// Formula is the external-collaborator shape of a single gate definition,
// as handed down from the model layer (§6): a kind, an optional vote number
// for ATLEAST, a set of named event arguments, and a set of nested
// anonymous sub-formulas. The model layer — CCF expansion, parameter
// expressions, mission-time scheduling — lives entirely outside this
// package; Formula is the narrow contract at the boundary.
type Formula struct {
	Kind Kind
	Vote int // meaningful only when Kind == KindAtleast

	// EventArgs are named references to basic events, house events, or
	// already-declared gates, resolved through the substitution maps
	// passed to Build.
	EventArgs []string

	// FormulaArgs are nested anonymous sub-formulas; each is assigned a
	// fresh gate index in the order given here (§5's "iteration over a
	// gate's children uses insertion order").
	FormulaArgs []*Formula
}

// Model is the complete set of inputs consumed from the model layer for a
// single analysis (§6). EventIndex has already resolved every name to a
// magnitude; Gates maps each user-declared gate's index to its Formula.
type Model struct {
	Index *EventIndex

	// Gates holds one Formula per user-declared gate index, keyed by that
	// index. TopIndex names the root.
	Gates    map[int]*Formula
	TopIndex int

	// CCFSubstitutes maps a CCF-expanded event name directly to a gate
	// index, checked before the general EventIndex lookup (§4.1: "CCF
	// substitute wins over the general map").
	CCFSubstitutes map[string]int

	// TrueHouseEvents and FalseHouseEvents are the indices of house events
	// fixed to true/false for this analysis run.
	TrueHouseEvents  []int
	FalseHouseEvents []int

	// Probabilities holds, for each basic-event index, its failure
	// probability at the configured mission time.
	Probabilities map[int]float64
}

// Approximation selects which closed-form probability approximation, if
// any, a Result reports alongside (or instead of) the exact BDD-based
// value.
type Approximation int

const (
	ApproxNone      Approximation = iota
	ApproxRareEvent               // Σ_cutset Π p_e
	ApproxMCUB                    // 1 − Π_cutset (1 − Π p_e)
)

func (a Approximation) String() string {
	switch a {
	case ApproxNone:
		return "none"
	case ApproxRareEvent:
		return "rare-event"
	case ApproxMCUB:
		return "mcub"
	default:
		return "unknown"
	}
}

// AbortSignal is polled at pass boundaries only (§5): closing it, or
// sending on it, requests that the current analysis stop before its next
// pass begins. There is no mid-pass cancellation and no timeout semantics
// at this layer.
type AbortSignal <-chan struct{}

// ImportanceFactors holds the five importance measures of §4.7 for a
// single basic event.
type ImportanceFactors struct {
	MIF float64 // Birnbaum: P(top|e=1) - P(top|e=0)
	CIF float64 // critical: MIF * p_e / P(top)
	DIF float64 // Fussell-Vesely: 1 - P(top|e=0)/P(top)
	RAW float64 // risk achievement worth: P(top|e=1)/P(top)
	RRW float64 // risk reduction worth: P(top)/P(top|e=0)
}

// CutSetProbability pairs a minimal cut set with its own probability
// contribution and the fraction of the total it represents.
type CutSetProbability struct {
	CutSet      []int // signed basic-event indices
	Probability float64
	Fraction    float64
}

// Timings records wall-clock durations, in seconds, for the four phases
// named in §6.
type Timings struct {
	GraphPrep     float64
	MCSExtraction float64
	Probability   float64
	Importance    float64
}

// Result is the complete output of an analysis (§6): minimal cut sets (as
// signed basic-event indices, de-indexed by the caller if names are
// wanted), the probability figures actually computed, per-event importance
// factors, per-cut-set contributions, timings, and any warnings collected
// along the way.
type Result struct {
	MinimalCutSets [][]int

	PTotal float64
	PRare  float64 // valid only if Settings.Approximation == ApproxRareEvent
	PMCUB  float64 // valid only if Settings.Approximation == ApproxMCUB

	Importance map[int]ImportanceFactors

	CutSetProbabilities []CutSetProbability

	Timings Timings

	Warnings []string
}
