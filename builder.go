// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import "fmt"

// EventIndex assigns dense positive integer magnitudes to basic events,
// house events, and user-declared gates, partitioned exactly as in §3:
// [1,B] basic events, [B+1,B+H] house events, [B+H+1,G] user gates, with a
// monotonic counter seeded above G for gates synthesized during
// rewriting.
type EventIndex struct {
	names map[string]int

	b, h, g int // high-water marks for basic/house/gate ranges
	next    int // next index to hand to a synthesized gate
}

// NewEventIndex assigns indices to basic, house, and gate names in the
// order given, partitioned per §3. It returns a StructuralError if any
// name repeats across the three lists.
func NewEventIndex(basic, house, gates []string) (*EventIndex, error) {
	idx := &EventIndex{names: make(map[string]int, len(basic)+len(house)+len(gates))}
	next := 1
	for _, name := range basic {
		if err := idx.assign(name, next); err != nil {
			return nil, err
		}
		next++
	}
	idx.b = next - 1
	for _, name := range house {
		if err := idx.assign(name, next); err != nil {
			return nil, err
		}
		next++
	}
	idx.h = next - 1
	for _, name := range gates {
		if err := idx.assign(name, next); err != nil {
			return nil, err
		}
		next++
	}
	idx.g = next - 1
	idx.next = next
	return idx, nil
}

func (idx *EventIndex) assign(name string, i int) error {
	if _, exists := idx.names[name]; exists {
		return &StructuralError{Kind: "DuplicateDefinition", Message: fmt.Sprintf("event or gate %q defined more than once", name)}
	}
	idx.names[name] = i
	return nil
}

// Resolve returns the magnitude assigned to name, if any.
func (idx *EventIndex) Resolve(name string) (int, bool) {
	i, ok := idx.names[name]
	return i, ok
}

// NextGateIndex hands out a fresh, monotonically increasing magnitude for
// a synthesized gate (§3, §5: "the index counter is monotonic and
// single-writer").
func (idx *EventIndex) NextGateIndex() int {
	idx.next++
	return idx.next - 1
}

// Kind classifies a positive magnitude as a basic event, house event, or
// gate (including synthesized gates, which are simply indices beyond G).
func (idx *EventIndex) Kind(magnitude int) EventKind {
	switch {
	case magnitude <= idx.b:
		return KindBasicEvent
	case magnitude <= idx.h:
		return KindHouseEvent
	default:
		return KindGate
	}
}

// NumBasicEvents, NumHouseEvents, and NumGates report the sizes of each
// partition as originally declared (not counting gates synthesized later).
func (idx *EventIndex) NumBasicEvents() int { return idx.b }
func (idx *EventIndex) NumHouseEvents() int { return idx.h - idx.b }
func (idx *EventIndex) NumGates() int       { return idx.g - idx.h }

// Build converts a Model into an indexed, unnormalized Graph (§4.1). Each
// user-declared gate is materialized recursively: named arguments resolve
// through the CCF substitution map first, falling back to the general
// event index, and nested anonymous sub-formulas are assigned fresh
// indices in their own iteration order. Duplicate child literals are
// rejected with a StructuralError, matching the Gate invariant of §3.
func Build(m *Model) (*Graph, error) {
	basic := make([]BasicEvent, m.Index.NumBasicEvents())
	for name, i := range m.Index.names {
		if m.Index.Kind(i) == KindBasicEvent {
			basic[i-1] = BasicEvent{Name: name, Probability: m.Probabilities[i]}
		}
	}

	house := make([]HouseEvent, m.Index.NumHouseEvents())
	trueSet := make(map[int]bool, len(m.TrueHouseEvents))
	for _, i := range m.TrueHouseEvents {
		trueSet[i] = true
	}
	falseSet := make(map[int]bool, len(m.FalseHouseEvents))
	for _, i := range m.FalseHouseEvents {
		falseSet[i] = true
	}
	for name, i := range m.Index.names {
		if m.Index.Kind(i) != KindHouseEvent {
			continue
		}
		state := trueSet[i]
		if !state && !falseSet[i] {
			return nil, &StructuralError{Kind: "UnknownEvent", Message: fmt.Sprintf("house event %q has no assigned state", name), Entity: i}
		}
		house[i-m.Index.b-1] = HouseEvent{Name: name, State: state}
	}

	g := newGraph(basic, house)
	g.numGates = m.Index.NumGates()

	b := &builder{graph: g, model: m, built: make(map[int]bool)}
	if err := b.materialize(m.TopIndex); err != nil {
		return nil, err
	}
	// m.Index.next only ever grows while materialize walks FormulaArgs
	// (via NextGateIndex), so the arena's own counter must be taken from it
	// after materialization, not before — otherwise g.newIndex() could hand
	// out an index already consumed by a nested anonymous sub-formula.
	g.next = m.Index.next
	g.top = Literal(m.TopIndex)
	return g, nil
}

type builder struct {
	graph *Graph
	model *Model
	built map[int]bool // guards against re-materializing a shared gate
}

// materialize recursively builds the gate at index gi and every gate it
// transitively references, following the original ProcessFormula's
// recursion over FormulaArgs, and registers each in the arena exactly
// once.
func (b *builder) materialize(gi int) error {
	if b.built[gi] {
		return nil
	}
	b.built[gi] = true

	formula, ok := b.model.Gates[gi]
	if !ok {
		return &LogicError{Pass: "Build", Message: fmt.Sprintf("gate index %d has no formula", gi)}
	}

	gate := newGate(gi, formula.Kind)
	gate.vote = formula.Vote

	if formula.Kind == KindAtleast {
		n := len(formula.EventArgs) + len(formula.FormulaArgs)
		if formula.Vote < 2 || formula.Vote > n-1 {
			return &StructuralError{Kind: "InvalidVoteNumber", Message: fmt.Sprintf("vote number %d not in [2,%d]", formula.Vote, n-1), Entity: gi}
		}
	}
	if formula.Kind == KindXor && len(formula.EventArgs)+len(formula.FormulaArgs) != 2 {
		return &StructuralError{Kind: "InvalidArity", Message: "xor gate must have exactly two children", Entity: gi}
	}

	for _, name := range formula.EventArgs {
		lit, err := b.resolve(name)
		if err != nil {
			return err
		}
		if err := gate.addChild(lit); err != nil {
			return err
		}
	}

	for _, sub := range formula.FormulaArgs {
		childIndex := b.model.Index.NextGateIndex()
		b.model.Gates[childIndex] = sub
		if err := b.materialize(childIndex); err != nil {
			return err
		}
		if err := gate.addChild(Literal(childIndex)); err != nil {
			return err
		}
	}

	b.graph.addGate(gate)
	return nil
}

// resolve looks up name, checking the CCF substitution map before the
// general event index, matching the precedence of the original's
// ProcessFormula ("CCF substitute wins over the general map").
func (b *builder) resolve(name string) (Literal, error) {
	if gi, ok := b.model.CCFSubstitutes[name]; ok {
		return Literal(gi), nil
	}
	i, ok := b.model.Index.Resolve(name)
	if !ok {
		return 0, &StructuralError{Kind: "UnknownEvent", Message: fmt.Sprintf("event name %q is not in the index", name)}
	}
	return Literal(i), nil
}
