// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// Gate is a Boolean connective node of an indexed fault tree (§3). Gates
// live in a Graph's arena, keyed by their own (always positive) index;
// negation of a gate reference is carried on the Literal pointing at it, not
// on the Gate itself.
type Gate struct {
	index int   // always positive; the gate's own identity
	kind  Kind  // AND, OR, XOR, NOT, NULL, NAND, NOR, or ATLEAST
	vote  int   // vote number, meaningful only for ATLEAST
	state State // NORMAL, NULL-CONSTANT, or UNITY

	children orderedLiterals // ordered-insertion set of signed child literals

	// DFS timing, populated only during module detection (§4.6); zero
	// otherwise.
	enter, exit int
	visits      int // number of times Visit has stamped this gate

	// module is set once a gate (original or synthesized) is determined to
	// be a module (§4.6).
	module bool
}

func newGate(index int, kind Kind) *Gate {
	return &Gate{
		index:    index,
		kind:     kind,
		state:    StateNormal,
		children: newOrderedLiterals(),
	}
}

// Index returns the gate's own (positive) index.
func (g *Gate) Index() int { return g.index }

// Kind returns the gate's current kind.
func (g *Gate) Kind() Kind { return g.kind }

// Vote returns the ATLEAST vote number; meaningless for other kinds.
func (g *Gate) Vote() int { return g.vote }

// State returns the gate's constant-folding status.
func (g *Gate) State() State { return g.state }

// IsModule reports whether this gate has been marked as a module (§4.6).
func (g *Gate) IsModule() bool { return g.module }

// Children returns the gate's child literals in insertion order. The caller
// must not mutate the result.
func (g *Gate) Children() []Literal { return g.children.Slice() }

// NumChildren returns the number of children.
func (g *Gate) NumChildren() int { return g.children.Len() }

// Nullify marks the gate as an empty-OR-like false constant: state
// NULL-CONSTANT, no children (§4.3).
func (g *Gate) Nullify() {
	g.state = StateNullConstant
	g.children.Reset()
}

// MakeUnity marks the gate as an empty-AND-like true constant: state UNITY,
// no children (§4.3).
func (g *Gate) MakeUnity() {
	g.state = StateUnity
	g.children.Reset()
}

// addChild adds a child literal, rejecting duplicates (§4.1). It returns a
// DuplicateChild StructuralError if lit or its negation is already present, matching the invariant
// in §3 that "a literal and its negation may not coexist."
func (g *Gate) addChild(lit Literal) error {
	if g.children.Contains(lit.Negate()) {
		return &StructuralError{
			Kind:    "DuplicateChild",
			Message: "literal and its negation both present as children",
			Entity:  g.index,
		}
	}
	if !g.children.Add(lit) {
		return &StructuralError{
			Kind:    "DuplicateChild",
			Message: "duplicate child literal",
			Entity:  g.index,
		}
	}
	return nil
}

// Visit stamps a DFS timestamp on this gate (§4.6). It reports whether the
// gate had already been visited twice before this call (a third visit would
// indicate a cycle, which never happens on an acyclic graph but is checked
// defensively by callers).
func (g *Gate) Visit(time int) bool {
	g.visits++
	switch g.visits {
	case 1:
		g.enter = time
	case 2:
		g.exit = time
	}
	return g.visits > 2
}

// Revisited reports whether Visit has stamped this gate more than twice
// (beyond its enter and exit stamps), i.e. it is shared by more than one
// parent path in the DAG.
func (g *Gate) Revisited() bool { return g.visits > 2 }

// EnterTime and ExitTime return the DFS timestamps recorded by Visit.
func (g *Gate) EnterTime() int { return g.enter }
func (g *Gate) ExitTime() int  { return g.exit }
