// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import "fmt"

// bddRef is a reference into a bddTable's node arena. Terminal nodes are
// the two fixed refs bddZero and bddOne; every other ref is a positive
// index into table.nodes.
type bddRef int

const (
	bddZero bddRef = 0
	bddOne  bddRef = 1
)

// bddNode is one interior node: the basic-event variable it branches on
// (ordered by increasing index, matching the basic-event index order per
// §4.7) and its high/low children.
type bddNode struct {
	level int
	low   bddRef
	high  bddRef
}

// bddKey is the hash-consing key for the unique table — same shape as the
// teacher's own uniqueness test in bkernel.go's Mk functions, just backed
// by a plain comparable struct key instead of a byte-buffer hash
// (hudd.go's [huddsize]byte) since this arena is only ever grown, never
// rehashed under garbage-collection pressure (§11).
type bddKey struct {
	level int
	low   bddRef
	high  bddRef
}

// bddTable is the reduced-ordered-BDD arena built from a single normalized
// Graph. Unlike the teacher's long-lived, multi-use node table, this one
// is single-analysis: no reference counting, no finalizers, no garbage
// collection, dropped wholesale once the analysis finishes (§5, §11).
type bddTable struct {
	nodes  []bddNode      // index 0 and 1 are unused placeholders for the terminals
	unique map[bddKey]bddRef

	cache map[applyKey]bddRef // Apply/Ite memoization, see bddhash.go

	maxNodes int // 0 means unlimited; see Settings.MaxBDDNodes
}

func newBDDTable(maxNodes int) *bddTable {
	return &bddTable{
		nodes:    make([]bddNode, 2, 64),
		unique:   make(map[bddKey]bddRef),
		cache:    make(map[applyKey]bddRef),
		maxNodes: maxNodes,
	}
}

// mk returns the (possibly newly created) node for (level, low, high),
// reducing it away if low == high (the standard ROBDD reduction rule).
func (t *bddTable) mk(level int, low, high bddRef) (bddRef, error) {
	if low == high {
		return low, nil
	}
	key := bddKey{level: level, low: low, high: high}
	if ref, ok := t.unique[key]; ok {
		return ref, nil
	}
	if t.maxNodes > 0 && len(t.nodes) >= t.maxNodes {
		return 0, &LimitError{Limit: "MaxBDDNodes", Bound: t.maxNodes, Message: "BDD node table exceeded its configured cap"}
	}
	ref := bddRef(len(t.nodes))
	t.nodes = append(t.nodes, bddNode{level: level, low: low, high: high})
	t.unique[key] = ref
	return ref, nil
}

func (t *bddTable) isTerminal(r bddRef) bool { return r == bddZero || r == bddOne }

func (t *bddTable) level(r bddRef) int {
	if t.isTerminal(r) {
		return maxInt
	}
	return t.nodes[r].level
}

func (t *bddTable) low(r bddRef) bddRef  { return t.nodes[r].low }
func (t *bddTable) high(r bddRef) bddRef { return t.nodes[r].high }

// Stats reports the node and cache table sizes, the minimal diagnostic
// surface this single-shot arena needs in place of the teacher's
// PrintStats/gcstats (which report garbage-collection and finalizer
// activity this table never performs, see SPEC_FULL §11).
func (t *bddTable) Stats() string {
	return fmt.Sprintf("nodes: %d  unique-table: %d  apply-cache: %d", len(t.nodes), len(t.unique), len(t.cache))
}

const maxInt = int(^uint(0) >> 1)

// ithVar returns the one-node BDD for the positive literal of the
// basic-event at the given level (the event's own index, 1-based, matches
// its position in the variable order per §4.7).
func (t *bddTable) ithVar(level int) (bddRef, error) {
	return t.mk(level, bddZero, bddOne)
}

// nithVar returns the one-node BDD for the negated literal.
func (t *bddTable) nithVar(level int) (bddRef, error) {
	return t.mk(level, bddOne, bddZero)
}

// BuildBDD constructs a reduced ordered BDD for the entire normalized
// graph rooted at g.Top(), using the basic-event index order as the
// variable order (§4.7). It returns the table and the root reference.
func BuildBDD(g *Graph, settings *Settings) (*bddTable, bddRef, error) {
	maxNodes := 0
	if settings != nil {
		maxNodes = settings.maxBDDNodes
	}
	t := newBDDTable(maxNodes)
	memo := make(map[int]bddRef)
	root, err := t.buildGate(g, g.top.Abs(), memo)
	if err != nil {
		return nil, 0, err
	}
	if !g.top.Positive() {
		root, err = t.not(root)
		if err != nil {
			return nil, 0, err
		}
	}
	return t, root, nil
}

// buildGate recursively builds the sub-BDD for gate gi, memoized per gate
// index since the same gate may be referenced by several parents.
func (t *bddTable) buildGate(g *Graph, gi int, memo map[int]bddRef) (bddRef, error) {
	if ref, ok := memo[gi]; ok {
		return ref, nil
	}
	gate := g.Gate(gi)
	if gate == nil {
		return 0, &LogicError{Pass: "BuildBDD", Message: "reference to unknown gate"}
	}

	var result bddRef
	var err error
	switch gate.state {
	case StateUnity:
		result = bddOne
	case StateNullConstant:
		result = bddZero
	default:
		children := gate.Children()
		if len(children) < 2 {
			return 0, &LogicError{Pass: "BuildBDD", Message: "non-constant gate with fewer than two children reached the BDD builder"}
		}
		result, err = t.buildLiteral(g, children[0], memo)
		if err != nil {
			return 0, err
		}
		for _, lit := range children[1:] {
			sub, err := t.buildLiteral(g, lit, memo)
			if err != nil {
				return 0, err
			}
			if gate.kind == KindAnd {
				result, err = t.ite(result, sub, bddZero)
			} else {
				result, err = t.ite(result, bddOne, sub)
			}
			if err != nil {
				return 0, err
			}
		}
	}
	memo[gi] = result
	return result, nil
}

// buildLiteral builds the sub-BDD for a single signed child literal: a
// basic-event reference becomes a one-node variable BDD, a gate reference
// recurses.
func (t *bddTable) buildLiteral(g *Graph, lit Literal, memo map[int]bddRef) (bddRef, error) {
	abs := lit.Abs()
	if g.ClassifyIndex(abs) == KindGate {
		ref, err := t.buildGate(g, abs, memo)
		if err != nil {
			return 0, err
		}
		if !lit.Positive() {
			return t.not(ref)
		}
		return ref, nil
	}
	if lit.Positive() {
		return t.ithVar(abs)
	}
	return t.nithVar(abs)
}
