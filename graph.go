// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import (
	"fmt"
	"sort"
)

// BasicEvent is the static description of an atomic failure event: its
// name and failure probability. The index that refers to it is assigned by
// the EventIndex that built the enclosing Graph.
type BasicEvent struct {
	Name        string
	Probability float64
}

// HouseEvent is the static description of a fixed Boolean constant event.
type HouseEvent struct {
	Name  string
	State bool
}

// Graph is the indexed fault-tree arena (§3): a dense integer-indexed
// collection of gates, together with the basic- and house-event tables and
// the index ranges that classify a literal's magnitude without a map
// lookup. A Graph is built once by Build and then mutated in place by the
// successive passes (Normalize, PropagateConstants, ...); it is never
// shared between independent analyses.
//
// The arena follows the same "plain map keyed by int, monotonic counter"
// pattern the teacher uses for its unique table of BDD nodes (see kernel.go
// and the Mk family of constructors in bkernel.go), generalized from BDD
// nodes to fault-tree gates.
type Graph struct {
	gates map[int]*Gate
	next  int // next index to hand out to a synthesized gate

	basic    []BasicEvent // index 1..numBasic
	house    []HouseEvent // index numBasic+1..numBasic+numHouse
	numGates int          // number of *original*, user-declared gates

	top Literal // the root literal of the tree, set once by Build
}

// newGraph allocates an empty arena sized for numBasic basic events and
// numHouse house events, whose indices are always [1,numBasic] and
// [numBasic+1,numBasic+numHouse] respectively (§3).
func newGraph(basic []BasicEvent, house []HouseEvent) *Graph {
	return &Graph{
		gates: make(map[int]*Gate),
		basic: basic,
		house: house,
		next:  len(basic) + len(house) + 1,
	}
}

// NumBasicEvents returns the number of basic events in the graph.
func (g *Graph) NumBasicEvents() int { return len(g.basic) }

// NumHouseEvents returns the number of house events in the graph.
func (g *Graph) NumHouseEvents() int { return len(g.house) }

// NumGates returns the number of gates currently in the arena, including
// any gates synthesized by normalization passes.
func (g *Graph) NumGates() int { return len(g.gates) }

// Top returns the root literal of the fault tree.
func (g *Graph) Top() Literal { return g.top }

// ClassifyIndex reports which of the three index ranges i (always given as
// a positive magnitude) falls into (§3).
func (g *Graph) ClassifyIndex(i int) EventKind {
	switch {
	case i <= len(g.basic):
		return KindBasicEvent
	case i <= len(g.basic)+len(g.house):
		return KindHouseEvent
	default:
		return KindGate
	}
}

// BasicEvent returns the static description of the basic event at index i.
// It panics if i is not a basic-event index; callers are expected to have
// checked ClassifyIndex first.
func (g *Graph) BasicEvent(i int) *BasicEvent {
	return &g.basic[i-1]
}

// HouseEvent returns the static description of the house event at index i.
func (g *Graph) HouseEvent(i int) *HouseEvent {
	return &g.house[i-len(g.basic)-1]
}

// Gate looks up the gate at index i, which must be positive. It returns nil
// if no gate exists at that index (e.g. it was a NOT/NULL top discarded by
// Normalize).
func (g *Graph) Gate(i int) *Gate {
	return g.gates[i]
}

// newIndex hands out a fresh gate index, used when normalization,
// complement propagation or module detection synthesizes a gate (§4.2,
// §4.4, §4.6).
func (g *Graph) newIndex() int {
	i := g.next
	g.next++
	return i
}

// addGate inserts gate into the arena at its own index. It panics if the
// index is already occupied, which would indicate an internal bug in a
// pass rather than a malformed input tree.
func (g *Graph) addGate(gate *Gate) {
	if _, exists := g.gates[gate.index]; exists {
		panic(fmt.Sprintf("scram: duplicate gate index %d", gate.index))
	}
	g.gates[gate.index] = gate
}

// removeGate deletes the gate at index i from the arena, used by Normalize
// once a NOT/NULL top gate has been replaced by its child.
func (g *Graph) removeGate(i int) {
	delete(g.gates, i)
}

// Gates calls fn for every gate currently in the arena. Iteration order is
// unspecified; passes that need a deterministic order sort by index
// themselves (see normalize.go).
func (g *Graph) Gates(fn func(*Gate)) {
	for _, gate := range g.gates {
		fn(gate)
	}
}

// Indices returns the indices of every gate currently in the arena, sorted
// ascending. Passes use this when they need a deterministic iteration
// order, e.g. to replay log output deterministically under the debug build
// tag.
func (g *Graph) Indices() []int {
	idx := make([]int, 0, len(g.gates))
	for i := range g.gates {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
