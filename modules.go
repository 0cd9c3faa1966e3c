// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import mapset "github.com/deckarep/golang-set/v2"

// DetectModules runs the two-visit DFS timing pass of §4.6 and marks every
// gate whose basic-event footprint is disjoint from the rest of the graph
// as a module, then synthesizes fresh sub-modules out of groups of
// non-shared children within gates that are not themselves modules.
func DetectModules(g *Graph) error {
	abs := g.top.Abs()
	if g.ClassifyIndex(abs) != KindGate {
		return nil
	}

	timer := 0
	visited := make(map[int]bool)
	visits := make(map[int]*visitWindow)
	if err := assignTiming(g, abs, &timer, visited, visits); err != nil {
		return err
	}

	reach := make(map[int]mapset.Set[int])
	markModules(g, abs, visits, reach, make(map[int]bool))
	synthesizeSubmodules(g, abs, visits, reach, make(map[int]bool))
	return nil
}

// visitWindow tracks the earliest and latest DFS timestamp at which a
// basic event was touched as a child anywhere in the graph.
type visitWindow struct {
	min, max int
}

// assignTiming performs the traversal: each gate is entered and exited
// exactly once (guarded by visited), but a basic event shared by several
// gates accumulates a visit window spanning every occurrence — including
// occurrences outside the subtree of any one gate — which is exactly what
// the bracketing test in markModules needs.
func assignTiming(g *Graph, gi int, timer *int, visited map[int]bool, visits map[int]*visitWindow) error {
	if visited[gi] {
		return nil
	}
	visited[gi] = true

	gate := g.Gate(gi)
	if gate == nil {
		return nil
	}

	*timer++
	gate.enter = *timer

	for _, lit := range gate.Children() {
		abs := lit.Abs()
		switch g.ClassifyIndex(abs) {
		case KindBasicEvent:
			*timer++
			touchBasic(visits, abs, *timer)
		case KindHouseEvent:
			// House events should already have been folded away by
			// PropagateConstants; ignore defensively if not.
		case KindGate:
			if err := assignTiming(g, abs, timer, visited, visits); err != nil {
				return err
			}
		}
	}

	*timer++
	gate.exit = *timer
	return nil
}

func touchBasic(visits map[int]*visitWindow, idx, t int) {
	w, ok := visits[idx]
	if !ok {
		visits[idx] = &visitWindow{min: t, max: t}
		return
	}
	if t < w.min {
		w.min = t
	}
	if t > w.max {
		w.max = t
	}
}

// reachableBasicEvents returns the memoized set of basic-event indices in
// gi's subtree, using golang-set for the membership/intersection
// bookkeeping the disjointness tests below are built on. gi may itself be a
// basic-event index, in which case its footprint is just itself.
func reachableBasicEvents(g *Graph, gi int, memo map[int]mapset.Set[int]) mapset.Set[int] {
	if s, ok := memo[gi]; ok {
		return s
	}
	if g.ClassifyIndex(gi) == KindBasicEvent {
		s := mapset.NewThreadUnsafeSet[int](gi)
		memo[gi] = s
		return s
	}

	result := mapset.NewThreadUnsafeSet[int]()
	memo[gi] = result // break cycles defensively; graph is acyclic in practice

	gate := g.Gate(gi)
	if gate == nil {
		return result
	}
	for _, lit := range gate.Children() {
		abs := lit.Abs()
		switch g.ClassifyIndex(abs) {
		case KindBasicEvent:
			result.Add(abs)
		case KindGate:
			result = result.Union(reachableBasicEvents(g, abs, memo))
		}
	}
	memo[gi] = result
	return result
}

// markModules walks the graph marking each gate whose reachable
// basic-event footprint is fully bracketed by its own enter/exit window
// — min(child_min_time) ≥ enter_time and max(child_max_time) ≤ exit_time
// — as a module (§4.6, §8 property 6).
func markModules(g *Graph, gi int, visits map[int]*visitWindow, reach map[int]mapset.Set[int], done map[int]bool) {
	if done[gi] {
		return
	}
	done[gi] = true

	gate := g.Gate(gi)
	if gate == nil {
		return
	}
	for _, lit := range gate.Children() {
		if g.ClassifyIndex(lit.Abs()) == KindGate {
			markModules(g, lit.Abs(), visits, reach, done)
		}
	}

	footprint := reachableBasicEvents(g, gi, reach)
	isModule := true
	footprint.Each(func(be int) bool {
		w := visits[be]
		if w == nil || w.min < gate.enter || w.max > gate.exit {
			isModule = false
			return true
		}
		return false
	})
	gate.module = isModule
}

// synthesizeSubmodules groups, within every non-module gate, the children
// whose basic-event footprint never strays outside that gate's own
// enter/exit DFS window into a fresh gate of the same kind marked as a
// module (§4.6's sub-module synthesis). A child — gate or basic event
// alike — is "non-shared" exactly when every basic event in its footprint
// was touched only between gi's enter and exit timestamps: the same
// bracketing test markModules applies to a whole gate against the rest of
// the graph, applied here to one child against the rest of gi. This is
// what lets a basic event with visits[e].min==visits[e].max (touched
// exactly once, necessarily inside whoever's subtree it's under) join a
// sub-module on the same footing as a non-shared sub-gate, matching the
// original's CreateNewModule/non_shared_children.
func synthesizeSubmodules(g *Graph, gi int, visits map[int]*visitWindow, reach map[int]mapset.Set[int], done map[int]bool) {
	if done[gi] {
		return
	}
	done[gi] = true

	gate := g.Gate(gi)
	if gate == nil {
		return
	}
	for _, lit := range gate.Children() {
		if g.ClassifyIndex(lit.Abs()) == KindGate {
			synthesizeSubmodules(g, lit.Abs(), visits, reach, done)
		}
	}

	if gate.module {
		return
	}

	var nonShared []Literal
	for _, lit := range gate.Children() {
		footprint := reachableBasicEvents(g, lit.Abs(), reach)
		bracketed := true
		footprint.Each(func(be int) bool {
			w := visits[be]
			if w == nil || w.min < gate.enter || w.max > gate.exit {
				bracketed = false
				return true
			}
			return false
		})
		if bracketed {
			nonShared = append(nonShared, lit)
		}
	}

	// Never wrap *every* child of gi in a new module: that would just be
	// a relabeling of gi itself (CreateNewModule's own invariant in the
	// original). Mark gi a module directly instead.
	if len(nonShared) >= 2 && len(nonShared) == gate.NumChildren() {
		gate.module = true
		return
	}
	if len(nonShared) < 2 {
		return
	}

	sub := newGate(g.newIndex(), gate.kind)
	sub.module = true
	for _, lit := range nonShared {
		sub.children.Add(lit)
		gate.children.Remove(lit)
	}
	g.addGate(sub)
	gate.children.Add(Literal(sub.index))
}
