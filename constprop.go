// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// PropagateConstants folds house events and already-constant sub-results
// into their parents, per the table in §4.3, then lifts single-child
// gates so the parent references the grandchild directly. It never
// raises: per §7, "a whole-tree constant is a legitimate result," not an
// error.
//
// Idempotence (§4.3, §8 property 4): running this again on its own output
// is a no-op, because every gate it can still act on has already been
// reduced to NULL-CONSTANT/UNITY or has no constant-valued children left.
//
// PropagateConstants reports whether it changed anything, mirroring
// ProcessConstantChild's own boolean return in the original — coalesce.go
// uses this to decide whether another constprop/coalesce round is needed
// (§4.5's fixed point).
func PropagateConstants(g *Graph) (bool, error) {
	processed := make(map[int]bool)
	changed := false

	abs := g.top.Abs()
	if g.ClassifyIndex(abs) == KindGate {
		did, err := propagateGate(g, abs, processed)
		if err != nil {
			return false, err
		}
		changed = changed || did
	}
	// A shared sub-gate unreachable from top through the recursion above
	// (e.g. dead after an earlier pass) still lives in the arena; fold it
	// too so later passes see a fully reduced graph.
	for _, gi := range g.Indices() {
		if processed[gi] {
			continue
		}
		did, err := propagateGate(g, gi, processed)
		if err != nil {
			return false, err
		}
		changed = changed || did
	}

	did, err := liftSingleChildGates(g)
	if err != nil {
		return false, err
	}
	return changed || did, nil
}

// propagateGate recursively reduces gate gi's children before applying
// the constant-folding table to gi itself, mirroring the original's
// depth-first ProcessConstantChild recursion. processed guards against
// revisiting a gate shared by multiple parents.
func propagateGate(g *Graph, gi int, processed map[int]bool) (bool, error) {
	if processed[gi] {
		return false, nil
	}
	processed[gi] = true

	gate := g.Gate(gi)
	if gate == nil || gate.state != StateNormal {
		return false, nil
	}

	changed := false
	for _, lit := range gate.Children() {
		if gate.state != StateNormal {
			break // already folded to a constant by an earlier child
		}
		abs := lit.Abs()
		switch g.ClassifyIndex(abs) {
		case KindBasicEvent:
			continue
		case KindHouseEvent:
			value := g.HouseEvent(abs).State
			if !lit.Positive() {
				value = !value
			}
			changed = applyConstantChild(gate, lit, value) || changed
		case KindGate:
			child := g.Gate(abs)
			if child == nil {
				continue
			}
			did, err := propagateGate(g, abs, processed)
			if err != nil {
				return false, err
			}
			changed = changed || did
			if child.state == StateNormal {
				continue
			}
			value := child.state == StateUnity
			if !lit.Positive() {
				value = !value
			}
			changed = applyConstantChild(gate, lit, value) || changed
		}
	}

	if gate.state == StateNormal && gate.NumChildren() == 0 {
		// A gate whose children all vanished: empty AND is vacuously
		// true (UNITY), empty OR is vacuously false (NULL-CONSTANT).
		if gate.kind == KindAnd {
			gate.MakeUnity()
			changed = true
		} else if gate.kind == KindOr {
			gate.Nullify()
			changed = true
		}
	}
	return changed, nil
}

// applyConstantChild implements the table of §4.3 for one child of known
// Boolean value, mutating gate in place. It reports whether it changed
// anything: it always does for an AND or OR gate, and leaves a gate of any
// other kind untouched.
func applyConstantChild(gate *Gate, lit Literal, value bool) bool {
	switch gate.kind {
	case KindOr:
		if value {
			gate.MakeUnity()
		} else {
			gate.children.Remove(lit)
		}
	case KindAnd:
		if !value {
			gate.Nullify()
		} else {
			gate.children.Remove(lit)
		}
	default:
		return false
	}
	return true
}

// liftSingleChildGates repeatedly replaces a parent's reference to a
// single-child, non-constant gate with a direct reference to that child's
// own grandchild (sign-adjusted), until no more such lifts are possible.
// A lift that would introduce a duplicate or a literal alongside its own
// negation is skipped, preserving the Gate invariant of §3.
func liftSingleChildGates(g *Graph) (bool, error) {
	any := false
	for {
		changed := false
		for _, gi := range g.Indices() {
			gate := g.Gate(gi)
			if gate == nil {
				continue
			}
			for _, lit := range gate.Children() {
				abs := lit.Abs()
				if g.ClassifyIndex(abs) != KindGate {
					continue
				}
				child := g.Gate(abs)
				if child == nil || child.state != StateNormal || child.NumChildren() != 1 {
					continue
				}
				grandchild := child.Children()[0]
				if child.kind == KindNot {
					grandchild = grandchild.Negate()
				}
				if !lit.Positive() {
					grandchild = grandchild.Negate()
				}
				if gate.children.Contains(grandchild) || gate.children.Contains(grandchild.Negate()) {
					continue
				}
				gate.children.Replace(lit, grandchild)
				changed = true
			}
		}
		if !changed {
			return any, nil
		}
		any = true
	}
}

// TopState reports whether the graph's top event has been reduced to a
// constant, and which one — used by analysis.go to short-circuit straight
// to "top event is always true/always false" per §7.
func (g *Graph) TopState() (State, bool) {
	abs := g.top.Abs()
	if g.ClassifyIndex(abs) != KindGate {
		return StateNormal, false
	}
	gate := g.Gate(abs)
	if gate == nil || gate.state == StateNormal {
		return StateNormal, false
	}
	state := gate.state
	if !g.top.Positive() {
		if state == StateUnity {
			state = StateNullConstant
		} else {
			state = StateUnity
		}
	}
	return state, true
}
