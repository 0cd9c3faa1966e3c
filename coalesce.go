// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// Coalesce merges adjacent gates of the same kind until the graph is a
// strictly alternating AND/OR DAG in which every non-constant gate has
// ≥ 2 children (§4.5). It alternates one absorption sweep with a full
// PropagateConstants round — mirroring the original's
// `do { JoinGates } while (ProcessConstGates)` loop — because absorbing a
// child can expose a fresh constant-folding opportunity and vice versa.
// Each step strictly reduces the number of gate edges or the number of
// non-alternating adjacencies, both bounded, so the loop terminates.
func Coalesce(g *Graph) error {
	for {
		absorbed, err := coalesceOnce(g)
		if err != nil {
			return err
		}
		folded, err := PropagateConstants(g)
		if err != nil {
			return err
		}
		if !absorbed && !folded {
			return nil
		}
	}
}

// coalesceOnce performs a single absorption sweep: for every gate, every
// child gate of the same kind has its own children spliced directly into
// the parent (dropping the child edge; the child gate itself stays in the
// arena, dead but not deallocated, per §5's "deletion means detaching from
// all parents"). It also splices in a single-child gate of a *differing*
// kind, the residue JoinGates handles in the original even though a
// single remaining child is usually constant-propagation's doing.
func coalesceOnce(g *Graph) (bool, error) {
	changed := false
	for _, gi := range g.Indices() {
		gate := g.Gate(gi)
		if gate == nil || gate.state != StateNormal {
			continue
		}
		for _, lit := range gate.Children() {
			if !lit.Positive() {
				continue // complement propagation has already run; should not see this
			}
			abs := lit.Abs()
			if g.ClassifyIndex(abs) != KindGate {
				continue
			}
			child := g.Gate(abs)
			if child == nil || child.state != StateNormal {
				continue
			}
			switch {
			case child.kind == gate.kind:
				if err := absorb(gate, child); err != nil {
					return false, err
				}
				changed = true
			case child.NumChildren() == 1:
				grandchild := child.Children()[0]
				if gate.children.Contains(grandchild) || gate.children.Contains(grandchild.Negate()) {
					continue
				}
				gate.children.Replace(lit, grandchild)
				changed = true
			}
		}
	}
	return changed, nil
}

// absorb splices child's children directly into parent, dropping the
// edge to child. Duplicate literals (already present in parent, from some
// other branch) are silently skipped rather than erroring, matching the
// set semantics of a gate's ordered-insertion child set; a literal whose
// negation is already present would violate §3's invariant and is also
// skipped, deferring to whatever later pass (constant/complement
// propagation) would have caught the same contradiction on its own
// branch.
func absorb(parent, child *Gate) error {
	parent.children.Remove(Literal(child.index))
	for _, lit := range child.Children() {
		if parent.children.Contains(lit) || parent.children.Contains(lit.Negate()) {
			continue
		}
		parent.children.Add(lit)
	}
	return nil
}
