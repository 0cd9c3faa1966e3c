// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// Normalize rewrites g in place so that every gate is AND or OR, positive,
// with literal-signed basic/house children or positive gate children, and
// the top-event sign is +1 (§4.2). It applies the five ordered rules:
// top-sign extraction, negative-gate lifting, XOR expansion, ATLEAST
// expansion, and NOT/NULL elimination — the last of which is left to
// PropagateComplements (§4.4), since it requires the same splice-through
// machinery that handles every other negated-gate reference.
func Normalize(g *Graph) error {
	if err := g.resolveTopChain(); err != nil {
		return err
	}
	if err := liftNegativeGates(g); err != nil {
		return err
	}
	if err := expandXOR(g); err != nil {
		return err
	}
	if err := expandAtleast(g); err != nil {
		return err
	}
	// A negative top gate left by rule 1 is replaced by its De Morgan
	// complement, so the top-event sign ends up +1.
	if abs := g.top.Abs(); !g.top.Positive() && g.ClassifyIndex(abs) == KindGate {
		ci, err := complementOf(g, abs, make(map[int]int), make(map[int]bool))
		if err != nil {
			return err
		}
		g.top = Literal(ci)
	}
	return nil
}

// resolveTopChain implements §4.2 rule 1. A NOT/NULL top is replaced by
// its child (sign-adjusted) and the old top index discarded; this
// recurses to handle a chain of NOT/NULL tops, resolving the Open Question
// about a top-level NULL gate whose single child is itself negated (§9):
// the sign multiplies through each link. A NOR/NAND top flips to OR/AND
// and records a -1 top sign; this ends rule 1 (the new top is already
// AND/OR).
func (g *Graph) resolveTopChain() error {
	for {
		abs := g.top.Abs()
		if g.ClassifyIndex(abs) != KindGate {
			return nil
		}
		gate := g.Gate(abs)
		if gate == nil {
			return nil
		}
		switch gate.kind {
		case KindNot, KindNull:
			if gate.NumChildren() != 1 {
				return &LogicError{Pass: "Normalize", Message: "NOT/NULL gate must have exactly one child"}
			}
			child := gate.Children()[0]
			if gate.kind == KindNot {
				child = child.Negate()
			}
			if !g.top.Positive() {
				child = child.Negate()
			}
			g.removeGate(abs)
			g.top = child
		case KindNor, KindNand:
			if gate.kind == KindNand {
				gate.kind = KindAnd
			} else {
				gate.kind = KindOr
			}
			g.top = g.top.Negate()
			return nil
		default:
			return nil
		}
	}
}

// liftNegativeGates implements §4.2 rule 2: for every non-top NOR/NAND
// gate, every occurrence of its index in a parent's child set is sign
// flipped, and the gate itself is reclassified as OR/AND. After this pass
// no NOR/NAND gate remains anywhere in the graph.
func liftNegativeGates(g *Graph) error {
	ps := gatherParents(g)
	for _, gi := range g.Indices() {
		gate := g.Gate(gi)
		if gate == nil || (gate.kind != KindNor && gate.kind != KindNand) {
			continue
		}
		for _, pi := range ps.Of(gi) {
			parent := g.Gate(pi)
			if parent == nil {
				continue
			}
			flipChildSign(parent, gi)
		}
		if gate.kind == KindNand {
			gate.kind = KindAnd
		} else {
			gate.kind = KindOr
		}
	}
	return nil
}

// flipChildSign negates the unique occurrence of target (positive or
// negative) among parent's children, in place, preserving its position.
func flipChildSign(parent *Gate, target int) {
	for _, lit := range parent.Children() {
		if lit.Abs() == target {
			parent.children.Replace(lit, lit.Negate())
			return
		}
	}
}

// expandXOR implements §4.2 rule 3: a XOR b becomes (a AND ¬b) OR (¬a AND
// b). Only binary XOR is accepted; wider arity should already have been
// rejected during graph construction (§4.1).
func expandXOR(g *Graph) error {
	for _, gi := range g.Indices() {
		gate := g.Gate(gi)
		if gate == nil || gate.kind != KindXor {
			continue
		}
		children := gate.Children()
		if len(children) != 2 {
			return &StructuralError{Kind: "InvalidArity", Message: "xor gate must have exactly two children", Entity: gi}
		}
		a, b := children[0], children[1]

		left := newGate(g.newIndex(), KindAnd)
		if err := left.addChild(a); err != nil {
			return err
		}
		if err := left.addChild(b.Negate()); err != nil {
			return err
		}
		g.addGate(left)

		right := newGate(g.newIndex(), KindAnd)
		if err := right.addChild(a.Negate()); err != nil {
			return err
		}
		if err := right.addChild(b); err != nil {
			return err
		}
		g.addGate(right)

		gate.kind = KindOr
		gate.children.Reset()
		gate.children.Add(Literal(left.index))
		gate.children.Add(Literal(right.index))
	}
	return nil
}

// expandAtleast implements §4.2 rule 4: ATLEAST_k(x1...xn) becomes an OR
// over every C(n,k) AND combination of size k, enumerated lexicographically
// over the gate's own ordered child slice.
func expandAtleast(g *Graph) error {
	for _, gi := range g.Indices() {
		gate := g.Gate(gi)
		if gate == nil || gate.kind != KindAtleast {
			continue
		}
		children := gate.Children()
		n, k := len(children), gate.vote
		if k < 2 || k > n-1 {
			return &StructuralError{Kind: "InvalidVoteNumber", Message: "vote number out of range", Entity: gi}
		}

		gate.kind = KindOr
		gate.children.Reset()
		for _, combo := range combinations(children, k) {
			and := newGate(g.newIndex(), KindAnd)
			for _, lit := range combo {
				if err := and.addChild(lit); err != nil {
					return err
				}
			}
			g.addGate(and)
			gate.children.Add(Literal(and.index))
		}
	}
	return nil
}

// combinations returns every k-sized subset of items, in lexicographic
// order over items' own ordering (§4.2 rule 4's "deterministic
// enumeration: lexicographic over the input child ordering").
func combinations(items []Literal, k int) [][]Literal {
	n := len(items)
	if k <= 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	var result [][]Literal
	for {
		combo := make([]Literal, k)
		for i, j := range idx {
			combo[i] = items[j]
		}
		result = append(result, combo)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return result
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
