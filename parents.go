// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// parentSets computes, for every gate currently in the arena, the set of
// gate indices that reference it (by either sign). Design Notes §9:
// "compute parents on demand... one reverse pass per normalization step";
// back-edges are relational, never ownership, so we never store them on
// the Gate itself except transiently during module detection.
type parentSets struct {
	parents map[int][]int
}

// gatherParents performs the one reverse pass, mirroring
// GatherParentInformation in the original: for every gate's child
// literal, if the child is a gate index, record the parent.
func gatherParents(g *Graph) *parentSets {
	ps := &parentSets{parents: make(map[int][]int)}
	for _, gi := range g.Indices() {
		gate := g.Gate(gi)
		if gate == nil {
			continue
		}
		for _, lit := range gate.Children() {
			child := lit.Abs()
			if g.ClassifyIndex(child) != KindGate {
				continue
			}
			ps.parents[child] = append(ps.parents[child], gi)
		}
	}
	return ps
}

// Of returns the parent indices recorded for gate index gi.
func (ps *parentSets) Of(gi int) []int { return ps.parents[gi] }
