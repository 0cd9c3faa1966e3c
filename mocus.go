// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import (
	"fmt"
	"sort"
)

// MOCUS extracts minimal cut sets from a coalesced, complement-propagated
// graph by top-down expansion with subsumption (§4.8): AND gates add all
// their children to the current path, OR gates branch the path into one
// copy per child, and a path is complete once every element is a signed
// basic-event literal. Completed paths are then filtered to keep only the
// minimal ones.
//
// It returns the minimal cut sets (each a slice of signed basic-event
// indices), and the number of paths that were discarded for exceeding
// limitOrder before completion — a non-zero count means the result is
// truncated (§12, resolving the Open Question in §9: truncation is
// surfaced distinctly rather than silently returned as a partial set).
// limitOrder of zero means unlimited.
func MOCUS(g *Graph, limitOrder int) (cutsets [][]int, truncatedCount int) {
	queue := [][]int{{int(g.top)}}
	var complete [][]int

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		gatePos := -1
		for i, lit := range path {
			if g.ClassifyIndex(Literal(lit).Abs()) == KindGate {
				gatePos = i
				break
			}
		}

		if gatePos == -1 {
			complete = append(complete, path)
			continue
		}

		lit := path[gatePos]
		gate := g.Gate(Literal(lit).Abs())
		rest := make([]int, 0, len(path)-1)
		rest = append(rest, path[:gatePos]...)
		rest = append(rest, path[gatePos+1:]...)

		if gate.kind == KindAnd {
			next := extendPath(rest, gate.Children())
			if next == nil {
				continue // contradiction: a literal and its negation both present
			}
			if limitOrder > 0 && len(next) > limitOrder {
				truncatedCount++
				continue
			}
			queue = append(queue, next)
			continue
		}

		for _, child := range gate.Children() {
			next := extendPath(rest, []Literal{child})
			if next == nil {
				continue
			}
			if limitOrder > 0 && len(next) > limitOrder {
				truncatedCount++
				continue
			}
			queue = append(queue, next)
		}
	}

	return subsume(complete), truncatedCount
}

// extendPath appends additions to path, deduplicating and returning nil
// if the result would hold both a literal and its own negation (an
// infeasible path, dropped rather than propagated further).
func extendPath(path []int, additions []Literal) []int {
	seen := make(map[int]bool, len(path)+len(additions))
	for _, lit := range path {
		seen[lit] = true
	}
	result := append([]int{}, path...)
	for _, lit := range additions {
		l := int(lit)
		if seen[-l] {
			return nil
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		result = append(result, l)
	}
	return result
}

// subsume keeps only the cut sets with no strict subset also present,
// per the Minimal cut set definition in the GLOSSARY.
func subsume(cutsets [][]int) [][]int {
	unique := make(map[string][]int)
	for _, cs := range cutsets {
		sorted := append([]int{}, cs...)
		sort.Ints(sorted)
		unique[fmt.Sprint(sorted)] = sorted
	}

	list := make([][]int, 0, len(unique))
	for _, cs := range unique {
		list = append(list, cs)
	}
	sort.Slice(list, func(i, j int) bool { return len(list[i]) < len(list[j]) })

	var minimal [][]int
	for _, cs := range list {
		subsumed := false
		for _, m := range minimal {
			if isSubset(m, cs) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			minimal = append(minimal, cs)
		}
	}
	return minimal
}

// isSubset reports whether every element of a is present in b.
func isSubset(a, b []int) bool {
	set := make(map[int]bool, len(b))
	for _, x := range b {
		set[x] = true
	}
	for _, x := range a {
		if !set[x] {
			return false
		}
	}
	return true
}
