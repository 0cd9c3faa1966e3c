// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import "testing"

// TOP = SUB1 OR SUB2, SUB1 = A AND B, SUB2 = C AND D: the two branches share
// no basic event, so both should end up marked as modules.
func TestDetectModulesMarksDisjointBranches(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B", "C", "D"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindOr, FormulaArgs: []*Formula{
				{Kind: KindAnd, EventArgs: []string{"A", "B"}},
				{Kind: KindAnd, EventArgs: []string{"C", "D"}},
			}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2, "C": 0.3, "D": 0.4},
	)
	if err := Normalize(g); err != nil {
		t.Fatal(err)
	}
	if _, err := PropagateConstants(g); err != nil {
		t.Fatal(err)
	}
	if err := PropagateComplements(g); err != nil {
		t.Fatal(err)
	}
	if err := Coalesce(g); err != nil {
		t.Fatal(err)
	}
	if err := DetectModules(g); err != nil {
		t.Fatal(err)
	}

	top := g.Gate(g.top.Abs())
	for _, lit := range top.Children() {
		sub := g.Gate(lit.Abs())
		if sub == nil {
			continue
		}
		if !sub.IsModule() {
			t.Errorf("branch %d with a disjoint basic-event footprint should be a module", lit)
		}
	}
}

// TOP = (A AND B) OR (A AND C): both branches share A, so neither can be a
// standalone module, but B and C each only ever occur in one place.
func TestDetectModulesSharedEventBlocksModule(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B", "C"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindOr, FormulaArgs: []*Formula{
				{Kind: KindAnd, EventArgs: []string{"A", "B"}},
				{Kind: KindAnd, EventArgs: []string{"A", "C"}},
			}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2, "C": 0.3},
	)
	if err := Normalize(g); err != nil {
		t.Fatal(err)
	}
	if _, err := PropagateConstants(g); err != nil {
		t.Fatal(err)
	}
	if err := PropagateComplements(g); err != nil {
		t.Fatal(err)
	}
	if err := Coalesce(g); err != nil {
		t.Fatal(err)
	}
	if err := DetectModules(g); err != nil {
		t.Fatal(err)
	}

	top := g.Gate(g.top.Abs())
	for _, lit := range top.Children() {
		sub := g.Gate(lit.Abs())
		if sub != nil && sub.kind == KindAnd && sub.NumChildren() == 2 && sub.IsModule() {
			t.Errorf("branch %d shares A with the other branch and should not be a standalone module", lit)
		}
	}
}

// TOP = (A AND B AND C) OR (A AND D): A is shared across both branches, so
// neither branch as a whole can be a module, but B and C never occur
// anywhere else and should synthesize into their own sub-module within the
// first branch, leaving A directly behind.
func TestDetectModulesSynthesizesSubmoduleFromBasicEvents(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B", "C", "D"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindOr, FormulaArgs: []*Formula{
				{Kind: KindAnd, EventArgs: []string{"A", "B", "C"}},
				{Kind: KindAnd, EventArgs: []string{"A", "D"}},
			}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2, "C": 0.3, "D": 0.4},
	)
	if err := Normalize(g); err != nil {
		t.Fatal(err)
	}
	if _, err := PropagateConstants(g); err != nil {
		t.Fatal(err)
	}
	if err := PropagateComplements(g); err != nil {
		t.Fatal(err)
	}
	if err := Coalesce(g); err != nil {
		t.Fatal(err)
	}
	if err := DetectModules(g); err != nil {
		t.Fatal(err)
	}

	byName := func(name string) int {
		for i := range g.basic {
			if g.basic[i].Name == name {
				return i + 1
			}
		}
		t.Fatalf("no basic event named %q", name)
		return 0
	}
	aIdx, bIdx, cIdx := byName("A"), byName("B"), byName("C")

	var branch1 *Gate
	top := g.Gate(g.top.Abs())
	for _, lit := range top.Children() {
		sub := g.Gate(lit.Abs())
		if sub == nil {
			continue
		}
		hasA, hasGateChild := false, false
		for _, child := range sub.Children() {
			if child.Abs() == aIdx {
				hasA = true
			}
			if g.ClassifyIndex(child.Abs()) == KindGate {
				hasGateChild = true
			}
		}
		// Only the A,B,C branch should have had a sub-gate synthesized out
		// of it; the A,D branch has just one non-shared child (D) and is
		// left untouched.
		if hasA && hasGateChild {
			branch1 = sub
		}
	}
	if branch1 == nil {
		t.Fatal("could not find the branch with a synthesized sub-module among TOP's children")
	}

	var sawA bool
	var subModule *Gate
	for _, lit := range branch1.Children() {
		if lit.Abs() == aIdx {
			sawA = true
			continue
		}
		if g.ClassifyIndex(lit.Abs()) == KindGate {
			subModule = g.Gate(lit.Abs())
		}
	}
	if !sawA {
		t.Error("expected A to remain a direct child of its branch, not be absorbed into the sub-module")
	}
	if subModule == nil || !subModule.IsModule() {
		t.Fatal("expected a synthesized, module-marked sub-gate grouping the non-shared basic events")
	}
	var sawB, sawC bool
	for _, lit := range subModule.Children() {
		if lit.Abs() == bIdx {
			sawB = true
		}
		if lit.Abs() == cIdx {
			sawC = true
		}
	}
	if !sawB || !sawC {
		t.Errorf("expected the synthesized sub-module to contain B and C, got children %v", subModule.Children())
	}
}
