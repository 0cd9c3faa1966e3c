// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import "testing"

func TestApplyConstantChildTable(t *testing.T) {
	tests := []struct {
		kind      Kind
		value     bool
		wantState State
	}{
		{KindOr, true, StateUnity},
		{KindAnd, false, StateNullConstant},
	}
	for _, tt := range tests {
		g := newGate(1, tt.kind)
		g.addChild(Literal(2))
		g.addChild(Literal(3))
		applyConstantChild(g, Literal(2), tt.value)
		if g.state != tt.wantState {
			t.Errorf("%v child=%v: state = %v, want %v", tt.kind, tt.value, g.state, tt.wantState)
		}
	}

	// OR with a false child, AND with a true child: the child is simply
	// dropped, not folded to a constant.
	orFalse := newGate(1, KindOr)
	orFalse.addChild(Literal(2))
	orFalse.addChild(Literal(3))
	applyConstantChild(orFalse, Literal(2), false)
	if orFalse.state != StateNormal || orFalse.children.Contains(Literal(2)) {
		t.Errorf("OR with a false child should drop it and stay normal, got state=%v children=%v", orFalse.state, orFalse.Children())
	}

	andTrue := newGate(1, KindAnd)
	andTrue.addChild(Literal(2))
	andTrue.addChild(Literal(3))
	applyConstantChild(andTrue, Literal(2), true)
	if andTrue.state != StateNormal || andTrue.children.Contains(Literal(2)) {
		t.Errorf("AND with a true child should drop it and stay normal, got state=%v children=%v", andTrue.state, andTrue.Children())
	}
}

func TestPropagateConstantsFoldsHouseEvent(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A"}, []string{"H"}, map[string]bool{"H": true},
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindOr, EventArgs: []string{"A", "H"}},
		},
		"TOP",
		map[string]float64{"A": 0.1},
	)
	changed, err := PropagateConstants(g)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected PropagateConstants to report a change")
	}
	if state, ok := g.TopState(); !ok || state != StateUnity {
		t.Errorf("OR with a true house event should collapse the whole tree to unity, got state=%v ok=%v", state, ok)
	}
}

func TestPropagateConstantsIsIdempotent(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B"}, []string{"H"}, map[string]bool{"H": false},
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindAnd, EventArgs: []string{"A", "B", "H"}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2},
	)
	if _, err := PropagateConstants(g); err != nil {
		t.Fatal(err)
	}
	changed, err := PropagateConstants(g)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("a second PropagateConstants pass over already-folded output should report no change")
	}
}

func TestLiftSingleChildGates(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindAnd, EventArgs: []string{"A"}, FormulaArgs: []*Formula{
				{Kind: KindOr, EventArgs: []string{"B"}},
			}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2},
	)
	changed, err := liftSingleChildGates(g)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected the single-child OR wrapper around B to be lifted away")
	}
	top := g.Gate(g.top.Abs())
	for _, lit := range top.Children() {
		if g.ClassifyIndex(lit.Abs()) == KindGate {
			t.Errorf("TOP should reference B directly after lifting, still has gate child %d", lit)
		}
	}
}

func TestTopStateSignAdjustment(t *testing.T) {
	idx, err := NewEventIndex([]string{"A"}, nil, []string{"TOP"})
	if err != nil {
		t.Fatal(err)
	}
	topIdx, _ := idx.Resolve("TOP")
	m := &Model{
		Index:         idx,
		Gates:         map[int]*Formula{topIdx: {Kind: KindOr, EventArgs: []string{"A"}}},
		TopIndex:      topIdx,
		Probabilities: map[int]float64{1: 0.1},
	}
	g, err := Build(m)
	if err != nil {
		t.Fatal(err)
	}
	gate := g.Gate(g.top.Abs())
	gate.MakeUnity()
	g.top = g.top.Negate()
	state, ok := g.TopState()
	if !ok || state != StateNullConstant {
		t.Errorf("negating a unity top should report NullConstant, got state=%v ok=%v", state, ok)
	}
}
