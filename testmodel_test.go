// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import "testing"

// buildTestModel assembles a Model from plain Go data the way a model-layer
// collaborator would — gate formulas referencing events and other gates by
// name — and runs it through Build, failing the test on any error.
func buildTestModel(t *testing.T, basic, house []string, houseStates map[string]bool, gateNames []string, defs map[string]*Formula, top string, probs map[string]float64) *Graph {
	t.Helper()

	idx, err := NewEventIndex(basic, house, gateNames)
	if err != nil {
		t.Fatalf("NewEventIndex: %v", err)
	}

	gates := make(map[int]*Formula, len(defs))
	for name, f := range defs {
		gi, ok := idx.Resolve(name)
		if !ok {
			t.Fatalf("gate %q not in index", name)
		}
		gates[gi] = f
	}

	topIdx, ok := idx.Resolve(top)
	if !ok {
		t.Fatalf("top %q not in index", top)
	}

	probabilities := make(map[int]float64, len(probs))
	for name, p := range probs {
		i, ok := idx.Resolve(name)
		if !ok {
			t.Fatalf("basic event %q not in index", name)
		}
		probabilities[i] = p
	}

	var trueSet, falseSet []int
	for name, state := range houseStates {
		i, ok := idx.Resolve(name)
		if !ok {
			t.Fatalf("house event %q not in index", name)
		}
		if state {
			trueSet = append(trueSet, i)
		} else {
			falseSet = append(falseSet, i)
		}
	}

	m := &Model{
		Index:            idx,
		Gates:            gates,
		TopIndex:         topIdx,
		Probabilities:    probabilities,
		TrueHouseEvents:  trueSet,
		FalseHouseEvents: falseSet,
	}
	g, err := Build(m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}
