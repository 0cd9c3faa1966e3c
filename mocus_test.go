// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import (
	"reflect"
	"sort"
	"testing"
)

func sortedCutSets(cutsets [][]int) [][]int {
	out := make([][]int, len(cutsets))
	for i, cs := range cutsets {
		sorted := append([]int{}, cs...)
		sort.Ints(sorted)
		out[i] = sorted
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

func TestMOCUSOrOfBasicEvents(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindOr, EventArgs: []string{"A", "B"}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2},
	)
	cutsets, truncated := MOCUS(g, 0)
	if truncated != 0 {
		t.Fatalf("expected no truncation, got %d", truncated)
	}
	got := sortedCutSets(cutsets)
	want := [][]int{{1}, {2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MOCUS(A or B) = %v, want %v", got, want)
	}
}

func TestMOCUSAndOfBasicEvents(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindAnd, EventArgs: []string{"A", "B"}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2},
	)
	cutsets, truncated := MOCUS(g, 0)
	if truncated != 0 {
		t.Fatalf("expected no truncation, got %d", truncated)
	}
	got := sortedCutSets(cutsets)
	want := [][]int{{1, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MOCUS(A and B) = %v, want %v", got, want)
	}
}

func TestMOCUSTwoTrainRedundancy(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B", "C", "D"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindAnd, FormulaArgs: []*Formula{
				{Kind: KindOr, EventArgs: []string{"A", "B"}},
				{Kind: KindOr, EventArgs: []string{"C", "D"}},
			}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2, "C": 0.3, "D": 0.4},
	)
	cutsets, truncated := MOCUS(g, 0)
	if truncated != 0 {
		t.Fatalf("expected no truncation, got %d", truncated)
	}
	got := sortedCutSets(cutsets)
	want := [][]int{{1, 3}, {1, 4}, {2, 3}, {2, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MOCUS(two-train) = %v, want %v", got, want)
	}
}

func TestMOCUSLimitOrderTruncates(t *testing.T) {
	g := buildTestModel(t,
		[]string{"A", "B", "C"}, nil, nil,
		[]string{"TOP"},
		map[string]*Formula{
			"TOP": {Kind: KindAnd, EventArgs: []string{"A", "B", "C"}},
		},
		"TOP",
		map[string]float64{"A": 0.1, "B": 0.2, "C": 0.3},
	)
	cutsets, truncated := MOCUS(g, 2)
	if truncated == 0 {
		t.Fatal("expected the 3-element cut set to be truncated at limitOrder=2")
	}
	if len(cutsets) != 0 {
		t.Errorf("expected no surviving cut sets, got %v", cutsets)
	}
}

func TestSubsumeKeepsOnlyMinimal(t *testing.T) {
	in := [][]int{{1, 2}, {1}, {1, 3}, {2, 3}}
	got := sortedCutSets(subsume(in))
	want := [][]int{{1}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("subsume(%v) = %v, want %v", in, got, want)
	}
}

func TestExtendPathRejectsContradiction(t *testing.T) {
	if got := extendPath([]int{1, 2}, []Literal{-1}); got != nil {
		t.Errorf("extending a path already containing 1 with -1 should fail, got %v", got)
	}
}

func TestExtendPathDeduplicates(t *testing.T) {
	got := extendPath([]int{1, 2}, []Literal{2, 3})
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extendPath should skip an already-present literal, got %v want %v", got, want)
	}
}
