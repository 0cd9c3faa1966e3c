// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import "fmt"

// warningList accumulates the plain-string diagnostics of §7: "Warnings
// are collected into a per-analysis vector and never abort." Kept as a
// tiny named type rather than a bare []string so Analyze, which appends to
// it, has one obvious place to add a warning instead of threading a
// *Result through every function signature.
type warningList []string

func (w *warningList) add(format string, a ...interface{}) {
	*w = append(*w, fmt.Sprintf(format, a...))
}

// truncatedWarning formats the Truncated warning resolved in SPEC_FULL §12:
// it names the configured limit and how many cut sets were found before
// truncation, rather than silently returning a partial set.
func truncatedWarning(limit, found int) string {
	return fmt.Sprintf("Truncated: minimal cut set enumeration stopped at limit_order=%d after finding %d cut sets", limit, found)
}

func orphanEventWarning(name string) string {
	return fmt.Sprintf("orphan primary event: %q is never referenced by any gate", name)
}

func unusedParameterWarning(name string) string {
	return fmt.Sprintf("unused parameter: %q", name)
}

// diagnoseUnused scans the built graph for declared basic events and
// CCF-substitute gates that never actually occur as a child anywhere in
// the tree — the "orphan primary events" and "unused parameters"
// diagnostics of §6. A substitute counts as used once its target gate
// index is referenced by any gate; plain basic events are checked the
// same way against their own index.
func diagnoseUnused(g *Graph, m *Model) []string {
	used := make(map[int]bool)
	g.Gates(func(gate *Gate) {
		for _, lit := range gate.Children() {
			used[lit.Abs()] = true
		}
	})

	var warnings []string
	for i := 1; i <= g.NumBasicEvents(); i++ {
		if !used[i] {
			warnings = append(warnings, orphanEventWarning(g.BasicEvent(i).Name))
		}
	}
	for name, gi := range m.CCFSubstitutes {
		if !used[gi] {
			warnings = append(warnings, unusedParameterWarning(name))
		}
	}
	return warnings
}
