// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

import (
	"errors"
	"time"
)

// ErrAborted is returned by Analyze when the AbortSignal fires at a pass
// boundary (§5). Partial results are never returned alongside it.
var ErrAborted = errors.New("scram: analysis aborted")

// Analyze runs the full pipeline of §2 over m, in order: Build, Normalize,
// PropagateConstants, PropagateComplements, Coalesce (itself alternating
// constant propagation until a fixed point), DetectModules, then MOCUS
// cut-set extraction, the BDD builder and, if requested, importance
// analysis. One analysis invocation owns the entire indexed graph; no
// state is shared with any other concurrent analysis (§5).
func Analyze(m *Model, settings *Settings, abort AbortSignal) (*Result, error) {
	if settings == nil {
		settings = NewSettings()
	}

	var warnings warningList
	var timings Timings

	prepStart := time.Now()

	g, err := Build(m)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, diagnoseUnused(g, m)...)
	logPass("Build", g)
	logPassDone("Build", g)
	if checkAbort(abort) {
		return nil, ErrAborted
	}

	logPass("Normalize", g)
	if err := Normalize(g); err != nil {
		return nil, err
	}
	logPassDone("Normalize", g)
	if checkAbort(abort) {
		return nil, ErrAborted
	}

	logPass("PropagateConstants", g)
	if _, err := PropagateConstants(g); err != nil {
		return nil, err
	}
	logPassDone("PropagateConstants", g)
	if checkAbort(abort) {
		return nil, ErrAborted
	}

	logPass("PropagateComplements", g)
	if err := PropagateComplements(g); err != nil {
		return nil, err
	}
	logPassDone("PropagateComplements", g)
	if checkAbort(abort) {
		return nil, ErrAborted
	}

	logPass("Coalesce", g)
	if err := Coalesce(g); err != nil {
		return nil, err
	}
	logPassDone("Coalesce", g)
	if checkAbort(abort) {
		return nil, ErrAborted
	}

	logPass("DetectModules", g)
	if err := DetectModules(g); err != nil {
		return nil, err
	}
	logPassDone("DetectModules", g)
	if checkAbort(abort) {
		return nil, ErrAborted
	}

	timings.GraphPrep = time.Since(prepStart).Seconds()

	result := &Result{}

	// A whole-tree constant is a legitimate result (§7), not an error:
	// report it directly without ever reaching the BDD/MOCUS stages.
	if state, isConst := g.TopState(); isConst {
		if state == StateUnity {
			result.PTotal = 1
		}
		result.Warnings = append(result.Warnings, "top event is always "+boolWord(state == StateUnity))
		result.Warnings = append(result.Warnings, warnings...)
		return result, nil
	}

	mcsStart := time.Now()
	cutsets, truncatedCount := MOCUS(g, settings.limitOrder)
	if truncatedCount > 0 {
		warnings.add("%s", truncatedWarning(settings.limitOrder, len(cutsets)))
	}
	timings.MCSExtraction = time.Since(mcsStart).Seconds()
	result.MinimalCutSets = cutsets

	probStart := time.Now()
	table, root, err := BuildBDD(g, settings)
	if err != nil {
		return nil, err
	}
	result.PTotal = ExactProbability(table, g, root)
	switch settings.approximation {
	case ApproxRareEvent:
		result.PRare = RareEventProbability(g, cutsets)
	case ApproxMCUB:
		result.PMCUB = MCUBProbability(g, cutsets)
	}
	result.CutSetProbabilities = CutSetProbabilities(g, cutsets, result.PTotal)
	timings.Probability = time.Since(probStart).Seconds()

	if checkAbort(abort) {
		return nil, ErrAborted
	}

	if settings.importanceAnalysis {
		impStart := time.Now()
		result.Importance = ComputeImportance(g, table, root, result.PTotal)
		timings.Importance = time.Since(impStart).Seconds()
	}

	result.Timings = timings
	result.Warnings = append(result.Warnings, warnings...)
	return result, nil
}

func boolWord(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// checkAbort reports whether abort has fired, without blocking — the
// non-blocking poll §5 describes ("at pass boundaries the engine checks
// an optional abort signal").
func checkAbort(abort AbortSignal) bool {
	if abort == nil {
		return false
	}
	select {
	case <-abort:
		return true
	default:
		return false
	}
}
