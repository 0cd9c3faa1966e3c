// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// probEngine evaluates exact top-event probability over a bddTable,
// caching per-node results with a mark bit that flips on each full
// evaluation (§4.7): a conditional re-evaluation after pinning one basic
// event's probability to 0 or 1 (for RAW/RRW/MIF/DIF/CIF) invalidates
// every cached value in O(1) by flipping the generation bit rather than
// walking the table to clear it, exactly as CalculateProbability does in
// the original.
type probEngine struct {
	table  *bddTable
	probs  []float64 // index 1..numBasic; index 0 unused
	cache  []float64
	marked []bool
	mark   bool
}

func newProbEngine(t *bddTable, g *Graph) *probEngine {
	probs := make([]float64, g.NumBasicEvents()+1)
	for i := 1; i <= g.NumBasicEvents(); i++ {
		probs[i] = g.BasicEvent(i).Probability
	}
	return &probEngine{
		table:  t,
		probs:  probs,
		cache:  make([]float64, len(t.nodes)),
		marked: make([]bool, len(t.nodes)),
	}
}

// Probability returns P(root) under the engine's current per-event
// probabilities, starting a fresh evaluation generation.
func (e *probEngine) Probability(root bddRef) float64 {
	e.mark = !e.mark
	return e.eval(root)
}

func (e *probEngine) eval(r bddRef) float64 {
	switch r {
	case bddZero:
		return 0
	case bddOne:
		return 1
	}
	if int(r) < len(e.marked) && e.marked[r] == e.mark {
		return e.cache[r]
	}
	node := e.table.nodes[r]
	p := e.probs[node.level]
	val := p*e.eval(node.high) + (1-p)*e.eval(node.low)
	e.cache[r] = val
	e.marked[r] = e.mark
	return val
}

// conditional evaluates P(root) with basic event idx's probability
// temporarily pinned to value (0 or 1), restoring it afterward. This is
// the P(top|e=1)/P(top|e=0) primitive every importance factor in §4.7's
// table is built from.
func (e *probEngine) conditional(root bddRef, idx int, value float64) float64 {
	saved := e.probs[idx]
	e.probs[idx] = value
	p := e.Probability(root)
	e.probs[idx] = saved
	return p
}

// ExactProbability computes the top event's exact probability from a
// built BDD (§4.7).
func ExactProbability(t *bddTable, g *Graph, root bddRef) float64 {
	return newProbEngine(t, g).Probability(root)
}

// cutSetProbability returns Π_{e∈cutset} p_e for one cut set of signed
// basic-event indices, complementing p_e to 1-p_e for a negated literal.
func cutSetProbability(g *Graph, cutset []int) float64 {
	p := 1.0
	for _, magnitude := range cutset {
		lit := Literal(magnitude)
		prob := g.BasicEvent(lit.Abs()).Probability
		if !lit.Positive() {
			prob = 1 - prob
		}
		p *= prob
	}
	return p
}

// RareEventProbability implements §4.7's rare-event approximation:
// P ≈ Σ_cutset Π_{e∈cutset} p_e.
func RareEventProbability(g *Graph, cutsets [][]int) float64 {
	var sum float64
	for _, cs := range cutsets {
		sum += cutSetProbability(g, cs)
	}
	return sum
}

// MCUBProbability implements §4.7's MCUB approximation:
// P ≈ 1 − Π_cutset (1 − Π_{e∈cutset} p_e).
func MCUBProbability(g *Graph, cutsets [][]int) float64 {
	product := 1.0
	for _, cs := range cutsets {
		product *= 1 - cutSetProbability(g, cs)
	}
	return 1 - product
}

// CutSetProbabilities returns, for every minimal cut set, its own
// probability and its fractional contribution to pTotal (§6).
func CutSetProbabilities(g *Graph, cutsets [][]int, pTotal float64) []CutSetProbability {
	result := make([]CutSetProbability, len(cutsets))
	for i, cs := range cutsets {
		p := cutSetProbability(g, cs)
		fraction := 0.0
		if pTotal != 0 {
			fraction = p / pTotal
		}
		result[i] = CutSetProbability{CutSet: cs, Probability: p, Fraction: fraction}
	}
	return result
}

// ComputeImportance evaluates the five importance factors of §4.7's table
// for every basic event in g, using pTotal as the unconditional top-event
// probability already computed by the caller.
func ComputeImportance(g *Graph, t *bddTable, root bddRef, pTotal float64) map[int]ImportanceFactors {
	e := newProbEngine(t, g)
	result := make(map[int]ImportanceFactors, g.NumBasicEvents())
	for i := 1; i <= g.NumBasicEvents(); i++ {
		p1 := e.conditional(root, i, 1)
		p0 := e.conditional(root, i, 0)
		pe := g.BasicEvent(i).Probability
		mif := p1 - p0
		result[i] = ImportanceFactors{
			MIF: mif,
			CIF: mif * pe / pTotal,
			DIF: 1 - p0/pTotal,
			RAW: p1 / pTotal,
			RRW: pTotal / p0,
		}
	}
	return result
}
