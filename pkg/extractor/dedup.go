package extractor

import (
	"sort"

	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"go.uber.org/zap"
)

// filterEdges removes exact duplicates, then Pareto-dominated
// parallel edges, logging the counts removed at each stage.
func (e *Extractor) filterEdges(edges []datastructure.ResolvedEdge) []datastructure.ResolvedEdge {
	sortEdges(edges)

	before := len(edges)
	edges = removeDuplicates(edges)
	e.logger.Info("removed duplicated edges", zap.Int("count", before-len(edges)))

	before = len(edges)
	edges = removeDominated(edges)
	e.logger.Info("removed dominated edges", zap.Int("count", before-len(edges)))

	return edges
}

// sortEdges establishes the canonical total order: (source, dest,
// unsuitability, height ascent, length), all ascending. Unorderable
// float comparisons tie as equal.
func sortEdges(edges []datastructure.ResolvedEdge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.GetSource() != b.GetSource() {
			return a.GetSource() < b.GetSource()
		}
		if a.GetDest() != b.GetDest() {
			return a.GetDest() < b.GetDest()
		}
		if a.GetUnsuitability() != b.GetUnsuitability() {
			return a.GetUnsuitability() < b.GetUnsuitability()
		}
		if a.GetHeightAscent() != b.GetHeightAscent() {
			return a.GetHeightAscent() < b.GetHeightAscent()
		}
		return a.GetLength() < b.GetLength()
	})
}

// removeDuplicates compacts runs of filtering-tuple-equal edges down
// to their first element. Requires sorted input.
func removeDuplicates(edges []datastructure.ResolvedEdge) []datastructure.ResolvedEdge {
	if len(edges) == 0 {
		return edges
	}
	out := edges[:1]
	for _, edge := range edges[1:] {
		if out[len(out)-1].EqualsFilterTuple(edge) {
			continue
		}
		out = append(out, edge)
	}
	return out
}

// removeDominated drops every edge dominated by the surviving edge
// before it with the same endpoints. The sort order puts the lowest
// unsuitability first, which makes dominance detectable without a
// full pairwise comparison.
func removeDominated(edges []datastructure.ResolvedEdge) []datastructure.ResolvedEdge {
	if len(edges) == 0 {
		return edges
	}
	out := edges[:1]
	for _, edge := range edges[1:] {
		last := out[len(out)-1]
		if last.SameEndpoints(edge) && last.Dominates(edge) {
			continue
		}
		out = append(out, edge)
	}
	return out
}
