// Package modularity implements the Louvain modularity graph metric
// (spec.md §4.5): per graph type, run Louvain community detection 5
// times at resolution 1.5, average the community count and modularity
// across runs, average-and-normalize the top five community sizes, and
// annotate every node with the final run's partition id after
// renumbering communities largest-first.
//
// Grounded on
// original_source/emerge/metrics/modularity/modularity.py
// (LouvainModularityMetric._calculate_metric_data), using
// pkg/emerge/metrics/louvain for the underlying algorithm (see
// DESIGN.md: no suitable Go library found for Louvain with a
// resolution parameter).
package modularity

import (
	"sort"

	"github.com/glato/emerge/pkg/emerge/graphs"
	"github.com/glato/emerge/pkg/emerge/metrics"
	"github.com/glato/emerge/pkg/emerge/metrics/louvain"
	"github.com/glato/emerge/pkg/emerge/result"
)

const (
	resolution       = 1.5
	optimizationRuns = 5
	topCommunities   = 5
)

func keysFor(t graphs.Type) (communities, modularityKey, biggest string) {
	suffix := t.String() + "-graph"
	return "louvain-communities-" + suffix, "louvain-modularity-" + suffix, "louvain-biggest-communities-" + suffix
}

func nodeKeyFor(t graphs.Type) string {
	switch t {
	case graphs.FileDependency, graphs.Filesystem:
		return "louvain-modularity-in-file"
	default:
		return "louvain-modularity-in-entity"
	}
}

// Metric implements metrics.GraphMetric.
type Metric struct {
	metrics.Base
}

func New() *Metric {
	return &Metric{Base: metrics.NewBase("louvain-modularity", "louvain modularity")}
}

func (m *Metric) CalculateFromGraphs(representations map[graphs.Type]*graphs.Representation, files []*result.FileResult, entities []*result.EntityResult) {
	for _, t := range []graphs.Type{graphs.FileDependency, graphs.EntityDependency, graphs.EntityInheritance, graphs.EntityComplete} {
		repr, ok := representations[t]
		if !ok || repr == nil {
			continue
		}
		m.calculateForGraph(t, repr)
	}
}

func (m *Metric) calculateForGraph(t graphs.Type, repr *graphs.Representation) {
	undirected := graphs.Undirected(repr.Digraph)
	nodes := graphs.Vertices(undirected)
	if len(nodes) == 0 {
		return
	}

	g := louvain.NewGraph(nodes)
	adj, err := undirected.AdjacencyMap()
	if err != nil {
		return
	}
	for from, edges := range adj {
		for to := range edges {
			g.AddEdge(from, to, 1)
		}
	}

	var sumCommunities int
	var sumModularity float64
	sumBiggest := make([]float64, topCommunities)

	var lastPartition map[string]int
	var lastSortedCommunitySizes []int

	for run := 0; run < optimizationRuns; run++ {
		partition := louvain.BestPartition(g, resolution)

		maxID := 0
		for _, c := range partition {
			if c > maxID {
				maxID = c
			}
		}
		communitiesFound := maxID + 1
		mod := louvain.Modularity(partition, g, resolution)

		sumCommunities += communitiesFound
		sumModularity += mod

		sizes := make([]int, communitiesFound)
		for _, c := range partition {
			sizes[c]++
		}
		sortedIDs := make([]int, communitiesFound)
		for i := range sortedIDs {
			sortedIDs[i] = i
		}
		sort.Slice(sortedIDs, func(i, j int) bool { return sizes[sortedIDs[i]] > sizes[sortedIDs[j]] })

		for i := 0; i < topCommunities && i < len(sortedIDs); i++ {
			sumBiggest[i] += float64(sizes[sortedIDs[i]])
		}

		if run == optimizationRuns-1 {
			lastPartition = partition
			lastSortedCommunitySizes = sortedIDs
		}
	}

	renumbered := renumberLargestFirst(lastPartition, lastSortedCommunitySizes)

	nodeKey := nodeKeyFor(t)
	for node, c := range renumbered {
		m.SetLocal(node, map[string]any{nodeKey: c})
	}

	n := float64(len(nodes))
	biggest := make(map[int]float64, topCommunities)
	for i, sum := range sumBiggest {
		biggest[i] = round2((sum / optimizationRuns) / n)
	}

	roundedCommunities := int(roundHalfAwayFromZero(float64(sumCommunities) / optimizationRuns))
	roundedModularity := round2(sumModularity / optimizationRuns)
	if roundedModularity < 0 {
		roundedModularity = 0
	}

	communitiesKey, modularityKey, biggestKey := keysFor(t)
	m.OverallData()[communitiesKey] = roundedCommunities
	m.OverallData()[modularityKey] = roundedModularity
	m.OverallData()[biggestKey] = biggest
}

// renumberLargestFirst maps each node's community id so that id 0 is
// the largest community (by size, descending), matching
// modularity.py's sorted_partion_by_louvain renumbering.
func renumberLargestFirst(partition map[string]int, sortedIDs []int) map[string]int {
	newID := make(map[int]int, len(sortedIDs))
	for i, old := range sortedIDs {
		newID[old] = i
	}
	out := make(map[string]int, len(partition))
	for node, c := range partition {
		out[node] = newID[c]
	}
	return out
}

func round2(v float64) float64 {
	return roundHalfAwayFromZero(v*100) / 100
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return -float64(int(-v + 0.5))
}
