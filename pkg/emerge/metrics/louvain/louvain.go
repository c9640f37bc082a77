// Package louvain implements community detection via the Louvain method
// (spec.md §4.5, "Louvain modularity" graph metric): greedy local moves
// maximizing modularity gain, followed by community aggregation,
// repeated until no further gain is found.
//
// No third-party Go module in the reachable ecosystem offers Louvain
// community detection with a resolution parameter equivalent to
// python-louvain's community_louvain.best_partition; this package is a
// hand-rolled, from-scratch port of that algorithm (see DESIGN.md).
// Grounded on the algorithm description and call shape used by
// original_source/emerge/metrics/modularity/modularity.py.
package louvain

import "math/rand"

// Graph is an undirected, weighted adjacency representation: Adjacency
// is symmetric, Adjacency[i][j] == Adjacency[j][i] for every edge.
type Graph struct {
	Nodes     []string
	Adjacency map[string]map[string]float64
}

// NewGraph builds an empty weighted graph over nodes.
func NewGraph(nodes []string) *Graph {
	adj := make(map[string]map[string]float64, len(nodes))
	for _, n := range nodes {
		adj[n] = make(map[string]float64)
	}
	return &Graph{Nodes: nodes, Adjacency: adj}
}

// AddEdge adds weight to the undirected edge between a and b, creating
// both endpoints if absent. Calling it twice for the same pair
// accumulates weight, matching a multigraph collapsed to weighted.
func (g *Graph) AddEdge(a, b string, weight float64) {
	if _, ok := g.Adjacency[a]; !ok {
		g.Adjacency[a] = make(map[string]float64)
		g.Nodes = append(g.Nodes, a)
	}
	if _, ok := g.Adjacency[b]; !ok {
		g.Adjacency[b] = make(map[string]float64)
		g.Nodes = append(g.Nodes, b)
	}
	g.Adjacency[a][b] += weight
	if a != b {
		g.Adjacency[b][a] += weight
	} else {
		g.Adjacency[a][b] += weight // self-loop counts twice toward degree
	}
}

func degree(adj map[string]map[string]float64, n string) float64 {
	var d float64
	for _, w := range adj[n] {
		d += w
	}
	return d
}

func totalEdgeWeight(adj map[string]map[string]float64) float64 {
	var sum float64
	for n := range adj {
		sum += degree(adj, n)
	}
	return sum / 2
}

type level struct {
	// partition maps a node at this level to its community id.
	partition map[string]int
}

// BestPartition runs the Louvain algorithm to completion and returns a
// community id per original node, mirroring
// community_louvain.best_partition(graph, resolution=resolution).
func BestPartition(g *Graph, resolution float64) map[string]int {
	if len(g.Nodes) == 0 {
		return map[string]int{}
	}

	levels := []level{}
	curNodes := append([]string(nil), g.Nodes...)
	curAdj := g.Adjacency

	for {
		part, improved := oneLevel(curNodes, curAdj, resolution)
		levels = append(levels, level{partition: part})
		if !improved {
			break
		}

		aggNodes, aggAdj := aggregate(curNodes, curAdj, part)
		if len(aggNodes) == len(curNodes) {
			break
		}
		curNodes, curAdj = aggNodes, aggAdj
	}

	return foldLevels(g.Nodes, levels)
}

// oneLevel performs repeated local-move passes until stable, returning
// the resulting community assignment over nodes and whether any node
// ever moved away from its initial singleton community.
func oneLevel(nodes []string, adj map[string]map[string]float64, resolution float64) (map[string]int, bool) {
	comm := make(map[string]int, len(nodes))
	deg := make(map[string]float64, len(nodes))
	commTot := make(map[int]float64, len(nodes))

	for i, n := range nodes {
		comm[n] = i
		deg[n] = degree(adj, n)
		commTot[i] = deg[n]
	}

	m2 := totalEdgeWeight(adj) * 2
	if m2 == 0 {
		return comm, false
	}

	anyMove := false
	order := append([]string(nil), nodes...)

	for {
		improvedPass := false
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, n := range order {
			cn := comm[n]
			commTot[cn] -= deg[n]

			neighWeight := map[int]float64{}
			for m, w := range adj[n] {
				if m == n {
					continue
				}
				neighWeight[comm[m]] += w
			}

			best := cn
			bestGain := neighWeight[cn] - resolution*commTot[cn]*deg[n]/m2

			for c, win := range neighWeight {
				gain := win - resolution*commTot[c]*deg[n]/m2
				if gain > bestGain+1e-12 {
					bestGain = gain
					best = c
				}
			}

			comm[n] = best
			commTot[best] += deg[n]
			if best != cn {
				improvedPass = true
				anyMove = true
			}
		}

		if !improvedPass {
			break
		}
	}

	return renumber(comm, nodes), anyMove
}

// renumber reassigns community ids to a dense 0..k-1 range in first-seen
// node order, for stable aggregation keys.
func renumber(comm map[string]int, nodes []string) map[string]int {
	next := 0
	seen := map[int]int{}
	out := make(map[string]int, len(nodes))
	for _, n := range nodes {
		c := comm[n]
		nc, ok := seen[c]
		if !ok {
			nc = next
			seen[c] = nc
			next++
		}
		out[n] = nc
	}
	return out
}

// aggregate builds the induced graph over communities: one super-node
// per community id, edge weights summed from the underlying graph
// (including self-loops for intra-community edges).
func aggregate(nodes []string, adj map[string]map[string]float64, partition map[string]int) ([]string, map[string]map[string]float64) {
	idToKey := map[int]string{}
	for _, n := range nodes {
		c := partition[n]
		if _, ok := idToKey[c]; !ok {
			idToKey[c] = superNodeKey(c)
		}
	}

	aggAdj := make(map[string]map[string]float64, len(idToKey))
	for _, key := range idToKey {
		aggAdj[key] = make(map[string]float64)
	}

	for _, n := range nodes {
		cn := idToKey[partition[n]]
		for m, w := range adj[n] {
			cm := idToKey[partition[m]]
			aggAdj[cn][cm] += w
		}
	}

	aggNodes := make([]string, 0, len(idToKey))
	for _, key := range idToKey {
		aggNodes = append(aggNodes, key)
	}
	return aggNodes, aggAdj
}

func superNodeKey(id int) string {
	return "__louvain_super__" + itoa(id)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// foldLevels composes the per-level partitions into one mapping from
// original node name to final (innermost-aggregate) community id.
func foldLevels(originalNodes []string, levels []level) map[string]int {
	final := map[string]int{}
	for _, n := range originalNodes {
		id := n
		comm := 0
		for _, lv := range levels {
			key := id
			if _, ok := lv.partition[key]; !ok {
				// a node absent at this level (isolated, no edges) keeps its
				// previous community id verbatim.
				break
			}
			comm = lv.partition[key]
			id = superNodeKey(comm)
		}
		final[n] = comm
	}
	return final
}

// Modularity computes the modularity of partition over g at the given
// resolution, mirroring community_louvain.modularity.
func Modularity(partition map[string]int, g *Graph, resolution float64) float64 {
	m2 := totalEdgeWeight(g.Adjacency) * 2
	if m2 == 0 {
		return 0
	}

	commTot := map[int]float64{}
	commInternal := map[int]float64{}

	for _, n := range g.Nodes {
		c := partition[n]
		commTot[c] += degree(g.Adjacency, n)
	}
	for _, n := range g.Nodes {
		c := partition[n]
		for m, w := range g.Adjacency[n] {
			if partition[m] == c {
				commInternal[c] += w
			}
		}
	}

	var q float64
	for c, internal := range commInternal {
		tot := commTot[c]
		q += internal/m2 - resolution*(tot/m2)*(tot/m2)
	}
	return q
}
