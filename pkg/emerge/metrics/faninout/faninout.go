// Package faninout implements the fan-in/fan-out graph metric (spec.md
// §4.5): per-graph in/out-degree plus averages, maxima, and the
// name of the max-holder node, with distinct metric keys per graph type
// to satisfy the §4.4 filtering rules.
//
// Grounded on original_source/emerge/metrics/faninout/faninout.py.
package faninout

import (
	"github.com/glato/emerge/pkg/emerge/graphs"
	"github.com/glato/emerge/pkg/emerge/metrics"
	"github.com/glato/emerge/pkg/emerge/result"
)

func keysFor(t graphs.Type) (fanIn, fanOut, avgFanIn, avgFanOut, maxFanIn, maxFanInName, maxFanOut, maxFanOutName string) {
	suffix := t.String() + "-graph"
	return "fan-in-" + suffix, "fan-out-" + suffix,
		"avg-fan-in-" + suffix, "avg-fan-out-" + suffix,
		"max-fan-in-" + suffix, "max-fan-in-name-" + suffix,
		"max-fan-out-" + suffix, "max-fan-out-name-" + suffix
}

// Metric implements metrics.GraphMetric.
type Metric struct {
	metrics.Base
}

func New() *Metric {
	return &Metric{Base: metrics.NewBase("fan-in-out", "fan-in fan-out")}
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
	adj, err := repr.Digraph.AdjacencyMap()
	if err != nil || len(adj) == 0 {
		return
	}
	pred, err := repr.Digraph.PredecessorMap()
	if err != nil {
		return
	}

	fanInKey, fanOutKey, avgFanInKey, avgFanOutKey, maxFanInKey, maxFanInNameKey, maxFanOutKey, maxFanOutNameKey := keysFor(t)

	var sumFanIn, sumFanOut int
	maxFanIn, maxFanOut := -1, -1
	var maxFanInName, maxFanOutName string

	for node := range adj {
		fanOut := len(adj[node])
		fanIn := len(pred[node])

		m.SetLocal(node, map[string]any{fanInKey: fanIn, fanOutKey: fanOut})

		sumFanIn += fanIn
		sumFanOut += fanOut

		if fanIn > maxFanIn {
			maxFanIn, maxFanInName = fanIn, node
		}
		if fanOut > maxFanOut {
			maxFanOut, maxFanOutName = fanOut, node
		}
	}

	n := float64(len(adj))
	m.OverallData()[avgFanInKey] = float64(sumFanIn) / n
	m.OverallData()[avgFanOutKey] = float64(sumFanOut) / n
	m.OverallData()[maxFanInKey] = maxFanIn
	m.OverallData()[maxFanInNameKey] = maxFanInName
	m.OverallData()[maxFanOutKey] = maxFanOut
	m.OverallData()[maxFanOutNameKey] = maxFanOutName
}
