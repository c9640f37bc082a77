// Package bundle implements the result bundle (spec.md §4.7, component
// I): the shape handed from the analyzer to exporters once an analysis
// run completes.
package bundle

import (
	"time"

	"github.com/glato/emerge/pkg/emerge/graphs"
	"github.com/glato/emerge/pkg/emerge/result"
)

// Version identifies the engine revision recorded in every Bundle,
// independent of the module's own go.mod version.
const Version = "0.1.0"

// Bundle is everything an exporter needs (spec.md §4.7, §6.2): analysis
// identity, statistics, overall/local metric results, the set of built
// graphs, and the file/entity results themselves.
type Bundle struct {
	AnalysisName string
	ProjectName  string
	Timestamp    time.Time
	Version      string

	Statistics map[string]any

	// OverallMetrics merges every registered metric's OverallData(),
	// keyed by metric name to avoid cross-metric key collisions.
	OverallMetrics map[string]map[string]any

	// LocalMetrics merges every registered metric's LocalData() across
	// both code and graph metrics, keyed by result/node unique_name.
	LocalMetrics map[string]map[string]any

	// Graphs is every GraphRepresentation built for this analysis,
	// keyed by type. NodeMetrics on each Representation carries the
	// §4.4-filtered per-node annotation.
	Graphs map[graphs.Type]*graphs.Representation

	Files    []*result.FileResult
	Entities []*result.EntityResult
}

// New returns an empty Bundle stamped with the current version,
// ready for the analyzer to fill in.
func New(analysisName, projectName string, timestamp time.Time) *Bundle {
	return &Bundle{
		AnalysisName:   analysisName,
		ProjectName:    projectName,
		Timestamp:      timestamp,
		Version:        Version,
		OverallMetrics: make(map[string]map[string]any),
		LocalMetrics:   make(map[string]map[string]any),
		Graphs:         make(map[graphs.Type]*graphs.Representation),
	}
}

// MergeLocal folds source's per-node metric data into b.LocalMetrics,
// creating an entry per node name the first time it's seen.
func (b *Bundle) MergeLocal(source map[string]map[string]any) {
	for node, data := range source {
		existing, ok := b.LocalMetrics[node]
		if !ok {
			existing = make(map[string]any, len(data))
			b.LocalMetrics[node] = existing
		}
		for k, v := range data {
			existing[k] = v
		}
	}
}
