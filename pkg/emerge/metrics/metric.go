// Package metrics implements the engine's metric framework (spec.md
// §4.5): code metrics (operate on tokens/source of individual results)
// and graph metrics (operate on one or more GraphRepresentations), each
// exposing a metric name, local per-result data, and overall (aggregate)
// data.
//
// Grounded on original_source/emerge/metrics/abstractmetric.py and
// metrics.py (AbstractMetric/AbstractCodeMetric/AbstractGraphMetric,
// CodeMetric/GraphMetric base classes), adapted per spec.md §9's
// capability-interface guidance: the abstract base class hierarchy
// collapses into two small interfaces plus a shared Base struct that
// concrete metrics embed for their LocalData/OverallData bookkeeping.
package metrics

import (
	"github.com/glato/emerge/pkg/emerge/graphs"
	"github.com/glato/emerge/pkg/emerge/result"
)

// Metric is the common surface every code or graph metric implements.
type Metric interface {
	Name() string
	PrettyName() string
	LocalData() map[string]map[string]any
	OverallData() map[string]any
}

// CodeMetric operates on the token/source content of individual
// results, file-scope then entity-scope (spec.md §4.5 calculation
// order).
type CodeMetric interface {
	Metric
	CalculateFromResults(files []*result.FileResult, entities []*result.EntityResult)
}

// GraphMetric operates on one or more built GraphRepresentations.
// Representations is keyed by graphs.Type; a metric reads only the
// types it needs (fan-in/out and Louvain both read dependency,
// inheritance, and complete graphs when present).
type GraphMetric interface {
	Metric
	CalculateFromGraphs(representations map[graphs.Type]*graphs.Representation, files []*result.FileResult, entities []*result.EntityResult)
}

// Base holds the local/overall data maps every concrete metric needs,
// mirroring CodeMetric/GraphMetric's shared state in metrics.py.
type Base struct {
	name        string
	prettyName  string
	localData   map[string]map[string]any
	overallData map[string]any
}

// NewBase returns a Base ready for use, with both data maps initialized.
func NewBase(name, prettyName string) Base {
	return Base{
		name:        name,
		prettyName:  prettyName,
		localData:   make(map[string]map[string]any),
		overallData: make(map[string]any),
	}
}

func (b *Base) Name() string       { return b.name }
func (b *Base) PrettyName() string { return b.prettyName }

func (b *Base) LocalData() map[string]map[string]any { return b.localData }
func (b *Base) OverallData() map[string]any           { return b.overallData }

// SetLocal merges data into the entry for uniqueName, creating it if
// absent, mirroring the repeated "if name in self.local_data: ...
// update ... else: ..." pattern throughout the Python metrics.
func (b *Base) SetLocal(uniqueName string, data map[string]any) {
	if existing, ok := b.localData[uniqueName]; ok {
		for k, v := range data {
			existing[k] = v
		}
		return
	}
	b.localData[uniqueName] = data
}
