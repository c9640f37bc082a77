// Package stats implements the engine's statistics counter: a map of
// counters and timings keyed by a closed enumeration, as described in
// spec.md §3 (Statistics) and §6.2.
//
// Grounded on original_source/emerge/stats.go's Python sibling
// emerge/stats.py (Statistics.Key enum and the add/update/increment
// semantics).
package stats

import (
	"fmt"
	"sync"
	"time"
)

// Key enumerates the closed set of statistics counters the engine
// tracks across one analysis.
type Key int

const (
	ScannedFiles Key = iota
	SkippedFiles
	ScanningRuntime
	TotalRuntime
	AnalysisDate
	FileResultsCreationRuntime
	EntityResultsCreationRuntime
	AnalysisRuntime
	MetricCalculationRuntime
	ExtractedFileResults
	ExtractedEntityResults
	ParsingHits
	ParsingMisses
	Runtime
)

func (k Key) String() string {
	switch k {
	case ScannedFiles:
		return "scanned-files"
	case SkippedFiles:
		return "skipped-files"
	case ScanningRuntime:
		return "scanning-runtime"
	case TotalRuntime:
		return "total-runtime"
	case AnalysisDate:
		return "analysis-date"
	case FileResultsCreationRuntime:
		return "file-results-creation-runtime"
	case EntityResultsCreationRuntime:
		return "entity-results-creation-runtime"
	case AnalysisRuntime:
		return "analysis-runtime"
	case MetricCalculationRuntime:
		return "metric-calculation-runtime"
	case ExtractedFileResults:
		return "extracted-file-results"
	case ExtractedEntityResults:
		return "extracted-entity-results"
	case ParsingHits:
		return "parsing-hits"
	case ParsingMisses:
		return "parsing-misses"
	case Runtime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Statistics is a counter map. It is safe for concurrent use: the
// parse phase may be parallelized across files (spec.md §5), so every
// mutating method is guarded by a mutex.
type Statistics struct {
	mu   sync.Mutex
	data map[Key]any
}

// New returns an empty Statistics instance.
func New() *Statistics {
	return &Statistics{data: make(map[Key]any)}
}

// Add sets key to value only if key is not already present
// (first-write-wins), mirroring emerge.stats.Statistics.add.
func (s *Statistics) Add(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		s.data[key] = value
	}
}

// Update unconditionally overwrites key's value.
func (s *Statistics) Update(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Increment adds 1 to key's counter, initializing it to 1 if absent.
func (s *Statistics) Increment(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch v := s.data[key].(type) {
	case int:
		s.data[key] = v + 1
	case nil:
		s.data[key] = 1
	default:
		s.data[key] = 1
	}
}

// Get returns the raw value stored for key, and whether it was present.
func (s *Statistics) Get(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Snapshot returns a copy of the underlying counter map keyed by the
// human-readable key name, suitable for inclusion in a result bundle.
func (s *Statistics) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k.String()] = v
	}
	return out
}

// FormatDuration renders a duration as "HH:MM:SS + ms", matching the
// formatting spec.md §6.2 requires of the statistics dictionary handed
// to exporters. Supplemented from original_source's duration-formatting
// convention (emerge reports runtimes the same way).
func FormatDuration(d time.Duration) string {
	total := d.Round(time.Millisecond)
	hours := total / time.Hour
	total -= hours * time.Hour
	minutes := total / time.Minute
	total -= minutes * time.Minute
	seconds := total / time.Second
	total -= seconds * time.Second
	ms := total / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d + %dms", hours, minutes, seconds, ms)
}
