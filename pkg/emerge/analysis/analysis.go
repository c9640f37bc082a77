// Package analysis implements the Analyzer (spec.md §4.6, component
// G): the nine-step state machine that drives one analysis from a
// filesystem walk through parsing, metric calculation, and graph
// annotation, producing a bundle.Bundle.
//
// The parse-phase worker pool (bounded goroutines over a jobs channel,
// sequential fallback below a size threshold) is adapted from the
// teacher's pkg/ingestion/local_pipeline.go parseFilesParallel/
// parseFilesSequential, generalized from CozoDB-row production to
// languages.Parser/result.Store production (spec.md §5's concurrency
// constraints: the Store serializes its own writes, Statistics is
// mutex-guarded, so the pool itself needs no result-merging step).
package analysis

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/glato/emerge/internal/emergeerr"
	"github.com/glato/emerge/pkg/emerge/bundle"
	"github.com/glato/emerge/pkg/emerge/config"
	"github.com/glato/emerge/pkg/emerge/graphs"
	"github.com/glato/emerge/pkg/emerge/internal/registry"
	"github.com/glato/emerge/pkg/emerge/languages"
	"github.com/glato/emerge/pkg/emerge/metrics"
	"github.com/glato/emerge/pkg/emerge/metrics/faninout"
	"github.com/glato/emerge/pkg/emerge/metrics/modularity"
	"github.com/glato/emerge/pkg/emerge/metrics/numberofmethods"
	"github.com/glato/emerge/pkg/emerge/metrics/sloc"
	"github.com/glato/emerge/pkg/emerge/metrics/tfidf"
	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/scan"
	"github.com/glato/emerge/pkg/emerge/stats"
)

// ProjectName/Analysis together identify a bundle (spec.md §4.7); the
// caller supplies the project name since config.Analysis only carries
// its own name.
type Analyzer struct {
	analysis     *config.Analysis
	logger       *slog.Logger
	parsers      map[string]languages.Parser
	parseWorkers int
}

// New returns an Analyzer over an, wired with the twelve built-in
// parsers keyed by scan.ChooseLanguage's names.
func New(an *config.Analysis, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		analysis:     an,
		logger:       logger,
		parsers:      registry.Parsers(),
		parseWorkers: 4,
	}
}

// Run executes the nine-step state machine (spec.md §4.6) and returns
// the resulting bundle.
func (a *Analyzer) Run(ctx context.Context, projectName string) (*bundle.Bundle, error) {
	startTime := time.Now()
	st := stats.New()
	st.Add(stats.AnalysisDate, startTime.Format(time.RFC3339))

	a.logger.Info("analyzer.start", "analysis", a.analysis.Name, "source", a.analysis.SourceDirectory)

	// 2. create_filesystem_graph
	scanStart := time.Now()
	fg, skipped, err := scan.Walk(a.analysis, a.logger)
	if err != nil {
		return nil, emergeerr.NewFilesystem(
			"could not walk source directory",
			err.Error(),
			"check that source_directory exists and is readable",
			err,
		)
	}
	st.Update(stats.ScanningRuntime, stats.FormatDuration(time.Since(scanStart)))
	st.Update(stats.SkippedFiles, skipped)

	store := result.NewStore()
	pctx := &languages.Context{Analysis: a.analysis, Store: store, FS: fg, Stats: st}

	// 3. create file results (invoke each parser per file)
	fileResultsStart := time.Now()
	seenLanguages := a.runFileScan(ctx, pctx, fg)
	st.Update(stats.FileResultsCreationRuntime, stats.FormatDuration(time.Since(fileResultsStart)))
	st.Update(stats.ExtractedFileResults, len(store.Files()))

	// 5. after_generated_file_results on every parser whose result set
	// is non-empty (run before entity extraction, per spec.md §4.6 step
	// 5 and the Swift/Go PostProcess ordering captured in
	// languages.Parser's doc comments).
	a.runPostProcess(pctx, seenLanguages)

	// 4. create entity results, if entity-scan configured
	var entityResultsDuration time.Duration
	if len(a.analysis.EntityScanMetrics) > 0 {
		entityStart := time.Now()
		a.runEntityScan(pctx, seenLanguages)
		entityResultsDuration = time.Since(entityStart)
	}
	st.Update(stats.EntityResultsCreationRuntime, stats.FormatDuration(entityResultsDuration))
	st.Update(stats.ExtractedEntityResults, len(store.Entities()))

	files := store.Files()
	entities := store.Entities()
	sortFiles(files)
	sortEntities(entities)

	b := bundle.New(a.analysis.Name, projectName, startTime)

	// 6. run code metrics, if present
	metricStart := time.Now()
	b.Statistics = make(map[string]any)
	a.runCodeMetrics(b, files, entities)

	// 7. build graphs, run graph metrics, annotate nodes, if present
	representations := a.buildGraphs(fg, files, entities)
	a.runGraphMetrics(b, representations, files, entities)
	annotate(representations, b.LocalMetrics)
	for t, repr := range representations {
		b.Graphs[t] = repr
	}

	st.Update(stats.MetricCalculationRuntime, stats.FormatDuration(time.Since(metricStart)))

	// 8. stop_timer; record total runtime
	st.Update(stats.TotalRuntime, stats.FormatDuration(time.Since(startTime)))

	b.Files = files
	b.Entities = entities
	metricRuntimes := b.Statistics
	b.Statistics = st.Snapshot()
	for k, v := range metricRuntimes {
		b.Statistics[k] = v
	}

	a.logger.Info("analyzer.complete",
		"analysis", a.analysis.Name,
		"files", len(files),
		"entities", len(entities),
		"duration", stats.FormatDuration(time.Since(startTime)),
	)

	return b, nil
}

func sortFiles(files []*result.FileResult) {
	sort.Slice(files, func(i, j int) bool { return files[i].UniqueNameValue < files[j].UniqueNameValue })
}

func sortEntities(entities []*result.EntityResult) {
	sort.Slice(entities, func(i, j int) bool { return entities[i].UniqueNameValue < entities[j].UniqueNameValue })
}

// runFileScan dispatches ParseFile across every scanned file through a
// bounded worker pool, mirroring local_pipeline.go's
// parseFilesParallel/parseFilesSequential split. It returns the set of
// languages that produced at least one FileResult, used to scope the
// PostProcess/ParseEntities passes to parsers that actually ran.
func (a *Analyzer) runFileScan(ctx context.Context, pctx *languages.Context, fg *scan.FilesystemGraph) map[result.Language]bool {
	var files []*scan.FilesystemNode
	for _, n := range fg.Nodes {
		if n.Type == scan.NodeFile {
			files = append(files, n)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelativeName < files[j].RelativeName })

	seen := make(map[result.Language]bool)
	var mu sync.Mutex

	process := func(n *scan.FilesystemNode) {
		ext := filepath.Ext(n.RelativeName)
		langName, ok := scan.ChooseLanguage(ext, a.analysis.OnlyPermitLanguages)
		if !ok {
			return
		}
		p, ok := a.parsers[langName]
		if !ok {
			return
		}
		if err := p.ParseFile(pctx, n.RelativeName, n.AbsoluteName, n.Content); err != nil {
			pctx.Stats.Increment(stats.ParsingMisses)
			a.logger.Warn("parser.file.miss", "parser", p.Name(), "path", n.RelativeName, "err", err)
			return
		}
		pctx.Stats.Increment(stats.ParsingHits)
		mu.Lock()
		seen[p.Language()] = true
		mu.Unlock()
	}

	workers := a.parseWorkers
	if len(files) < 10 || workers <= 1 {
		for _, n := range files {
			select {
			case <-ctx.Done():
				return seen
			default:
			}
			process(n)
		}
		return seen
	}

	jobs := make(chan *scan.FilesystemNode, len(files))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				process(n)
			}
		}()
	}
	for _, n := range files {
		jobs <- n
	}
	close(jobs)
	wg.Wait()

	return seen
}

func (a *Analyzer) runPostProcess(pctx *languages.Context, seenLanguages map[result.Language]bool) {
	for _, p := range a.parsers {
		if !seenLanguages[p.Language()] {
			continue
		}
		if err := p.PostProcess(pctx); err != nil {
			a.logger.Debug("parser.postprocess.skip", "parser", p.Name(), "err", err)
		}
	}
}

func (a *Analyzer) runEntityScan(pctx *languages.Context, seenLanguages map[result.Language]bool) {
	for _, p := range a.parsers {
		if !seenLanguages[p.Language()] {
			continue
		}
		if err := p.ParseEntities(pctx); err != nil && err != languages.ErrUnsupported {
			a.logger.Warn("parser.entities.error", "parser", p.Name(), "err", err)
		}
	}
}

// runCodeMetrics registers and runs the code metrics the analysis
// requested, scoping each one's file/entity inputs to whichever scan
// (file_scan/entity_scan) carries its token (spec.md §6.1 table,
// §4.5's "file-scope then entity-scope" ordering).
func (a *Analyzer) runCodeMetrics(b *bundle.Bundle, files []*result.FileResult, entities []*result.EntityResult) {
	type entry struct {
		token string
		m     metrics.CodeMetric
	}
	candidates := []entry{
		{config.TokenNumberOfMethods, numberofmethods.New()},
		{config.TokenSourceLinesOfCode, sloc.New()},
		{config.TokenTFIDF, tfidf.New()},
	}

	for _, c := range candidates {
		wantFile := a.analysis.HasFileToken(c.token)
		wantEntity := a.analysis.HasEntityToken(c.token)
		if !wantFile && !wantEntity {
			continue
		}

		var scopedFiles []*result.FileResult
		if wantFile {
			scopedFiles = files
		}
		var scopedEntities []*result.EntityResult
		if wantEntity {
			scopedEntities = entities
		}

		start := time.Now()
		c.m.CalculateFromResults(scopedFiles, scopedEntities)
		d := time.Since(start)
		metrics.RecordRuntime(c.m.Name(), d)
		b.Statistics[c.m.Name()+"-runtime"] = stats.FormatDuration(d)

		b.OverallMetrics[c.m.Name()] = c.m.OverallData()
		b.MergeLocal(c.m.LocalData())
	}
}

// buildGraphs constructs whichever GraphRepresentations the analysis
// requested (spec.md §4.4). The filesystem graph is always built, file/
// entity dependency graphs are built when their token is registered for
// the matching scan, and the entity complete graph requires both the
// entity dependency and inheritance graphs to already exist.
func (a *Analyzer) buildGraphs(fg *scan.FilesystemGraph, files []*result.FileResult, entities []*result.EntityResult) map[graphs.Type]*graphs.Representation {
	out := make(map[graphs.Type]*graphs.Representation)
	out[graphs.Filesystem] = graphs.BuildFilesystem(fg)

	if a.analysis.HasFileToken(config.TokenDependencyGraph) {
		out[graphs.FileDependency] = graphs.BuildFileDependency(files)
	}

	var dependency, inheritance *graphs.Representation
	if a.analysis.HasEntityToken(config.TokenDependencyGraph) {
		dependency = graphs.BuildEntityDependency(entities)
		out[graphs.EntityDependency] = dependency
	}
	if a.analysis.HasEntityToken(config.TokenInheritanceGraph) {
		inheritance = graphs.BuildEntityInheritance(entities)
		out[graphs.EntityInheritance] = inheritance
	}
	if a.analysis.HasEntityToken(config.TokenCompleteGraph) {
		if dependency == nil {
			dependency = graphs.BuildEntityDependency(entities)
		}
		if inheritance == nil {
			inheritance = graphs.BuildEntityInheritance(entities)
		}
		out[graphs.EntityComplete] = graphs.BuildEntityComplete(dependency, inheritance)
	}

	return out
}

// runGraphMetrics registers and runs the graph metrics the analysis
// requested, over every graph built for it.
func (a *Analyzer) runGraphMetrics(b *bundle.Bundle, representations map[graphs.Type]*graphs.Representation, files []*result.FileResult, entities []*result.EntityResult) {
	type entry struct {
		token string
		m     metrics.GraphMetric
	}
	candidates := []entry{
		{config.TokenFanInOut, faninout.New()},
		{config.TokenLouvainModularity, modularity.New()},
	}

	for _, c := range candidates {
		if !a.analysis.HasFileToken(c.token) && !a.analysis.HasEntityToken(c.token) {
			continue
		}

		start := time.Now()
		c.m.CalculateFromGraphs(representations, files, entities)
		d := time.Since(start)
		metrics.RecordRuntime(c.m.Name(), d)
		b.Statistics[c.m.Name()+"-runtime"] = stats.FormatDuration(d)

		b.OverallMetrics[c.m.Name()] = c.m.OverallData()
		b.MergeLocal(c.m.LocalData())
	}
}

// annotate writes the §4.4-filtered view of merged into each
// representation's NodeMetrics: file-graph nodes keep only keys without
// an "entity" substring, entity-graph nodes keep only keys without a
// "file" substring, and entity-graph Louvain keys are further scoped to
// their own graph type's substring so e.g. an entity-dependency node
// doesn't pick up an entity-inheritance-graph Louvain id for the same
// name.
func annotate(representations map[graphs.Type]*graphs.Representation, merged map[string]map[string]any) {
	for t, repr := range representations {
		nodes := graphs.Vertices(repr.Digraph)
		repr.NodeMetrics = make(map[string]map[string]any, len(nodes))

		forFile := isFileGraphType(t)
		forEntity := isEntityGraphType(t)
		ownSubstring := graphTypeSubstring(t)

		for _, node := range nodes {
			data, ok := merged[node]
			if !ok {
				continue
			}
			filtered := make(map[string]any)
			for k, v := range data {
				if forFile && strings.Contains(k, "entity") {
					continue
				}
				if forEntity && strings.Contains(k, "file") {
					continue
				}
				if forEntity && strings.Contains(k, "louvain") && ownSubstring != "" && isCrossGraphTypeKey(k, ownSubstring) {
					continue
				}
				filtered[k] = v
			}
			if len(filtered) > 0 {
				repr.NodeMetrics[node] = filtered
			}
		}
	}
}

func isFileGraphType(t graphs.Type) bool {
	return t == graphs.Filesystem || t == graphs.FileDependency
}

func isEntityGraphType(t graphs.Type) bool {
	switch t {
	case graphs.EntityDependency, graphs.EntityInheritance, graphs.EntityComplete:
		return true
	default:
		return false
	}
}

func graphTypeSubstring(t graphs.Type) string {
	switch t {
	case graphs.EntityDependency:
		return "dependency"
	case graphs.EntityInheritance:
		return "inheritance"
	case graphs.EntityComplete:
		return "complete"
	default:
		return ""
	}
}

var graphTypeSubstrings = []string{"dependency", "inheritance", "complete"}

// isCrossGraphTypeKey reports whether k names one of the three
// graph-type substrings but not own, meaning it belongs to a sibling
// entity graph's Louvain annotation rather than this one's.
func isCrossGraphTypeKey(k, own string) bool {
	for _, s := range graphTypeSubstrings {
		if s != own && strings.Contains(k, s) {
			return true
		}
	}
	return false
}
