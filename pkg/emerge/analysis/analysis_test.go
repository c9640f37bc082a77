package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glato/emerge/pkg/emerge/config"
	"github.com/glato/emerge/pkg/emerge/graphs"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	proj := filepath.Join(root, "proj")

	require.NoError(t, os.MkdirAll(filepath.Join(proj, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "main.go"),
		[]byte("package main\n\nimport (\n\t\"proj/lib\"\n)\n\nfunc main() {\n\tGreet()\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "lib", "x.go"),
		[]byte("package lib\n\nfunc Greet() string {\n\treturn \"hi\"\n}\n\nfunc Helper() {}\n"), 0o644))

	return proj
}

func TestRunProducesFileResultsAndGraphs(t *testing.T) {
	proj := writeProject(t)

	an := &config.Analysis{
		Name:                "go-demo",
		SourceDirectory:     proj,
		OnlyPermitLanguages: []string{"go"},
		FileScanMetrics: []string{
			config.TokenSourceLinesOfCode,
			config.TokenDependencyGraph,
			config.TokenFanInOut,
			config.TokenLouvainModularity,
		},
	}

	a := New(an, nil)
	b, err := a.Run(context.Background(), "demo-project")
	require.NoError(t, err)

	require.Len(t, b.Files, 2)
	require.Empty(t, b.Entities, "no entity_scan tokens were registered")

	require.Contains(t, b.Graphs, graphs.Filesystem)
	require.Contains(t, b.Graphs, graphs.FileDependency)
	require.NotContains(t, b.Graphs, graphs.EntityDependency)

	require.Contains(t, b.OverallMetrics, "source-lines-of-code")
	require.Contains(t, b.OverallMetrics, "fan-in-out")
	require.Contains(t, b.OverallMetrics, "louvain-modularity")

	mainName := "proj/main.go"
	require.Contains(t, b.LocalMetrics, mainName)
	require.Contains(t, b.LocalMetrics[mainName], "sloc-in-file")

	fileGraph := b.Graphs[graphs.FileDependency]
	require.NotNil(t, fileGraph.NodeMetrics)
	mainNodeData, ok := fileGraph.NodeMetrics[mainName]
	require.True(t, ok)
	for k := range mainNodeData {
		require.NotContains(t, k, "entity", "file graph node must not carry entity-scoped metric keys")
	}

	require.NotZero(t, b.Statistics["total-runtime"])
	require.Equal(t, 2, b.Statistics["extracted-file-results"])
}

func TestRunWithNoMetricTokensStillBuildsFilesystemGraph(t *testing.T) {
	proj := writeProject(t)

	an := &config.Analysis{
		Name:                "bare",
		SourceDirectory:     proj,
		OnlyPermitLanguages: []string{"go"},
	}

	a := New(an, nil)
	b, err := a.Run(context.Background(), "demo-project")
	require.NoError(t, err)

	require.Len(t, b.Files, 2)
	require.Contains(t, b.Graphs, graphs.Filesystem)
	require.NotContains(t, b.Graphs, graphs.FileDependency)
	require.Empty(t, b.OverallMetrics)
}

func TestRunMissingSourceDirectoryIsFilesystemError(t *testing.T) {
	an := &config.Analysis{
		Name:            "missing",
		SourceDirectory: "/nonexistent/path/does/not/exist",
	}

	a := New(an, nil)
	_, err := a.Run(context.Background(), "demo-project")
	require.Error(t, err)
}

func TestAnnotateFiltersEntityGraphTypeSubstrings(t *testing.T) {
	representations := map[graphs.Type]*graphs.Representation{
		graphs.EntityDependency: buildSingleNodeGraph("n1"),
	}
	merged := map[string]map[string]any{
		"n1": {
			"louvain-modularity-in-entity":                 1,
			"louvain-communities-entity-inheritance-graph":  2,
			"fan-in-entity-dependency-graph":                3,
		},
	}

	annotate(representations, merged)

	got := representations[graphs.EntityDependency].NodeMetrics["n1"]
	require.Contains(t, got, "louvain-modularity-in-entity")
	require.Contains(t, got, "fan-in-entity-dependency-graph")
	require.NotContains(t, got, "louvain-communities-entity-inheritance-graph",
		"an entity-dependency node must not pick up an inheritance-graph Louvain key")
}

func buildSingleNodeGraph(name string) *graphs.Representation {
	repr := graphs.BuildEntityDependency(nil)
	_ = repr.Digraph.AddVertex(name)
	return repr
}
