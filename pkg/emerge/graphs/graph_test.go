package graphs

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/scan"
	"github.com/stretchr/testify/require"
)

func TestBuildFilesystem(t *testing.T) {
	fs := &scan.FilesystemGraph{
		RootName: "proj",
		Nodes: map[string]*scan.FilesystemNode{
			"proj":         {Type: scan.NodeDirectory, RelativeName: "proj"},
			"proj/main.go": {Type: scan.NodeFile, RelativeName: "proj/main.go"},
		},
		Edges: []scan.Edge{{From: "proj", To: "proj/main.go"}},
	}

	repr := BuildFilesystem(fs)
	require.Equal(t, Filesystem, repr.Type)
	require.Equal(t, fs.Nodes, repr.FilesystemNodes)

	vertices := Vertices(repr.Digraph)
	require.Contains(t, vertices, "proj")
	require.Contains(t, vertices, "proj/main.go")

	_, err := repr.Digraph.Edge("proj", "proj/main.go")
	require.NoError(t, err)
}

func TestBuildFileDependencyAddsMissingTargetAsBareNode(t *testing.T) {
	files := []*result.FileResult{
		{UniqueNameValue: "proj/a.go", ScannedImportDependencies: []string{"proj/b.go", "proj/ghost.go"}},
		{UniqueNameValue: "proj/b.go"},
	}

	repr := BuildFileDependency(files)
	require.Equal(t, FileDependency, repr.Type)

	vertices := Vertices(repr.Digraph)
	require.Contains(t, vertices, "proj/a.go")
	require.Contains(t, vertices, "proj/b.go")
	require.Contains(t, vertices, "proj/ghost.go")

	_, err := repr.Digraph.Edge("proj/a.go", "proj/ghost.go")
	require.NoError(t, err)
}

func TestBuildEntityDependencyAndInheritance(t *testing.T) {
	entities := []*result.EntityResult{
		{UniqueNameValue: "pkg.A", ScannedImportDependencies: []string{"pkg.B"}, ScannedInheritanceDependencies: []string{"pkg.Base"}},
		{UniqueNameValue: "pkg.B"},
	}

	dep := BuildEntityDependency(entities)
	_, err := dep.Digraph.Edge("pkg.A", "pkg.B")
	require.NoError(t, err)

	inh := BuildEntityInheritance(entities)
	_, err = inh.Digraph.Edge("pkg.A", "pkg.Base")
	require.NoError(t, err)

	// the inheritance-only target never appears in the dependency graph.
	_, err = dep.Digraph.Edge("pkg.A", "pkg.Base")
	require.Error(t, err)
}

func TestBuildEntityCompleteUnionsBothGraphs(t *testing.T) {
	entities := []*result.EntityResult{
		{UniqueNameValue: "pkg.A", ScannedImportDependencies: []string{"pkg.B"}, ScannedInheritanceDependencies: []string{"pkg.Base"}},
		{UniqueNameValue: "pkg.B"},
	}

	dep := BuildEntityDependency(entities)
	inh := BuildEntityInheritance(entities)
	complete := BuildEntityComplete(dep, inh)

	require.Equal(t, EntityComplete, complete.Type)
	_, err := complete.Digraph.Edge("pkg.A", "pkg.B")
	require.NoError(t, err)
	_, err = complete.Digraph.Edge("pkg.A", "pkg.Base")
	require.NoError(t, err)
}

func TestUndirectedProjection(t *testing.T) {
	entities := []*result.EntityResult{
		{UniqueNameValue: "pkg.A", ScannedImportDependencies: []string{"pkg.B"}},
		{UniqueNameValue: "pkg.B"},
	}
	dep := BuildEntityDependency(entities)
	u := Undirected(dep.Digraph)

	_, err := u.Edge("pkg.A", "pkg.B")
	require.NoError(t, err)
	_, err = u.Edge("pkg.B", "pkg.A")
	require.NoError(t, err)
}
