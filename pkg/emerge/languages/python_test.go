package languages

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestPythonParserParseFile(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewPythonParser()

	content := "from . import helper\nfrom .. import other\nimport os\n"
	err := p.ParseFile(ctx, "mod.py", "/src/proj/pkg/mod.py", content)
	require.NoError(t, err)

	fr, ok := ctx.Store.Get("proj/pkg/mod.py")
	require.True(t, ok)
	file := fr.(*result.FileResult)

	require.Contains(t, file.ScannedImportDependencies, "proj/pkg/helper.py")
	require.Contains(t, file.ScannedImportDependencies, "proj/other.py")
	require.Contains(t, file.ScannedImportDependencies, "os")
}

func TestPythonParserTripleDotImportResolvesToParentDirectory(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewPythonParser()

	content := "from .. import b, c\n"
	err := p.ParseFile(ctx, "a.py", "/src/proj/pkg/a.py", content)
	require.NoError(t, err)

	fr, ok := ctx.Store.Get("proj/pkg/a.py")
	require.True(t, ok)
	file := fr.(*result.FileResult)

	require.Contains(t, file.ScannedImportDependencies, "proj/b.py")
	require.Contains(t, file.ScannedImportDependencies, "proj/c.py")
}

func TestPythonParserIgnoresDoctestLines(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewPythonParser()

	content := "\"\"\"\n>>> import shadow\n\"\"\"\nimport real\n"
	err := p.ParseFile(ctx, "doc.py", "/src/proj/doc.py", content)
	require.NoError(t, err)

	fr, _ := ctx.Store.Get("proj/doc.py")
	file := fr.(*result.FileResult)
	require.NotContains(t, file.ScannedImportDependencies, "shadow")
	require.Contains(t, file.ScannedImportDependencies, "real")
}

func TestSplitAfterImport(t *testing.T) {
	got := splitAfterImport("from . import a, b , c")
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestResolveRelativeDependencyPath(t *testing.T) {
	got := resolveRelativeDependencyPath("../sibling", "/src/proj/pkg", "/src/proj")
	require.Equal(t, "proj/sibling", got)
}
