package languages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glato/emerge/pkg/emerge/config"
	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestCParserExistenceGatedIncludeResolution(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "proj")
	srcDir := filepath.Join(proj, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "util.h"), []byte("\n"), 0o644))

	ctx := &Context{Analysis: &config.Analysis{SourceDirectory: proj}, Store: result.NewStore()}
	p := NewCParser()

	content := "#include \"util.h\"\n#include <stdio.h>\n"
	mainPath := filepath.Join(srcDir, "main.c")
	require.NoError(t, p.ParseFile(ctx, "main.c", mainPath, content))

	fr, ok := ctx.Store.Get("proj/src/main.c")
	require.True(t, ok)
	file := fr.(*result.FileResult)

	// util.h exists on disk so it resolves to the full analysis-relative
	// path; stdio.h doesn't, so it falls back to the bare include name.
	require.Contains(t, file.ScannedImportDependencies, "proj/src/util.h")
	require.Contains(t, file.ScannedImportDependencies, "stdio.h")
}

func TestCPPParserReusesCLogic(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewCPPParser()

	content := "#include <vector>\n"
	require.NoError(t, p.ParseFile(ctx, "main.cpp", "/src/proj/main.cpp", content))

	fr, ok := ctx.Store.Get("proj/main.cpp")
	require.True(t, ok)
	file := fr.(*result.FileResult)
	require.Equal(t, result.LangCPP, file.ScannedLanguage)
	require.Contains(t, file.ScannedImportDependencies, "vector")
}

func TestObjCParserVerbatimImport(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewObjCParser()

	content := "#import \"Foo.h\"\n#import <UIKit/UIKit.h>\n"
	require.NoError(t, p.ParseFile(ctx, "Foo.m", "/src/proj/Foo.m", content))

	fr, ok := ctx.Store.Get("proj/Foo.m")
	require.True(t, ok)
	file := fr.(*result.FileResult)

	require.Contains(t, file.ScannedImportDependencies, "Foo.h")
	require.Contains(t, file.ScannedImportDependencies, "UIKit/UIKit.h")
}

func TestIncludeNameAfterDelimiters(t *testing.T) {
	name, ok := includeNameAfterDelimiters([]string{"<", "stdio.h", ">"})
	require.True(t, ok)
	require.Equal(t, "stdio.h", name)

	name, ok = includeNameAfterDelimiters([]string{`"`, "util.h", `"`})
	require.True(t, ok)
	require.Equal(t, "util.h", name)
}
