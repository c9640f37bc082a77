package languages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glato/emerge/pkg/emerge/config"
	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestTypeScriptParserImportAliasResolvesToIndexFile(t *testing.T) {
	proj := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(proj, "src", "y"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "src", "y", "index.ts"), []byte("export default {}\n"), 0o644))

	ctx := &Context{
		Analysis: &config.Analysis{
			SourceDirectory: proj,
			ImportAliases:   map[string]string{"@app": "src"},
		},
		Store: result.NewStore(),
	}
	p := NewTypeScriptParser()

	err := p.ParseFile(ctx, "x.ts", filepath.Join(proj, "src", "x.ts"), "import y from '@app/y';\n")
	require.NoError(t, err)

	fr, ok := ctx.Store.Get("src/x.ts")
	require.True(t, ok)
	file := fr.(*result.FileResult)

	require.Contains(t, file.ScannedImportDependencies, "src/y/index.ts")
}

func TestTypeScriptParserUniqueNameRelativeToSourceDirectory(t *testing.T) {
	ctx := &Context{Analysis: &config.Analysis{SourceDirectory: "/src/proj"}, Store: result.NewStore()}
	p := NewTypeScriptParser()

	err := p.ParseFile(ctx, "app.ts", "/src/proj/src/app.ts", "import { x } from './sibling'\n")
	require.NoError(t, err)

	// unlike every other language parser, TypeScript's unique name is
	// relative to the source directory itself, not its parent.
	_, ok := ctx.Store.Get("src/app.ts")
	require.True(t, ok)
}

func TestTypeScriptParserSingleDotSuffix(t *testing.T) {
	ctx := &Context{Analysis: &config.Analysis{SourceDirectory: "/src/proj"}, Store: result.NewStore()}
	p := NewTypeScriptParser()

	err := p.ParseFile(ctx, "app.ts", "/src/proj/app.ts", "import { x } from '.sibling'\n")
	require.NoError(t, err)

	fr, ok := ctx.Store.Get("app.ts")
	require.True(t, ok)
	file := fr.(*result.FileResult)
	require.Contains(t, file.ScannedImportDependencies, "sibling.ts")
}

func TestTypeScriptParserParentDirResolution(t *testing.T) {
	ctx := &Context{Analysis: &config.Analysis{SourceDirectory: "/src/proj"}, Store: result.NewStore()}
	p := NewTypeScriptParser()

	err := p.ParseFile(ctx, "app.ts", "/src/proj/pkg/app.ts", "import { x } from '../shared'\n")
	require.NoError(t, err)

	fr, ok := ctx.Store.Get("pkg/app.ts")
	require.True(t, ok)
	file := fr.(*result.FileResult)
	require.Contains(t, file.ScannedImportDependencies, "shared.ts")
}
