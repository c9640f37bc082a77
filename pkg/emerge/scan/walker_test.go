package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glato/emerge/pkg/emerge/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalkBuildsFilesystemGraph(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "proj")
	writeFile(t, filepath.Join(proj, "main.go"), "package main\n")
	writeFile(t, filepath.Join(proj, "vendor", "skip.go"), "package vendor\n")
	writeFile(t, filepath.Join(proj, "lib", "x.go"), "package lib\n")

	analysis := &config.Analysis{
		SourceDirectory:             proj,
		OnlyPermitLanguages:         []string{"go"},
		IgnoreDirectoriesContaining: []string{"vendor"},
	}

	fg, skipped, err := Walk(analysis, nil)
	require.NoError(t, err)
	require.Equal(t, 0, skipped)

	require.Contains(t, fg.Nodes, "proj/main.go")
	require.Contains(t, fg.Nodes, "proj/lib/x.go")
	require.NotContains(t, fg.Nodes, "proj/vendor/skip.go")
	require.Contains(t, fg.FilesInDirectory["proj/lib"], "proj/lib/x.go")
}

func TestWalkMissingSourceDirectoryErrors(t *testing.T) {
	analysis := &config.Analysis{SourceDirectory: "/does/not/exist/at/all"}
	_, _, err := Walk(analysis, nil)
	require.Error(t, err)
}

func TestChooseLanguageDisambiguatesHeader(t *testing.T) {
	lang, ok := ChooseLanguage(".h", []string{"cpp"})
	require.True(t, ok)
	require.Equal(t, "cpp", lang)

	_, ok = ChooseLanguage(".h", nil)
	require.False(t, ok)
}
