package testing

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestNewFileResultRegistersWithStore(t *testing.T) {
	store := result.NewStore()
	f := NewFileResult(t, store, "proj/main.go", result.LangGo, "proj/lib/x.go")

	require.Equal(t, result.LangGo, f.ScannedLanguage)
	require.Equal(t, []string{"proj/lib/x.go"}, f.ScannedImportDependencies)

	got, ok := store.Get("proj/main.go")
	require.True(t, ok)
	require.Same(t, f, got)
}

func TestNewEntityResultWithInheritance(t *testing.T) {
	store := result.NewStore()
	e := WithInheritance(
		NewEntityResult(t, store, "proj/main.go::Dog", "Dog", "proj/main.go", result.LangJava),
		"proj/main.go::Animal",
	)

	require.Equal(t, []string{"proj/main.go::Animal"}, e.ScannedInheritanceDependencies)

	got, ok := store.Get("proj/main.go::Dog")
	require.True(t, ok)
	require.Same(t, e, got)
}

func TestSeedAnalysisPopulatesStore(t *testing.T) {
	store := result.NewStore()
	files := SeedAnalysis(t, store, map[string][]string{
		"proj/main.go":  {"proj/lib/x.go"},
		"proj/lib/x.go": nil,
	})

	require.Len(t, files, 2)
	require.Equal(t, 2, store.Len())
}
