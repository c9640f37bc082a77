package graphs

import (
	"testing"

	emergetesting "github.com/glato/emerge/internal/testing"
	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestBuildFileDependencyFromSeededAnalysis(t *testing.T) {
	store := result.NewStore()
	emergetesting.SeedAnalysis(t, store, map[string][]string{
		"proj/main.go":  {"proj/lib/x.go"},
		"proj/lib/x.go": nil,
	})

	repr := BuildFileDependency(store.Files())
	require.Equal(t, FileDependency, repr.Type)

	vertices := Vertices(repr.Digraph)
	require.ElementsMatch(t, []string{"proj/main.go", "proj/lib/x.go"}, vertices)

	_, err := repr.Digraph.Edge("proj/main.go", "proj/lib/x.go")
	require.NoError(t, err)
}
