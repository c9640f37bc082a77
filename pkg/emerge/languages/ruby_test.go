package languages

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestRubyParserRequireVerbatim(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewRubyParser()

	content := "require 'json'\nrequire \"set\"\n"
	err := p.ParseFile(ctx, "app.rb", "/src/proj/app.rb", content)
	require.NoError(t, err)

	fr, ok := ctx.Store.Get("proj/app.rb")
	require.True(t, ok)
	file := fr.(*result.FileResult)

	require.Contains(t, file.ScannedImportDependencies, "json")
	require.Contains(t, file.ScannedImportDependencies, "set")
}

func TestRubyParserNoEntities(t *testing.T) {
	p := NewRubyParser()
	err := p.ParseEntities(newTestContext("/src/proj"))
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestDependencyAfterQuote(t *testing.T) {
	tokens := []string{"'", "json", "'"}
	dep, ok := dependencyAfterQuote(tokens)
	require.True(t, ok)
	require.Equal(t, "json", dep)

	_, ok = dependencyAfterQuote([]string{"nope"})
	require.False(t, ok)
}
