package languages

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

// TestExtractSwiftScopesFalsePositiveFilter verifies that a top-level
// "class var ..." static-member declaration is skipped while a real
// class declaration is still captured.
func TestExtractSwiftScopesFalsePositiveFilter(t *testing.T) {
	content := "class var globalThing = 1\nclass Foo {\n}\n"
	tokens := Preprocess(content)

	scopes := extractSwiftScopes(tokens)
	require.Len(t, scopes, 1)
	require.Equal(t, "Foo", scopes[0].name)
}

func TestExtractSwiftScopesInheritance(t *testing.T) {
	content := "class Foo : Base {\nvar x = 1\n}\n"
	tokens := Preprocess(content)

	scopes := extractSwiftScopes(tokens)
	require.Len(t, scopes, 1)
	require.Equal(t, "Foo", scopes[0].name)
	require.Equal(t, "Base", scopes[0].inherited)
}

func TestSwiftParserExtensionMerge(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewSwiftParser()

	require.NoError(t, p.ParseFile(ctx, "Foo.swift", "/src/proj/Foo.swift", "class Foo {\nvar a = 1\n}\n"))
	require.NoError(t, p.ParseFile(ctx, "FooExt.swift", "/src/proj/FooExt.swift", "extension Foo {\nvar b = 2\n}\n"))

	require.NoError(t, p.PostProcess(ctx))
	require.NoError(t, p.ParseEntities(ctx))

	stored, ok := ctx.Store.Get("Foo")
	require.True(t, ok)
	entity := stored.(*result.EntityResult)
	require.Contains(t, entity.ScannedTokens, "a")
	require.Contains(t, entity.ScannedTokens, "b")
}

func TestSwiftParserFileToFileImportInference(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewSwiftParser()

	require.NoError(t, p.ParseFile(ctx, "Dep.swift", "/src/proj/Dep.swift", "class Dep {\n}\n"))
	require.NoError(t, p.ParseFile(ctx, "User.swift", "/src/proj/User.swift", "let x = Dep()\n"))

	require.NoError(t, p.PostProcess(ctx))

	stored, ok := ctx.Store.Get("proj/User.swift")
	require.True(t, ok)
	user := stored.(*result.FileResult)
	require.Contains(t, user.ScannedImportDependencies, "proj/Dep.swift")
}

func TestSwiftParserEntityToEntityImportInference(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewSwiftParser()

	content := "class A {\n}\nclass B {\nlet x = A()\n}\n"
	require.NoError(t, p.ParseFile(ctx, "File.swift", "/src/proj/File.swift", content))
	require.NoError(t, p.PostProcess(ctx))
	require.NoError(t, p.ParseEntities(ctx))

	stored, ok := ctx.Store.Get("B")
	require.True(t, ok)
	b := stored.(*result.EntityResult)
	require.Contains(t, b.ScannedImportDependencies, "A")
}
