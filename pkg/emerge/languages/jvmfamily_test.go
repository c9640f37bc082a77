package languages

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestJavaParserPackageAndImport(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewJavaParser()

	content := "package com.example;\nimport com.example.util.Helper;\nclass Foo extends Base {\nHelper h;\n}\n"
	err := p.ParseFile(ctx, "Foo.java", "/src/proj/Foo.java", content)
	require.NoError(t, err)

	fr, ok := ctx.Store.Get("proj/Foo.java")
	require.True(t, ok)
	file := fr.(*result.FileResult)
	require.Equal(t, "com.example", file.ModuleName)
	require.Contains(t, file.ScannedImportDependencies, "com.example.util.Helper")
}

func TestJavaParserEntityExtractionAndInheritance(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewJavaParser()

	content := "package com.example;\nimport com.example.util.Helper;\nclass Foo extends Base {\nHelper h;\n}\n"
	require.NoError(t, p.ParseFile(ctx, "Foo.java", "/src/proj/Foo.java", content))
	require.NoError(t, p.ParseEntities(ctx))

	entities := ctx.Store.Entities()
	require.Len(t, entities, 1)
	e := entities[0]
	require.Equal(t, "Foo", e.EntityName)
	require.Equal(t, "com.example.Foo", e.UniqueNameValue)
	require.Contains(t, e.ScannedInheritanceDependencies, "Base")
	require.Contains(t, e.ScannedImportDependencies, "com.example.util.Helper")
}

// TestJavaVsGroovyImportMatching verifies the substring-vs-exact-match
// difference between Java's and Groovy's entity import propagation:
// Java matches an import whose last segment is merely a substring of a
// token in the entity body, Groovy requires an exact token match.
func TestJavaVsGroovyImportMatching(t *testing.T) {
	content := "package com.example;\nimport com.example.util.Helper;\nclass Foo extends Base {\nHelperThing h;\n}\n"

	javaCtx := newTestContext("/src/proj")
	javaParser := NewJavaParser()
	require.NoError(t, javaParser.ParseFile(javaCtx, "Foo.java", "/src/proj/Foo.java", content))
	require.NoError(t, javaParser.ParseEntities(javaCtx))
	javaEntity := javaCtx.Store.Entities()[0]
	require.Contains(t, javaEntity.ScannedImportDependencies, "com.example.util.Helper")

	groovyCtx := newTestContext("/src/proj")
	groovyParser := NewGroovyParser()
	require.NoError(t, groovyParser.ParseFile(groovyCtx, "Foo.groovy", "/src/proj/Foo.groovy", content))
	require.NoError(t, groovyParser.ParseEntities(groovyCtx))
	groovyEntity := groovyCtx.Store.Entities()[0]
	require.NotContains(t, groovyEntity.ScannedImportDependencies, "com.example.util.Helper")
}

func TestKotlinParserColonInheritance(t *testing.T) {
	ctx := newTestContext("/src/proj")
	p := NewKotlinParser()

	content := "package com.example\nclass Foo : Base {\nval x = 1\n}\n"
	require.NoError(t, p.ParseFile(ctx, "Foo.kt", "/src/proj/Foo.kt", content))
	require.NoError(t, p.ParseEntities(ctx))

	entities := ctx.Store.Entities()
	require.Len(t, entities, 1)
	require.Contains(t, entities[0].ScannedInheritanceDependencies, "Base")
}

func TestExtractClassScopes(t *testing.T) {
	tokens := []string{"class", "Foo", "extends", "Base", "{", "int", "x", "}"}
	scopes := extractClassScopes(tokens, "class", "extends")
	require.Len(t, scopes, 1)
	require.Equal(t, "Foo", scopes[0].name)
	require.Equal(t, "Base", scopes[0].inherited)
	require.Equal(t, []string{"class", "Foo", "{", "int", "x", "}"}, scopes[0].tokens)
}
