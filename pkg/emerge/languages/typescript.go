package languages

import (
	"path/filepath"
	"strings"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/stats"
)

// TypeScriptParser implements Parser for TypeScript source (spec.md
// §4.2). Grounded on typescriptparser.py, described by the source
// itself as "basically a copy of the JavaScript parser with some nice
// modifications" — it shares the JS token mappings and read-ahead
// import scanner but computes its unique name relative to the
// analysis's source directory itself (not its parent), and resolves
// "../" dependencies by stripping that same source directory prefix.
type TypeScriptParser struct{}

func NewTypeScriptParser() *TypeScriptParser { return &TypeScriptParser{} }

func (p *TypeScriptParser) Name() string              { return "typescript-parser" }
func (p *TypeScriptParser) Language() result.Language { return result.LangTypeScript }

func (p *TypeScriptParser) ParseFile(ctx *Context, fileName, fullPath, content string) error {
	tokens := PreprocessByMapping(content, jsTokenMappings)

	uniqueName := fullPath
	prefix := ctx.Analysis.SourceDirectory + "/"
	if strings.Contains(fullPath, prefix) {
		parts := strings.SplitN(fullPath, prefix, 2)
		if len(parts) > 1 {
			uniqueName = parts[1]
		}
	}

	fr := result.NewFileResult(uniqueName)
	fr.AbsoluteName = fullPath
	fr.DisplayName = fileName
	fr.ScannedFileName = fileName
	fr.RelativeFilePathToAnalysis = uniqueName
	fr.ScannedLanguage = result.LangTypeScript
	fr.ScannedTokens = tokens
	fr.ModuleName = ""
	fr.AbsoluteDirPath = filepath.Dir(fullPath)
	fr.RelativeAnalysisPath = filepath.Dir(uniqueName)

	p.addImportsToResult(ctx, fr)

	ctx.Store.Put(fr)
	return nil
}

func (p *TypeScriptParser) ParseEntities(ctx *Context) error { return ErrUnsupported }
func (p *TypeScriptParser) PostProcess(ctx *Context) error   { return nil }

func (p *TypeScriptParser) addImportsToResult(ctx *Context, fr *result.FileResult) {
	withoutComments := FilterSourceTokensWithoutComments(fr.ScannedTokens, "//", "/*", "*/")
	filtered := PreprocessByMapping(withoutComments, jsTokenMappings)

	for tok, following := range WordsWithReadAhead(filtered) {
		if tok != "import" && tok != "require" {
			continue
		}

		marker := "from"
		if tok == "require" {
			marker = "("
		}

		dependency, ok := dependencyAfterMarker(following, marker)
		if !ok {
			if ctx.Stats != nil {
				ctx.Stats.Increment(stats.ParsingMisses)
			}
			continue
		}
		if ctx.Stats != nil {
			ctx.Stats.Increment(stats.ParsingHits)
		}

		resolved := p.resolveDependency(ctx, fr, dependency)
		if IsInIgnoreList(resolved, ctx.Analysis.IgnoreDependenciesContaining) {
			continue
		}
		fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, resolved)
	}
}

func (p *TypeScriptParser) resolveDependency(ctx *Context, fr *result.FileResult, dependency string) string {
	if aliased, ok := applyImportAliases(dependency, ctx.Analysis.ImportAliases); ok {
		return p.resolveAliasedDependency(ctx, aliased)
	}

	switch {
	case strings.Contains(dependency, "@"):
		return dependency

	case strings.Count(dependency, ".") == 1 && !strings.Contains(dependency, "../"):
		dependency = strings.Replace(dependency, ".", "", 1)
		if !strings.Contains(dependency, ".ts") {
			dependency += ".ts"
		}
		return dependency

	case strings.Contains(dependency, "../"):
		base := strings.TrimSuffix(fr.AbsoluteName, filepath.Base(fr.ScannedFileName))
		resolvedPath := filepath.Clean(base + dependency)

		scanningPath := ctx.Analysis.SourceDirectory
		if !strings.HasSuffix(scanningPath, "/") {
			scanningPath += "/"
		}
		if strings.Contains(resolvedPath, strings.TrimSuffix(scanningPath, "/")) {
			if strings.HasPrefix(resolvedPath, scanningPath) {
				relative := strings.TrimPrefix(resolvedPath, scanningPath)
				if !strings.Contains(relative, ".ts") {
					relative += ".ts"
				}
				return relative
			}
		}
		return dependency

	default:
		return dependency
	}
}

// resolveAliasedDependency resolves a post-substitution dependency as a
// path relative to the analysis source directory itself, matching
// TypeScript's own unique-name convention (§4.2), probing first for the
// bare file and then for an index file (spec.md §8 S2).
func (p *TypeScriptParser) resolveAliasedDependency(ctx *Context, dependency string) string {
	sourceDir := ctx.Analysis.SourceDirectory

	if fileExists(sourceDir + "/" + dependency + ".ts") {
		return dependency + ".ts"
	}
	indexPath := dependency + "/index.ts"
	if fileExists(sourceDir + "/" + indexPath) {
		return indexPath
	}
	return dependency
}
