package languages

import (
	"path/filepath"
	"strings"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/stats"
)

var jsTokenMappings = map[string]string{
	":": " : ", ";": " ; ", "{": " { ", "}": " } ", "(": " ( ", ")": " ) ",
	"[": " [ ", "]": " ] ", "?": " ? ", "!": " ! ", ",": " , ", "<": " < ", ">": " > ",
	`"`: ` " `, "'": " ' ",
}

// JavaScriptParser implements Parser for JavaScript source (spec.md
// §4.2). No entity concept.
type JavaScriptParser struct{}

func NewJavaScriptParser() *JavaScriptParser { return &JavaScriptParser{} }

func (p *JavaScriptParser) Name() string              { return "javascript-parser" }
func (p *JavaScriptParser) Language() result.Language { return result.LangJavaScript }

func (p *JavaScriptParser) ParseFile(ctx *Context, fileName, fullPath, content string) error {
	tokens := PreprocessByMapping(content, jsTokenMappings)

	uniqueName := relativeAnalysisPath(ctx, fullPath)
	fr := result.NewFileResult(uniqueName)
	fr.AbsoluteName = fullPath
	fr.DisplayName = uniqueName
	fr.ScannedFileName = fileName
	fr.RelativeFilePathToAnalysis = uniqueName
	fr.ScannedLanguage = result.LangJavaScript
	fr.ScannedTokens = tokens
	fr.ModuleName = ""
	fr.AbsoluteDirPath = filepath.Dir(fullPath)
	fr.RelativeAnalysisPath = filepath.Dir(uniqueName)

	resolveJSFamilyImports(ctx, fr, ".js")

	ctx.Store.Put(fr)
	return nil
}

func (p *JavaScriptParser) ParseEntities(ctx *Context) error { return ErrUnsupported }
func (p *JavaScriptParser) PostProcess(ctx *Context) error   { return nil }

// resolveJSFamilyImports implements _add_imports_to_file_result, shared
// between JavaScriptParser and TypeScriptParser (the source describes
// typescriptparser.py as "basically a copy of the JavaScript parser");
// suffix is ".js" or ".ts".
func resolveJSFamilyImports(ctx *Context, fr *result.FileResult, suffix string) {
	withoutComments := FilterSourceTokensWithoutComments(fr.ScannedTokens, "//", "/*", "*/")
	filtered := PreprocessByMapping(withoutComments, jsTokenMappings)

	for tok, following := range WordsWithReadAhead(filtered) {
		if tok != "import" && tok != "require" {
			continue
		}

		var marker string
		if tok == "import" {
			marker = "from"
		} else {
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

		resolved := resolveJSDependency(ctx, fr, dependency, suffix)
		if IsInIgnoreList(resolved, ctx.Analysis.IgnoreDependenciesContaining) {
			continue
		}
		fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, resolved)
	}
}

// dependencyAfterMarker finds marker in tokens, skips any quote
// delimiters right after it, and returns the next token: the Go
// equivalent of SkipTo(marker) + Literal(marker) + OneOrMore(quote
// suppressed) + valid_name.
func dependencyAfterMarker(tokens []string, marker string) (string, bool) {
	idx := -1
	for i, t := range tokens {
		if t == marker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	i := idx + 1
	for i < len(tokens) && (tokens[i] == `"` || tokens[i] == "'") {
		i++
	}
	if i < len(tokens) {
		return tokens[i], true
	}
	return "", false
}

func resolveJSDependency(ctx *Context, fr *result.FileResult, dependency, suffix string) string {
	if aliased, ok := applyImportAliases(dependency, ctx.Analysis.ImportAliases); ok {
		return resolveAliasedDependency(ctx, aliased, suffix)
	}

	switch {
	case strings.Contains(dependency, "@"):
		// scoped package references are left as-is.
	case dependency == ".":
		indexDependency := "./index" + suffix
		indexDependency = resolveRelativeDependencyPath(indexDependency, fr.AbsoluteDirPath, ctx.Analysis.SourceDirectory)
		checkPath := parentDir(ctx.Analysis.SourceDirectory) + "/" + indexDependency
		if fileExists(checkPath) {
			dependency = indexDependency
		}
	case strings.Count(dependency, ".") == 1 && !strings.Contains(dependency, "../"):
		dependency = strings.Replace(dependency, ".", "", 1)
		dependency = createRelativeAnalysisPathForDependency(dependency, fr.RelativeAnalysisPath)
	case strings.Contains(dependency, "../"):
		dependency = resolveRelativeDependencyPath(dependency, fr.AbsoluteDirPath, ctx.Analysis.SourceDirectory)
	}

	checkPath := parentDir(ctx.Analysis.SourceDirectory) + "/" + dependency + suffix
	if filepath.Ext(dependency) != suffix && fileExists(checkPath) {
		dependency += suffix
	}
	return dependency
}

// applyImportAliases performs spec.md §4.2's substring-replacement step:
// any configured alias found anywhere in dependency is replaced by its
// target before the rest of resolution runs. Reports whether any
// replacement fired, since an aliased dependency resolves against the
// analysis source root rather than through the @/./../ dispatch below.
func applyImportAliases(dependency string, aliases map[string]string) (string, bool) {
	replaced := dependency
	changed := false
	for alias, target := range aliases {
		if alias == "" {
			continue
		}
		if strings.Contains(replaced, alias) {
			replaced = strings.ReplaceAll(replaced, alias, target)
			changed = true
		}
	}
	return replaced, changed
}

// resolveAliasedDependency resolves a post-substitution dependency (e.g.
// "src/y") as a path relative to the analysis source root, the same
// unique-name convention every parser uses, probing first for the bare
// file and then for an index file (spec.md §8 S2).
func resolveAliasedDependency(ctx *Context, dependency, suffix string) string {
	relativePath := filepath.Base(ctx.Analysis.SourceDirectory) + "/" + dependency
	root := parentDir(ctx.Analysis.SourceDirectory)

	if fileExists(root + "/" + relativePath + suffix) {
		return relativePath + suffix
	}
	indexPath := relativePath + "/index" + suffix
	if fileExists(root + "/" + indexPath) {
		return indexPath
	}
	return relativePath
}
