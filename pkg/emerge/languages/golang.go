package languages

import (
	"regexp"
	"strings"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/stats"
)

// goFuncGrammar and goStructGrammar are the regex equivalents of
// compile_golang_func_grammar_with_re/compile_golang_struct_grammar_with_re
// in goparser.py — used by directory-membership import resolution, not
// by the main extraction pass.
var (
	goFuncGrammar   = regexp.MustCompile(`func\s(?:\(\s*\w*\s*\*{0,2}\w*\s*\)\s*)?(\w*)?`)
	goStructGrammar = regexp.MustCompile(`type\s(\w*)?\s*struct`)
)

// goTokenExtras are the extra punctuation marks GoParser's
// _token_mappings adds beyond basePunctuation.
var goTokenExtras = []string{"&", "..."}

// GoParser implements Parser for Go source (spec.md §4.2). Go has no
// entity concept (ParseEntities returns ErrUnsupported): spec.md §9's
// entity-bearing set is Java/Kotlin/Groovy/Swift only.
type GoParser struct{}

func NewGoParser() *GoParser { return &GoParser{} }

func (p *GoParser) Name() string              { return "go-parser" }
func (p *GoParser) Language() result.Language { return result.LangGo }

func (p *GoParser) ParseFile(ctx *Context, fileName, fullPath, content string) error {
	tokens := Preprocess(content, goTokenExtras...)
	preprocessed := FilterSourceTokensWithoutComments(tokens, "//", "/*", "*/")

	uniqueName := relativeAnalysisPath(ctx, fullPath)
	fr := result.NewFileResult(uniqueName)
	fr.AbsoluteName = fullPath
	fr.DisplayName = fileName
	fr.ScannedFileName = fileName
	fr.RelativeFilePathToAnalysis = uniqueName
	fr.ScannedLanguage = result.LangGo
	fr.ScannedTokens = tokens
	fr.PreprocessedSource = preprocessed
	fr.ModuleName = ""

	ctx.Store.Put(fr)
	return nil
}

func (p *GoParser) ParseEntities(ctx *Context) error { return ErrUnsupported }

// PostProcess resolves every Go FileResult's import dependencies now
// that the full Store (and the filesystem graph) is populated,
// mirroring after_generated_file_results → _add_imports_to_result.
func (p *GoParser) PostProcess(ctx *Context) error {
	for _, fr := range ctx.Store.Files() {
		if fr.ScannedLanguage != result.LangGo {
			continue
		}
		p.addImportsToResult(ctx, fr)
	}
	return nil
}

// addImportsToResult extracts import paths from an `import ( ... )`
// block or a single `import "..."` line out of fr.ScannedTokens, then
// resolves each path against already-scanned Go files the same way
// goparser.py's _add_imports_to_result does: first by unique-name
// suffix match, then by directory-membership heuristic (does the
// dependent file reference a func/struct name declared in any file of
// the imported directory?), falling back to the bare import path.
func (p *GoParser) addImportsToResult(ctx *Context, fr *result.FileResult) {
	deps := extractGoImports(fr.ScannedTokens)

	for _, dep := range deps {
		if IsInIgnoreList(dep, ctx.Analysis.IgnoreDependenciesContaining) {
			continue
		}
		if ctx.Stats != nil {
			ctx.Stats.Increment(stats.ParsingHits)
		}

		if !strings.Contains(dep, "/") {
			fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, dep)
			continue
		}

		resolved, name := p.resolveBySuffixMatch(ctx, dep)
		if resolved {
			fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, name)
			continue
		}

		if p.resolveByDirectoryMembership(ctx, fr, dep) {
			continue
		}

		fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, dep)
	}
}

func (p *GoParser) resolveBySuffixMatch(ctx *Context, dep string) (bool, string) {
	for _, fr := range ctx.Store.Files() {
		if fr.ScannedLanguage != result.LangGo {
			continue
		}
		check := strings.TrimSuffix(fr.UniqueNameValue, ".go")
		if strings.HasSuffix(dep, check) {
			return true, check + ".go"
		}
	}
	return false, ""
}

// resolveByDirectoryMembership implements the "package may use symbols
// from all golang source files only in the imported target directory"
// heuristic: for every directory node whose relative name is a suffix
// of dep, collect its direct files, extract their func/struct names via
// goFuncGrammar/goStructGrammar, and add an import edge to any of them
// whose declared name appears in fr's own preprocessed source.
func (p *GoParser) resolveByDirectoryMembership(ctx *Context, fr *result.FileResult, dep string) bool {
	if ctx.FS == nil {
		return false
	}
	added := false

	for dirName, fileNames := range ctx.FS.FilesInDirectory {
		if !strings.HasSuffix(dep, dirName) {
			continue
		}

		for _, fileName := range fileNames {
			candidate, ok := ctx.Store.Get(fileName)
			if !ok {
				continue
			}
			candidateFile, ok := candidate.(*result.FileResult)
			if !ok {
				continue
			}

			names := declaredGoNames(candidateFile.PreprocessedSource)
			for _, n := range names {
				if n == "" {
					continue
				}
				if strings.Contains(fr.PreprocessedSource, n) {
					fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, candidateFile.UniqueNameValue)
					added = true
					break
				}
			}
		}
	}
	return added
}

func declaredGoNames(preprocessedSource string) []string {
	var names []string
	for _, m := range goFuncGrammar.FindAllStringSubmatch(preprocessedSource, -1) {
		if len(m) > 1 && m[1] != "" {
			names = append(names, m[1])
		}
	}
	for _, m := range goStructGrammar.FindAllStringSubmatch(preprocessedSource, -1) {
		if len(m) > 1 && m[1] != "" {
			names = append(names, m[1])
		}
	}
	return names
}

// extractGoImports walks the raw (non-comment-filtered) token stream
// looking for `import ( ... )` or `import "path"`, returning the quoted
// paths. Quote characters are their own tokens because Preprocess maps
// `"` to a padded token, matching the pyparsing grammar's handling of
// MULTILINE/MULTILINES.
func extractGoImports(tokens []string) []string {
	var deps []string
	for i := 0; i < len(tokens); i++ {
		if tokens[i] != "import" {
			continue
		}
		if i+1 < len(tokens) && tokens[i+1] == "(" {
			j := i + 2
			for j < len(tokens) && tokens[j] != ")" {
				if tokens[j] == `"` {
					if j+1 < len(tokens) && tokens[j+1] != `"` {
						deps = append(deps, tokens[j+1])
						j += 2
						if j < len(tokens) && tokens[j] == `"` {
							j++
						}
						continue
					}
				}
				j++
			}
			i = j
			continue
		}
		// single line: optional alias token then a quoted path
		j := i + 1
		if j < len(tokens) && tokens[j] != `"` {
			j++ // skip alias
		}
		if j < len(tokens) && tokens[j] == `"` && j+1 < len(tokens) {
			deps = append(deps, tokens[j+1])
			i = j + 1
		}
	}
	return deps
}

// relativeAnalysisPath builds the "parent-of-source-directory"-relative
// unique name goparser.py constructs from
// f"{Path(analysis.source_directory).parent}/".
func relativeAnalysisPath(ctx *Context, fullPath string) string {
	base := ctx.Analysis.SourceDirectory
	parent := parentDir(base) + "/"
	if strings.HasPrefix(fullPath, parent) {
		return strings.TrimPrefix(fullPath, parent)
	}
	return fullPath
}

func parentDir(p string) string {
	p = strings.TrimSuffix(p, "/")
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return "."
	}
	return p[:idx]
}
