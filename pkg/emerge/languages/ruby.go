package languages

import (
	"path/filepath"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/stats"
)

var rubyTokenMappings = map[string]string{
	":": " : ", ";": " ; ", "{": " { ", "}": " } ", "(": " ( ", ")": " ) ",
	"[": " [ ", "]": " ] ", "?": " ? ", "!": " ! ", ",": " , ", "<": " < ", ">": " > ",
	`"`: ` " `, "'": " ' ",
}

// RubyParser implements Parser for Ruby source (spec.md §4.2). No
// entity concept. Grounded on rubyparser.py: the only dependency form
// recognized is `require '<name>'` / `require "<name>"`, with the
// quoted name taken verbatim (Ruby require targets are library names,
// not relative paths, so no path resolution runs here).
type RubyParser struct{}

func NewRubyParser() *RubyParser { return &RubyParser{} }

func (p *RubyParser) Name() string              { return "ruby-parser" }
func (p *RubyParser) Language() result.Language { return result.LangRuby }

func (p *RubyParser) ParseFile(ctx *Context, fileName, fullPath, content string) error {
	tokens := PreprocessByMapping(content, rubyTokenMappings)

	uniqueName := relativeAnalysisPath(ctx, fullPath)
	fr := result.NewFileResult(uniqueName)
	fr.AbsoluteName = fullPath
	fr.DisplayName = fileName
	fr.ScannedFileName = fileName
	fr.RelativeFilePathToAnalysis = uniqueName
	fr.ScannedLanguage = result.LangRuby
	fr.ScannedTokens = tokens
	fr.ModuleName = ""
	fr.AbsoluteDirPath = filepath.Dir(fullPath)
	fr.RelativeAnalysisPath = filepath.Dir(uniqueName)

	p.addImportsToResult(ctx, fr)

	ctx.Store.Put(fr)
	return nil
}

func (p *RubyParser) ParseEntities(ctx *Context) error { return ErrUnsupported }
func (p *RubyParser) PostProcess(ctx *Context) error   { return nil }

func (p *RubyParser) addImportsToResult(ctx *Context, fr *result.FileResult) {
	withoutComments := FilterSourceTokensWithoutComments(fr.ScannedTokens, "#", "=begin", "=end")
	filtered := PreprocessByMapping(withoutComments, rubyTokenMappings)

	for tok, following := range WordsWithReadAhead(filtered) {
		if tok != "require" {
			continue
		}

		dependency, ok := dependencyAfterQuote(following)
		if !ok {
			if ctx.Stats != nil {
				ctx.Stats.Increment(stats.ParsingMisses)
			}
			continue
		}
		if ctx.Stats != nil {
			ctx.Stats.Increment(stats.ParsingHits)
		}

		if IsInIgnoreList(dependency, ctx.Analysis.IgnoreDependenciesContaining) {
			continue
		}
		fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, dependency)
	}
}

// dependencyAfterQuote finds the first quote delimiter in tokens and
// returns the token right after it, covering both the direct
// `require 'name'` form and the "ignore tokens before the quote" form
// the original grammar allows.
func dependencyAfterQuote(tokens []string) (string, bool) {
	for i, t := range tokens {
		if t == "'" || t == `"` {
			if i+1 < len(tokens) {
				return tokens[i+1], true
			}
			return "", false
		}
	}
	return "", false
}
