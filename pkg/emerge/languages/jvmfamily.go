package languages

import (
	"path/filepath"
	"strings"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/stats"
)

var jvmTokenMappings = map[string]string{
	":": " : ", ";": " ; ", "{": " { ", "}": " } ", "(": " ( ", ")": " ) ",
	"[": " [ ", "]": " ] ", "?": " ? ", "!": " ! ", ",": " , ", "<": " < ", ">": " > ", `"`: ` " `,
}

// jvmFamilyParser is the shared implementation behind Java, Kotlin and
// Groovy: spec.md §4.2 describes all three identically ("recognize
// package and import lines... For classes recognize class X extends Y
// (and analogous for Kotlin) and record inheritance"), grounded on
// javaparser.py and groovyparser.py, which are themselves near-
// duplicates of each other up to keyword spelling.
type jvmFamilyParser struct {
	name           string
	lang           result.Language
	extendsKeyword string
	// substringImportMatch selects javaparser.py's per-token substring
	// check for entity import propagation; when false, groovyparser.py's
	// exact-token membership check is used instead.
	substringImportMatch bool
}

func NewJavaParser() Parser {
	return &jvmFamilyParser{name: "java-parser", lang: result.LangJava, extendsKeyword: "extends", substringImportMatch: true}
}

func NewKotlinParser() Parser {
	return &jvmFamilyParser{name: "kotlin-parser", lang: result.LangKotlin, extendsKeyword: ":", substringImportMatch: true}
}

func NewGroovyParser() Parser {
	return &jvmFamilyParser{name: "groovy-parser", lang: result.LangGroovy, extendsKeyword: "extends", substringImportMatch: false}
}

func (p *jvmFamilyParser) Name() string              { return p.name }
func (p *jvmFamilyParser) Language() result.Language { return p.lang }

func (p *jvmFamilyParser) ParseFile(ctx *Context, fileName, fullPath, content string) error {
	tokens := PreprocessByMapping(content, jvmTokenMappings)

	uniqueName := relativeAnalysisPath(ctx, fullPath)
	fr := result.NewFileResult(uniqueName)
	fr.AbsoluteName = fullPath
	fr.DisplayName = fileName
	fr.ScannedFileName = fileName
	fr.RelativeFilePathToAnalysis = uniqueName
	fr.ScannedLanguage = p.lang
	fr.ScannedTokens = tokens
	fr.AbsoluteDirPath = filepath.Dir(fullPath)
	fr.RelativeAnalysisPath = filepath.Dir(uniqueName)

	p.addPackageName(ctx, fr)
	p.addImports(ctx, fr)

	ctx.Store.Put(fr)
	return nil
}

func (p *jvmFamilyParser) addPackageName(ctx *Context, fr *result.FileResult) {
	withoutComments := FilterSourceTokensWithoutComments(fr.ScannedTokens, "//", "/*", "*/")
	filtered := PreprocessByMapping(withoutComments, jvmTokenMappings)

	for tok, following := range WordsWithReadAhead(filtered) {
		if tok != "package" {
			continue
		}
		if len(following) == 0 {
			if ctx.Stats != nil {
				ctx.Stats.Increment(stats.ParsingMisses)
			}
			return
		}
		fr.ModuleName = following[0]
		if ctx.Stats != nil {
			ctx.Stats.Increment(stats.ParsingHits)
		}
		return
	}
}

func (p *jvmFamilyParser) addImports(ctx *Context, fr *result.FileResult) {
	withoutComments := FilterSourceTokensWithoutComments(fr.ScannedTokens, "//", "/*", "*/")
	filtered := PreprocessByMapping(withoutComments, jvmTokenMappings)

	for tok, following := range WordsWithReadAhead(filtered) {
		if tok != "import" {
			continue
		}
		if len(following) == 0 {
			if ctx.Stats != nil {
				ctx.Stats.Increment(stats.ParsingMisses)
			}
			continue
		}
		dependency := following[0]
		if ctx.Stats != nil {
			ctx.Stats.Increment(stats.ParsingHits)
		}
		if IsInIgnoreList(dependency, ctx.Analysis.IgnoreDependenciesContaining) {
			continue
		}
		fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, dependency)
	}
}

// ParseEntities extracts one EntityResult per `class Name [extends
// Parent] { ... }` scope found in each of this parser's own
// FileResults, mirroring generate_entity_results_from_analysis.
func (p *jvmFamilyParser) ParseEntities(ctx *Context) error {
	for _, fr := range ctx.Store.Files() {
		if fr.ScannedLanguage != p.lang {
			continue
		}

		for _, scope := range extractClassScopes(fr.ScannedTokens, "class", p.extendsKeyword) {
			er := result.NewEntityResult("", scope.name, fr.UniqueNameValue)
			er.ModuleName = fr.ModuleName
			er.ScannedLanguage = p.lang
			er.ScannedTokens = scope.tokens
			if scope.inherited != "" {
				er.ScannedInheritanceDependencies = append(er.ScannedInheritanceDependencies, scope.inherited)
			}
			p.addImportsToEntity(fr, er)

			if er.ModuleName != "" {
				er.UniqueNameValue = er.ModuleName + "." + er.EntityName
			} else {
				er.UniqueNameValue = er.EntityName
			}

			ctx.Store.Put(er)
		}
	}
	return nil
}

func (p *jvmFamilyParser) addImportsToEntity(fr *result.FileResult, er *result.EntityResult) {
	for _, imported := range fr.ScannedImportDependencies {
		parts := strings.Split(imported, ".")
		last := parts[len(parts)-1]

		already := false
		for _, existing := range er.ScannedImportDependencies {
			if existing == imported {
				already = true
				break
			}
		}
		if already {
			continue
		}

		if p.substringImportMatch {
			for _, tok := range er.ScannedTokens {
				if strings.Contains(tok, last) {
					er.ScannedImportDependencies = append(er.ScannedImportDependencies, imported)
					break
				}
			}
		} else {
			for _, tok := range er.ScannedTokens {
				if tok == last {
					er.ScannedImportDependencies = append(er.ScannedImportDependencies, imported)
					break
				}
			}
		}
	}
}

func (p *jvmFamilyParser) PostProcess(ctx *Context) error { return nil }

type classScope struct {
	name      string
	inherited string
	tokens    []string
}

// extractClassScopes walks tokens for every `classKeyword Name
// [extendsKeyword Parent] { ... }` occurrence and returns the matched
// name, inherited name, and the brace-balanced token range (inclusive)
// as that entity's own scanned tokens.
func extractClassScopes(tokens []string, classKeyword, extendsKeyword string) []classScope {
	var scopes []classScope

	for i := 0; i < len(tokens); i++ {
		if tokens[i] != classKeyword {
			continue
		}
		if i+1 >= len(tokens) {
			continue
		}
		name := tokens[i+1]

		j := i + 2
		inherited := ""
		if j < len(tokens) && tokens[j] == extendsKeyword && j+1 < len(tokens) {
			inherited = tokens[j+1]
			j += 2
		}

		openIdx := -1
		for k := j; k < len(tokens); k++ {
			if tokens[k] == "{" {
				openIdx = k
				break
			}
		}
		if openIdx < 0 {
			continue
		}

		depth := 0
		closeIdx := -1
		for k := openIdx; k < len(tokens); k++ {
			switch tokens[k] {
			case "{":
				depth++
			case "}":
				depth--
				if depth == 0 {
					closeIdx = k
				}
			}
			if closeIdx >= 0 {
				break
			}
		}
		if closeIdx < 0 {
			continue
		}

		body := append([]string{classKeyword, name}, tokens[openIdx:closeIdx+1]...)
		scopes = append(scopes, classScope{name: name, inherited: inherited, tokens: body})
		i = closeIdx
	}

	return scopes
}
