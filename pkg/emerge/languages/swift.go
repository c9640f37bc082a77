package languages

import (
	"path/filepath"
	"strings"

	"github.com/glato/emerge/pkg/emerge/result"
)

var swiftEntityKeywords = []string{"class", "struct", "enum", "protocol"}
var swiftFalsePositiveFollowers = map[string]bool{"let": true, "var": true, "func": true}

// swiftIgnoreEntityKeywords filters out entities that are obvious
// parsing errors (e.g. "class func foo()" static-member syntax
// slipping past the false-positive check), ported verbatim from
// swiftparser.py's _ignore_entity_keywords workaround list.
var swiftIgnoreEntityKeywords = map[string]bool{
	"class": true, "struct": true, "protocol": true, "enum": true, "var": true,
	"let": true, "func": true, "extension": true, "import": true,
	"fileprivate": true, "value": true,
}

// SwiftParser implements Parser for Swift source (spec.md §4.2).
// Entities are class/struct/enum/protocol declarations; extensions are
// merged into their matching entity in a second pass, and file-to-file
// imports are inferred from entity-name token co-occurrence since Swift
// has no file-level include/import-of-a-path directive.
type SwiftParser struct{}

func NewSwiftParser() *SwiftParser { return &SwiftParser{} }

func (p *SwiftParser) Name() string              { return "swift-parser" }
func (p *SwiftParser) Language() result.Language { return result.LangSwift }

func (p *SwiftParser) ParseFile(ctx *Context, fileName, fullPath, content string) error {
	tokens := Preprocess(content)

	uniqueName := relativeAnalysisPath(ctx, fullPath)
	fr := result.NewFileResult(uniqueName)
	fr.AbsoluteName = fullPath
	fr.DisplayName = fileName
	fr.ScannedFileName = uniqueName
	fr.RelativeFilePathToAnalysis = uniqueName
	fr.ScannedLanguage = result.LangSwift
	fr.ScannedTokens = tokens
	fr.ModuleName = uniqueName // swiftparser.py uses the file name itself as package prefix
	fr.AbsoluteDirPath = filepath.Dir(fullPath)
	fr.RelativeAnalysisPath = filepath.Dir(uniqueName)

	ctx.Store.Put(fr)
	return nil
}

// PostProcess runs before ParseEntities in the pipeline (mirroring
// after_generated_file_results executing ahead of
// generate_entity_results_from_analysis), so it recomputes entity
// scopes locally rather than reading the Store's EntityResults, which
// don't exist yet — the same duplication swiftparser.py performs.
func (p *SwiftParser) PostProcess(ctx *Context) error {
	type tempEntity struct {
		name             string
		parentUniqueName string
	}
	var temps []tempEntity

	files := ctx.Store.Files()
	for _, fr := range files {
		if fr.ScannedLanguage != result.LangSwift {
			continue
		}
		for _, scope := range extractSwiftScopes(fr.ScannedTokens) {
			if swiftIgnoreEntityKeywords[scope.name] {
				continue
			}
			temps = append(temps, tempEntity{name: scope.name, parentUniqueName: fr.UniqueNameValue})
		}
	}

	for _, t := range temps {
		parent, ok := ctx.Store.Get(t.parentUniqueName)
		parentFile, ok2 := parent.(*result.FileResult)
		if !ok || !ok2 {
			continue
		}
		for _, fr := range files {
			if fr.ScannedLanguage != result.LangSwift {
				continue
			}
			if fr.UniqueNameValue == t.parentUniqueName {
				continue
			}
			if !containsToken(fr.ScannedTokens, t.name) {
				continue
			}
			if containsString(fr.ScannedImportDependencies, parentFile.ScannedFileName) {
				continue
			}
			dependency := parentFile.ScannedFileName
			if IsInIgnoreList(dependency, ctx.Analysis.IgnoreDependenciesContaining) {
				continue
			}
			fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, dependency)
		}
	}
	return nil
}

// ParseEntities extracts class/struct/enum/protocol entities, merges
// matching extensions, and infers entity-to-entity import edges from
// token co-occurrence (spec.md §4.2, §9's Open Question on over-
// connection — the filter is kept as-is per that decision).
func (p *SwiftParser) ParseEntities(ctx *Context) error {
	var createdNames []string

	for _, fr := range ctx.Store.Files() {
		if fr.ScannedLanguage != result.LangSwift {
			continue
		}
		for _, scope := range extractSwiftScopes(fr.ScannedTokens) {
			if swiftIgnoreEntityKeywords[scope.name] {
				continue
			}
			if IsInIgnoreList(scope.name, ctx.Analysis.IgnoreEntitiesContaining) {
				continue
			}

			er := result.NewEntityResult(scope.name, scope.name, fr.UniqueNameValue)
			er.ModuleName = fr.ModuleName
			er.ScannedLanguage = result.LangSwift
			er.ScannedTokens = scope.tokens
			if scope.inherited != "" {
				er.ScannedInheritanceDependencies = append(er.ScannedInheritanceDependencies, scope.inherited)
			}

			ctx.Store.Put(er)
			createdNames = append(createdNames, scope.name)
		}
	}

	p.mergeExtensions(ctx, createdNames)
	p.addImportsBetweenEntities(ctx, createdNames)
	return nil
}

func (p *SwiftParser) mergeExtensions(ctx *Context, entityNames []string) {
	nameSet := make(map[string]bool, len(entityNames))
	for _, n := range entityNames {
		nameSet[n] = true
	}

	for _, fr := range ctx.Store.Files() {
		if fr.ScannedLanguage != result.LangSwift {
			continue
		}
		for _, ext := range extractSwiftExtensionScopes(fr.ScannedTokens) {
			if !nameSet[ext.name] {
				continue
			}
			existing, ok := ctx.Store.Get(ext.name)
			er, ok2 := existing.(*result.EntityResult)
			if !ok || !ok2 {
				continue
			}
			er.ScannedTokens = append(er.ScannedTokens, ext.tokens...)
		}
	}
}

func (p *SwiftParser) addImportsBetweenEntities(ctx *Context, entityNames []string) {
	for _, name := range entityNames {
		stored, ok := ctx.Store.Get(name)
		er, ok2 := stored.(*result.EntityResult)
		if !ok || !ok2 {
			continue
		}

		for _, tok := range er.ScannedTokens {
			if !containsString(entityNames, tok) {
				continue
			}
			if containsString(er.ScannedImportDependencies, tok) {
				continue
			}
			if strings.EqualFold(tok, er.EntityName) {
				continue
			}
			if containsString(er.ScannedInheritanceDependencies, tok) {
				continue
			}
			if IsInIgnoreList(tok, ctx.Analysis.IgnoreDependenciesContaining) {
				continue
			}
			er.ScannedImportDependencies = append(er.ScannedImportDependencies, tok)
		}
	}
}

type swiftScope struct {
	name      string
	inherited string
	tokens    []string
}

// extractSwiftScopes finds every
// `(class|struct|enum|protocol) Name [: Parent] { ... }` occurrence,
// skipping the "class var"/"class func"/"class let" static-member
// syntax false positive (the token right after the keyword must not
// itself be let/var/func).
func extractSwiftScopes(tokens []string) []swiftScope {
	var scopes []swiftScope

	for i := 0; i < len(tokens); i++ {
		if !containsString(swiftEntityKeywords, tokens[i]) {
			continue
		}
		if i+1 >= len(tokens) {
			continue
		}
		if swiftFalsePositiveFollowers[tokens[i+1]] {
			continue
		}

		keyword := tokens[i]
		name := tokens[i+1]

		j := i + 2
		inherited := ""
		if j < len(tokens) && tokens[j] == ":" && j+1 < len(tokens) {
			inherited = tokens[j+1]
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

		body := append([]string{keyword, name}, tokens[openIdx:closeIdx+1]...)
		scopes = append(scopes, swiftScope{name: name, inherited: inherited, tokens: body})
		i = closeIdx
	}

	return scopes
}

// extractSwiftExtensionScopes finds every `extension Name { ... }`
// occurrence.
func extractSwiftExtensionScopes(tokens []string) []swiftScope {
	var scopes []swiftScope
	for i := 0; i < len(tokens); i++ {
		if tokens[i] != "extension" {
			continue
		}
		if i+1 >= len(tokens) {
			continue
		}
		name := tokens[i+1]

		openIdx := -1
		for k := i + 2; k < len(tokens); k++ {
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
		scopes = append(scopes, swiftScope{name: name, tokens: tokens[openIdx : closeIdx+1]})
		i = closeIdx
	}
	return scopes
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
