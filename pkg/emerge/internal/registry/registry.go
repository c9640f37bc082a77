// Package registry wires the twelve built-in languages.Parser
// implementations into the map the Analyzer dispatches against,
// keyed by the same language-name strings scan.ChooseLanguage returns.
package registry

import "github.com/glato/emerge/pkg/emerge/languages"

// Parsers returns a fresh parser registry. A fresh map is returned
// per call since languages.Parser implementations carry no shared
// mutable state worth reusing across analyses, and a fresh map avoids
// any cross-analysis aliasing concern.
func Parsers() map[string]languages.Parser {
	return map[string]languages.Parser{
		"c":          languages.NewCParser(),
		"cpp":        languages.NewCPPParser(),
		"objc":       languages.NewObjCParser(),
		"go":         languages.NewGoParser(),
		"javascript": languages.NewJavaScriptParser(),
		"typescript": languages.NewTypeScriptParser(),
		"java":       languages.NewJavaParser(),
		"kotlin":     languages.NewKotlinParser(),
		"groovy":     languages.NewGroovyParser(),
		"python":     languages.NewPythonParser(),
		"ruby":       languages.NewRubyParser(),
		"swift":      languages.NewSwiftParser(),
	}
}
