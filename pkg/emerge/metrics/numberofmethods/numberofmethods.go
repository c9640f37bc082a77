// Package numberofmethods implements the number-of-methods code metric
// (spec.md §4.5): a precompiled, per-language method-signature regex
// counted over each result's whitespace-joined token stream.
//
// Grounded file-for-file on
// original_source/emerge/metrics/numberofmethods/numberofmethods.py,
// including its twelve regex patterns carried verbatim in semantics.
package numberofmethods

import (
	"regexp"
	"strings"

	"github.com/glato/emerge/pkg/emerge/metrics"
	"github.com/glato/emerge/pkg/emerge/result"
)

const (
	KeyNumberOfMethodsInFile       = "number-of-methods-in-file"
	KeyNumberOfMethodsInEntity     = "number-of-methods-in-entity"
	KeyAvgNumberOfMethodsInFile    = "avg-number-of-methods-in-file"
	KeyAvgNumberOfMethodsInEntity  = "avg-number-of-methods-in-entity"
)

var patterns = map[result.Language]*regexp.Regexp{
	result.LangJava:       regexp.MustCompile(`\b(?:if|for|while|switch|catch)\b|[a-zA-Z\d_]+?\s*?\([a-zA-Z\d\s_,><?*.\[\]]*?\)\s*?\{`),
	result.LangKotlin:     regexp.MustCompile(`fun\s[a-zA-Z\d_.]+?\s*?\([a-zA-Z\d\s_,?@><?*.\[\]:]*?\)\s*?.*?(\{|=)`),
	result.LangObjC:       regexp.MustCompile(`[-+]\s*?[a-zA-Z\d_():*\s]+?\s*?\{`),
	result.LangSwift:      regexp.MustCompile(`func\s*?[a-zA-Z\d_():*\s\-<>?,\[\].]+?\s*?\{`),
	result.LangRuby:       regexp.MustCompile(`(def)\s(.+)`),
	result.LangGroovy:     regexp.MustCompile(`[a-zA-Z\d_]+?\s*?\([a-zA-Z\d\s_,><?*.\[\]=@']*?\)\s*?\{`),
	result.LangJavaScript: regexp.MustCompile(`(function\s+?)([a-zA-Z\d_:*\-<>?,\[\].\s|=$]+?)\(([a-zA-Z\d_():*\s\-<>?,\[\].|=$/]*?)\)*?[:]*?\s*?\{`),
	result.LangTypeScript: regexp.MustCompile(`(function\s+?)([a-zA-Z\d_:*\-<>?,\[\].\s|=$]+?)\(([a-zA-Z\d_():*\s\-<>?,\[\].|=$/]*?)\)*?[:]*?\s*?\{`),
	result.LangC:          regexp.MustCompile(`[a-zA-Z\d_]+?\s*?\([a-zA-Z\d\s_,*]*?\)\s*?\{`),
	result.LangCPP:        regexp.MustCompile(`[a-zA-Z\d_:<>*&]+?\s*?\([(a-zA-Z\d\s_,*&:]*?\)\s*?\w+\s*?\{`),
	result.LangPython:     regexp.MustCompile(`(def)\s.+(.+):`),
	result.LangGo:         regexp.MustCompile(`func\s*?[a-zA-Z\d_():*\s\-<>?,\[\].]+?\s*?\{`),
}

// Metric implements metrics.CodeMetric.
type Metric struct {
	metrics.Base
}

func New() *Metric {
	return &Metric{Base: metrics.NewBase("number-of-methods", "number of methods")}
}

func (m *Metric) CalculateFromResults(files []*result.FileResult, entities []*result.EntityResult) {
	var totalInFile, totalInEntity int

	for _, f := range files {
		count := countMethods(f.ScannedLanguage, f.ScannedTokens)
		if f.MetricsValue != nil {
			f.MetricsValue[KeyNumberOfMethodsInFile] = count
		}
		m.SetLocal(f.UniqueNameValue, map[string]any{KeyNumberOfMethodsInFile: count})
		totalInFile += count
	}
	if len(files) > 0 {
		m.OverallData()[KeyAvgNumberOfMethodsInFile] = float64(totalInFile) / float64(len(files))
	}

	for _, e := range entities {
		count := countMethods(e.ScannedLanguage, e.ScannedTokens)
		if e.MetricsValue != nil {
			e.MetricsValue[KeyNumberOfMethodsInEntity] = count
		}
		m.SetLocal(e.UniqueNameValue, map[string]any{KeyNumberOfMethodsInEntity: count})
		totalInEntity += count
	}
	if len(entities) > 0 {
		m.OverallData()[KeyAvgNumberOfMethodsInEntity] = float64(totalInEntity) / float64(len(entities))
	}
}

func countMethods(lang result.Language, tokens []string) int {
	re, ok := patterns[lang]
	if !ok {
		return 0
	}
	full := strings.Join(tokens, " ")
	return len(re.FindAllString(full, -1))
}
