// Package sloc implements the source-lines-of-code code metric
// (spec.md §4.5): a comment-aware line counter driven by a per-language
// {line-comment, block-open, block-close} triple. The whitespace
// complexity auxiliary metric (spec.md §4.5, supplemented) is attached
// to this same code-metric pass, matching original_source's
// unconditional per-file whitespace calculation.
//
// Grounded on original_source/emerge/metrics/sloc/sloc.py
// (SLOCCommentType, _count_sloc) and whitespace/whitespace.py.
package sloc

import (
	"strings"

	"github.com/glato/emerge/pkg/emerge/metrics"
	"github.com/glato/emerge/pkg/emerge/metrics/whitespace"
	"github.com/glato/emerge/pkg/emerge/result"
)

const (
	KeySLOCInFile           = "sloc-in-file"
	KeySLOCInEntity         = "sloc-in-entity"
	KeyAvgSLOCInFile        = "avg-sloc-in-file"
	KeyAvgSLOCInEntity      = "avg-sloc-in-entity"
	KeyTotalSLOCInFiles     = "total-sloc-in-files"
	KeyTotalSLOCInEntities  = "total-sloc-in-entities"
	KeyWhitespaceComplexity = "ws-complexity-in-file"
)

type commentTriple struct{ line, blockOpen, blockClose string }

var commentTriples = map[result.Language]commentTriple{
	result.LangJava:       {"//", "/*", "*/"},
	result.LangKotlin:     {"//", "/*", "*/"},
	result.LangObjC:       {"//", "/*", "*/"},
	result.LangSwift:      {"//", "/*", "*/"},
	result.LangRuby:       {"#", "=begin", "=end"},
	result.LangGroovy:     {"//", "/*", "*/"},
	result.LangJavaScript: {"//", "/*", "*/"},
	result.LangTypeScript: {"//", "/*", "*/"},
	result.LangC:          {"//", "/*", "*/"},
	result.LangCPP:        {"//", "/*", "*/"},
	result.LangPython:     {"#", `"""`, `"""`},
	result.LangGo:         {"//", "/*", "*/"},
}

// Metric implements metrics.CodeMetric.
type Metric struct {
	metrics.Base
}

func New() *Metric {
	return &Metric{Base: metrics.NewBase("source-lines-of-code", "source lines of code")}
}

func (m *Metric) CalculateFromResults(files []*result.FileResult, entities []*result.EntityResult) {
	var totalInFile, totalInEntity int

	for _, f := range files {
		count := countSLOC(f.ScannedLanguage, f.ScannedTokens)
		if f.MetricsValue != nil {
			f.MetricsValue[KeySLOCInFile] = count
		}
		local := map[string]any{KeySLOCInFile: count}

		ws := whitespace.ComplexityOfSource(f.PreprocessedSource)
		if f.MetricsValue != nil {
			f.MetricsValue[KeyWhitespaceComplexity] = ws
		}
		local[KeyWhitespaceComplexity] = ws

		m.SetLocal(f.UniqueNameValue, local)
		totalInFile += count
	}
	if len(files) > 0 {
		m.OverallData()[KeyAvgSLOCInFile] = float64(totalInFile) / float64(len(files))
		m.OverallData()[KeyTotalSLOCInFiles] = totalInFile
	}

	for _, e := range entities {
		count := countSLOC(e.ScannedLanguage, e.ScannedTokens)
		if e.MetricsValue != nil {
			e.MetricsValue[KeySLOCInEntity] = count
		}
		m.SetLocal(e.UniqueNameValue, map[string]any{KeySLOCInEntity: count})
		totalInEntity += count
	}
	if len(entities) > 0 {
		m.OverallData()[KeyAvgSLOCInEntity] = float64(totalInEntity) / float64(len(entities))
		m.OverallData()[KeyTotalSLOCInEntities] = totalInEntity
	}
}

// countSLOC mirrors _count_sloc: join tokens with spaces, split into
// lines, drop comment-only/comment-spanning/blank lines, count the rest.
func countSLOC(lang result.Language, tokens []string) int {
	triple, ok := commentTriples[lang]
	if !ok {
		triple = commentTriple{"//", "/*", "*/"}
	}

	source := strings.Join(tokens, " ")
	lines := strings.Split(source, "\n")

	activeBlock := false
	count := 0

	for _, line := range lines {
		hasOpen := strings.Contains(line, triple.blockOpen)
		hasClose := strings.Contains(line, triple.blockClose)

		switch {
		case hasOpen && !hasClose:
			activeBlock = true
			continue
		case !hasOpen && hasClose:
			activeBlock = false
			continue
		case hasOpen && hasClose:
			continue
		case strings.HasPrefix(strings.TrimSpace(line), triple.line):
			continue
		}

		if !activeBlock && strings.TrimSpace(line) != "" {
			count++
		}
	}

	return count
}
