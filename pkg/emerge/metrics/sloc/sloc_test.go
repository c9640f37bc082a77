package sloc

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestCountSLOCSkipsCommentsAndBlankLines(t *testing.T) {
	tokens := []string{
		"package", "main", "\n",
		"//", "a", "comment", "\n",
		"\n",
		"func", "main", "(", ")", "{", "}", "\n",
	}
	count := countSLOC(result.LangGo, tokens)
	require.Equal(t, 2, count)
}

func TestCountSLOCSkipsBlockComment(t *testing.T) {
	tokens := []string{
		"/*", "\n",
		"block", "comment", "body", "\n",
		"*/", "\n",
		"code", "(", ")", "\n",
	}
	count := countSLOC(result.LangGo, tokens)
	require.Equal(t, 1, count)
}

func TestCountSLOCRubyUsesHashAndBeginEnd(t *testing.T) {
	tokens := []string{
		"#", "comment", "\n",
		"=begin", "\n",
		"ignored", "\n",
		"=end", "\n",
		"puts", "1", "\n",
	}
	count := countSLOC(result.LangRuby, tokens)
	require.Equal(t, 1, count)
}

func TestCalculateFromResultsWiresWhitespace(t *testing.T) {
	files := []*result.FileResult{
		{
			UniqueNameValue:    "proj/main.go",
			ScannedLanguage:    result.LangGo,
			ScannedTokens:      []string{"func", "main", "(", ")", "{", "}"},
			PreprocessedSource: "\tfunc main() {}\n",
			MetricsValue:       map[string]any{},
		},
	}

	m := New()
	m.CalculateFromResults(files, nil)

	require.Equal(t, 1, files[0].MetricsValue[KeySLOCInFile])
	require.Equal(t, 1.0, files[0].MetricsValue[KeyWhitespaceComplexity])
	require.Equal(t, 1, m.OverallData()[KeyTotalSLOCInFiles])
}
