package tfidf

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/stretchr/testify/require"
)

func TestFilteredTokensDropsStopwordsAndNonAlpha(t *testing.T) {
	tokens := []string{"return", "Widget", "(", "42", ")", "the", "Gadget"}
	out := filteredTokens(result.LangGo, tokens)
	require.Equal(t, []string{"widget", "gadget"}, out)
}

func TestCalculateFromResultsTagsDistinctiveTokens(t *testing.T) {
	files := []*result.FileResult{
		{
			UniqueNameValue: "proj/widget.go",
			ScannedLanguage: result.LangGo,
			ScannedTokens:   []string{"widget", "widget", "widget", "shared"},
			MetricsValue:    map[string]any{},
		},
		{
			UniqueNameValue: "proj/gadget.go",
			ScannedLanguage: result.LangGo,
			ScannedTokens:   []string{"gadget", "gadget", "gadget", "shared"},
			MetricsValue:    map[string]any{},
		},
	}

	m := New()
	m.CalculateFromResults(files, nil)

	widgetTags := m.LocalData()["proj/widget.go"]
	require.Contains(t, widgetTags, "tag_widget")
	require.NotContains(t, widgetTags, "tag_gadget")
}

func TestCalculateFromResultsEmptyIsNoop(t *testing.T) {
	m := New()
	m.CalculateFromResults(nil, nil)
	require.Empty(t, m.LocalData())
}
