// Package languages implements the token preprocessor (spec.md §4.1)
// and the twelve per-language parsers (spec.md §4.2). Each parser is a
// capability implementation of Parser, per spec.md §9's guidance to
// replace the source's tower of abstract base classes with a plain
// interface plus an Unsupported sentinel for optional capabilities.
//
// Grounded on original_source/emerge/languages/abstractparser.py's
// ParsingMixin.
package languages

import (
	"regexp"
	"strings"
)

// basePunctuation is the fixed set of characters the token preprocessor
// pads with spaces before whitespace-splitting, per spec.md §4.1.
var basePunctuation = []string{":", ";", "{", "}", "(", ")", "[", "]", "?", "!", ",", "<", ">", `"`}

var tokenSplitPattern = regexp.MustCompile(`\S+|\n`)

// Preprocess maps raw file text to a token sequence: it inserts spaces
// around the base punctuation set (plus any per-language extras) and
// splits on whitespace, preserving newlines as explicit tokens so
// line-oriented parsers (Python) can find line boundaries.
//
// Grounded on ParsingMixin.preprocess_file_content_and_generate_token_list.
func Preprocess(content string, extra ...string) []string {
	replaced := content
	for _, p := range basePunctuation {
		replaced = strings.ReplaceAll(replaced, p, " "+p+" ")
	}
	for _, p := range extra {
		replaced = strings.ReplaceAll(replaced, p, " "+p+" ")
	}
	return tokenSplitPattern.FindAllString(replaced, -1)
}

// PreprocessByMapping is the per-language customizable variant: every
// occurrence of each mapping key is replaced by its value, key by key
// in Go map iteration order, which is not defined.
//
// Grounded on ParsingMixin.preprocess_file_content_and_generate_token_list_by_mapping.
func PreprocessByMapping(content string, mapping map[string]string) []string {
	replaced := content
	for k, v := range mapping {
		replaced = strings.ReplaceAll(replaced, k, v)
	}
	return tokenSplitPattern.FindAllString(replaced, -1)
}

// FilterSourceTokensWithoutComments re-joins tokens, splits into
// lines, and drops every line that is wholly inside a block comment or
// begins with the line-comment marker. A line containing both the
// opener and the closer is treated as a pure comment line.
//
// Grounded on ParsingMixin._filter_source_tokens_without_comments.
func FilterSourceTokensWithoutComments(tokens []string, lineComment, blockOpen, blockClose string) string {
	source := strings.Join(tokens, " ")
	lines := strings.Split(source, "\n")

	var kept []string
	activeBlock := false

	for _, line := range lines {
		hasOpen := strings.Contains(line, blockOpen)
		hasClose := strings.Contains(line, blockClose)

		switch {
		case hasOpen && !hasClose:
			activeBlock = true
			continue
		case !hasOpen && hasClose:
			activeBlock = false
			continue
		case hasOpen && hasClose:
			continue
		case strings.HasPrefix(strings.TrimSpace(line), lineComment):
			continue
		}

		if !activeBlock && strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

// IsInIgnoreList reports whether needle contains (case-insensitively)
// any substring from list. Used for both dependency and entity
// ignore-list filtering, applied at the point of recording (spec.md §4.2).
func IsInIgnoreList(needle string, list []string) bool {
	lower := strings.ToLower(needle)
	for _, ignored := range list {
		if ignored == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(ignored)) {
			return true
		}
	}
	return false
}

// ApplyAliases performs substring substitution for each configured
// import alias. Applying the map twice yields the same result as
// applying it once whenever no alias's replacement contains another
// alias's key as a substring (spec.md §8 property 7); callers that
// need the idempotence guarantee under adversarial alias maps should
// apply it exactly once per dependency string, which is what every
// parser in this package does.
func ApplyAliases(dependency string, aliases map[string]string) string {
	out := dependency
	for k, v := range aliases {
		out = strings.ReplaceAll(out, k, v)
	}
	return out
}

// WordsWithReadAhead walks tokens, yielding (token, following) pairs
// where following is the remainder of the slice after the token's
// index. Mirrors ParsingMixin._gen_word_read_ahead's lookahead
// generator used by every import-statement scanner in this package.
func WordsWithReadAhead(tokens []string) func(yield func(tok string, following []string) bool) {
	return func(yield func(tok string, following []string) bool) {
		for i, tok := range tokens {
			if !yield(tok, tokens[i+1:]) {
				return
			}
		}
	}
}
