package languages

import (
	"reflect"
	"testing"
)

// TestPreprocess verifies punctuation padding and whitespace splitting.
func TestPreprocess(t *testing.T) {
	tests := []struct {
		name    string
		content string
		extra   []string
		want    []string
	}{
		{
			name:    "basic call expression",
			content: `foo(bar, "baz")`,
			want:    []string{"foo", "(", "bar", ",", `"`, "baz", `"`, ")"},
		},
		{
			name:    "newline preserved as its own token",
			content: "a\nb",
			want:    []string{"a", "\n", "b"},
		},
		{
			name:    "extra punctuation",
			content: "x := y & z...",
			extra:   []string{"&", "..."},
			want:    []string{"x", ":", "=", "y", "&", "z", "..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preprocess(tt.content, tt.extra...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Preprocess(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

// TestPreprocessByMapping verifies that only mapped characters split.
func TestPreprocessByMapping(t *testing.T) {
	mapping := map[string]string{"(": " ( ", ")": " ) ", ",": " , "}
	got := PreprocessByMapping("foo(a,b)", mapping)
	want := []string{"foo", "(", "a", ",", "b", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PreprocessByMapping() = %v, want %v", got, want)
	}
}

// TestFilterSourceTokensWithoutComments verifies line-comment and
// block-comment stripping.
func TestFilterSourceTokensWithoutComments(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "line comment dropped",
			tokens: []string{"import", "foo", "\n", "//", "bar", "\n", "import", "baz"},
			want:   "import foo \n import baz",
		},
		{
			name:   "block comment spanning lines dropped",
			tokens: []string{"a", "\n", "/*", "\n", "b", "\n", "*/", "\n", "c"},
			want:   "a \n c",
		},
		{
			name:   "single-line block comment dropped",
			tokens: []string{"a", "\n", "/*", "c", "*/", "\n", "b"},
			want:   "a \n b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSourceTokensWithoutComments(tt.tokens, "//", "/*", "*/")
			if got != tt.want {
				t.Errorf("FilterSourceTokensWithoutComments() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestIsInIgnoreList verifies case-insensitive substring matching.
func TestIsInIgnoreList(t *testing.T) {
	list := []string{"vendor", "Test"}
	cases := map[string]bool{
		"pkg/vendor/foo": true,
		"pkg/TESTING":    true,
		"pkg/emerge":     false,
		"":                false,
	}
	for needle, want := range cases {
		if got := IsInIgnoreList(needle, list); got != want {
			t.Errorf("IsInIgnoreList(%q) = %v, want %v", needle, got, want)
		}
	}
}

// TestApplyAliases verifies substring substitution.
func TestApplyAliases(t *testing.T) {
	aliases := map[string]string{"@app": "src"}
	got := ApplyAliases("@app/components/button", aliases)
	want := "src/components/button"
	if got != want {
		t.Errorf("ApplyAliases() = %q, want %q", got, want)
	}
}

// TestWordsWithReadAhead verifies the lookahead pairs match the
// remainder of the slice past each token.
func TestWordsWithReadAhead(t *testing.T) {
	tokens := []string{"import", "foo", "from", "bar"}
	var got [][]string
	for tok, following := range WordsWithReadAhead(tokens) {
		got = append(got, append([]string{tok}, following...))
	}

	want := [][]string{
		{"import", "foo", "from", "bar"},
		{"foo", "from", "bar"},
		{"from", "bar"},
		{"bar"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WordsWithReadAhead() = %v, want %v", got, want)
	}
}
