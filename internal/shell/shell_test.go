package shell_test

import (
	"slices"
	"testing"
	"unicode/utf8"

	"go.followtheprocess.codes/reqconv/internal/shell"
	"go.followtheprocess.codes/test"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string   // Name of the test case
		src  string   // Source text to tokenize
		want []string // Expected tokens
	}{
		{
			name: "empty",
			src:  "",
			want: nil,
		},
		{
			name: "only spaces",
			src:  "     ",
			want: nil,
		},
		{
			name: "simple words",
			src:  "a b c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "repeated spaces",
			src:  "  a    b  ",
			want: []string{"a", "b"},
		},
		{
			name: "single quoted",
			src:  "a 'b c' d",
			want: []string{"a", "b c", "d"},
		},
		{
			name: "double quoted",
			src:  `a "b c" d`,
			want: []string{"a", "b c", "d"},
		},
		{
			name: "double quote inside single",
			src:  `'say "hi"'`,
			want: []string{`say "hi"`},
		},
		{
			name: "single quote inside double",
			src:  `"it's"`,
			want: []string{"it's"},
		},
		{
			name: "backslash literal in single quotes",
			src:  `'a\nb'`,
			want: []string{`a\nb`},
		},
		{
			name: "escaped quote in double quotes",
			src:  `"say \"hi\""`,
			want: []string{`say "hi"`},
		},
		{
			name: "escaped quote unquoted",
			src:  `don\'t stop`,
			want: []string{"don't", "stop"},
		},
		{
			name: "escaped space",
			src:  `a\ b c`,
			want: []string{"a b", "c"},
		},
		{
			name: "escaped backslash",
			src:  `a\\b`,
			want: []string{`a\b`},
		},
		{
			name: "adjacent quoted and unquoted",
			src:  `ab'cd'"ef"gh`,
			want: []string{"abcdefgh"},
		},
		{
			name: "unterminated single quote",
			src:  "a 'b c d",
			want: []string{"a", "b c d"},
		},
		{
			name: "unterminated double quote",
			src:  `a "b c d`,
			want: []string{"a", "b c d"},
		},
		{
			name: "trailing backslash",
			src:  `a b\`,
			want: []string{"a", "b"},
		},
		{
			name: "empty quotes dropped",
			src:  `a '' "" b`,
			want: []string{"a", "b"},
		},
		{
			name: "tabs are not delimiters",
			src:  "a\tb c",
			want: []string{"a\tb", "c"},
		},
		{
			name: "header flag",
			src:  `-H 'Content-Type: application/json' https://api.example.com`,
			want: []string{"-H", "Content-Type: application/json", "https://api.example.com"},
		},
		{
			name: "json body",
			src:  `-d '{"name":"test"}'`,
			want: []string{"-d", `{"name":"test"}`},
		},
		{
			name: "unicode",
			src:  `-H 'X-Emoji: 🦀' héllo`,
			want: []string{"-H", "X-Emoji: 🦀", "héllo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shell.Tokenize(tt.src)
			test.EqualFunc(t, got, tt.want, slices.Equal, test.Context("Tokenize(%q)", tt.src))
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		in   string // Input to quote
		want string // Expected quoted output
	}{
		{name: "empty", in: "", want: "''"},
		{name: "simple", in: "hello", want: "'hello'"},
		{name: "spaces", in: "hello world", want: "'hello world'"},
		{name: "single quote", in: "it's", want: `'it'\''s'`},
		{name: "double quote", in: `say "hi"`, want: `'say "hi"'`},
		{name: "json", in: `{"a":1}`, want: `'{"a":1}'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, shell.Quote(tt.in), tt.want)
		})
	}
}

func TestWord(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		in   string // Input word
		want string // Expected output
	}{
		{name: "empty", in: "", want: "''"},
		{name: "method", in: "POST", want: "POST"},
		{name: "punctuation", in: "x-custom_1.0", want: "x-custom_1.0"},
		{name: "space", in: "FOO BAR", want: "'FOO BAR'"},
		{name: "single quote", in: "IT'S", want: `'IT'\''S'`},
		{name: "dollar", in: "$HOME", want: "'$HOME'"},
		{name: "dash flag", in: "-k", want: "-k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shell.Word(tt.in)
			test.Equal(t, got, tt.want)
			test.EqualFunc(t, shell.Tokenize(got), []string{tt.in}, equalTokens)
		})
	}
}

// equalTokens compares token lists, with the empty string tokenizing to nothing.
func equalTokens(got, want []string) bool {
	if len(want) == 1 && want[0] == "" {
		return len(got) == 0
	}

	return slices.Equal(got, want)
}

func FuzzTokenize(f *testing.F) {
	corpus := []string{
		"",
		"a 'b c' d",
		`a "b \"c\"" d`,
		`-H 'Accept: */*' -d '{"a": [1, 2]}' https://example.com`,
		`don\'t`,
		"'unterminated",
		`\`,
	}

	for _, item := range corpus {
		f.Add(item)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tokens := shell.Tokenize(src)

		// Tokens are never empty
		for _, token := range tokens {
			test.NotEqual(t, token, "")
		}

		// Quoting any non-empty valid string must survive a round trip
		if src == "" || !utf8.ValidString(src) {
			return
		}

		got := shell.Tokenize(shell.Quote(src))
		test.EqualFunc(t, got, []string{src}, slices.Equal, test.Context("Quote(%q) did not round trip", src))
	})
}
