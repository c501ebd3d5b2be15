package format

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"go.followtheprocess.codes/reqconv/internal/spec"
)

// The snippet extractors work by independent pattern searches over the whole
// snippet rather than by parsing JavaScript, so they don't care about the order of
// things or the code around them, but they can be fooled by repeated or nested
// constructs that match the same pattern. Every search that fails simply leaves
// its field alone.

// stringLiteral matches a JavaScript string literal in any of its 3 quote styles,
// capturing the contents in one of exactly 3 groups. Template literals are taken raw.
const stringLiteral = `(?:'((?:\\.|[^'\\])*)'|"((?:\\.|[^"\\])*)"|` + "`([^`]*)`)"

// objectKey matches a JavaScript object key, quoted or bare.
const objectKey = `(?:'([^']+)'|"([^"]+)"|([A-Za-z_$][\w$-]*))`

//nolint:gochecknoglobals // Compiled once
var (
	methodField  = regexp.MustCompile(`\bmethod\s*:\s*` + stringLiteral)
	headersBlock = regexp.MustCompile(`\bheaders\s*:\s*\{([^}]*)\}`)
	headerPair   = regexp.MustCompile(objectKey + `\s*:\s*` + stringLiteral)
	urlField     = regexp.MustCompile(`\burl\s*:\s*` + stringLiteral)
)

// findString returns the contents of the string literal matched by re in src,
// re's last 3 groups must be those of [stringLiteral].
func findString(re *regexp.Regexp, src string) (string, bool) {
	match := re.FindStringSubmatch(src)
	if match == nil {
		return "", false
	}

	return literalValue(match[len(match)-3:]), true
}

// literalValue returns the value of a string literal from the 3 groups of
// a [stringLiteral] match.
func literalValue(groups []string) string {
	switch {
	case groups[0] != "":
		return unescapeJS(groups[0])
	case groups[1] != "":
		return unescapeJS(groups[1])
	default:
		return groups[2]
	}
}

// first returns the first non-empty string.
func first(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}

// extractMethod sets the request method from a `method: '...'` field.
func extractMethod(request *spec.Request, src string) bool {
	method, ok := findString(methodField, src)
	method = strings.ToUpper(strings.TrimSpace(method))

	if !ok || method == "" {
		return false
	}

	request.Method = method

	return true
}

// extractHeaders sets any headers found in a `headers: { ... }` block.
//
// The block match stops at the first closing brace, so a nested object
// (or a template literal using ${}) truncates it.
func extractHeaders(request *spec.Request, src string) {
	block := headersBlock.FindStringSubmatch(src)
	if block == nil {
		return
	}

	for _, pair := range headerPair.FindAllStringSubmatch(block[1], -1) {
		key := first(pair[1], pair[2], pair[3])
		request.SetHeader(key, literalValue(pair[4:]))
	}
}

// balanced returns the text of the bracketed expression opening at src[start]
// (which must be the opening byte) up to and including its matching closing byte, skipping
// over anything inside string literals.
//
// If the brackets are never closed, the rest of src is returned and ok is false.
func balanced(src string, start int, opening, closing byte) (expr string, ok bool) {
	if start >= len(src) || src[start] != opening {
		return "", false
	}

	depth := 0
	var quote byte // Quote character of the string literal we're in, 0 if not in one

	for i := start; i < len(src); i++ {
		char := src[i]

		if quote != 0 {
			switch char {
			case '\\':
				i++ // Skip whatever is escaped
			case quote:
				quote = 0
			}

			continue
		}

		switch char {
		case '\'', '"', '`':
			quote = char
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return src[start : i+1], true
			}
		}
	}

	return src[start:], false
}

// normaliseBody tidies up a body expression lifted out of a snippet, JSON is compacted
// and anything else is returned trimmed but otherwise as is.
func normaliseBody(body string) string {
	body = strings.TrimSpace(body)

	if json.Valid([]byte(body)) {
		buf := &bytes.Buffer{}
		if err := json.Compact(buf, []byte(body)); err == nil {
			return buf.String()
		}
	}

	return body
}

// unescapeJS undoes the common backslash escapes of a JavaScript string literal.
func unescapeJS(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	builder := &strings.Builder{}

	for i := 0; i < len(s); i++ {
		char := s[i]
		if char != '\\' || i == len(s)-1 {
			builder.WriteByte(char)
			continue
		}

		i++

		switch s[i] {
		case 'n':
			builder.WriteByte('\n')
		case 'r':
			builder.WriteByte('\r')
		case 't':
			builder.WriteByte('\t')
		default:
			// \\, \', \" and anything else we don't know just lose the backslash
			builder.WriteByte(s[i])
		}
	}

	return builder.String()
}
