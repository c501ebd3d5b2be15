package format

import (
	"bytes"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"go.followtheprocess.codes/reqconv/internal/shell"
	"go.followtheprocess.codes/reqconv/internal/spec"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// jsEscaper escapes text for embedding inside a single quoted JavaScript string.
//
// Backslashes must go first so the escapes added for the others aren't doubled.
//
//nolint:gochecknoglobals // Has to be here
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
)

// templateFunctions are custom template functions available in all the code templates.
//
//nolint:gochecknoglobals // This has to be here
var templateFunctions = template.FuncMap{
	"quote":  shell.Quote,
	"word":   shell.Word,
	"escape": jsEscaper.Replace,
	"lower":  strings.ToLower,
}

// templates are the parsed code generation templates, keyed by file name.
//
//nolint:gochecknoglobals // Having the templates as a global means they're parsed only once
var templates = template.Must(template.New("").Funcs(templateFunctions).ParseFS(templateFS, "templates/*.tmpl"))

// snippet is the data passed to the JavaScript templates, the request along with
// the pre-rendered body literal.
type snippet struct {
	spec.Request

	// Data is the body rendered as a JavaScript expression, empty if there is no body
	Data string

	// JSON is whether Data is a JSON literal (rather than a quoted string)
	JSON bool
}

// newSnippet builds the template data for a JavaScript snippet, rendering
// the body with the given indent prefix for any lines after the first.
func newSnippet(request spec.Request, prefix string) snippet {
	s := snippet{Request: request}
	if request.Body == "" {
		return s
	}

	literal, ok := jsonLiteral(request.Body, prefix)
	if ok {
		s.Data = literal
		s.JSON = true

		return s
	}

	s.Data = "'" + jsEscaper.Replace(request.Body) + "'"

	return s
}

// jsonLiteral reports whether body is valid JSON and if so, returns it
// re-indented by two spaces, with every line after the first prefixed by prefix
// so it sits nicely nested inside generated code.
func jsonLiteral(body, prefix string) (string, bool) {
	if !json.Valid([]byte(body)) {
		return "", false
	}

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, []byte(strings.TrimSpace(body)), prefix, "  "); err != nil {
		return "", false
	}

	return buf.String(), true
}
