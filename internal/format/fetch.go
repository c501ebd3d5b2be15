package format

import (
	"io"
	"regexp"
	"strings"

	"go.followtheprocess.codes/reqconv/internal/spec"
)

//nolint:gochecknoglobals // Compiled once
var (
	fetchURL       = regexp.MustCompile(`\bfetch\(\s*` + stringLiteral)
	fetchStringify = regexp.MustCompile(`JSON\.stringify\s*\(`)
	fetchBody      = regexp.MustCompile(`\bbody\s*:\s*` + stringLiteral)
)

// FetchImporter is an [Importer] that extracts requests from JavaScript fetch snippets.
type FetchImporter struct{}

// Import implements [Importer] for [FetchImporter], it always returns exactly
// one request and never fails.
func (f FetchImporter) Import(src string) ([]spec.Request, error) {
	return []spec.Request{ParseFetch(src)}, nil
}

// ParseFetch extracts a [spec.Request] from a snippet of JavaScript calling fetch.
//
// The URL comes from the first argument to fetch, the method, headers and body
// from the options object. A body wrapped in JSON.stringify is preferred over
// a plain string body, and is compacted if it's a valid JSON literal.
func ParseFetch(src string) spec.Request {
	request := spec.NewRequest()

	if url, ok := findString(fetchURL, src); ok {
		request.URL = url
	}

	extractMethod(&request, src)
	extractHeaders(&request, src)

	request.Body = fetchBodyOf(src)

	return request
}

// fetchBodyOf returns the body of a fetch call, empty if there isn't one.
func fetchBodyOf(src string) string {
	if loc := fetchStringify.FindStringIndex(src); loc != nil {
		// loc[1] is just past the opening paren
		expr, _ := balanced(src, loc[1]-1, '(', ')')
		expr = strings.TrimPrefix(expr, "(")
		expr = strings.TrimSuffix(expr, ")")

		if body := normaliseBody(expr); body != "" {
			return body
		}
	}

	if body, ok := findString(fetchBody, src); ok {
		return body
	}

	return ""
}

// FetchExporter is an [Exporter] that transforms requests into JavaScript
// snippets using the fetch API.
type FetchExporter struct{}

// Export implements [Exporter] for [FetchExporter].
func (f FetchExporter) Export(w io.Writer, request spec.Request) error {
	return templates.ExecuteTemplate(w, "fetch.js.tmpl", newSnippet(request, "  "))
}
