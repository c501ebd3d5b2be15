package format

import (
	"io"
	"regexp"
	"strings"

	"go.followtheprocess.codes/reqconv/internal/spec"
)

//nolint:gochecknoglobals // Compiled once
var (
	axiosCall      = regexp.MustCompile(`\baxios(?:\.(\w+))?\(\s*` + stringLiteral)
	axiosShorthand = regexp.MustCompile(`\baxios\.(get|post|put|patch|delete|head|options)\s*\(`)
	axiosAuth      = regexp.MustCompile(`\bauth\s*:\s*\{([^}]*)\}`)
	axiosUsername  = regexp.MustCompile(`\busername\s*:\s*` + stringLiteral)
	axiosPassword  = regexp.MustCompile(`\bpassword\s*:\s*` + stringLiteral)
	axiosData      = regexp.MustCompile(`\bdata\s*:\s*`)
	leadingString  = regexp.MustCompile(`^` + stringLiteral)
)

// AxiosImporter is an [Importer] that extracts requests from JavaScript axios snippets.
type AxiosImporter struct{}

// Import implements [Importer] for [AxiosImporter], it always returns exactly
// one request and never fails.
func (a AxiosImporter) Import(src string) ([]spec.Request, error) {
	return []spec.Request{ParseAxios(src)}, nil
}

// ParseAxios extracts a [spec.Request] from a snippet of JavaScript using axios.
//
// Both the shorthand form, axios.post(url, data, config), and the config object
// form, axios({ method, url, ... }), are understood. An explicit method field
// takes priority over the shorthand verb.
func ParseAxios(src string) spec.Request {
	request := spec.NewRequest()

	if url, ok := findString(axiosCall, src); ok {
		request.URL = url
	} else if url, ok := findString(urlField, src); ok {
		request.URL = url
	}

	if !extractMethod(&request, src) {
		if verb := axiosShorthand.FindStringSubmatch(src); verb != nil {
			request.Method = strings.ToUpper(verb[1])
		}
	}

	extractHeaders(&request, src)

	if block := axiosAuth.FindStringSubmatch(src); block != nil {
		user, _ := findString(axiosUsername, block[1])
		pass, _ := findString(axiosPassword, block[1])

		if user != "" || pass != "" {
			request.Auth = &spec.Auth{User: user, Pass: pass}
		}
	}

	request.Body = axiosDataOf(src)

	return request
}

// axiosDataOf returns the value of the data field of an axios config, either
// a string literal or an object literal, empty if there isn't one.
func axiosDataOf(src string) string {
	loc := axiosData.FindStringIndex(src)
	if loc == nil {
		return ""
	}

	rest := src[loc[1]:]

	if strings.HasPrefix(rest, "{") || strings.HasPrefix(rest, "[") {
		closing := byte('}')
		if rest[0] == '[' {
			closing = ']'
		}

		expr, _ := balanced(rest, 0, rest[0], closing)

		return normaliseBody(expr)
	}

	match := leadingString.FindStringSubmatch(rest)
	if match == nil {
		return ""
	}

	return literalValue(match[1:])
}

// AxiosExporter is an [Exporter] that transforms requests into JavaScript
// snippets using axios.
type AxiosExporter struct{}

// Export implements [Exporter] for [AxiosExporter].
func (a AxiosExporter) Export(w io.Writer, request spec.Request) error {
	return templates.ExecuteTemplate(w, "axios.js.tmpl", newSnippet(request, "  "))
}
