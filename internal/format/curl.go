package format

import (
	"io"
	"net/http"
	"strings"

	"go.followtheprocess.codes/reqconv/internal/shell"
	"go.followtheprocess.codes/reqconv/internal/spec"
)

// defaultAcceptEncoding is the header value curl's --compressed flag asks for.
const defaultAcceptEncoding = "deflate, gzip, br"

// continuations collapses multi-line commands onto a single line, line continuations
// first so the backslash goes with them.
//
//nolint:gochecknoglobals // Has to be here
var continuations = strings.NewReplacer(
	"\\\r\n", " ",
	"\\\n", " ",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// flagKind distinguishes curl flags that take an argument from those that don't.
type flagKind int

const (
	standalone flagKind = iota // A flag on its own e.g. --insecure
	valued                     // A flag that consumes the next argument e.g. -X POST
)

// curlFlag is a single entry in the curl flag table.
type curlFlag struct {
	// apply applies the effect of the flag to the request being parsed, arg is
	// the flag's argument for valued flags and empty for standalone ones
	apply func(p *curlParser, arg string)
	kind  flagKind
}

// curlParser holds the state of a single curl command parse.
type curlParser struct {
	request        *spec.Request
	explicitMethod bool // Whether the method was set by a flag, so data flags don't override it
}

// curlFlags is the table of every curl flag that means something to a request,
// keyed by every spelling of the flag.
//
// Anything not in here is skipped.
//
//nolint:gochecknoglobals // Lookup table, never modified
var curlFlags = map[string]curlFlag{
	"-X":               {kind: valued, apply: setMethod},
	"--request":        {kind: valued, apply: setMethod},
	"-I":               {kind: standalone, apply: setHead},
	"--head":           {kind: standalone, apply: setHead},
	"-H":               {kind: valued, apply: setHeader},
	"--header":         {kind: valued, apply: setHeader},
	"-d":               {kind: valued, apply: setData},
	"--data":           {kind: valued, apply: setData},
	"--data-raw":       {kind: valued, apply: setData},
	"--data-binary":    {kind: valued, apply: setData},
	"--data-ascii":     {kind: valued, apply: setData},
	"--data-urlencode": {kind: valued, apply: appendURLEncoded},
	"--json":           {kind: valued, apply: setJSON},
	"-u":               {kind: valued, apply: setAuth},
	"--user":           {kind: valued, apply: setAuth},
	"-L":               {kind: standalone, apply: setFollowRedirects},
	"--location":       {kind: standalone, apply: setFollowRedirects},
	"-k":               {kind: standalone, apply: setInsecure},
	"--insecure":       {kind: standalone, apply: setInsecure},
	"-A":               {kind: valued, apply: headerSetter("User-Agent")},
	"--user-agent":     {kind: valued, apply: headerSetter("User-Agent")},
	"-b":               {kind: valued, apply: headerSetter("Cookie")},
	"--cookie":         {kind: valued, apply: headerSetter("Cookie")},
	"-e":               {kind: valued, apply: headerSetter("Referer")},
	"--referer":        {kind: valued, apply: headerSetter("Referer")},
	"--compressed":     {kind: standalone, apply: setCompressed},
	"--url":            {kind: valued, apply: setURL},
}

// CurlImporter is an [Importer] that parses curl command lines.
type CurlImporter struct{}

// Import implements [Importer] for [CurlImporter], it always returns exactly
// one request and never fails.
func (c CurlImporter) Import(src string) ([]spec.Request, error) {
	return []spec.Request{ParseCurl(src)}, nil
}

// ParseCurl parses a curl command line into a [spec.Request].
//
// The command may span multiple lines with '\' continuations and the leading
// "curl" is optional. Parsing is best effort, unknown flags are skipped and a valued
// flag missing its argument is ignored, so ParseCurl never fails.
//
// Any bare argument that looks like a URL (starts with "http" or "/") is taken as the URL,
// if there are several the last one wins.
func ParseCurl(src string) spec.Request {
	request := spec.NewRequest()
	p := &curlParser{request: &request}

	tokens := shell.Tokenize(stripCommand(continuations.Replace(src)))

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		flag, ok := curlFlags[token]
		if !ok {
			if isURLLike(token) {
				request.URL = token
			}

			continue
		}

		if flag.kind == standalone {
			flag.apply(p, "")
			continue
		}

		// Valued flag at the very end, nothing to apply
		if i+1 >= len(tokens) {
			break
		}

		i++
		flag.apply(p, tokens[i])
	}

	return request
}

// stripCommand removes a leading "curl" from the command, if present.
func stripCommand(command string) string {
	command = strings.TrimSpace(command)
	if command == "curl" {
		return ""
	}

	if rest, ok := strings.CutPrefix(command, "curl "); ok {
		return rest
	}

	return command
}

// isURLLike reports whether a bare curl argument should be taken as the URL.
func isURLLike(token string) bool {
	if strings.HasPrefix(token, "-") {
		return false
	}

	return strings.HasPrefix(token, "http") || strings.HasPrefix(token, "/")
}

func setMethod(p *curlParser, arg string) {
	method := strings.ToUpper(strings.TrimSpace(arg))
	if method == "" {
		return
	}

	p.request.Method = method
	p.explicitMethod = true
}

func setHead(p *curlParser, _ string) {
	p.request.Method = http.MethodHead
	p.explicitMethod = true
}

func setHeader(p *curlParser, arg string) {
	key, value, ok := strings.Cut(arg, ":")
	if !ok {
		return
	}

	p.request.SetHeader(strings.TrimSpace(key), strings.TrimSpace(value))
}

// impliedPost makes the request a POST, unless the method was given explicitly.
func (p *curlParser) impliedPost() {
	if !p.explicitMethod {
		p.request.Method = http.MethodPost
	}
}

func setData(p *curlParser, arg string) {
	p.request.Body = arg
	p.impliedPost()
}

func appendURLEncoded(p *curlParser, arg string) {
	if p.request.Body == "" {
		p.request.Body = arg
	} else {
		p.request.Body += "&" + arg
	}

	p.impliedPost()

	if p.request.ContentType == "" {
		p.request.SetHeader("Content-Type", spec.ContentTypeForm)
	}
}

func setJSON(p *curlParser, arg string) {
	p.request.Body = arg
	p.impliedPost()

	if p.request.ContentType == "" {
		p.request.SetHeader("Content-Type", "application/json")
	}

	if !p.request.Headers.Has("Accept") {
		p.request.SetHeader("Accept", "application/json")
	}
}

func setAuth(p *curlParser, arg string) {
	user, pass, _ := strings.Cut(arg, ":")
	p.request.Auth = &spec.Auth{User: user, Pass: pass}
}

func setFollowRedirects(p *curlParser, _ string) {
	p.request.FollowRedirects = true
}

func setInsecure(p *curlParser, _ string) {
	p.request.Insecure = true
}

func setCompressed(p *curlParser, _ string) {
	if !p.request.Headers.Has("Accept-Encoding") {
		p.request.SetHeader("Accept-Encoding", defaultAcceptEncoding)
	}
}

func setURL(p *curlParser, arg string) {
	p.request.URL = arg
}

// headerSetter returns a flag effect that sets the given well known header
// to the flag's argument.
func headerSetter(key string) func(p *curlParser, arg string) {
	return func(p *curlParser, arg string) {
		p.request.SetHeader(key, arg)
	}
}

// CurlExporter is an [Exporter] that transforms requests into curl commands.
type CurlExporter struct{}

// Export implements [Exporter] for [CurlExporter] and exports the given
// request as a multi-line curl command.
func (c CurlExporter) Export(w io.Writer, request spec.Request) error {
	return templates.ExecuteTemplate(w, "curl.txt.tmpl", request)
}
