// Package spec provides the Request type, the concrete, canonical data structure
// describing a single HTTP request regardless of the format it was written in.
//
// Every importer in package format produces one or more of these and every exporter
// consumes exactly one, it is the pivot between curl commands, fetch and axios snippets,
// postman collections and the structured output formats.
package spec

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// ContentTypeForm is the content type curl sends url encoded data as.
const ContentTypeForm = "application/x-www-form-urlencoded"

// Request is a single HTTP request as a canonical, format independent representation.
//
// Field order here is the key order of the structured output formats.
type Request struct {
	// The HTTP method, always uppercase and never empty
	Method string `json:"method" toml:"method" yaml:"method"`

	// The target URL, may be empty if it couldn't be found in the source
	URL string `json:"url" toml:"url" yaml:"url"`

	// Request headers, in the order they were declared
	Headers Headers `json:"headers" toml:"headers" yaml:"headers"`

	// Raw request body, may be JSON, form encoded or anything else
	Body string `json:"body,omitempty" toml:"body,omitempty" yaml:"body,omitempty"`

	// Cached value of the Content-Type header, set by [Request.SetHeader]
	ContentType string `json:"contentType,omitempty" toml:"contentType,omitempty" yaml:"contentType,omitempty"`

	// Basic auth credentials, nil if none were given
	Auth *Auth `json:"auth,omitempty" toml:"auth,omitempty" yaml:"auth,omitempty"`

	// Whether redirects should be followed
	FollowRedirects bool `json:"followRedirects" toml:"followRedirects" yaml:"followRedirects"`

	// Skip TLS certificate verification
	Insecure bool `json:"insecure" toml:"insecure" yaml:"insecure"`
}

// Auth is a pair of HTTP basic auth credentials.
type Auth struct {
	User string `json:"user" toml:"user" yaml:"user"`
	Pass string `json:"pass" toml:"pass" yaml:"pass"`
}

// Encoded returns the base64 encoded "user:pass" credential as used in a
// basic Authorization header.
func (a Auth) Encoded() string {
	return base64.StdEncoding.EncodeToString([]byte(a.User + ":" + a.Pass))
}

// NewRequest returns a new [Request] with the default values set, a GET
// that follows redirects.
func NewRequest() Request {
	return Request{
		Method:          http.MethodGet,
		FollowRedirects: true,
	}
}

// SetHeader sets a request header, replacing any existing header with exactly
// the same key.
//
// If key is Content-Type (in any case), the cached ContentType is updated too.
func (r *Request) SetHeader(key, value string) {
	r.Headers.Set(key, value)

	if strings.EqualFold(key, "Content-Type") {
		r.ContentType = value
	}
}

// IsSimple reports whether the request is a plain GET with nothing else
// attached, i.e. it can be expressed as a bare call with only the URL.
func (r Request) IsSimple() bool {
	return r.Method == http.MethodGet && r.Headers.Len() == 0 && r.Body == "" && r.Auth == nil
}

// String implements [fmt.Stringer] for a [Request] and formats
// the request to be a syntactically valid http request within
// a .http file.
func (r Request) String() string {
	builder := &strings.Builder{}

	builder.WriteString("###\n")

	// .http files follow redirects by default, so only say something if we shouldn't
	if !r.FollowRedirects {
		builder.WriteString("# @no-redirect = true\n")
	}

	fmt.Fprintf(builder, "%s %s\n", r.Method, r.URL)

	for key, value := range r.Headers.All() {
		fmt.Fprintf(builder, "%s: %s\n", key, value)
	}

	if r.Auth != nil && !r.Headers.Has("Authorization") {
		fmt.Fprintf(builder, "Authorization: Basic %s\n", r.Auth.Encoded())
	}

	if r.Body != "" {
		fmt.Fprintf(builder, "\n%s\n", r.Body)
	}

	return builder.String()
}
