// Package format provides mechanisms for converting HTTP requests into and from
// their various textual representations.
//
// Notably, the package provides the [Importer] and [Exporter] interfaces for doing this
// in a format-agnostic way, with [spec.Request] as the pivot between them.
//
// It also provides the built in importers and exporters for curl, fetch, axios,
// postman collections (import only) and the structured formats JSON, YAML, TOML
// and .http (export only), along with [Detect] which guesses the format of some
// unlabelled input.
package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/reqconv/internal/spec"
)

var (
	// ErrUnknownFormat is returned when a format name is not recognised.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrUnsupported is returned when a format is recognised but cannot be
	// used in the requested direction e.g. exporting to a postman collection.
	ErrUnsupported = errors.New("unsupported format")
)

// Exporter is the interface defining a mechanism for exporting a [spec.Request]
// into an external format.
type Exporter interface {
	// Export exports the [spec.Request] into an external format, written to w.
	//
	// Export must not modify the request, the only errors it returns come from w.
	Export(w io.Writer, request spec.Request) error
}

// Importer is the interface defining a mechanism for importing external formats
// into one or more [spec.Request].
type Importer interface {
	// Import imports the data from the external format.
	//
	// Snippet and command importers are best effort and never fail, they return
	// a partially filled request for partial input.
	Import(src string) ([]spec.Request, error)
}

// Format is a textual representation of a HTTP request.
type Format int

// Supported formats.
const (
	Unknown Format = iota
	Curl           // curl command line
	Fetch          // JavaScript fetch snippet
	Axios          // JavaScript axios snippet
	Postman        // Postman v2 collection, import only
	JSON           // Structured JSON, export only
	YAML           // Structured YAML, export only
	TOML           // Structured TOML, export only
	HTTP           // .http file request, export only
)

// names maps the canonical name (and any aliases) of each format.
//
//nolint:gochecknoglobals // Lookup table, never modified
var names = map[string]Format{
	"curl":    Curl,
	"fetch":   Fetch,
	"axios":   Axios,
	"postman": Postman,
	"json":    JSON,
	"yaml":    YAML,
	"yml":     YAML,
	"toml":    TOML,
	"http":    HTTP,
}

// String implements [fmt.Stringer] for [Format].
func (f Format) String() string {
	switch f {
	case Curl:
		return "curl"
	case Fetch:
		return "fetch"
	case Axios:
		return "axios"
	case Postman:
		return "postman"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case HTTP:
		return "http"
	default:
		return "unknown"
	}
}

// ParseFormat looks up a format by name (case-insensitive), returning an
// error wrapping [ErrUnknownFormat] if there is no such format.
func ParseFormat(name string) (Format, error) {
	f, ok := names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Unknown, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}

	return f, nil
}

// NewImporter returns the [Importer] for the given format.
func NewImporter(f Format) (Importer, error) {
	switch f {
	case Curl:
		return CurlImporter{}, nil
	case Fetch:
		return FetchImporter{}, nil
	case Axios:
		return AxiosImporter{}, nil
	case Postman:
		return PostmanImporter{}, nil
	case Unknown:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	default:
		return nil, fmt.Errorf("%w: cannot import from %s", ErrUnsupported, f)
	}
}

// NewExporter returns the [Exporter] for the given format.
func NewExporter(f Format) (Exporter, error) {
	switch f {
	case Curl:
		return CurlExporter{}, nil
	case Fetch:
		return FetchExporter{}, nil
	case Axios:
		return AxiosExporter{}, nil
	case JSON:
		return JSONExporter{}, nil
	case YAML:
		return YAMLExporter{}, nil
	case TOML:
		return TOMLExporter{}, nil
	case HTTP:
		return HTTPExporter{}, nil
	case Unknown:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	default:
		return nil, fmt.Errorf("%w: cannot export to %s", ErrUnsupported, f)
	}
}

// Importable returns the names of the formats that may be imported.
func Importable() []string {
	return []string{Curl.String(), Fetch.String(), Axios.String(), Postman.String()}
}

// Exportable returns the names of the formats that may be exported to.
func Exportable() []string {
	return []string{
		Curl.String(),
		Fetch.String(),
		Axios.String(),
		JSON.String(),
		YAML.String(),
		TOML.String(),
		HTTP.String(),
	}
}
