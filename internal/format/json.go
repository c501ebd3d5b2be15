package format

import (
	"encoding/json"
	"io"

	"go.followtheprocess.codes/reqconv/internal/spec"
)

// JSONExporter is an [Exporter] that transforms requests into JSON documents.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given request
// as a complete JSON document, fields and headers in their natural order.
func (j JSONExporter) Export(w io.Writer, request spec.Request) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(request)
}
