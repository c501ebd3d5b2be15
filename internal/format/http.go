package format

import (
	"io"

	"go.followtheprocess.codes/reqconv/internal/spec"
)

// HTTPExporter is an [Exporter] that writes requests in the .http file format
// understood by editors like VSCode and JetBrains.
type HTTPExporter struct{}

// Export implements [Exporter] for [HTTPExporter].
func (h HTTPExporter) Export(w io.Writer, request spec.Request) error {
	_, err := io.WriteString(w, request.String())
	return err
}
