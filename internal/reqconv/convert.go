package reqconv

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.followtheprocess.codes/reqconv/internal/format"
	"go.followtheprocess.codes/reqconv/internal/spec"
)

// DefaultTo is the output format used when none is given.
const DefaultTo = "fetch"

// ConvertOptions are the options passed to the root command.
type ConvertOptions struct {
	// Input is the request text given as an argument.
	Input string

	// File is the path of a file to read the input from, takes
	// precedence over Input.
	File string

	// From is the name of the input format, empty means detect it.
	From string

	// To is the name of the output format, empty means [DefaultTo].
	To string

	// JSON outputs the parsed request(s) as JSON, regardless of To.
	JSON bool

	// All converts every request in a collection rather than just the first.
	All bool

	// Interactive prompts for input if there is none.
	Interactive bool

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the ConvertOptions is valid, returning an error
// if it's not.
//
// nil means the options are valid.
func (c ConvertOptions) Validate() error {
	_, _, err := c.formats()
	return err
}

// formats resolves the input and output formats named by the options.
//
// An empty From gives [format.Unknown] which means the input format
// should be detected.
func (c ConvertOptions) formats() (from, to format.Format, err error) {
	if c.From != "" {
		from, err = format.ParseFormat(c.From)
		if err != nil {
			return format.Unknown, format.Unknown, fmt.Errorf(
				"invalid option for --from: %w, allowed values are %s",
				err,
				strings.Join(format.Importable(), ", "),
			)
		}

		if !slices.Contains(format.Importable(), from.String()) {
			return format.Unknown, format.Unknown, fmt.Errorf(
				"invalid option for --from: %w: cannot import from %s, allowed values are %s",
				format.ErrUnsupported,
				from,
				strings.Join(format.Importable(), ", "),
			)
		}
	}

	switch {
	case c.JSON:
		to = format.JSON
	case c.To == "":
		to = format.Fetch
	default:
		to, err = format.ParseFormat(c.To)
		if err != nil {
			return format.Unknown, format.Unknown, fmt.Errorf(
				"invalid option for --to: %w, allowed values are %s",
				err,
				strings.Join(format.Exportable(), ", "),
			)
		}

		if !slices.Contains(format.Exportable(), to.String()) {
			return format.Unknown, format.Unknown, fmt.Errorf(
				"invalid option for --to: %w: cannot export to %s, allowed values are %s",
				format.ErrUnsupported,
				to,
				strings.Join(format.Exportable(), ", "),
			)
		}
	}

	return from, to, nil
}

// Convert implements the root command, converting the input request(s) from
// one format to another.
func (a App) Convert(ctx context.Context, options ConvertOptions) error {
	logger := a.logger.Prefixed("convert")

	from, to, err := options.formats()
	if err != nil {
		return err
	}

	src, err := a.input(ctx, logger, options)
	if err != nil {
		return err
	}

	if from == format.Unknown {
		from = format.Detect(src)
		if from == format.Unknown {
			return fmt.Errorf(
				"%w: could not detect the format of the input, pass it explicitly with --from",
				format.ErrUnknownFormat,
			)
		}

		logger.Debug("Detected input format", slog.String("format", from.String()))
	}

	start := time.Now()

	requests, err := importRequests(from, src)
	if err != nil {
		return err
	}

	logger.Debug(
		"Imported requests",
		slog.String("from", from.String()),
		slog.Int("count", len(requests)),
		slog.Duration("took", time.Since(start)),
	)

	if !options.All {
		requests = requests[:1]
	}

	exporter, err := format.NewExporter(to)
	if err != nil {
		return err
	}

	logger.Debug("Exporting requests", slog.String("to", to.String()), slog.Int("count", len(requests)))

	if len(requests) == 1 {
		return exporter.Export(a.stdout, requests[0])
	}

	for i, request := range requests {
		if i > 0 {
			fmt.Fprintln(a.stdout) // Line space
		}

		fmt.Fprintln(a.stdout, dimmed.Text(strings.Repeat("─", sepWidth)))
		fmt.Fprintf(a.stdout, "%s %s\n", summary.Text(request.Method), request.URL)

		if err := exporter.Export(a.stdout, request); err != nil {
			return fmt.Errorf("could not export request %d (%s %s): %w", i+1, request.Method, request.URL, err)
		}
	}

	return nil
}

// importRequests parses src as the given format.
func importRequests(from format.Format, src string) ([]spec.Request, error) {
	importer, err := format.NewImporter(from)
	if err != nil {
		return nil, err
	}

	requests, err := importer.Import(src)
	if err != nil {
		return nil, fmt.Errorf("could not import %s input: %w", from, err)
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("%w in %s input", ErrNoRequests, from)
	}

	return requests, nil
}
