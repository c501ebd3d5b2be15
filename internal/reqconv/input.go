package reqconv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/log"
	"golang.org/x/term"
)

// input gets the text to convert, trying in order:
//
//  1. The file given by --file
//  2. The positional input argument
//  3. stdin, but only if it's not a terminal
//  4. An interactive prompt, if --interactive was given
//
// The first that gives some non-blank text wins.
func (a App) input(ctx context.Context, logger *log.Logger, options ConvertOptions) (string, error) {
	if options.File != "" {
		logger.Debug("Reading input from file", slog.String("file", options.File))

		contents, err := os.ReadFile(options.File)
		if err != nil {
			return "", fmt.Errorf("could not read file %s: %w", options.File, err)
		}

		return strings.TrimSpace(string(contents)), nil
	}

	if strings.TrimSpace(options.Input) != "" {
		logger.Debug("Using input from argument")
		return options.Input, nil
	}

	if a.stdin != nil && !isTerminal(a.stdin) {
		logger.Debug("Reading input from stdin")

		contents, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("could not read stdin: %w", err)
		}

		if src := strings.TrimSpace(string(contents)); src != "" {
			return src, nil
		}
	}

	if options.Interactive {
		logger.Debug("Prompting for input")
		return a.prompt(ctx)
	}

	return "", ErrNoInput
}

// prompt asks the user to paste the request in.
func (a App) prompt(ctx context.Context) (string, error) {
	var src string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Request").
				Description("Paste a curl command, a fetch or axios snippet, or a postman collection").
				Value(&src),
		),
	).WithInput(a.stdin).WithOutput(a.stderr)

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("could not prompt for input: %w", err)
	}

	src = strings.TrimSpace(src)
	if src == "" {
		return "", ErrNoInput
	}

	return src, nil
}

// isTerminal reports whether r is attached to a terminal.
func isTerminal(r io.Reader) bool {
	file, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
