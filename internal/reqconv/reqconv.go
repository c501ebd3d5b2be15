// Package reqconv implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package reqconv

import (
	"errors"
	"io"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/log"
)

// Styles.
const (
	// summary is the style used for the METHOD part of the summary line shown
	// above each request when converting several at once.
	summary = hue.Bold

	// dimmed is the style used for printing informational content like
	// the separator between requests.
	dimmed = hue.BrightBlack | hue.Italic

	// sepWidth is the width in characters of the horizontal line separator
	// between converted requests.
	sepWidth = 80
)

var (
	// ErrNoInput is returned when there is nothing to convert: no input argument,
	// no file, nothing piped to stdin and no interactive prompt.
	ErrNoInput = errors.New("no input given, pass a request as an argument, with --file or on stdin")

	// ErrNoRequests is returned when the input is valid but contains no requests at all,
	// e.g. an empty collection.
	ErrNoRequests = errors.New("no requests found")
)

// App represents the reqconv program.
type App struct {
	stdin  io.Reader   // Input is read from here if not given any other way
	stdout io.Writer   // Normal program output is written here
	stderr io.Writer   // Logs and errors are written here
	logger *log.Logger // The logger for the application
}

// New returns a new [App].
func New(debug bool, stdin io.Reader, stdout, stderr io.Writer) App {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.WithLevel(level))

	return App{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}
