package reqconv

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/reqconv/internal/format"
	"golang.org/x/sync/errgroup"
)

// DetectOptions are the options passed to the detect subcommand.
type DetectOptions struct {
	// Path is the path (file or directory) to detect.
	Path string

	// Debug enables debug logging.
	Debug bool
}

// Detect implements the detect subcommand, printing the detected format of
// every file under the given path.
func (a App) Detect(ctx context.Context, options DetectOptions) error {
	logger := a.logger.Prefixed("detect").With(slog.String("path", options.Path))
	logger.Debug("Detecting formats in path")

	info, err := os.Stat(options.Path)
	if err != nil {
		return fmt.Errorf("could not get path info: %w", err)
	}

	var paths []string

	if info.IsDir() {
		logger.Debug("Path is a directory")

		err = filepath.WalkDir(options.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// Skip hidden directories like .git, but not the root even if it is one
			if d.IsDir() && path != options.Path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			if d.Type().IsRegular() {
				paths = append(paths, path)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("could not walk %s: %w", options.Path, err)
		}
	} else {
		logger.Debug("Path is a file")

		paths = []string{options.Path}
	}

	logger.Debug("Detecting files given by path", slog.Int("number", len(paths)))

	formats := make([]format.Format, len(paths))
	group, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			detected, err := detectFile(path)
			if err != nil {
				return err
			}

			formats[i] = detected

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		fmt.Fprintf(a.stdout, "%s: %s\n", path, formats[i])
	}

	return nil
}

// detectFile detects the format of a single file.
func detectFile(path string) (format.Format, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return format.Unknown, fmt.Errorf("could not read file %s: %w", path, err)
	}

	return format.Detect(string(contents)), nil
}
