package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/reqconv/internal/reqconv"
)

const detectLong = `
The path argument may be a directory or a file.

If it is a file, the format of that file alone is printed.

If it is a directory, this directory is walked recursively (skipping
hidden directories like .git) and the format of every file found
is printed, one per line as 'path: format'.

Files that don't look like any known format are reported as 'unknown'.
`

// detect returns the detect subcommand.
func detect() (*cli.Command, error) {
	var options reqconv.DetectOptions

	return cli.New(
		"detect",
		cli.Short("Detect the request format of files"),
		cli.Long(detectLong),
		cli.Example("Detect the format of a single file", "reqconv detect ./request.sh"),
		cli.Example("Detect every file in a directory (recursively)", "reqconv detect ./snippets"),
		cli.Arg(&options.Path, "path", "Path to detect, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := reqconv.New(options.Debug, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Detect(ctx, options)
		}),
	)
}
