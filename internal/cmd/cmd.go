// Package cmd implements reqconv's CLI.
package cmd

import (
	"context"
	"strings"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/reqconv/internal/format"
	"go.followtheprocess.codes/reqconv/internal/reqconv"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const long = `
The input is every positional argument joined with spaces, so quoting the
request is optional unless it contains flags or shell special characters.

It may be a curl command, a JavaScript fetch or axios snippet or a
postman collection (v2). It's read from the first of these that is given:

  - The file passed with '--file'
  - The positional arguments
  - stdin, if something is piped in
  - An interactive prompt, if '--interactive' is passed

If '--from' is not given, the format of the input is detected automatically.

A postman collection may contain many requests, only the first is converted
unless '--all' is passed.
`

// Build builds and returns the reqconv CLI.
func Build() (*cli.Command, error) {
	var options reqconv.ConvertOptions

	return cli.New(
		"reqconv",
		cli.Short("Convert HTTP requests between curl, fetch, axios and more"),
		cli.Long(long),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Convert a curl command to fetch", "reqconv curl https://api.example.com/users"),
		cli.Example("Convert a curl command to axios", "reqconv --to axios \"curl https://api.example.com/users\""),
		cli.Example("Pipe a fetch snippet in and get curl out", "pbpaste | reqconv --to curl"),
		cli.Example("Convert every request in a postman collection", "reqconv --file collection.json --all --to http"),
		cli.Example("Show the parsed request as JSON", "reqconv --json \"curl -X POST https://x.com -d 'hello'\""),
		cli.Example("Detect the format of every file in a directory", "reqconv detect ./snippets"),
		cli.Flag(
			&options.To,
			"to",
			't',
			"Output format, one of "+strings.Join(format.Exportable(), ", "),
			cli.FlagDefault(reqconv.DefaultTo),
		),
		cli.Flag(
			&options.From,
			"from",
			flag.NoShortHand,
			"Input format, one of "+strings.Join(format.Importable(), ", ")+" (detected if not given)",
		),
		cli.Flag(&options.File, "file", 'f', "Read the input from a file"),
		cli.Flag(&options.JSON, "json", flag.NoShortHand, "Output the parsed request as JSON, overrides --to"),
		cli.Flag(&options.All, "all", 'a', "Convert every request in a collection, not just the first"),
		cli.Flag(&options.Interactive, "interactive", 'i', "Prompt for the input if none is given"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.SubCommands(detect),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			options.Input = strings.Join(cmd.Args(), " ")

			app := reqconv.New(options.Debug, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())

			return app.Convert(ctx, options)
		}),
	)
}
