package main

import (
	"io"
	"os"
	_ "time/tzdata" // timezone validation must not depend on the host zoneinfo

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/siteconf/cmd/siteconf/commands"
	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Exit))
}

// run parses args, executes the selected command and returns the exit code.
func run(args []string, stdout, stderr io.Writer, exit func(int)) int {
	var cli commands.CLI
	global := &commands.Global{Out: stdout, Err: stderr}

	parser, err := kong.New(&cli,
		kong.Name("siteconf"),
		kong.Description("Site configuration and subfolder inventory for static documentation sites."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err != nil {
		ferrors.NewCLIErrorAdapter(false, nil).WithOutput(stderr).Report(err)
		return 10
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	if err := kctx.Run(global, &cli); err != nil {
		return ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).WithOutput(stderr).Report(err)
	}
	return 0
}
