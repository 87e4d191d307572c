package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogcontent/cmd/blogcontent/commands"
	ferrors "git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	kctx := kong.Parse(cli,
		kong.Name("blogcontent"),
		kong.Description("Load, inspect and serve a directory of markdown blog posts."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := kctx.Run(global, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
