package main

import (
	"github.com/alecthomas/kong"

	"github.com/arnavsurve/shipstep/cmd/cli"
)

var root struct {
	Release cli.ReleaseCmd `cmd:"" help:"Verify, bump, export manifests, commit, tag, and push a release."`
	Publish cli.PublishCmd `cmd:"" help:"Build and push the multi-platform container image."`
}

func main() {
	ctx := kong.Parse(&root,
		kong.Name("shipstep"),
		kong.Description("A fail-fast release pipeline runner."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
