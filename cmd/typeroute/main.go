package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/typeroute/typeroute/cmd/typeroute/internal/check"
	"github.com/typeroute/typeroute/cmd/typeroute/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate the TypeScript route definition file."`
	Check   check.Cmd  `cmd:"" help:"Verify the generated file is up to date."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("typeroute"),
		kong.Description("Typeroute CLI for route definition generation."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
