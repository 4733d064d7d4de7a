// Package main is the entry point of the imgpull sample CLI: pull an
// image's layers from a registry and unpack them onto a local directory.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/imgpull/pkg/commands/pull"
)

func main() {
	app := cli.Command{
		Name:                  "imgpull",
		Usage:                 "pull and unpack a container image from an OCI/Docker registry",
		EnableShellCompletion: true,
		HideVersion:           true,
		Commands: []*cli.Command{
			pull.New().ToCLI(),
		},
		ExitErrHandler: func(ctx context.Context, c *cli.Command, err error) {
			cli.HandleExitCoder(err)
			fmt.Fprintf(c.ErrWriter, "Error: %+v\n", err)
			os.Exit(1)
		},
	}
	_ = app.Run(context.Background(), os.Args)
}
