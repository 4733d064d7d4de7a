// Package pull defines the "pull" command: fetch an image manifest,
// select a platform-specific entry when given a manifest list, and unpack
// its layers onto a local directory.
package pull

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/imgpull/pkg/cmdhelper"
	"github.com/wuxler/imgpull/pkg/config"
	"github.com/wuxler/imgpull/pkg/image"
	"github.com/wuxler/imgpull/pkg/ocispec/distribution/remote"
	"github.com/wuxler/imgpull/pkg/ocispec/platform"
	"github.com/wuxler/imgpull/pkg/unpack"
	"github.com/wuxler/imgpull/pkg/xlog"
)

const defaultTag = "latest"

// Command implements "imgpull pull".
type Command struct {
	Registry    string
	ConfigPath  string
	Platform    string
	Destination string
}

// New returns a Command with default values.
func New() *Command {
	return &Command{
		Registry:    config.DefaultRegistry,
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Destination: ".",
	}
}

// ToCLI transforms Command into a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "pull",
		Usage:     "Pull and unpack an image from a registry",
		ArgsUsage: "NAME[:TAG|@DIGEST]",
		UsageText: `imgpull pull [OPTIONS] NAME[:TAG|@DIGEST]

# Pull hello-world:latest and unpack it into ./out
$ imgpull pull --out ./out library/hello-world:latest
`,
		Flags:  c.Flags(),
		Before: cli.BeforeFunc(cmdhelper.ExactArgs(1)),
		Action: c.Run,
	}
}

// Flags defines the flags for this command.
func (c *Command) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "registry",
			Usage:       "registry base URL",
			Destination: &c.Registry,
			Value:       c.Registry,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to a YAML config file",
			Destination: &c.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "platform",
			Usage:       "platform to select from a manifest list, as os/arch[/variant]",
			Destination: &c.Platform,
			Value:       c.Platform,
		},
		&cli.StringFlag{
			Name:        "out",
			Usage:       "destination directory to unpack the image into",
			Destination: &c.Destination,
			Value:       c.Destination,
		},
	}
}

// Run is the action for this command.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.IsSet("registry") {
		cfg.Registry = c.Registry
	}

	xlog.SetDefault(xlog.New(cfg.XLogConfig()))

	name, reference := splitReference(cmd.Args().First())

	p, err := parsePlatform(c.Platform)
	if err != nil {
		return err
	}

	client := remote.NewClient(cfg.Registry, nil)
	img, err := image.New(ctx, client, name, reference, image.PlatformSelector(p))
	if err != nil {
		return fmt.Errorf("pull: resolving %s:%s: %w", name, reference, err)
	}

	sink := unpack.NewFolderSink(afero.NewOsFs(), c.Destination)
	if err := unpack.Unpack(ctx, img, sink); err != nil {
		return fmt.Errorf("pull: unpacking %s:%s: %w", name, reference, err)
	}

	cmdhelper.Fprintf(cmd.Writer, "pulled %s:%s into %s", name, reference, c.Destination)
	return nil
}

// splitReference splits "name:tag" or "name@digest" into (name,
// reference); a bare name defaults to the "latest" tag.
func splitReference(s string) (name, reference string) {
	if i := strings.LastIndex(s, "@"); i >= 0 {
		return s[:i], s[i+1:]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, defaultTag
}

func parsePlatform(s string) (platform.Platform, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 || len(parts) > 3 {
		return platform.Platform{}, fmt.Errorf("pull: invalid platform %q, want os/arch[/variant]", s)
	}

	os, err := platform.ParseOS(parts[0])
	if err != nil {
		return platform.Platform{}, err
	}
	arch, err := platform.ParseArchitecture(parts[1])
	if err != nil {
		return platform.Platform{}, err
	}

	p := platform.Platform{OS: os, Architecture: arch}
	if len(parts) == 3 {
		p.Variant = parts[2]
	}
	return p, nil
}
