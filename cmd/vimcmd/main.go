package main

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/vimcmd/internal"
	pkgconfig "github.com/starford/vimcmd/pkg/config"
)

type action func(context.Context, ...internal.Option) error

func options(cmd *cli.Command, out io.Writer) ([]internal.Option, error) {
	root := cmd.Root()

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(root.String("config"), cfg); err != nil {
		return nil, err
	}

	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithSource(root.String("source")),
		internal.WithOutput(out),
	}, nil
}

func with(fn action, out io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		opts, err := options(cmd, out)
		if err != nil {
			return err
		}
		return fn(ctx, opts...)
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "vimcmd",
		Usage:     "Show one Vim command of the day without repeating earlier picks",
		Writer:    out,
		ErrWriter: os.Stderr,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("clear-cache") {
				return with(internal.ClearCache, out)(ctx, cmd)
			}
			return with(internal.Run, out)(ctx, cmd)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "$XDG_CONFIG_HOME/vimcmd/config.yaml",
				Value:       internal.DefaultConfigPath(),
				Sources:     cli.EnvVars("VIMCMD_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Source short name or path to a ';'-delimited command file (default from config)",
				Sources: cli.EnvVars("VIMCMD_SOURCE"),
			},
			&cli.BoolFlag{
				Name:  "clear-cache",
				Usage: "Clear the cache and exit",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "random",
				Usage:  "Show a random command, ignoring and not recording history",
				Action: with(internal.Random, out),
			},
			{
				Name:   "history",
				Usage:  "List the commands already shown for the source",
				Action: with(internal.History, out),
			},
			{
				Name:   "sources",
				Usage:  "List the configured sources",
				Action: with(internal.ListSources, out),
			},
		},
	}
}

// execute runs the CLI with args and returns the process exit code. Failures
// are reported on out as "Failed: <message>".
func execute(ctx context.Context, args []string, out io.Writer) int {
	if err := newCommand(out).Run(ctx, args); err != nil {
		fmt.Fprintln(out, "Failed: "+err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), os.Args, os.Stdout))
}
