package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/gmockgen/internal/commands"
	"github.com/okra-platform/gmockgen/internal/errs"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func generateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "schema",
			Aliases: []string{"s"},
			Usage:   "path to the JSON or YAML schema",
		},
		&cli.BoolFlag{
			Name:  "header",
			Usage: "generate the plain header",
		},
		&cli.BoolFlag{
			Name:  "mock",
			Usage: "generate the gmock header and source",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output directory",
		},
		&cli.StringFlag{
			Name:  "author",
			Usage: "author written into copyright and doxygen blocks",
		},
		&cli.IntFlag{
			Name:  "year",
			Usage: "copyright year",
		},
	}
}

func generateOptions(c *cli.Command) commands.GenerateOptions {
	opts := commands.GenerateOptions{
		Schema: c.String("schema"),
		Output: c.String("output"),
		Author: c.String("author"),
		Year:   int(c.Int("year")),
	}
	if c.IsSet("header") {
		v := c.Bool("header")
		opts.Header = &v
	}
	if c.IsSet("mock") {
		v := c.Bool("mock")
		opts.Mock = &v
	}
	return opts
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "gmockgen",
		Usage:   "Generate C headers and gmock-based C++ mocks from an interface schema",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("GMOCKGEN_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "project config file (default: gmockgen.{json,yaml,yml,toml} in this or a parent directory)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, errs.Wrap(err, "failed to parse log level")
			}

			log.Logger = log.Level(level)
			ctrl.Flags.LogLevel = c.String("log-level")
			ctrl.Flags.Config = c.String("config")

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate the selected artifacts once",
				Flags: append(generateFlags(),
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "print artifact paths and sizes without writing",
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "print artifacts instead of writing them",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					opts := generateOptions(c)
					opts.DryRun = c.Bool("dry-run")
					opts.Stdout = c.Bool("stdout")
					return ctrl.Generate(ctx, opts)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever the schema changes",
				Flags: generateFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, generateOptions(c))
				},
			},
			{
				Name:      "init",
				Usage:     "Create a starter schema file",
				ArgsUsage: "[path]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing file",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx, commands.InitOptions{
						Path:  c.Args().First(),
						Force: c.Bool("force"),
					})
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		failure(log.Fatal(), err).Msg("failed to run gmockgen")
	}
}

// failure attaches the error, its hints and its class to a log event
func failure(event *zerolog.Event, err error) *zerolog.Event {
	event = event.Err(err)
	if hint := errs.FlattenHints(err); hint != "" {
		event = event.Str("hint", hint)
	}
	if errs.IsConfigurationError(err) {
		event = event.Bool("configuration_error", true)
	}
	return event
}
