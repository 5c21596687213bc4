// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	LogLevel string
	Config   string
}

type Controller struct {
	Flags  *Flags
	Stdout io.Writer
	Logger *zerolog.Logger
}

func (c *Controller) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Controller) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return log.Logger
}

func (c *Controller) configPath() string {
	if c.Flags == nil {
		return ""
	}
	return c.Flags.Config
}

// Generate runs the selected generation pipelines once
func (c *Controller) Generate(ctx context.Context, opts GenerateOptions) error {
	if opts.Config == "" {
		opts.Config = c.configPath()
	}
	return NewGenerateCommand(c.stdout(), c.logger()).Execute(ctx, opts)
}

// Watch regenerates the selected artifacts whenever a schema file changes
func (c *Controller) Watch(ctx context.Context, opts GenerateOptions) error {
	if opts.Config == "" {
		opts.Config = c.configPath()
	}
	return NewWatchCommand(c.stdout(), c.logger()).Execute(ctx, opts)
}

// Init scaffolds a starter schema file
func (c *Controller) Init(ctx context.Context, opts InitOptions) error {
	return NewInitCommand(c.stdout(), c.logger()).Run(ctx, opts)
}
