package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/okra-platform/gmockgen/internal/dev"
	"github.com/okra-platform/gmockgen/internal/errs"
)

// WatchServer runs the regenerate-on-change loop
type WatchServer interface {
	Start(ctx context.Context) error
}

// WatchServerFactory creates watch servers
type WatchServerFactory func(regen dev.Regenerator, opts dev.Options, logger zerolog.Logger) WatchServer

func defaultWatchServerFactory(regen dev.Regenerator, opts dev.Options, logger zerolog.Logger) WatchServer {
	return dev.NewServer(regen, opts, logger)
}

// WatchCommand regenerates artifacts whenever the schema directory changes
type WatchCommand struct {
	generate      *GenerateCommand
	serverFactory WatchServerFactory
	logger        zerolog.Logger
}

// NewWatchCommand creates a watch command with default dependencies
func NewWatchCommand(stdout io.Writer, logger zerolog.Logger) *WatchCommand {
	return &WatchCommand{
		generate:      NewGenerateCommand(stdout, logger),
		serverFactory: defaultWatchServerFactory,
		logger:        logger,
	}
}

// Execute validates the options once and then runs the loop until interrupted
func (wc *WatchCommand) Execute(ctx context.Context, opts GenerateOptions) error {
	if opts.DryRun || opts.Stdout {
		return errs.WithHint(errs.New("watch always writes artifacts"), "use generate --dry-run or generate --stdout to preview")
	}

	p, err := wc.generate.plan(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := filepath.Dir(p.schemaPath)
	wc.logger.Info().Str("schema", p.schemaPath).Str("output", p.outputDir).Msg("starting watch")

	server := wc.serverFactory(
		dev.RegeneratorFunc(func(ctx context.Context) error {
			return wc.generate.run(ctx, p)
		}),
		dev.Options{
			Root:     root,
			Patterns: p.watch.Patterns,
			Exclude:  p.watch.Exclude,
		},
		wc.logger,
	)

	if err := server.Start(ctx); err != nil && !errs.Is(err, context.Canceled) {
		return errs.Wrap(err, "watch error")
	}
	return nil
}
