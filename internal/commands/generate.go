package commands

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/okra-platform/gmockgen/internal/codegen"
	"github.com/okra-platform/gmockgen/internal/config"
	"github.com/okra-platform/gmockgen/internal/errs"
	"github.com/okra-platform/gmockgen/internal/output"
	"github.com/okra-platform/gmockgen/internal/schema"
)

// GenerateOptions carries command-line values. Empty or nil fields fall
// back to the project config.
type GenerateOptions struct {
	Config string
	Schema string
	Output string
	Author string
	Year   int
	Header *bool
	Mock   *bool
	DryRun bool
	Stdout bool
}

// ConfigLoader loads the project configuration
type ConfigLoader interface {
	Load(path string) (*config.Config, string, error)
}

// SchemaLoader reads a schema from disk
type SchemaLoader interface {
	LoadFile(path string) (*schema.Schema, error)
}

type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(path string) (*config.Config, string, error) {
	return config.Load(path)
}

type defaultSchemaLoader struct{}

func (defaultSchemaLoader) LoadFile(path string) (*schema.Schema, error) {
	return schema.LoadFile(path)
}

// GenerateDependencies for the generate command
type GenerateDependencies struct {
	ConfigLoader ConfigLoader
	SchemaLoader SchemaLoader
	FileSystem   output.FileSystem
	Registry     *codegen.Registry
	Stdout       io.Writer
	Logger       zerolog.Logger
}

// GenerateCommand encapsulates the generate logic with injected dependencies
type GenerateCommand struct {
	deps GenerateDependencies
}

// NewGenerateCommand creates a generate command with default dependencies
func NewGenerateCommand(stdout io.Writer, logger zerolog.Logger) *GenerateCommand {
	return &GenerateCommand{
		deps: GenerateDependencies{
			ConfigLoader: defaultConfigLoader{},
			SchemaLoader: defaultSchemaLoader{},
			FileSystem:   output.OSFileSystem(),
			Registry:     codegen.DefaultRegistry,
			Stdout:       stdout,
			Logger:       logger,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (gc *GenerateCommand) WithDependencies(deps GenerateDependencies) *GenerateCommand {
	gc.deps = deps
	return gc
}

// plan is the merge of command-line options over the project config
type plan struct {
	root       string
	schemaPath string
	outputDir  string
	author     string
	year       int
	selection  codegen.Selection
	dryRun     bool
	stdout     bool
	watch      config.WatchConfig
}

// Execute runs the selected pipelines once
func (gc *GenerateCommand) Execute(ctx context.Context, opts GenerateOptions) error {
	p, err := gc.plan(opts)
	if err != nil {
		return err
	}
	return gc.run(ctx, p)
}

func (gc *GenerateCommand) plan(opts GenerateOptions) (*plan, error) {
	if opts.DryRun && opts.Stdout {
		return nil, errs.WithHint(errs.New("--dry-run and --stdout cannot be combined"), "pick one of the two preview modes")
	}

	cfg, root, err := gc.deps.ConfigLoader.Load(opts.Config)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load project config")
	}

	p := &plan{
		root:       root,
		schemaPath: resolvePath(root, cfg.Schema),
		outputDir:  resolvePath(root, cfg.Output),
		author:     cfg.Author,
		year:       cfg.Year,
		selection:  codegen.Selection{Header: cfg.Header, Mock: cfg.Mock},
		dryRun:     opts.DryRun,
		stdout:     opts.Stdout,
		watch:      cfg.Watch,
	}

	if opts.Schema != "" {
		p.schemaPath = opts.Schema
	}
	if opts.Output != "" {
		p.outputDir = opts.Output
	}
	if opts.Author != "" {
		p.author = opts.Author
	}
	if opts.Year != 0 {
		p.year = opts.Year
	}
	if opts.Header != nil {
		p.selection.Header = *opts.Header
	}
	if opts.Mock != nil {
		p.selection.Mock = *opts.Mock
	}

	// Selection errors are reported before the schema is touched
	if err := p.selection.Validate(); err != nil {
		return nil, err
	}
	if p.schemaPath == "" {
		return nil, errs.WithHint(
			errs.Wrap(errs.ErrMissingField, "schema path"),
			"pass --schema or set \"schema\" in the project config",
		)
	}

	return p, nil
}

func (gc *GenerateCommand) run(ctx context.Context, p *plan) error {
	s, err := gc.deps.SchemaLoader.LoadFile(p.schemaPath)
	if err != nil {
		return err
	}

	engine := codegen.NewEngine(gc.deps.Registry, codegen.Options{Author: p.author, Year: p.year}, gc.deps.Logger)
	artifacts, err := engine.Generate(ctx, s, p.selection)
	if err != nil {
		return err
	}

	emitter := output.NewEmitter(gc.deps.FileSystem, p.outputDir, gc.deps.Logger)
	switch {
	case p.stdout:
		return output.Print(gc.deps.Stdout, artifacts)
	case p.dryRun:
		return emitter.List(gc.deps.Stdout, artifacts)
	}

	if len(artifacts) == 0 {
		gc.deps.Logger.Info().Str("schema", p.schemaPath).Msg("nothing to generate")
		return nil
	}

	paths, err := emitter.Emit(artifacts)
	if err != nil {
		return err
	}
	gc.deps.Logger.Debug().Strs("paths", paths).Msg("generation complete")
	return nil
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
