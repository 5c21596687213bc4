package codegen

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/gmockgen/internal/codegen/cpp"
	"github.com/okra-platform/gmockgen/internal/codegen/dialect"
	"github.com/okra-platform/gmockgen/internal/codegen/writer"
	"github.com/okra-platform/gmockgen/internal/errs"
	"github.com/okra-platform/gmockgen/internal/schema"
)

const indent = "  "

// Engine turns a schema into header, mock header and mock source artifacts.
// It holds no state between runs; each pipeline is a pure function of the
// schema and the engine options.
type Engine struct {
	registry *Registry
	opts     Options
	logger   zerolog.Logger
}

// NewEngine creates an engine resolving header dialects through registry
func NewEngine(registry *Registry, opts Options, logger zerolog.Logger) *Engine {
	return &Engine{
		registry: registry,
		opts:     opts,
		logger:   logger.With().Str("component", "engine").Logger(),
	}
}

// Generate runs the selected pipelines and returns their artifacts in the
// order header, mock header, mock source. Nothing is returned unless every
// selected pipeline succeeds.
func (e *Engine) Generate(ctx context.Context, s *schema.Schema, sel Selection) ([]Artifact, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if err := schema.Validate(s); err != nil {
		return nil, err
	}

	var slots [3]*Artifact
	g, ctx := errgroup.WithContext(ctx)

	run := func(kind Kind, pipeline func(*schema.Schema) (*Artifact, error)) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := pipeline(s)
			if err != nil {
				return errs.Wrapf(err, "generate %s", kind)
			}
			slots[kind] = a
			return nil
		})
	}

	if sel.Header {
		run(KindHeader, e.Header)
	}
	if sel.Mock {
		run(KindMockHeader, e.MockHeader)
		run(KindMockSource, e.MockSource)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, 0, len(slots))
	for _, a := range slots {
		if a != nil {
			artifacts = append(artifacts, *a)
		}
	}
	return artifacts, nil
}

// Header produces the plain C header named after file.name
func (e *Engine) Header(s *schema.Schema) (*Artifact, error) {
	d, err := e.headerDialect(s.File)
	if err != nil {
		return nil, err
	}

	module := s.File.BaseName()
	w := writer.NewWriter(indent)

	w.WriteFragment(d.Copyright())
	w.BlankLine()
	w.WriteFragment(d.FileDoxygen(module))
	w.BlankLine()
	w.WriteFragment(d.HeaderGuardBegin(module))
	w.BlankLine()
	if len(s.File.Include) > 0 {
		w.WriteFragment(d.IncludeBlock(s.File.Include))
		w.BlankLine()
	}
	for _, fn := range s.File.API {
		decl, err := d.FunctionDeclaration(fn, dialect.Free)
		if err != nil {
			return nil, err
		}
		w.WriteFragment(decl)
		w.BlankLine()
	}
	w.WriteFragment(d.HeaderGuardEnd(module))

	e.logger.Debug().Str("file", s.File.Name).Str("language", d.Language()).Int("functions", len(s.File.API)).Msg("header assembled")
	return &Artifact{Kind: KindHeader, Name: s.File.Name, Content: w.Bytes()}, nil
}

// MockHeader produces Mock<Module>.hpp: the abstract interface class and
// its gMock implementation. It returns nil when the schema is not gmock ready.
func (e *Engine) MockHeader(s *schema.Schema) (*Artifact, error) {
	if !e.mockReady(s) {
		return nil, nil
	}

	module := ModuleName(s.File.BaseName())
	mockModule := MockModuleName(module)
	g := cpp.NewGenerator(e.opts.Author, e.opts.Year, ".hpp", true)
	w := writer.NewWriter(indent)

	w.WriteFragment(g.Copyright())
	w.BlankLine()
	w.WriteFragment(g.FileDoxygen(mockModule))
	w.BlankLine()
	w.WriteFragment(g.HeaderGuardBegin(mockModule))
	w.BlankLine()
	w.WriteFragment(g.IncludeBlock([]string{s.File.Name}))
	w.BlankLine()
	if err := writeClass(w, g, module, "", s.File.API, dialect.Base); err != nil {
		return nil, err
	}
	w.BlankLine()
	if err := writeClass(w, g, module, mockModule, s.File.API, dialect.Derived); err != nil {
		return nil, err
	}
	w.BlankLine()
	w.WriteFragment(g.HeaderGuardEnd(mockModule))

	name := MockHeaderName(module)
	e.logger.Debug().Str("file", name).Str("base", module).Str("mock", mockModule).Msg("mock header assembled")
	return &Artifact{Kind: KindMockHeader, Name: name, Content: w.Bytes()}, nil
}

// MockSource produces Mock<Module>.cpp: one forwarding body per function,
// calling into the global <Module>Ptr instance. It returns nil when the
// schema is not gmock ready.
func (e *Engine) MockSource(s *schema.Schema) (*Artifact, error) {
	// the skip is logged once, by MockHeader
	if !s.File.GmockReady {
		return nil, nil
	}

	module := ModuleName(s.File.BaseName())
	mockModule := MockModuleName(module)
	g := cpp.NewGenerator(e.opts.Author, e.opts.Year, ".cpp", true)
	w := writer.NewWriter(indent)

	w.WriteFragment(g.Copyright())
	w.BlankLine()
	w.WriteFragment(g.FileDoxygen(mockModule))
	w.BlankLine()
	w.WriteFragment(g.Includes([]string{MockHeaderName(module)}, true))
	w.BlankLine()
	w.WriteFragment(g.ExternObjectDefinition(module))
	for _, fn := range s.File.API {
		impl, err := g.FunctionImplementation(fn, module)
		if err != nil {
			return nil, err
		}
		w.BlankLine()
		w.WriteFragment(impl)
	}

	name := MockSourceName(module)
	e.logger.Debug().Str("file", name).Str("pointer", MockPointerName(module)).Msg("mock source assembled")
	return &Artifact{Kind: KindMockSource, Name: name, Content: w.Bytes()}, nil
}

func (e *Engine) mockReady(s *schema.Schema) bool {
	if !s.File.GmockReady {
		e.logger.Info().Str("file", s.File.Name).Msg("gmock_ready is false, skipping mock generation")
		return false
	}
	return true
}

// headerDialect resolves every requested tag and returns the first.
// Any unknown tag fails the whole run.
func (e *Engine) headerDialect(f schema.File) (dialect.Dialect, error) {
	tags := f.Dialects()
	if len(tags) == 0 {
		return nil, errs.Wrap(errs.ErrMissingField, "file.language")
	}

	var first dialect.Dialect
	for _, tag := range tags {
		d, err := e.registry.Get(tag, e.opts)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = d
		}
	}
	return first, nil
}

// writeClass emits a class block with one member declaration per function
func writeClass(w *writer.Writer, d dialect.Dialect, base, derived string, fns []schema.Function, scope dialect.Scope) error {
	cd, err := dialect.Classes(d)
	if err != nil {
		return err
	}

	w.WriteFragment(cd.ClassDefinitionBegin(base, derived))
	w.Indent()
	for _, fn := range fns {
		decl, err := cd.FunctionDeclaration(fn, scope)
		if err != nil {
			w.Dedent()
			return err
		}
		w.WriteFragment(decl)
	}
	w.Dedent()
	w.WriteFragment(cd.ClassDefinitionEnd())
	return nil
}
