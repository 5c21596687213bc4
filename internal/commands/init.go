package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/gmockgen/internal/codegen"
	"github.com/okra-platform/gmockgen/internal/errs"
	"github.com/okra-platform/gmockgen/internal/schema"
)

// InitOptions come from the command line
type InitOptions struct {
	// Path of the schema file to write; derived from the header name when empty
	Path  string
	Force bool
}

// InitAnswers are collected by the interactive form
type InitAnswers struct {
	HeaderName string
	Language   string
	GmockReady bool
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	filesystem FileSystem
	registry   *codegen.Registry
	stdout     io.Writer
	logger     zerolog.Logger
	// For testing: if set, skip prompting
	testAnswers *InitAnswers
}

func NewInitCommand(stdout io.Writer, logger zerolog.Logger) *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		registry:   codegen.DefaultRegistry,
		stdout:     stdout,
		logger:     logger,
	}
}

func (ic *InitCommand) Run(ctx context.Context, opts InitOptions, teaOpts ...tea.ProgramOption) error {
	answers := ic.testAnswers
	if answers == nil {
		var err error
		answers, err = ic.promptInitAnswers(teaOpts...)
		if err != nil {
			return errs.Wrap(err, "failed to get init options")
		}
	}

	trimmed := *answers
	trimmed.HeaderName = strings.TrimSpace(answers.HeaderName)
	answers = &trimmed

	path := opts.Path
	if path == "" {
		path = schema.File{Name: answers.HeaderName}.BaseName() + ".json"
	}

	if _, err := ic.filesystem.Stat(path); err == nil && !opts.Force {
		return errs.WithHint(errs.Newf("%s already exists", path), "pass --force to overwrite it")
	}

	data, err := encodeStarter(starterSchema(answers), schema.FormatFromPath(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := ic.filesystem.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrapf(err, "failed to create directory %s", dir)
		}
	}
	if err := ic.filesystem.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrapf(err, "failed to write %s", path)
	}

	ic.logger.Info().Str("path", path).Msg("schema created")
	fmt.Fprintf(ic.stdout, "Created %s. Next: gmockgen generate --schema %s --header --mock\n", path, path)
	return nil
}

func (ic *InitCommand) promptInitAnswers(opts ...tea.ProgramOption) (*InitAnswers, error) {
	answers := &InitAnswers{GmockReady: true}

	form := ic.createInitForm(answers)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return answers, nil
}

func (ic *InitCommand) createInitForm(answers *InitAnswers) *huh.Form {
	var languages []huh.Option[string]
	for _, tag := range ic.registry.Languages() {
		languages = append(languages, huh.NewOption(tag, tag))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Header name").
				Description("File name of the generated header, e.g. math_ops.h").
				Value(&answers.HeaderName).
				Validate(validateHeaderName),

			huh.NewSelect[string]().
				Title("Language").
				Description("Header dialect").
				Options(languages...).
				Value(&answers.Language),

			huh.NewConfirm().
				Title("Generate gmock artifacts?").
				Value(&answers.GmockReady),
		),
	)
}

func validateHeaderName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errs.New("header name cannot be empty")
	}
	if strings.Count(s, ".") != 1 || strings.HasPrefix(s, ".") {
		return errs.Newf("header name %q must be <base>.<ext>", s)
	}
	return nil
}

func starterSchema(a *InitAnswers) *schema.Schema {
	return &schema.Schema{
		File: schema.File{
			Name:       a.HeaderName,
			Language:   a.Language,
			Include:    []string{"stdint.h"},
			GmockReady: a.GmockReady,
			API: []schema.Function{
				{
					Return:       "int",
					Name:         "add",
					Args:         []schema.Argument{{Raw: "int a"}, {Raw: "int b"}},
					DoxygenReady: true,
				},
			},
		},
	}
}

// encodeStarter renders s and checks the result loads back
func encodeStarter(s *schema.Schema, format schema.Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case schema.FormatYAML:
		data, err = yaml.Marshal(s)
	default:
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode starter schema")
	}

	if _, err := schema.ParseSchema(data, format); err != nil {
		return nil, errs.Wrap(err, "starter schema is invalid")
	}
	return data, nil
}
