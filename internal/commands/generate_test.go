package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/gmockgen/internal/codegen"
	"github.com/okra-platform/gmockgen/internal/config"
	"github.com/okra-platform/gmockgen/internal/errs"
	"github.com/okra-platform/gmockgen/internal/schema"
)

// Test plan:
// 1. Flags select pipelines and every artifact lands in the output dir
// 2. Selection errors come before the schema is read
// 3. Config values apply and flags override them
// 4. Relative config paths resolve against the project root
// 5. Dry run and stdout modes never write
// 6. Configuration errors abort before any write

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) Load(path string) (*config.Config, string, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*config.Config), args.String(1), args.Error(2)
}

type mockSchemaLoader struct {
	mock.Mock
}

func (m *mockSchemaLoader) LoadFile(path string) (*schema.Schema, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schema.Schema), args.Error(1)
}

// memFileSystem records writes in memory
type memFileSystem struct {
	files        map[string][]byte
	dirs         []string
	writeFileErr error
}

func newMemFileSystem() *memFileSystem {
	return &memFileSystem{files: make(map[string][]byte)}
}

func (m *memFileSystem) Stat(name string) (os.FileInfo, error) {
	if _, ok := m.files[name]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *memFileSystem) MkdirAll(path string, perm os.FileMode) error {
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *memFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.writeFileErr != nil {
		return m.writeFileErr
	}
	m.files[name] = data
	return nil
}

func testSchema() *schema.Schema {
	return &schema.Schema{
		File: schema.File{
			Name:       "math_ops.h",
			Language:   "C",
			Include:    []string{"stdint.h"},
			GmockReady: true,
			API: []schema.Function{
				{Return: "int", Name: "add", Args: []schema.Argument{{Raw: "int a"}, {Raw: "int b"}}, DoxygenReady: true},
			},
		},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Author = "Jane Doe"
	cfg.Year = 2024
	return cfg
}

type generateFixture struct {
	configs *mockConfigLoader
	schemas *mockSchemaLoader
	fs      *memFileSystem
	stdout  *bytes.Buffer
	cmd     *GenerateCommand
}

func newGenerateFixture(cfg *config.Config, root string) *generateFixture {
	f := &generateFixture{
		configs: new(mockConfigLoader),
		schemas: new(mockSchemaLoader),
		fs:      newMemFileSystem(),
		stdout:  &bytes.Buffer{},
	}
	f.configs.On("Load", mock.Anything).Return(cfg, root, nil)
	f.cmd = (&GenerateCommand{}).WithDependencies(GenerateDependencies{
		ConfigLoader: f.configs,
		SchemaLoader: f.schemas,
		FileSystem:   f.fs,
		Registry:     codegen.DefaultRegistry,
		Stdout:       f.stdout,
		Logger:       zerolog.Nop(),
	})
	return f
}

func boolPtr(b bool) *bool {
	return &b
}

func TestGenerateCommand_Execute_AllPipelines(t *testing.T) {
	f := newGenerateFixture(testConfig(), "/project")
	f.schemas.On("LoadFile", "math_ops.json").Return(testSchema(), nil)

	err := f.cmd.Execute(context.Background(), GenerateOptions{
		Schema: "math_ops.json",
		Output: "out",
		Header: boolPtr(true),
		Mock:   boolPtr(true),
	})
	require.NoError(t, err)

	require.Len(t, f.fs.files, 3)
	header := string(f.fs.files[filepath.Join("out", "math_ops.h")])
	assert.True(t, strings.HasPrefix(header, "/** Copyright (c) 2024 Jane Doe **/\n"))
	assert.Contains(t, string(f.fs.files[filepath.Join("out", "MockMathOps.hpp")]), "class MockMathOps : public MathOps {")
	assert.Contains(t, string(f.fs.files[filepath.Join("out", "MockMathOps.cpp")]), "return MathOpsPtr->add(a, b);")
	f.schemas.AssertExpectations(t)
}

func TestGenerateCommand_Execute_NoPipeline(t *testing.T) {
	// Test: selection error is raised before the schema is read
	f := newGenerateFixture(testConfig(), "/project")

	err := f.cmd.Execute(context.Background(), GenerateOptions{Schema: "math_ops.json"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrNoPipeline))
	f.schemas.AssertNotCalled(t, "LoadFile", mock.Anything)
	assert.Empty(t, f.fs.files)
}

func TestGenerateCommand_Execute_ConfigSelection(t *testing.T) {
	cfg := testConfig()
	cfg.Schema = "api/math_ops.json"
	cfg.Output = "gen"
	cfg.Header = true
	cfg.Mock = true

	f := newGenerateFixture(cfg, "/project")
	f.schemas.On("LoadFile", filepath.Join("/project", "api", "math_ops.json")).Return(testSchema(), nil)

	// Flags override the config: mock pipelines turned off
	err := f.cmd.Execute(context.Background(), GenerateOptions{Mock: boolPtr(false)})
	require.NoError(t, err)

	require.Len(t, f.fs.files, 1)
	assert.Contains(t, f.fs.files, filepath.Join("/project", "gen", "math_ops.h"))
}

func TestGenerateCommand_Execute_FlagOverrides(t *testing.T) {
	cfg := testConfig()
	cfg.Header = true

	f := newGenerateFixture(cfg, "/project")
	f.schemas.On("LoadFile", "x.json").Return(testSchema(), nil)

	err := f.cmd.Execute(context.Background(), GenerateOptions{
		Schema: "x.json",
		Output: "o",
		Author: "Ada",
		Year:   1999,
	})
	require.NoError(t, err)

	header := string(f.fs.files[filepath.Join("o", "math_ops.h")])
	assert.True(t, strings.HasPrefix(header, "/** Copyright (c) 1999 Ada **/\n"))
	assert.Contains(t, header, " * @author Ada\n")
}

func TestGenerateCommand_Execute_MissingSchemaPath(t *testing.T) {
	f := newGenerateFixture(testConfig(), "/project")

	err := f.cmd.Execute(context.Background(), GenerateOptions{Header: boolPtr(true)})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrMissingField))
	assert.Contains(t, errs.FlattenHints(err), "--schema")
}

func TestGenerateCommand_Execute_DryRun(t *testing.T) {
	f := newGenerateFixture(testConfig(), "/project")
	f.schemas.On("LoadFile", "math_ops.json").Return(testSchema(), nil)

	err := f.cmd.Execute(context.Background(), GenerateOptions{
		Schema: "math_ops.json",
		Output: "out",
		Header: boolPtr(true),
		DryRun: true,
	})
	require.NoError(t, err)

	assert.Empty(t, f.fs.files)
	assert.Empty(t, f.fs.dirs)
	assert.True(t, strings.HasPrefix(f.stdout.String(), filepath.Join("out", "math_ops.h")+"\theader\t"))
}

func TestGenerateCommand_Execute_Stdout(t *testing.T) {
	f := newGenerateFixture(testConfig(), "/project")
	f.schemas.On("LoadFile", "math_ops.json").Return(testSchema(), nil)

	err := f.cmd.Execute(context.Background(), GenerateOptions{
		Schema: "math_ops.json",
		Header: boolPtr(true),
		Stdout: true,
	})
	require.NoError(t, err)

	assert.Empty(t, f.fs.files)
	assert.True(t, strings.HasPrefix(f.stdout.String(), "// ---- math_ops.h ----\n/** Copyright (c) 2024 Jane Doe **/\n"))
}

func TestGenerateCommand_Execute_DryRunAndStdout(t *testing.T) {
	f := newGenerateFixture(testConfig(), "/project")

	err := f.cmd.Execute(context.Background(), GenerateOptions{Header: boolPtr(true), DryRun: true, Stdout: true})
	require.Error(t, err)
	f.configs.AssertNotCalled(t, "Load", mock.Anything)
}

func TestGenerateCommand_Execute_UnsupportedLanguage(t *testing.T) {
	// Test: configuration error aborts before anything is written
	s := testSchema()
	s.File.Language = "Rust"

	f := newGenerateFixture(testConfig(), "/project")
	f.schemas.On("LoadFile", "math_ops.json").Return(s, nil)

	err := f.cmd.Execute(context.Background(), GenerateOptions{
		Schema: "math_ops.json",
		Header: boolPtr(true),
		Mock:   boolPtr(true),
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrUnsupportedLanguage))
	assert.Empty(t, f.fs.files)
	assert.Empty(t, f.fs.dirs)
}

func TestGenerateCommand_Execute_GmockNotReady(t *testing.T) {
	// Test: mock-only run with gmock disabled writes nothing and succeeds
	s := testSchema()
	s.File.GmockReady = false

	f := newGenerateFixture(testConfig(), "/project")
	f.schemas.On("LoadFile", "math_ops.json").Return(s, nil)

	err := f.cmd.Execute(context.Background(), GenerateOptions{Schema: "math_ops.json", Mock: boolPtr(true)})
	require.NoError(t, err)
	assert.Empty(t, f.fs.files)
	assert.Empty(t, f.fs.dirs)
}

func TestGenerateCommand_Execute_Errors(t *testing.T) {
	t.Run("config load", func(t *testing.T) {
		loader := new(mockConfigLoader)
		loader.On("Load", "bad.toml").Return(nil, "", errors.New("boom"))
		cmd := (&GenerateCommand{}).WithDependencies(GenerateDependencies{ConfigLoader: loader, Logger: zerolog.Nop()})

		err := cmd.Execute(context.Background(), GenerateOptions{Config: "bad.toml", Header: boolPtr(true)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load project config")
	})

	t.Run("schema load", func(t *testing.T) {
		f := newGenerateFixture(testConfig(), "/project")
		f.schemas.On("LoadFile", "missing.json").Return(nil, errors.New("no such file"))

		err := f.cmd.Execute(context.Background(), GenerateOptions{Schema: "missing.json", Header: boolPtr(true)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such file")
	})

	t.Run("write", func(t *testing.T) {
		f := newGenerateFixture(testConfig(), "/project")
		f.fs.writeFileErr = errors.New("disk full")
		f.schemas.On("LoadFile", "math_ops.json").Return(testSchema(), nil)

		err := f.cmd.Execute(context.Background(), GenerateOptions{Schema: "math_ops.json", Header: boolPtr(true)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestGenerateCommand_Execute_EndToEnd(t *testing.T) {
	// Test: real config discovery, schema parsing and file output
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gmockgen.yaml"), []byte(`author: Jane Doe
year: 2024
schema: math_ops.yaml
output: generated
header: true
mock: true
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "math_ops.yaml"), []byte(`file:
  name: math_ops.h
  language: C
  include: [stdint.h]
  gmock_ready: true
  api:
    - return: int
      name: add
      args: [int a, int b]
      doxygen_ready: true
`), 0o644))

	ctrl := &Controller{Flags: &Flags{Config: filepath.Join(dir, "gmockgen.yaml")}, Stdout: &bytes.Buffer{}}
	logger := zerolog.Nop()
	ctrl.Logger = &logger

	require.NoError(t, ctrl.Generate(context.Background(), GenerateOptions{}))

	for _, name := range []string{"math_ops.h", "MockMathOps.hpp", "MockMathOps.cpp"} {
		_, err := os.Stat(filepath.Join(dir, "generated", name))
		assert.NoError(t, err, name)
	}
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "", resolvePath("/root", ""))
	assert.Equal(t, "/abs/x.json", resolvePath("/root", "/abs/x.json"))
	assert.Equal(t, filepath.Join("/root", "x.json"), resolvePath("/root", "x.json"))
}
