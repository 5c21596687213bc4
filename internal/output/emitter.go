package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/okra-platform/gmockgen/internal/codegen"
	"github.com/okra-platform/gmockgen/internal/errs"
)

// FileSystem defines the file operations the emitter needs
type FileSystem interface {
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

type osFileSystem struct{}

func (osFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OSFileSystem returns a FileSystem backed by the os package
func OSFileSystem() FileSystem {
	return osFileSystem{}
}

// Emitter writes assembled artifacts into an output directory
type Emitter struct {
	fs     FileSystem
	dir    string
	logger zerolog.Logger
}

// NewEmitter creates an emitter for dir
func NewEmitter(fs FileSystem, dir string, logger zerolog.Logger) *Emitter {
	return &Emitter{
		fs:     fs,
		dir:    dir,
		logger: logger.With().Str("component", "emitter").Logger(),
	}
}

// Path returns the destination of an artifact
func (e *Emitter) Path(a codegen.Artifact) string {
	return filepath.Join(e.dir, a.Name)
}

// Emit creates the output directory and overwrites every artifact in full.
// It returns the written paths in artifact order.
func (e *Emitter) Emit(artifacts []codegen.Artifact) ([]string, error) {
	if len(artifacts) == 0 {
		return nil, nil
	}

	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return nil, errs.Wrapf(err, "failed to create output directory %s", e.dir)
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := e.Path(a)
		if err := e.fs.WriteFile(path, a.Content, 0o644); err != nil {
			return paths, errs.Wrapf(err, "failed to write %s", path)
		}
		e.logger.Info().Str("path", path).Str("kind", a.Kind.String()).Int("bytes", len(a.Content)).Msg("artifact written")
		paths = append(paths, path)
	}
	return paths, nil
}

// List prints the destination and size of each artifact without writing
func (e *Emitter) List(w io.Writer, artifacts []codegen.Artifact) error {
	for _, a := range artifacts {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d bytes\n", e.Path(a), a.Kind, len(a.Content)); err != nil {
			return err
		}
	}
	return nil
}

// Print writes every artifact to w, each preceded by a banner line with its name
func Print(w io.Writer, artifacts []codegen.Artifact) error {
	for i, a := range artifacts {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "// ---- %s ----\n", a.Name); err != nil {
			return err
		}
		if _, err := w.Write(a.Content); err != nil {
			return err
		}
	}
	return nil
}
