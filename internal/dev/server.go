package dev

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/okra-platform/gmockgen/internal/errs"
)

// DefaultDebounce is how long the server waits after the last change before regenerating
const DefaultDebounce = 200 * time.Millisecond

// Regenerator rebuilds every selected artifact from the schema on disk
type Regenerator interface {
	Regenerate(ctx context.Context) error
}

// RegeneratorFunc adapts a function to the Regenerator interface
type RegeneratorFunc func(ctx context.Context) error

func (f RegeneratorFunc) Regenerate(ctx context.Context) error {
	return f(ctx)
}

// Options configures the watch loop
type Options struct {
	Root     string
	Patterns []string
	Exclude  []string
	Debounce time.Duration
}

// Server regenerates artifacts whenever a watched schema file changes
type Server struct {
	regen  Regenerator
	opts   Options
	logger zerolog.Logger

	// pending debounce timer
	mu    sync.Mutex
	timer *time.Timer

	// serializes regeneration runs
	buildMutex sync.Mutex
}

// NewServer creates a watch server rooted at opts.Root
func NewServer(regen Regenerator, opts Options, logger zerolog.Logger) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Server{
		regen:  regen,
		opts:   opts,
		logger: logger.With().Str("component", "watch").Logger(),
	}
}

// Start runs an initial generation and then watches until ctx is done.
// Generation failures are logged and never stop the loop.
func (s *Server) Start(ctx context.Context) error {
	s.rebuild(ctx)

	watcher, err := NewFileWatcher(s.opts.Patterns, s.opts.Exclude, func(path string, op fsnotify.Op) {
		s.handleFileChange(ctx, path, op)
	}, s.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()
	defer s.stopTimer()

	if err := watcher.AddDirectory(s.opts.Root); err != nil {
		return errs.Wrap(err, "failed to watch project directory")
	}

	s.logger.Info().Str("root", s.opts.Root).Strs("patterns", s.opts.Patterns).Msg("watching for changes")

	err = watcher.Start(ctx)
	if errs.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleFileChange is called when a watched file changes
func (s *Server) handleFileChange(ctx context.Context, path string, op fsnotify.Op) {
	if op == fsnotify.Chmod {
		return
	}

	relPath, err := filepath.Rel(s.opts.Root, path)
	if err != nil {
		relPath = path
	}
	s.logger.Debug().Str("path", relPath).Str("op", op.String()).Msg("file changed")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		s.rebuild(ctx)
	})
}

func (s *Server) rebuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	start := time.Now()
	if err := s.regen.Regenerate(ctx); err != nil {
		s.logger.Error().Err(err).Msg("regeneration failed")
		return
	}
	s.logger.Info().Dur("took", time.Since(start)).Msg("regenerated")
}

func (s *Server) stopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
}
