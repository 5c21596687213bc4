package codegen

import (
	"sort"
	"strings"

	"github.com/okra-platform/gmockgen/internal/codegen/dialect"
	"github.com/okra-platform/gmockgen/internal/errs"
)

// Factory builds a header backend for the given options
type Factory func(opts Options) dialect.Dialect

// Registry maps schema language tags to header backends
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a backend factory for a language tag
func (r *Registry) Register(language string, factory Factory) {
	r.factories[language] = factory
}

// Get returns the backend for a language tag
func (r *Registry) Get(language string, opts Options) (dialect.Dialect, error) {
	factory, exists := r.factories[language]
	if !exists {
		return nil, errs.WithHintf(
			errs.Wrapf(errs.ErrUnsupportedLanguage, "%q", language),
			"supported languages: %s", strings.Join(r.Languages(), ", "),
		)
	}

	return factory(opts), nil
}

// Languages returns the registered tags in sorted order
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.factories))
	for lang := range r.factories {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
