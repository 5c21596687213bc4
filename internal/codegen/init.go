package codegen

import (
	"github.com/okra-platform/gmockgen/internal/codegen/c"
	"github.com/okra-platform/gmockgen/internal/codegen/dialect"
)

// DefaultRegistry holds the header dialects the generator supports
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(c.Tag, func(opts Options) dialect.Dialect {
		return c.NewGenerator(opts.Author, opts.Year)
	})
}
