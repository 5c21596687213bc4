package c

import (
	"fmt"
	"strings"

	"github.com/okra-platform/gmockgen/internal/codegen/dialect"
	"github.com/okra-platform/gmockgen/internal/codegen/writer"
	"github.com/okra-platform/gmockgen/internal/errs"
	"github.com/okra-platform/gmockgen/internal/schema"
)

// Tag is the dialect tag used in schemas
const Tag = "C"

// Generator emits flat C prototypes. It has no class support.
type Generator struct {
	dialect.Shared
}

var _ dialect.Dialect = (*Generator)(nil)

// NewGenerator creates a C backend
func NewGenerator(author string, year int) *Generator {
	return &Generator{
		Shared: dialect.NewShared(dialect.Identity{
			Author: author,
			Year:   year,
			Tag:    Tag,
			Ext:    ".h",
		}),
	}
}

// FunctionDeclaration renders `<return> <name>(<args>);`. Arguments are
// emitted as opaque tokens. Only file scope is valid in C.
func (g *Generator) FunctionDeclaration(fn schema.Function, scope dialect.Scope) (string, error) {
	if scope != dialect.Free {
		return "", errs.Wrapf(errs.ErrUnsupportedFeature, "%s: member declaration of %s", Tag, fn.Name)
	}

	args := make([]string, 0, len(fn.Args))
	for _, arg := range fn.Args {
		args = append(args, arg.Token())
	}

	w := writer.NewWriter("")
	if fn.DoxygenReady {
		lines := []string{"@brief " + fn.Name}
		for _, arg := range args {
			lines = append(lines, "@param "+arg)
		}
		lines = append(lines, "@return "+fn.Return)
		w.WriteDocBlock(lines)
	}
	w.WriteLinef("%s %s(%s);", fn.Return, fn.Name, writer.JoinArgs(args))

	return w.String(), nil
}

// IncludeBlock renders one include per header with no wrapping
func (g *Generator) IncludeBlock(headers []string) string {
	if len(headers) == 0 {
		return ""
	}
	return fmt.Sprintf("%s\n", strings.Join(dialect.IncludeLines(headers), "\n"))
}
