package cpp

import (
	"fmt"
	"strings"

	"github.com/okra-platform/gmockgen/internal/codegen/dialect"
	"github.com/okra-platform/gmockgen/internal/codegen/writer"
	"github.com/okra-platform/gmockgen/internal/schema"
)

// Tag is the dialect tag of the C++ backend
const Tag = "C++"

const indent = "  "

// Mocking framework headers prepended to mock include blocks
var frameworkIncludes = []string{"gmock/gmock.h", "gtest/gtest.h"}

// Generator emits class based C++ declarations. In mock mode it produces
// gMock scaffolding instead of a plain virtual interface.
type Generator struct {
	dialect.Shared
	mock bool
}

var _ dialect.ClassDialect = (*Generator)(nil)

// NewGenerator creates a C++ backend. ext is the extension of the file
// being produced (".hpp" for headers, ".cpp" for sources).
func NewGenerator(author string, year int, ext string, mock bool) *Generator {
	return &Generator{
		Shared: dialect.NewShared(dialect.Identity{
			Author: author,
			Year:   year,
			Tag:    Tag,
			Ext:    ext,
		}),
		mock: mock,
	}
}

// FunctionDeclaration renders a member declaration.
//
//	plain, base:    virtual R f(T a);
//	plain, derived: R f(T a) override;
//	mock, base:     virtual R f(T a) = 0;
//	mock, derived:  MOCK_METHOD1(f, R(T a));
//
// Doxygen blocks are only emitted in plain mode.
func (g *Generator) FunctionDeclaration(fn schema.Function, scope dialect.Scope) (string, error) {
	params := splitArgs(fn)
	args := make([]string, 0, len(params))
	for _, p := range params {
		args = append(args, p.Decl)
	}
	joined := writer.JoinArgs(args)

	w := writer.NewWriter("")
	if fn.DoxygenReady && !g.mock {
		lines := []string{"@brief " + fn.Name}
		for _, p := range params {
			lines = append(lines, "@param "+p.Type)
		}
		lines = append(lines, "@return "+fn.Return)
		w.WriteDocBlock(lines)
	}

	switch {
	case g.mock && scope == dialect.Derived:
		w.WriteLinef("MOCK_METHOD%d(%s, %s(%s));", len(params), fn.Name, fn.Return, joined)
	case g.mock:
		w.WriteLinef("virtual %s %s(%s) = 0;", fn.Return, fn.Name, joined)
	case scope == dialect.Derived:
		w.WriteLinef("%s %s(%s) override;", fn.Return, fn.Name, joined)
	default:
		w.WriteLinef("virtual %s %s(%s);", fn.Return, fn.Name, joined)
	}

	return w.String(), nil
}

// IncludeBlock renders the includes for a header. In mock mode the
// framework headers come first and the given headers are wrapped in
// extern "C".
func (g *Generator) IncludeBlock(headers []string) string {
	return g.Includes(headers, false)
}

// Includes renders an include block. bypassExtern emits the headers as
// plain includes even in mock mode.
func (g *Generator) Includes(headers []string, bypassExtern bool) string {
	w := writer.NewWriter("")

	if !g.mock || bypassExtern {
		for _, line := range dialect.IncludeLines(headers) {
			w.WriteLine(line)
		}
		return w.String()
	}

	for _, line := range dialect.IncludeLines(frameworkIncludes) {
		w.WriteLine(line)
	}
	w.BlankLine()
	w.WriteBlock(`extern "C" {`, "}", func() {
		for _, line := range dialect.IncludeLines(headers) {
			w.WriteLine(line)
		}
	})
	return w.String()
}

// ClassDefinitionBegin opens `class <derived> : public <base>` or
// `class <base>` when derived is empty. In mock mode a virtual destructor
// follows the access specifier.
func (g *Generator) ClassDefinitionBegin(base, derived string) string {
	name := base
	w := writer.NewWriter(indent)
	if derived == "" {
		w.WriteLinef("class %s {", base)
	} else {
		name = derived
		w.WriteLinef("class %s : public %s {", derived, base)
	}
	w.WriteLine(" public:")
	if g.mock {
		w.Indent()
		w.WriteLinef("virtual ~%s() {}", name)
		w.Dedent()
	}
	return w.String()
}

// ClassDefinitionEnd closes a class
func (g *Generator) ClassDefinitionEnd() string {
	return "};\n"
}

// PointerName is the name of the global mock instance for a class
func PointerName(className string) string {
	return className + "Ptr"
}

// ExternObjectDefinition declares the global instance forwarding bodies call into
func (g *Generator) ExternObjectDefinition(className string) string {
	return fmt.Sprintf("extern %s *%s;\n", className, PointerName(className))
}

// FunctionImplementation renders a free function that forwards the call
// to the global instance of className, passing parameter names only.
func (g *Generator) FunctionImplementation(fn schema.Function, className string) (string, error) {
	params := splitArgs(fn)
	args := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for _, p := range params {
		args = append(args, p.Decl)
		values = append(values, p.Name)
	}

	w := writer.NewWriter(indent)
	w.WriteBlock(fmt.Sprintf("%s %s(%s) {", fn.Return, fn.Name, writer.JoinArgs(args)), "}", func() {
		w.WriteLinef("return %s->%s(%s);", PointerName(className), fn.Name, writer.JoinArgs(values))
	})
	return w.String(), nil
}

// splitArgs names every parameter so it can be forwarded. Unnamed
// parameters become arg<i>; a lone "void" means no parameters.
func splitArgs(fn schema.Function) []schema.Param {
	if len(fn.Args) == 1 && strings.TrimSpace(fn.Args[0].Token()) == "void" {
		return nil
	}
	params := make([]schema.Param, 0, len(fn.Args))
	for i, arg := range fn.Args {
		params = append(params, arg.Param(fmt.Sprintf("arg%d", i)))
	}
	return params
}
