package writer

import (
	"fmt"
	"strings"
)

// Writer builds C-family source text with indentation support
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// NewWriter creates a new code writer with specified indentation string
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes a string without adding a newline
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without adding a newline
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes a string and adds a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and adds a newline
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline adds a newline character
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless the output already ends with one
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		if !strings.HasSuffix(w.sb.String(), "\n") {
			w.Newline()
		}
		w.Newline()
	}
}

// WriteFragment appends a pre-rendered fragment, indenting each of its lines
func (w *Writer) WriteFragment(fragment string) {
	if fragment == "" {
		return
	}
	lines := strings.Split(strings.TrimSuffix(fragment, "\n"), "\n")
	for _, line := range lines {
		if line == "" {
			w.Newline()
			continue
		}
		w.WriteLine(line)
	}
}

// String returns the generated code as a string
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the generated code as a byte slice
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteBlock writes content between an opener and a closer line
// Example: WriteBlock(`extern "C" {`, "}", func() { w.WriteLine("#include <a.h>") })
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteDocBlock writes a doxygen block comment, one tag line per entry
func (w *Writer) WriteDocBlock(lines []string) {
	if len(lines) == 0 {
		return
	}
	w.WriteLine("/**")
	for _, line := range lines {
		w.WriteLinef(" * %s", line)
	}
	w.WriteLine(" */")
}

// JoinArgs joins parameter fragments with ", " and no trailing separator
func JoinArgs(args []string) string {
	return strings.Join(args, ", ")
}
