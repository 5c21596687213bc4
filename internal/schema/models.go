package schema

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Schema is the root of a parsed interface description
type Schema struct {
	File File `json:"file" yaml:"file"`
}

// File describes one generated header and its API surface
type File struct {
	Name       string     `json:"name" yaml:"name"`
	Language   string     `json:"language,omitempty" yaml:"language,omitempty"`
	Languages  []string   `json:"languages,omitempty" yaml:"languages,omitempty"`
	Include    []string   `json:"include" yaml:"include"`
	GmockReady bool       `json:"gmock_ready" yaml:"gmock_ready"`
	API        []Function `json:"api" yaml:"api"`
}

// Function represents one API entry
type Function struct {
	Return       string     `json:"return" yaml:"return"`
	Name         string     `json:"name" yaml:"name"`
	Args         []Argument `json:"args" yaml:"args"`
	DoxygenReady bool       `json:"doxygen_ready" yaml:"doxygen_ready"`
}

// Argument is a single parameter. It is either an opaque pre-formatted
// token ("int a") or a dtype/value record.
type Argument struct {
	Raw   string `json:"-" yaml:"-"`
	DType string `json:"dtype,omitempty" yaml:"dtype,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Token returns the argument as a single "type name" token
func (a Argument) Token() string {
	if a.Raw != "" {
		return a.Raw
	}
	return strings.TrimSpace(a.DType + " " + a.Value)
}

// Param is an argument prepared for C++ declarations and forwarding calls
type Param struct {
	// Type is the declared type without the parameter name or array suffix
	Type string
	// Name is the parameter name, or the fallback for unnamed parameters
	Name string
	// Decl is the full parameter declaration
	Decl string
}

// keywords that end a type rather than name a parameter ("unsigned int")
var typeWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"const": true, "volatile": true, "restrict": true, "bool": true,
	"_Bool": true, "_Complex": true, "struct": true, "union": true, "enum": true,
}

// keywords whose following identifier is a tag, not a name ("struct point")
var tagWords = map[string]bool{"struct": true, "union": true, "enum": true}

// Param splits the argument into type and name. Opaque tokens are split at
// the trailing identifier after any array suffix ("int buf[4]" -> "int",
// "buf"). A token without a parameter name keeps its full text as the type
// and is named fallback.
func (a Argument) Param(fallback string) Param {
	if a.Raw == "" {
		p := Param{Type: a.DType, Name: a.Value}
		if p.Name == "" {
			p.Name = fallback
		}
		p.Decl = strings.TrimSpace(p.Type + " " + p.Name)
		return p
	}

	raw := strings.TrimSpace(a.Raw)
	body, suffix := cutArraySuffix(raw)
	dtype, name := splitIdentifier(body)
	if name == "" || dtype == "" || typeWords[name] || tagWords[lastWord(dtype)] {
		return Param{Type: body, Name: fallback, Decl: body + " " + fallback + suffix}
	}
	return Param{Type: dtype, Name: name, Decl: raw}
}

// cutArraySuffix splits trailing "[...]" groups off a declaration
func cutArraySuffix(s string) (body, suffix string) {
	body = s
	for strings.HasSuffix(body, "]") {
		open := strings.LastIndex(body, "[")
		if open < 0 {
			break
		}
		body = strings.TrimRightFunc(body[:open], unicode.IsSpace)
	}
	return body, s[len(body):]
}

// splitIdentifier splits s at its trailing identifier
func splitIdentifier(s string) (dtype, name string) {
	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i -= size
	}
	name = s[i:]
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(first) {
		return s, ""
	}
	return strings.TrimSpace(s[:i]), name
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// UnmarshalJSON accepts either a string or a {dtype, value} object
func (a *Argument) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*a = Argument{Raw: raw}
		return nil
	}

	type record Argument
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*a = Argument(r)
	return nil
}

// MarshalJSON writes opaque tokens back as plain strings
func (a Argument) MarshalJSON() ([]byte, error) {
	if a.Raw != "" {
		return json.Marshal(a.Raw)
	}
	type record Argument
	return json.Marshal(record(a))
}

// UnmarshalYAML accepts either a scalar or a {dtype, value} mapping
func (a *Argument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*a = Argument{Raw: node.Value}
		return nil
	}

	type record Argument
	var r record
	if err := node.Decode(&r); err != nil {
		return err
	}
	*a = Argument(r)
	return nil
}

// MarshalYAML mirrors MarshalJSON
func (a Argument) MarshalYAML() (any, error) {
	if a.Raw != "" {
		return a.Raw, nil
	}
	type record Argument
	return record(a), nil
}

// BaseName returns the file name without its extension ("foo_bar.h" -> "foo_bar")
func (f File) BaseName() string {
	name, _, _ := strings.Cut(f.Name, ".")
	return name
}

// Dialects returns the requested header dialect tags. The legacy
// "languages" list is used only when "language" is empty.
func (f File) Dialects() []string {
	if f.Language != "" {
		return []string{f.Language}
	}

	seen := make(map[string]bool, len(f.Languages))
	var tags []string
	for _, tag := range f.Languages {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
