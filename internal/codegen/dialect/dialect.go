// Package dialect defines the contract every output language backend
// implements, plus the boilerplate all backends share.
package dialect

import (
	"fmt"
	"strings"

	"github.com/okra-platform/gmockgen/internal/codegen/writer"
	"github.com/okra-platform/gmockgen/internal/errs"
	"github.com/okra-platform/gmockgen/internal/schema"
)

// Scope tells a backend where a declaration lives
type Scope int

const (
	// Free is a file-scope declaration
	Free Scope = iota
	// Base is a member of the interface class
	Base
	// Derived is a member of the implementing (or mock) class
	Derived
)

// Dialect is the capability set every backend provides
type Dialect interface {
	// Language returns the dialect tag (e.g. "C", "C++")
	Language() string

	// Extension returns the header extension including the dot (e.g. ".h")
	Extension() string

	Copyright() string
	FileDoxygen(moduleName string) string
	HeaderGuardBegin(moduleName string) string
	HeaderGuardEnd(moduleName string) string

	// FunctionDeclaration renders one declaration, optionally preceded by a
	// doxygen block
	FunctionDeclaration(fn schema.Function, scope Scope) (string, error)

	// IncludeBlock renders one angle-bracket include per header, in order
	IncludeBlock(headers []string) string
}

// ClassDialect is implemented by backends that can emit classes
type ClassDialect interface {
	Dialect

	// ClassDefinitionBegin opens a class. derived may be empty.
	ClassDefinitionBegin(base, derived string) string
	ClassDefinitionEnd() string
}

// Classes returns d as a ClassDialect or ErrUnsupportedFeature
func Classes(d Dialect) (ClassDialect, error) {
	if cd, ok := d.(ClassDialect); ok {
		return cd, nil
	}
	return nil, errs.Wrapf(errs.ErrUnsupportedFeature, "%s: class definitions", d.Language())
}

// Identity carries the values the shared boilerplate is rendered from
type Identity struct {
	Author string
	Year   int
	Tag    string
	Ext    string
}

// Shared implements the non-overridable part of the contract. Backends embed it.
type Shared struct {
	Identity
}

// NewShared creates the shared boilerplate for a backend identity
func NewShared(id Identity) Shared {
	return Shared{Identity: id}
}

// Language returns the dialect tag
func (s Shared) Language() string {
	return s.Tag
}

// Extension returns the header extension
func (s Shared) Extension() string {
	return s.Ext
}

// Copyright returns the single-line banner
func (s Shared) Copyright() string {
	return fmt.Sprintf("/** Copyright (c) %d %s **/\n", s.Year, s.Author)
}

// FileDoxygen documents the generated file
func (s Shared) FileDoxygen(moduleName string) string {
	w := writer.NewWriter("")
	w.WriteDocBlock([]string{
		fmt.Sprintf("@file %s%s", moduleName, s.Ext),
		fmt.Sprintf("@brief Contains datatypes, definitions for %s module", moduleName),
		fmt.Sprintf("@author %s", s.Author),
	})
	return w.String()
}

// GuardSymbol returns the include guard macro for a module
func (s Shared) GuardSymbol(moduleName string) string {
	ext := strings.ToUpper(strings.TrimPrefix(s.Ext, "."))
	return strings.ToUpper(moduleName) + "_" + ext
}

// HeaderGuardBegin opens the include guard
func (s Shared) HeaderGuardBegin(moduleName string) string {
	sym := s.GuardSymbol(moduleName)
	return fmt.Sprintf("#ifndef %s\n#define %s\n", sym, sym)
}

// HeaderGuardEnd closes the include guard opened by HeaderGuardBegin
func (s Shared) HeaderGuardEnd(moduleName string) string {
	return fmt.Sprintf("#endif /* %s */\n", s.GuardSymbol(moduleName))
}

// IncludeLines renders `#include <h>` for each header
func IncludeLines(headers []string) []string {
	lines := make([]string, 0, len(headers))
	for _, h := range headers {
		lines = append(lines, "#include <"+h+">")
	}
	return lines
}
