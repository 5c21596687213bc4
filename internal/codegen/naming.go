package codegen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okra-platform/gmockgen/internal/codegen/cpp"
)

const mockPrefix = "Mock"

// ModuleName derives the PascalCase module name from a schema base name:
// "foo_bar" -> "FooBar". Each underscore separated segment is title-cased.
func ModuleName(baseName string) string {
	caser := cases.Title(language.Und)

	var sb strings.Builder
	for _, seg := range strings.Split(baseName, "_") {
		sb.WriteString(caser.String(seg))
	}
	return sb.String()
}

// MockModuleName is the module name of the mock artifacts ("MockFooBar")
func MockModuleName(moduleName string) string {
	return mockPrefix + moduleName
}

// MockHeaderName is the file name of the mock header ("MockFooBar.hpp")
func MockHeaderName(moduleName string) string {
	return MockModuleName(moduleName) + ".hpp"
}

// MockSourceName is the file name of the mock source ("MockFooBar.cpp")
func MockSourceName(moduleName string) string {
	return MockModuleName(moduleName) + ".cpp"
}

// MockPointerName is the global instance the mock source forwards to ("FooBarPtr")
func MockPointerName(moduleName string) string {
	return cpp.PointerName(moduleName)
}
