package codegen

import (
	"github.com/okra-platform/gmockgen/internal/errs"
)

// Kind identifies one of the three generated artifacts
type Kind int

const (
	KindHeader Kind = iota
	KindMockHeader
	KindMockSource
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindMockHeader:
		return "mock header"
	case KindMockSource:
		return "mock source"
	default:
		return "unknown"
	}
}

// Artifact is one fully assembled output file
type Artifact struct {
	Kind    Kind
	Name    string
	Content []byte
}

// Options contains the identity every backend renders into its boilerplate
type Options struct {
	// Author is embedded in copyright banners and file doxygen blocks
	Author string

	// Year is the copyright year
	Year int
}

// Selection picks the pipelines to run
type Selection struct {
	Header bool
	Mock   bool
}

// Validate rejects a selection with no pipelines
func (s Selection) Validate() error {
	if !s.Header && !s.Mock {
		return errs.WithHint(errs.ErrNoPipeline, "pass --header, --mock or both")
	}
	return nil
}
