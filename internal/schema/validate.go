package schema

import (
	"strings"

	"github.com/okra-platform/gmockgen/internal/errs"
)

// Validate performs presence checks on a decoded schema. It does not
// interpret types or names beyond that.
func Validate(s *Schema) error {
	if s == nil {
		return errs.Wrap(errs.ErrMissingField, "file")
	}

	f := s.File
	if f.Name == "" {
		return errs.Wrap(errs.ErrMissingField, "file.name")
	}
	if n := strings.Count(f.Name, "."); n != 1 {
		return errs.WithHint(
			errs.Wrapf(errs.ErrInvalidSchema, "file.name %q has %d extension separators", f.Name, n),
			"file.name must look like foo_bar.h",
		)
	}
	if f.BaseName() == "" {
		return errs.Wrapf(errs.ErrInvalidSchema, "file.name %q has an empty base name", f.Name)
	}

	for i, inc := range f.Include {
		if strings.TrimSpace(inc) == "" {
			return errs.Wrapf(errs.ErrMissingField, "file.include[%d]", i)
		}
	}

	for i, fn := range f.API {
		if fn.Name == "" {
			return errs.Wrapf(errs.ErrMissingField, "file.api[%d].name", i)
		}
		if fn.Return == "" {
			return errs.Wrapf(errs.ErrMissingField, "file.api[%d].return", i)
		}
		for j, arg := range fn.Args {
			if arg.Raw != "" {
				continue
			}
			if arg.DType == "" {
				return errs.Wrapf(errs.ErrMissingField, "file.api[%d].args[%d].dtype", i, j)
			}
			if arg.Value == "" {
				return errs.Wrapf(errs.ErrMissingField, "file.api[%d].args[%d].value", i, j)
			}
		}
	}

	return nil
}
