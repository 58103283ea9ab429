package runner

import (
	"errors"
	"fmt"
)

type testCase struct {
	name    string
	path    string
	version string
	fn      TestFunc
}

// Sequence is an ordered, immutable list of test cases built with Builder
type Sequence struct {
	cases []testCase
}

// Len returns the number of cases in the sequence
func (s *Sequence) Len() int {
	return len(s.cases)
}

// Builder assembles a Sequence case by case. Calls chain; errors are
// collected and reported once by Build.
type Builder struct {
	cases []testCase
	errs  []error
}

// NewBuilder creates an empty sequence builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Case appends a test case. Name identifies the case in the report, path
// and version describe the sequence file behind it.
func (b *Builder) Case(name, path, version string, fn TestFunc) *Builder {
	if name == "" {
		b.errs = append(b.errs, errors.New("case name must not be empty"))

		return b
	}
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("case %q has no test function", name))

		return b
	}
	for _, tc := range b.cases {
		if tc.name == name {
			b.errs = append(b.errs, fmt.Errorf("case %q already exists in the sequence", name))

			return b
		}
	}
	if path == "" {
		path = name
	}
	if version == "" {
		version = "1.0"
	}

	b.cases = append(b.cases, testCase{name: name, path: path, version: version, fn: fn})

	return b
}

// Build finalizes the sequence. It fails if any Case call was invalid or if
// no cases were added.
func (b *Builder) Build() (*Sequence, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if len(b.cases) == 0 {
		return nil, errors.New("a sequence needs at least one case")
	}

	return &Sequence{cases: b.cases}, nil
}
