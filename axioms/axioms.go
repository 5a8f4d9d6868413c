// Package axioms checks the algebraic structure of a single field or group
// implementation, without reference to any other implementation.
package axioms

import (
	"errors"
	"fmt"
)

// Rounds is the number of random operand sets each property is checked with.
var Rounds = 16

var ErrPropertyViolated = errors.New("property violated")

type suite struct {
	name string
	err  error
}

// check records the first violated property.
func (s *suite) check(ok bool, property string) {
	if !ok && s.err == nil {
		s.err = fmt.Errorf("%s: %s: %w", s.name, property, ErrPropertyViolated)
	}
}

// fail records an unexpected error.
func (s *suite) fail(err error, property string) {
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("%s: %s: %w", s.name, property, err)
	}
}
