// Package stagedconfig implements two-phase per-epoch configuration cells.
// An authorized writer stages a new value at any point during an epoch; the
// reconfiguration orchestrator commits all staged values in one pass at the
// epoch boundary, before the validator set is touched. No tunable ever
// changes mid-epoch.
package stagedconfig

import (
	"fmt"
)

// Validator checks a candidate value before it is staged.
type Validator[T any] func(T) error

// Cell holds one per-epoch tunable with its staged ("pending") update.
type Cell[T any] struct {
	name     string
	current  T
	pending  *T
	validate Validator[T]
}

// New creates a cell with an initial committed value and no validation.
func New[T any](name string, initial T) *Cell[T] {
	return NewValidated(name, initial, nil)
}

// NewValidated creates a cell whose staged values must pass the given
// validator.
func NewValidated[T any](name string, initial T, validate Validator[T]) *Cell[T] {
	return &Cell[T]{
		name:     name,
		current:  initial,
		validate: validate,
	}
}

// Name returns the name the cell registers under.
func (c *Cell[T]) Name() string {
	return c.name
}

// Get returns the currently committed value.
func (c *Cell[T]) Get() T {
	return c.current
}

// Pending returns the staged value, if any.
func (c *Cell[T]) Pending() (T, bool) {
	if c.pending == nil {
		var zero T
		return zero, false
	}
	return *c.pending, true
}

// Stage records a new value to be applied at the next commit. Staging again
// before the commit replaces the previously staged value.
//
// Expected errors during normal operations:
//   - validation error from the cell's validator for a rejected value.
func (c *Cell[T]) Stage(value T) error {
	if c.validate != nil {
		if err := c.validate(value); err != nil {
			return fmt.Errorf("invalid value for config %s: %w", c.name, err)
		}
	}
	v := value
	c.pending = &v
	return nil
}

// Commit applies the staged value, if any, and reports whether the committed
// value changed. Only the reconfiguration orchestrator calls Commit, during
// the epoch-boundary apply step.
func (c *Cell[T]) Commit() bool {
	if c.pending == nil {
		return false
	}
	c.current = *c.pending
	c.pending = nil
	return true
}
