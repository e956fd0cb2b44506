// Package form holds the pending values of a create/update form.
//
// A Controller is parameterised by the field struct F, the record type T
// it can be filled from, and the write payload P it produces.  Submit
// routes to update when an edit target is set and to create otherwise;
// a successful submit resets the form.
package form

import (
	"context"
	"strings"
	"sync"
)

// Violation is the first failed check of a form.
type Violation struct {
	Field   string
	Message string
}

func (v *Violation) Error() string { return v.Message }

// Required fails when value is empty after trimming.
func Required(field, value, message string) *Violation {
	if strings.TrimSpace(value) == "" {
		return &Violation{Field: field, Message: message}
	}
	return nil
}

// Positive fails when n is not greater than zero.
func Positive(field string, n int, message string) *Violation {
	if n <= 0 {
		return &Violation{Field: field, Message: message}
	}
	return nil
}

// First returns the first non-nil violation.
func First(checks ...*Violation) *Violation {
	for _, v := range checks {
		if v != nil {
			return v
		}
	}
	return nil
}

// Spec describes one form.
type Spec[F any, T any, P any] struct {
	// Blank returns the default field values.
	Blank func() F
	// Seed fills selector fields from the first available option.  It may
	// be nil.
	Seed func(F) F
	// FromItem copies a record into the fields for editing.
	FromItem func(T) F
	// Check returns the first violation or nil.  Trimming happens in
	// Payload; Check sees the raw input.
	Check func(F) *Violation
	// Payload builds the write payload from valid fields.
	Payload func(F) P
}

// Controller is safe for concurrent use.
type Controller[F any, T any, P any] struct {
	mu      sync.Mutex
	spec    Spec[F, T, P]
	fields  F
	editing string
}

func New[F any, T any, P any](spec Spec[F, T, P]) *Controller[F, T, P] {
	c := &Controller[F, T, P]{spec: spec}
	c.fields = c.blank()
	return c
}

func (c *Controller[F, T, P]) blank() F {
	f := c.spec.Blank()
	if c.spec.Seed != nil {
		f = c.spec.Seed(f)
	}
	return f
}

// Fields returns the current values.
func (c *Controller[F, T, P]) Fields() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Edit mutates the current values in place.
func (c *Controller[F, T, P]) Edit(fn func(*F)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.fields)
}

// Reseed applies the selector seed to the current values, typically
// after the reference list has loaded.
func (c *Controller[F, T, P]) Reseed() {
	if c.spec.Seed == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = c.spec.Seed(c.fields)
}

// StartEdit fills the form from item and makes key the update target.
func (c *Controller[F, T, P]) StartEdit(key string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = c.spec.FromItem(item)
	c.editing = key
}

// Editing returns the update target, if any.
func (c *Controller[F, T, P]) Editing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing, c.editing != ""
}

// Reset restores the defaults, re-seeds selectors and clears the edit
// target.
func (c *Controller[F, T, P]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = c.blank()
	c.editing = ""
}

// Validate checks the current values.
func (c *Controller[F, T, P]) Validate() *Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec.Check(c.fields)
}

// Submit validates and then calls update (edit target set) or create.
// A violation is returned as *Violation without calling either.  On
// success the form is reset; on failure the values are kept.
func (c *Controller[F, T, P]) Submit(
	ctx context.Context,
	create func(context.Context, P) error,
	update func(context.Context, string, P) error,
) error {
	c.mu.Lock()
	if v := c.spec.Check(c.fields); v != nil {
		c.mu.Unlock()
		return v
	}
	payload := c.spec.Payload(c.fields)
	target := c.editing
	c.mu.Unlock()

	var err error
	if target != "" {
		err = update(ctx, target, payload)
	} else {
		err = create(ctx, payload)
	}
	if err != nil {
		return err
	}
	c.Reset()
	return nil
}
