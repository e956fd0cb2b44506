// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to distinguish
// between failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when the requested row or document does not
// exist. Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete cannot proceed because other
// records still depend on the target (e.g. deleting a show with
// reservations, or a test that orders reference). Handlers translate it
// into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidReference is returned when a write points at a parent row
// that does not exist (an order for an unknown test, a reservation for an
// unknown show). Handlers translate it into HTTP 400.
var ErrInvalidReference = errors.New("invalid reference")

// ErrEmailExists is returned by UserRepo.Create for a duplicate email.
var ErrEmailExists = errors.New("email already exists")
