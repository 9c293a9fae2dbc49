// Package repository contains data access logic separated from HTTP handlers.
// Sentinel errors defined here let handlers translate failure scenarios into
// the right HTTP status without inspecting driver-specific error strings.
package repository

import "errors"

// ErrPassengerNotFound is returned when a passenger id does not exist.
// Handlers translate this into HTTP 404.
var ErrPassengerNotFound = errors.New("passenger not found")

// ErrDuplicatePassport is returned when an insert or update would violate
// the unique passport constraint. Handlers translate this into HTTP 409.
var ErrDuplicatePassport = errors.New("passport already exists")

// ErrUserExists is returned when registering a user name that is taken.
var ErrUserExists = errors.New("username already exists")
