// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrAlreadyRegistered indicates that a batch insert collided
// with the unique index on college_id and should be reported to the
// user as an actionable message rather than a generic store failure.
package repository

import "errors"

// ErrAlreadyRegistered is returned when a bulk insert violates the
// unique constraint on registrations.college_id, meaning one or more
// of the submitted IDs already exist in the table. Handlers should
// translate this into an HTTP 409 response.
var ErrAlreadyRegistered = errors.New("one or more college IDs are already registered")
