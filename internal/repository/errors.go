// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a slug
// that matches nothing is a routine 404, while a backend failure is
// something the caller should log and surface as a server error rather
// than silently treating as "not found".
package repository

import "errors"

// ErrPostNotFound is returned when a slug-equality lookup matches no row.
// Handlers should translate this into an HTTP 404 response.  It is kept
// distinct from backend errors so callers can tell "does not exist" apart
// from "database unavailable".
var ErrPostNotFound = errors.New("post not found")
