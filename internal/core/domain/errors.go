package domain

import "fmt"

// Rewriting errors surfaced to the caller
var (
	// ErrInvalidUser is returned when the target user is empty or
	// whitespace-only. It is raised before any parsing takes place.
	ErrInvalidUser = fmt.Errorf("target user cannot be empty")

	// ErrNoFilename is returned when no filename is available. The caller
	// is expected to prompt rather than have the core guess a path.
	ErrNoFilename = fmt.Errorf("no filename to edit")
)

// ErrUnparsableAddress wraps a codec failure; the core has no fallback
// transport guess when a raw path cannot be decomposed.
func ErrUnparsableAddress(raw string, err error) error {
	return fmt.Errorf("cannot parse remote address %q: %w", raw, err)
}
