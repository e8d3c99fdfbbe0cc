package template

import (
	"errors"

	"github.com/hydro-pipeline/hydro/internal/pattern"
)

var (
	// ErrNoSource is returned by Load when the tree was constructed
	// without a schema source.
	ErrNoSource = errors.New("no schema source configured")

	// ErrNilTokens is returned when path resolution is given a nil token
	// map. An empty map is valid input; nil is a caller bug.
	ErrNilTokens = errors.New("tokens map is nil")

	// ErrKeyNotFound is returned by BuildPath for logical keys absent
	// from the compiled index.
	ErrKeyNotFound = errors.New("template key not found")
)

// MissingTokenError is returned when a pattern's placeholders cannot all
// be filled from the supplied tokens.
type MissingTokenError = pattern.MissingTokenError
