package types

import "errors"

// Sentinel error kinds shared by the domain packages. Callers match them with errors.Is.
var (
	// ErrInvalidInput reports malformed input: non-finite longitudes, unknown
	// ayanamsa or house system identifiers, horary numbers out of range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoMatchFound reports a horary search that exhausted its window.
	ErrNoMatchFound = errors.New("no match found")

	// ErrAmbiguousClassification signals a broken sub-lord reference table.
	ErrAmbiguousClassification = errors.New("ambiguous classification")
)
