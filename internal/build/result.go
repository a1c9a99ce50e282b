package build

import (
	"errors"

	"sumtype-generator/internal/model"
)

//go:generate go tool stringer -type=Outcome -linecomment -output=outcome_string.go

// Outcome classifies the result of building one candidate.
type Outcome int

const (
	Built   Outcome = iota // built
	Skipped                // skipped
	Failed                 // failed
)

// Result is the tagged result of building one candidate.
type Result struct {
	Outcome Outcome
	// Spec is set when Outcome is Built.
	Spec model.UnionSpec
	// Err is set when Outcome is Failed.
	Err error
}

// Sentinel errors wrapped by build failures.
var (
	ErrCollision           = errors.New("name collision")
	ErrIdentifierCollision = errors.New("identifier collision")
	ErrInvalidName         = errors.New("invalid name")
	ErrUnresolved          = errors.New("unresolved argument")
	ErrMissingArgument     = errors.New("missing argument")
)
