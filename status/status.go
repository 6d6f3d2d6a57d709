// Package status defines the outcome codes reported by the fitting engine.
//
// The numeric values are part of the engine boundary and never change:
//
//	0  success
//	1  insufficient samples
//	2  no solution found
//	3  singular matrix (near-zero pivot)
//	4  matrix not positive definite (negative pivot)
//	5  matrix not symmetric
//	6  invalid solver mode
//
// Older documentation of the routine these codes come from listed 3 as
// "not symmetric", 4 as "singular" and 5 as "not positive definite". The
// table above is what the solver actually returns and is the one callers
// must rely on.
package status

import (
	"errors"
	"fmt"
)

// Status is an engine outcome code.
type Status int

const (
	// OK means the fit succeeded.
	OK Status = 0
	// InsufficientSamples means fewer samples than basis terms were supplied.
	InsufficientSamples Status = 1
	// NoSolutionFound means refinement did not reduce the residual below the signal energy.
	NoSolutionFound Status = 2
	// SingularMatrix means a factorization pivot was too close to zero.
	SingularMatrix Status = 3
	// NotPositiveDefinite means a factorization pivot was negative.
	NotPositiveDefinite Status = 4
	// NotSymmetric means the normal matrix failed the symmetry check.
	NotSymmetric Status = 5
	// InvalidMode means the solver was invoked with an unknown mode or on a
	// matrix in the wrong state for that mode.
	InvalidMode Status = 6
)

// Sentinel errors, one per non-success status.
var (
	ErrInsufficientSamples = errors.New("insufficient samples")
	ErrNoSolutionFound     = errors.New("no solution found")
	ErrSingularMatrix      = errors.New("matrix is singular")
	ErrNotPositiveDefinite = errors.New("matrix is not positive definite")
	ErrNotSymmetric        = errors.New("matrix is not symmetric")
	ErrInvalidMode         = errors.New("invalid solver mode")
)

var statusNames = map[Status]string{
	OK:                  "ok",
	InsufficientSamples: "insufficient_samples",
	NoSolutionFound:     "no_solution_found",
	SingularMatrix:      "singular_matrix",
	NotPositiveDefinite: "not_positive_definite",
	NotSymmetric:        "not_symmetric",
	InvalidMode:         "invalid_mode",
}

var statusErrors = map[Status]error{
	InsufficientSamples: ErrInsufficientSamples,
	NoSolutionFound:     ErrNoSolutionFound,
	SingularMatrix:      ErrSingularMatrix,
	NotPositiveDefinite: ErrNotPositiveDefinite,
	NotSymmetric:        ErrNotSymmetric,
	InvalidMode:         ErrInvalidMode,
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("status(%d)", int(s))
}

// Code returns the integer code of the status.
func (s Status) Code() int {
	return int(s)
}

// IsOK reports whether s is OK.
func (s Status) IsOK() bool {
	return s == OK
}

// IsMatrixError reports whether s is one of the factorization failures.
func (s Status) IsMatrixError() bool {
	return s == SingularMatrix || s == NotPositiveDefinite || s == NotSymmetric
}

// Err returns nil for OK and the matching sentinel error otherwise.
//
// Unknown codes produce a generic error carrying the code.
func (s Status) Err() error {
	if s == OK {
		return nil
	}
	if err, ok := statusErrors[s]; ok {
		return err
	}

	return fmt.Errorf("unknown status code %d", int(s))
}

// FromError returns the status whose sentinel is wrapped by err.
//
// It returns OK for a nil error and false when err wraps no status sentinel.
func FromError(err error) (Status, bool) {
	if err == nil {
		return OK, true
	}
	for s, sentinel := range statusErrors {
		if errors.Is(err, sentinel) {
			return s, true
		}
	}

	return OK, false
}
