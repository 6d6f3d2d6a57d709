// Package errs defines sentinel errors shared across gaussfit packages.
//
// Engine outcomes such as a singular matrix are not errors of this package;
// they are status codes, see package status.
package errs

import "errors"

// Argument errors.
var (
	ErrUnsupportedDegrees = errors.New("unsupported number of basis terms")
	ErrSampleCount        = errors.New("sample slices shorter than sample count")
	ErrSampleLength       = errors.New("x and y sample lengths differ")
	ErrNonFiniteSample    = errors.New("sample is not a finite number")
	ErrInvalidIterations  = errors.New("max iterations must be positive")
	ErrNoSampleSets       = errors.New("no sample sets provided")
)

// Blob errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid header size")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrUnsupportedVersion   = errors.New("unsupported blob version")
	ErrInvalidCompression   = errors.New("invalid compression type")
	ErrInvalidPayloadLength = errors.New("invalid payload length")
	ErrChecksumMismatch     = errors.New("payload checksum mismatch")
	ErrTooManySamples       = errors.New("too many samples")
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)
