package bmpscale

import (
	"github.com/akeil/bmpscale/internal/errors"
)

// ErrorKind classifies errors returned by this package and its sub-packages.
type ErrorKind = errors.Kind

const (
	UnknownError       = errors.Unknown
	FileNotFound       = errors.FileNotFound
	IOError            = errors.IOError
	BadSignature       = errors.BadSignature
	Unsupported        = errors.Unsupported
	MalformedHeader    = errors.MalformedHeader
	TruncatedFile      = errors.TruncatedFile
	MalformedPixelData = errors.MalformedPixelData
	OutOfRange         = errors.OutOfRange
	AllocationFailure  = errors.AllocationFailure
	InvalidScale       = errors.InvalidScale
)

// KindOf returns the kind of the given error, UnknownError if it has none.
func KindOf(err error) ErrorKind {
	return errors.KindOf(err)
}

// PathOf returns the file an error refers to, if any.
func PathOf(err error) string {
	return errors.PathOf(err)
}

// IsNotFound checks if the given error is a "file not found" error.
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}

// IsBadSignature checks if the input was not a bitmap file.
func IsBadSignature(err error) bool {
	return errors.IsBadSignature(err)
}

// NewError creates an error of the given kind.
func NewError(k ErrorKind, msg string, v ...interface{}) error {
	return errors.New(k, msg, v...)
}

// WrapError wraps err as an error of the given kind for the file at path.
func WrapError(k ErrorKind, err error, path string) error {
	return errors.WithPath(errors.Wrap(k, err, ""), path)
}
