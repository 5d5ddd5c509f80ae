package errors

import (
	e "errors"
	"fmt"
)

// Kind classifies the failures that abort processing of a single file.
type Kind int

const (
	Unknown Kind = iota
	FileNotFound
	IOError
	BadSignature
	Unsupported
	MalformedHeader
	TruncatedFile
	MalformedPixelData
	OutOfRange
	AllocationFailure
	InvalidScale
)

var kindNames = map[Kind]string{
	Unknown:            "error",
	FileNotFound:       "file not found",
	IOError:            "i/o error",
	BadSignature:       "bad signature",
	Unsupported:        "unsupported format",
	MalformedHeader:    "malformed header",
	TruncatedFile:      "truncated file",
	MalformedPixelData: "malformed pixel data",
	OutOfRange:         "out of range",
	AllocationFailure:  "allocation failure",
	InvalidScale:       "invalid scale",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return s
}

// Error is an error of a known Kind, optionally tied to a file path.
type Error struct {
	Kind Kind
	Path string
	msg  string
	err  error
}

func (x *Error) Error() string {
	s := x.Kind.String()
	if x.Path != "" {
		s = s + ": " + x.Path
	}
	if x.msg != "" {
		s = s + ": " + x.msg
	}
	if x.err != nil {
		s = s + ": " + x.err.Error()
	}
	return s
}

func (x *Error) Unwrap() error {
	return x.err
}

// New creates an error of the given kind from a format string.
func New(k Kind, msg string, v ...interface{}) error {
	return &Error{Kind: k, msg: fmt.Sprintf(msg, v...)}
}

// Wrap wraps err as an error of the given kind.
// The message can contain formatting parameters and may be empty.
func Wrap(k Kind, err error, msg string, v ...interface{}) error {
	return &Error{Kind: k, msg: fmt.Sprintf(msg, v...), err: err}
}

// WithPath attaches a file path to err.
//
// Errors without a Kind are wrapped as Unknown. A path that is already set is kept.
func WithPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var x *Error
	if e.As(err, &x) {
		if x.Path != "" {
			return err
		}
		c := *x
		c.Path = path
		return &c
	}
	return &Error{Kind: Unknown, Path: path, err: err}
}

// KindOf returns the Kind of err, Unknown if err carries none.
func KindOf(err error) Kind {
	var x *Error
	if e.As(err, &x) {
		return x.Kind
	}
	return Unknown
}

// PathOf returns the file path attached to err, if any.
func PathOf(err error) string {
	var x *Error
	if e.As(err, &x) {
		return x.Path
	}
	return ""
}

// Is checks if err is of the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func IsNotFound(err error) bool {
	return Is(err, FileNotFound)
}

func IsBadSignature(err error) bool {
	return Is(err, BadSignature)
}

func IsTruncated(err error) bool {
	return Is(err, TruncatedFile)
}

func IsMalformed(err error) bool {
	return Is(err, MalformedPixelData) || Is(err, MalformedHeader)
}

func IsOutOfRange(err error) bool {
	return Is(err, OutOfRange)
}
