package goglob

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors, checked with errors.Is. Values mirror the error codes of
// spec §6/§7 (NOSPACE=1, ABORTED=2, NOMATCH=3); InvalidPattern and
// UnsupportedFlag have no ABI numeric code and exist only on the Go side.
var (
	// ErrNoMatch is returned when a call completed successfully but matched
	// nothing, and neither NOCHECK nor NOMAGIC rescued a literal result.
	ErrNoMatch = errors.New("goglob: no match")

	// ErrAborted is returned when a directory could not be read and ERR was
	// set, or the caller's error predicate returned non-zero.
	ErrAborted = errors.New("goglob: aborted")

	// ErrNoSpace stands for the NOSPACE code. No function in this package
	// returns it.
	ErrNoSpace = errors.New("goglob: no space")

	// ErrUnsupportedFlag is returned for flag bits goglob does not implement,
	// namely ALTDIRFUNC.
	ErrUnsupportedFlag = errors.New("goglob: unsupported flag")

	// ErrInvalidPattern is returned when a path segment cannot be compiled,
	// which happens for an unclosed extglob group. Other malformed syntax
	// (an unterminated '[', an unbalanced brace) is matched literally, and a
	// TILDE_CHECK lookup failure is reported as ErrNoMatch.
	ErrInvalidPattern = errors.New("goglob: invalid pattern")
)

// GlobError carries the path that triggered a fatal error alongside the
// underlying sentinel, for callers that want more than errors.Is.
type GlobError struct {
	Path string
	Err  error
}

func (e *GlobError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err.Error())
}

func (e *GlobError) Unwrap() error { return e.Err }

func wrapPath(path string, err error) error {
	if err == nil {
		return nil
	}
	return &GlobError{Path: path, Err: err}
}

// ErrFunc is the caller-supplied error predicate invoked when a directory
// cannot be read. It receives the failing path and the OS error; returning
// true aborts the walk with ErrAborted, false skips the directory silently.
type ErrFunc func(path string, err error) bool
