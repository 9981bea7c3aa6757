// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package eaverrors defines the store's error vocabulary as a typed Error
// with a comparable Code, so callers classify failures with errors.Is
// against sentinel codes rather than string matching.
package eaverrors

import "fmt"

// Code identifies a class of failure. Codes are comparable so callers can
// branch on them via errors.As without string matching.
type Code string

const (
	// NotFoundErr indicates a lookup, update, or removal target does not
	// exist.
	NotFoundErr Code = "eavg_not_found"
	// TypeMismatchErr indicates a value operation's data type does not
	// match the attribute's declared dataType.
	TypeMismatchErr Code = "eavg_type_mismatch"
	// InvalidArgumentErr indicates a caller-supplied argument violates a
	// store invariant (e.g. a duplicate or empty name).
	InvalidArgumentErr Code = "eavg_invalid_argument"
	// SnapshotCorruptErr indicates a Load found malformed or inconsistent
	// snapshot data.
	SnapshotCorruptErr Code = "eavg_snapshot_corrupt"
	// IOErr wraps an underlying filesystem failure during Save/Load.
	IOErr Code = "eavg_io_error"
	// OutOfMemoryErr indicates an allocation request could not be
	// satisfied (e.g. it would overflow int). Practically unreachable
	// under Go's garbage-collected heap; kept for API symmetry with the
	// ported error model.
	OutOfMemoryErr Code = "eavg_out_of_memory"
)

// Error is the concrete error type returned by every public store
// operation that can fail.
type Error struct {
	Code    Code
	Message string
	Err     error // optional wrapped cause, e.g. an *os.PathError
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to a wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code, so callers
// can write errors.Is(err, eaverrors.New(eaverrors.NotFoundErr, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

func NotFound(format string, args ...any) *Error {
	return New(NotFoundErr, format, args...)
}

func TypeMismatch(format string, args ...any) *Error {
	return New(TypeMismatchErr, format, args...)
}

func InvalidArgument(format string, args ...any) *Error {
	return New(InvalidArgumentErr, format, args...)
}

func SnapshotCorrupt(format string, args ...any) *Error {
	return New(SnapshotCorruptErr, format, args...)
}

func IO(cause error, format string, args ...any) *Error {
	return Wrap(IOErr, cause, format, args...)
}
