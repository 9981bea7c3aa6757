// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import "github.com/eavgraph/eavg/internal/eaverrors"

// Error is the concrete error type returned by every public store
// operation that can fail. Use errors.Is against the Err* sentinels below
// to classify a failure, or errors.As to recover the Message/wrapped
// cause.
type Error = eaverrors.Error

// ErrorCode classifies a failure; see the Err* sentinels below.
type ErrorCode = eaverrors.Code

// Sentinel errors for use with errors.Is. Each carries only a Code; the
// Error.Is method compares Codes, so a wrapped/decorated error returned
// by the store still matches these.
var (
	ErrNotFound        = &Error{Code: eaverrors.NotFoundErr}
	ErrTypeMismatch    = &Error{Code: eaverrors.TypeMismatchErr}
	ErrInvalidArgument = &Error{Code: eaverrors.InvalidArgumentErr}
	ErrSnapshotCorrupt = &Error{Code: eaverrors.SnapshotCorruptErr}
	ErrIO              = &Error{Code: eaverrors.IOErr}
	ErrOutOfMemory     = &Error{Code: eaverrors.OutOfMemoryErr}
)
