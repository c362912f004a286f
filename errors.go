// Copyright 2014 by the Authors
// This file is part of the go-core library.
//
// The go-core library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-core library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-core library. If not, see <http://www.gnu.org/licenses/>.

package corofiber

import "errors"

// Sentinel errors surfaced by continuation and fiber operations.
var (
	ErrCrossThreadTransfer   = errors.New("corofiber: context captured on a different thread")
	ErrCrossTagBarrier       = errors.New("corofiber: rewinding across a handler-tag barrier")
	ErrCrossFiberContinuation = errors.New("corofiber: continuation captured inside a different fiber")
	ErrDoubleResume          = errors.New("corofiber: double resume")
	ErrDeadFiber             = errors.New("corofiber: dead fiber called")
	ErrYieldFromRoot         = errors.New("corofiber: can't yield from root fiber")
	ErrUninitializedFiber    = errors.New("corofiber: fiber body was never installed")
)

// TransferError wraps one of the sentinel errors above with the Thread and,
// where applicable, the Fiber involved, for diagnostics. Callers should
// still match against the sentinels with errors.Is.
type TransferError struct {
	Err    error
	Thread *Thread
	Fiber  *Fiber
}

func (e *TransferError) Error() string {
	if e.Fiber != nil {
		return e.Err.Error() + ": fiber " + e.Fiber.context.selfHandle.String()
	}
	return e.Err.Error()
}

func (e *TransferError) Unwrap() error { return e.Err }

// TerminationError wraps a value raised by a fiber's entry closure so it can
// be forwarded to the fiber's resumer or transferred-to thread and re-raised
// verbatim there. It re-expresses the source's local-jump-error wrapping in
// terms a plain Go error, since object construction for the host language's
// exception types belongs to the evaluator, not this package.
type TerminationError struct {
	Cause error
}

func (e *TerminationError) Error() string { return e.Cause.Error() }
func (e *TerminationError) Unwrap() error { return e.Cause }
