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

package corolog

import (
	"github.com/corlang/corofiber"
)

// Tracer adapts a Logger to corofiber.Tracer, so fiber transfers and
// continuation captures/invocations can be traced through the same
// terminal-aware logger used elsewhere, by setting it as Config.Tracer.
type Tracer struct {
	*Logger
}

var _ corofiber.Tracer = (*Tracer)(nil)

// NewTracer returns a corofiber.Tracer backed by l.
func NewTracer(l *Logger) *Tracer { return &Tracer{Logger: l} }

// CaptureTransfer logs a fiber hand-off (Resume, Transfer or Yield).
func (t *Tracer) CaptureTransfer(kind string, from, to *corofiber.Fiber) {
	t.Tracef("fiber", "%s %p -> %p", kind, from, to)
}

// CaptureCapture logs a continuation capture.
func (t *Tracer) CaptureCapture(th *corofiber.Thread, k *corofiber.Continuation) {
	t.Tracef("cont", "captured %p on thread %p", k, th)
}

// CaptureInvoke logs a continuation invocation (Call or Raise).
func (t *Tracer) CaptureInvoke(k *corofiber.Continuation, argc int) {
	t.Tracef("cont", "invoke %p argc=%d", k, argc)
}
