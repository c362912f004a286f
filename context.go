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

import (
	"github.com/fjl/memsize"
	"github.com/pborman/uuid"
)

// contextKind tags the three ways a Context can come into being: a plain
// captured continuation, a fiber's own context, or the root fiber's.
type contextKind int

const (
	continuationContext contextKind = iota
	fiberContext
	rootFiberContext
)

// Context is the full capture record shared by continuations and fibers.
// Each Context exclusively owns its valueStack and machineStack buffers:
// restoring copies them back into the owning Thread, it never hands out
// the backing arrays.
type Context struct {
	kind       contextKind
	selfHandle uuid.UUID
	argCount   int
	payload    Value

	valueStack   valueStackSlice
	machineStack machineStackSlice
	savedThread  threadSnapshot

	owner *Thread // the Thread this Context was captured on; never restored elsewhere

	// capturedFiber is the fiber that was running when this Context was
	// captured, or nil if none was active. Used by Continuation.Call's
	// cross-fiber check, which skips a nil capturedFiber; Capture creates
	// the root fiber first, so a Continuation's is never nil (see
	// DESIGN.md).
	capturedFiber *Fiber
}

func newContext(kind contextKind, th *Thread) *Context {
	return &Context{
		kind:          kind,
		selfHandle:    uuid.NewRandom(),
		owner:         th,
		capturedFiber: th.currentFiber,
		savedThread:   th.snapshot(),
	}
}

// mark traces the reachable values in c: the payload, the reachable fields
// of the saved ThreadSnapshot, and the live words of the saved stacks.
func (c *Context) mark(v Marker) {
	if v == nil {
		return
	}
	v.Mark(c.payload)
	v.Mark(c.savedThread.pendingError)
	for _, val := range c.valueStack.prefix {
		v.Mark(val)
	}
	for _, val := range c.valueStack.suffix {
		v.Mark(val)
	}
}

// free releases the buffers c owns. It does not touch the owning Thread's
// live stack -- those are independent copies.
func (c *Context) free() {
	c.valueStack = valueStackSlice{}
	c.machineStack = machineStackSlice{}
}

// memsize reports the bytes retained by c, using fjl/memsize to size the
// arbitrary retained payload value, plus the accounted words of the
// saved stacks.
func (c *Context) memsize() uint64 {
	r := memsize.Scan(c.payload)
	total := r.Total
	total += uint64(c.valueStack.words()) * 8
	total += uint64(c.machineStack.words())
	return total
}

// Marker is the interface the external GC implements to receive reachable
// values during mark.
type Marker interface {
	Mark(v Value)
}
