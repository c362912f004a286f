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

import mapset "github.com/deckarep/golang-set"

// Handle is an opaque reference to a managed object this package created
// (a Continuation or a Fiber), as seen by the external GC.
type Handle interface {
	handleMemsize() uint64
	handleFree()
	handleMark(v Marker)
}

func (k *Continuation) handleMemsize() uint64 { return k.ctx.memsize() }
func (k *Continuation) handleFree()           { k.ctx.free() }
func (k *Continuation) handleMark(v Marker)   { k.ctx.mark(v) }

func (f *Fiber) handleMemsize() uint64 { return f.context.memsize() }

func (f *Fiber) handleFree() {
	f.unlinkFromRing()
	if f.tls != nil {
		f.tls.Purge()
		f.tls = nil
	}
	f.context.free()
}

func (f *Fiber) handleMark(v Marker) {
	f.context.mark(v)
}

// Mark traces h's reachable values into v.
func Mark(h Handle, v Marker) { h.handleMark(v) }

// Free releases h's owned memory. For a Fiber this additionally unlinks
// it from its ring.
func Free(h Handle) { h.handleFree() }

// Memsize reports the retained byte count of h for diagnostics.
func Memsize(h Handle) uint64 { return h.handleMemsize() }

// MarkRing traces every fiber reachable from start's ring, following only
// owned ring pointers and guarding against the ring's cyclic structure
// with a visited set, since the ring is a closed loop and marking must
// not recurse forever over it. In this implementation the ring
// is not itself a source of GC roots -- each Fiber is reachable through
// its own handle -- but an embedder that wants to mark "every live fiber
// on this thread" starting from one root can use this helper safely.
func MarkRing(start *Fiber, v Marker) {
	if start == nil {
		return
	}
	visited := mapset.NewSet()
	cur := start
	for {
		if visited.Contains(cur) {
			return
		}
		visited.Add(cur)
		cur.handleMark(v)
		cur = cur.ringNext
	}
}
