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
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/semaphore"
)

// Tag is a node in the evaluator's dynamic handler chain. Continuations
// captured while a Tag is active may not be restored from outside its
// dynamic extent -- the rewinding barrier.
type Tag struct {
	parent *Tag
}

// PushTag opens a new dynamic handler extent nested under th's current
// tag chain and makes it current. The returned Tag must later be passed
// to PopTag to close it.
func (th *Thread) PushTag() *Tag {
	t := &Tag{parent: th.tagChain}
	th.tagChain = t
	return t
}

// PopTag closes t, restoring th's tag chain to what it was before the
// matching PushTag. Continuations captured while t was current can no
// longer be invoked once this returns. Popping anything other than the
// innermost pushed tag is a caller error.
func (th *Thread) PopTag(t *Tag) {
	if th.tagChain != t {
		panic("corofiber: PopTag called out of order")
	}
	th.tagChain = t.parent
}

// activeIn reports whether t is current or an ancestor of current -- i.e.
// whether t's dynamic extent is still open. A nil t (no tag active at
// capture time) is always active.
func (t *Tag) activeIn(current *Tag) bool {
	if t == nil {
		return true
	}
	for c := current; c != nil; c = c.parent {
		if c == t {
			return true
		}
	}
	return false
}

// Thread stands in for one host OS thread of the embedding evaluator. It
// owns the value stack, the handler-tag chain, the pending-error slot, the
// first-proc reference and the fiber ring for that host thread. Exactly
// one Fiber on a Thread is Running at any instant.
//
// A Thread must be driven by a single goroutine at a time; runningSem
// enforces this at runtime instead of leaving it as a documentation-only
// promise.
type Thread struct {
	cfg Config

	vstack         *valstack
	stackMarkLen   int
	controlFrames  []Value
	safeLevel      int
	raiseFlags     uint32
	state          uint32
	tagChain       *Tag
	pendingError   error
	firstProc      func(args Value) Value
	tls            *lru.Cache // whichever fiber's table is currently running; see Fiber.tls

	currentFiber *Fiber
	rootFiber    *Fiber

	runningSem *semaphore.Weighted
}

// NewThread creates a Thread with the given configuration. A zero Config
// behaves as DefaultConfig.
func NewThread(cfg Config) *Thread {
	if cfg.FiberStackWords == 0 {
		cfg = DefaultConfig()
	}
	return &Thread{
		cfg:    cfg,
		vstack: newValstack(),
		// Owned by the root fiber once CurrentFiber lazily creates it
		// (see newRootFiber); Thread.tls always points at whichever
		// fiber's table is currently active.
		tls:        newTLSTable(cfg.TLSCapacity),
		runningSem: semaphore.NewWeighted(1),
	}
}

// threadSnapshot is a by-value copy of the mutable fields of a Thread that
// affect control flow, taken at capture time and restored verbatim on
// re-entry.
type threadSnapshot struct {
	stackMarkLen  int
	safeLevel     int
	raiseFlags    uint32
	state         uint32
	tagChain      *Tag
	pendingError  error
	firstProc     func(args Value) Value
	currentFiber  *Fiber
	rootFiber     *Fiber
	tls           *lru.Cache

	// stackRef would, in a C implementation, still point at the live
	// thread's stack memory until nulled immediately after the snapshot is
	// taken. There is no raw pointer to null here since Go already copies
	// vstack/controlFrames by value into the owning Context's
	// valueStackSlice; stackRef exists only so that invariant is restated
	// in code, not merely in prose.
	stackRef *valstack
}

func (th *Thread) snapshot() threadSnapshot {
	s := threadSnapshot{
		stackMarkLen: th.stackMarkLen,
		safeLevel:    th.safeLevel,
		raiseFlags:   th.raiseFlags,
		state:        th.state,
		tagChain:     th.tagChain,
		pendingError: th.pendingError,
		firstProc:    th.firstProc,
		currentFiber: th.currentFiber,
		rootFiber:    th.rootFiber,
		tls:          th.tls,
		stackRef:     th.vstack,
	}
	// The live thread continues to own th.vstack; only the Context's
	// valueStackSlice copy is authoritative once captured.
	s.stackRef = nil
	return s
}

func (s threadSnapshot) restore(th *Thread) {
	th.stackMarkLen = s.stackMarkLen
	th.safeLevel = s.safeLevel
	th.raiseFlags = s.raiseFlags
	th.state = s.state
	th.tagChain = s.tagChain
	th.pendingError = s.pendingError
	th.firstProc = s.firstProc
	th.currentFiber = s.currentFiber
	th.rootFiber = s.rootFiber
	if s.tls != nil {
		th.tls = s.tls
	}
}

// CurrentFiber returns the fiber currently running on th, lazily creating
// the root fiber on first use.
func (th *Thread) CurrentFiber() *Fiber {
	if th.rootFiber == nil {
		th.rootFiber = newRootFiber(th)
		th.currentFiber = th.rootFiber
	}
	return th.currentFiber
}

// TLSGet looks up a fiber-local value keyed by name, scoped to whichever
// fiber is currently running on th. Each Fiber owns an independent table
// (see NewFiber), so the same key set on two different fibers never
// collides.
func (th *Thread) TLSGet(key string) (Value, bool) {
	if th.tls == nil {
		return nil, false
	}
	v, ok := th.tls.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// TLSSet stores a fiber-local value keyed by name, scoped to whichever
// fiber is currently running on th.
func (th *Thread) TLSSet(key string, v Value) {
	if th.tls == nil {
		return
	}
	th.tls.Add(key, v)
}
