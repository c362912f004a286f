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

import lru "github.com/hashicorp/golang-lru"

// fiberStatus is a Fiber's lifecycle state.
type fiberStatus int

const (
	statusCreated fiberStatus = iota
	statusRunning
	statusTerminated
)

// transferMsg is what crosses a fiber's channel in either direction: the
// arguments going in, or the result/termination value coming back out.
// Every Fiber owns exactly one channel; handing control to a fiber is a
// send on its channel, parking is a receive on one's own channel.
type transferMsg struct {
	argc    int
	payload Value
	err     error // non-nil when this message forwards a raise
}

// Fiber is a lightweight, cooperatively scheduled coroutine with its own
// value stack. A freshly created Fiber has no goroutine of its own; one is
// spawned the first time it is resumed or transferred to, and from then on
// that goroutine alternates between running the fiber's body and parking
// on the fiber's channel for the rest of the fiber's life. The root fiber
// never gets a dedicated goroutine: whichever goroutine is "running" it is
// simply whatever goroutine last transferred control there, blocked
// in-place inside doTransfer.
type Fiber struct {
	context *Context
	thread  *Thread

	prev   *Fiber // the fiber that most recently resumed this one, if any
	status fiberStatus

	ringPrev, ringNext *Fiber

	entry func(first Value) Value

	ch chan transferMsg

	started bool

	// tls is this fiber's own fiber-local variable table. Every fiber,
	// including the root, owns an independent table: doTransfer swaps
	// Thread.tls to point at whichever fiber is now running, so
	// Thread.TLSGet/TLSSet never leak a value from one fiber to another.
	tls *lru.Cache
}

// NewFiber creates a Fiber on th whose body runs entry the first time it
// is resumed or transferred to. It is inserted into th's ring immediately
// after the current fiber.
func NewFiber(th *Thread, entry func(first Value) Value) *Fiber {
	ctx := newContext(fiberContext, th)
	ctx.valueStack = valueStackSlice{prefix: make([]Value, 0, th.cfg.FiberStackWords)}

	f := &Fiber{
		context: ctx,
		thread:  th,
		status:  statusCreated,
		entry:   entry,
		ch:      make(chan transferMsg),
		tls:     newTLSTable(th.cfg.TLSCapacity),
	}
	f.ringPrev, f.ringNext = f, f

	cur := th.CurrentFiber()
	insertAfter(cur, f)
	return f
}

func newRootFiber(th *Thread) *Fiber {
	ctx := newContext(rootFiberContext, th)
	f := &Fiber{
		context: ctx,
		thread:  th,
		status:  statusRunning,
		ch:      make(chan transferMsg),
		// th.tls was allocated in NewThread before any Fiber existed;
		// the root fiber takes ownership of it rather than getting a
		// second, orphaned table.
		tls: th.tls,
	}
	f.ringPrev, f.ringNext = f, f
	return f
}

func newTLSTable(capacity int) *lru.Cache {
	if capacity <= 0 {
		capacity = 256
	}
	c, _ := lru.New(capacity)
	return c
}

func insertAfter(anchor, f *Fiber) {
	f.ringNext = anchor.ringNext
	f.ringPrev = anchor
	anchor.ringNext.ringPrev = f
	anchor.ringNext = f
}

func (f *Fiber) unlinkFromRing() {
	f.ringPrev.ringNext = f.ringNext
	f.ringNext.ringPrev = f.ringPrev
	f.ringPrev, f.ringNext = f, f
}

// Alive reports whether f has not yet terminated.
func (f *Fiber) Alive() bool { return f.status != statusTerminated }

// Resume is the stateful transfer: it remembers the caller so a later
// Yield on f returns control here. Resuming a fiber whose prev is already
// set is the "double resume" error.
func (f *Fiber) Resume(args ...Value) (Value, error) {
	cur := f.thread.CurrentFiber()
	if err := f.validateTransfer(cur); err != nil {
		return nil, err
	}
	if f.prev != nil {
		return nil, &TransferError{Err: ErrDoubleResume, Thread: f.thread, Fiber: f}
	}
	f.prev = cur
	return f.thread.doTransfer(cur, f, args)
}

// Transfer is the stateless, symmetric control switch: it does not set
// f.prev, so f may later yield to whichever fiber resumed it previously
// (or to the root fiber, if none did).
func (f *Fiber) Transfer(args ...Value) (Value, error) {
	cur := f.thread.CurrentFiber()
	if err := f.validateTransfer(cur); err != nil {
		return nil, err
	}
	return f.thread.doTransfer(cur, f, args)
}

func (f *Fiber) validateTransfer(cur *Fiber) error {
	if f.thread != cur.thread {
		return &TransferError{Err: ErrCrossThreadTransfer, Thread: f.thread, Fiber: f}
	}
	if f.status == statusTerminated {
		return &TransferError{Err: ErrDeadFiber, Thread: f.thread, Fiber: f}
	}
	if f.context.kind == fiberContext && f.entry == nil {
		return &TransferError{Err: ErrUninitializedFiber, Thread: f.thread, Fiber: f}
	}
	return nil
}

// Yield returns control to the fiber that most recently resumed the
// current fiber, or to the root fiber if the current fiber was reached via
// Transfer rather than Resume. Yielding from the root fiber with no
// resumer is an error.
func (th *Thread) Yield(args ...Value) (Value, error) {
	cur := th.CurrentFiber()
	target := cur.prev
	if target == nil {
		if cur == th.rootFiber {
			return nil, &TransferError{Err: ErrYieldFromRoot, Thread: th, Fiber: cur}
		}
		target = th.rootFiber
	}
	cur.prev = nil
	return th.doTransfer(cur, target, args)
}

// doTransfer is the single, shared implementation backing Resume,
// Transfer and Yield: save the current fiber's context, start the
// target's goroutine if this is its first activation, hand it control by
// sending on its channel, and block on the current fiber's own channel
// until control is handed back.
func (th *Thread) doTransfer(cur, target *Fiber, args []Value) (Value, error) {
	if !th.runningSem.TryAcquire(1) {
		panic("corofiber: concurrent transfer on one Thread")
	}

	if th.cfg.Debug && th.cfg.Tracer != nil {
		th.cfg.Tracer.CaptureTransfer("transfer", cur, target)
	}

	cur.context.valueStack = captureValueStack(th, th.cfg.CaptureJustValidVMStack)
	cur.context.savedThread = th.snapshot()

	msg := transferMsg{argc: len(args), payload: argValue(args)}

	if target.context.kind == fiberContext && !target.started {
		target.started = true
		target.startGoroutine()
	}

	th.currentFiber = target
	th.tls = target.tls
	target.status = statusRunning

	th.runningSem.Release(1)

	target.ch <- msg
	result := <-cur.ch

	th.currentFiber = cur
	th.tls = cur.tls
	cur.context.valueStack.restore(th)
	cur.context.savedThread.restore(th)

	if result.err != nil {
		return nil, &TerminationError{Cause: result.err}
	}
	return result.payload, nil
}

// startGoroutine launches the dedicated goroutine that runs f's entry
// closure the first time f is activated, seeding it with the arguments
// the activating transfer carries. From then on this same goroutine
// parks on f.ch whenever f is not the one running.
func (f *Fiber) startGoroutine() {
	go func() {
		first := <-f.ch
		var result transferMsg
		func() {
			defer func() {
				if r := recover(); r != nil {
					result = transferMsg{err: errAsValue(r)}
				}
			}()
			v := f.entry(first.payload)
			result = transferMsg{payload: v}
		}()
		f.status = statusTerminated
		f.terminateTo(result)
	}()
}

// errAsValue wraps an arbitrary recovered panic value as an error so
// termination-by-raise always forwards something satisfying the error
// interface; Resume/Transfer wrap it in turn as a *TerminationError.
func errAsValue(v interface{}) error {
	if err, ok := v.(error); ok {
		return err
	}
	if s, ok := v.(string); ok {
		return errorString(s)
	}
	return errorString("corofiber: fiber panicked")
}

type errorString string

func (e errorString) Error() string { return string(e) }

// terminateTo forwards the fiber's final value (or raised error) to its
// prev if it was resumed, or to the thread's root fiber if it was
// transferred to. This send always has a waiting receiver: the target is
// not the running fiber, so it is parked on its own channel inside
// doTransfer.
func (f *Fiber) terminateTo(result transferMsg) {
	target := f.prev
	if target == nil {
		target = f.thread.rootFiber
	}
	f.unlinkFromRing()
	target.ch <- result
}
