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

// Continuation is a captured execution state that can be re-entered,
// possibly many times, by calling Call or Raise.
//
// Re-architecture note (see DESIGN.md "Open Question decisions" #4): Go
// gives no way to rewind an already-returned call frame the way longjmp
// rewinds a C stack, so Capture takes the "rest of the computation" as an
// explicit closure and drives it in a loop, using panic/recover -- Go's
// own non-local jump, which never crosses goroutines -- as the JumpBuffer
// analog. This supports genuine multi-shot re-entry from anywhere within
// body's own dynamic extent.
type Continuation struct {
	ctx *Context
}

// jumpSignal is panicked by Call/Raise and recovered only by the Capture
// call that owns the matching Continuation (identity-checked by pointer).
type jumpSignal struct {
	k *Continuation
}

// Capture runs body once, passing it a handle to a freshly captured
// Continuation. If body returns a value without ever calling Call/Raise on
// that handle, Capture returns that value (the "direct path"). If
// Call(th, args...) is invoked -- from anywhere within body's dynamic
// extent, including from nested helper calls, any number of times --
// Capture re-invokes body with the new value available through
// Continuation.Value, and returns whatever that invocation ultimately
// produces.
func (th *Thread) Capture(body func(k *Continuation) Value) Value {
	th.spillRegisterCache()
	th.CurrentFiber() // lazily pin capturedFiber to the root fiber, not nil

	ctx := newContext(continuationContext, th)
	ctx.machineStack = captureMachineStack(1)
	ctx.valueStack = captureValueStack(th, th.cfg.CaptureJustValidVMStack)

	k := &Continuation{ctx: ctx}
	if th.cfg.Debug && th.cfg.Tracer != nil {
		th.cfg.Tracer.CaptureCapture(th, k)
	}

	for {
		result, jumped := enterBody(k, body)
		if !jumped {
			return result
		}
		if ctx.argCount == -1 {
			err, _ := ctx.payload.(error)
			panic(err)
		}
		// loop again: re-enter body with ctx.payload now holding the
		// value Call delivered.
	}
}

func enterBody(k *Continuation, body func(k *Continuation) Value) (result Value, jumped bool) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(jumpSignal)
			if !ok || sig.k != k {
				panic(r) // not ours: propagate
			}
			result, jumped = k.ctx.payload, true
		}
	}()
	return body(k), false
}

// Value returns the value most recently delivered to this continuation by
// Call, or nil before the first re-entry.
func (k *Continuation) Value() Value { return k.ctx.payload }

// Call re-enters the capture point with args, applying the arity rule:
// zero args -> nil, one -> that value, more -> a Seq. th is the thread the
// caller believes itself to be running on. It returns a non-nil error,
// without mutating any state, if validation fails; on success it does not
// return to its caller at all.
func (k *Continuation) Call(th *Thread, args ...Value) error {
	return k.transfer(th, len(args), argValue(args))
}

// Raise propagates err across the continuation boundary: the re-entry
// branch in Capture re-raises it as a panic(error) instead of returning a
// value.
func (k *Continuation) Raise(th *Thread, err error) error {
	return k.transfer(th, -1, err)
}

func (k *Continuation) transfer(th *Thread, argc int, payload Value) error {
	ctx := k.ctx

	if ctx.owner.cfg.Debug && ctx.owner.cfg.Tracer != nil {
		ctx.owner.cfg.Tracer.CaptureInvoke(k, argc)
	}

	// All checks before any stack mutation.
	if th != ctx.owner {
		return &TransferError{Err: ErrCrossThreadTransfer, Thread: th}
	}
	if !ctx.savedThread.tagChain.activeIn(th.tagChain) {
		return &TransferError{Err: ErrCrossTagBarrier, Thread: th}
	}
	if ctx.capturedFiber != nil && th.currentFiber != ctx.capturedFiber {
		return &TransferError{Err: ErrCrossFiberContinuation, Thread: th, Fiber: ctx.capturedFiber}
	}

	ctx.argCount = argc
	ctx.payload = payload
	ctx.valueStack.restore(th)
	ctx.savedThread.restore(th)

	panic(jumpSignal{k: k})
}

// spillRegisterCache is the Go restatement of the source's register-spill
// step before capture. There is no register-resident value-stack cache in
// this implementation -- th.vstack is the sole authoritative copy at all
// times -- so this is a deliberate no-op kept to preserve the capture
// protocol's step ordering for future extension.
func (th *Thread) spillRegisterCache() {}
