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
	"sync"
	"unsafe"

	"github.com/go-stack/stack"
)

// growthDirection caches a one-time probe of which way the current stack
// grows. Go never exposes raw stack memory to user code and goroutine
// stacks move under the runtime's control, so nothing here ever copies
// machine-stack bytes; the probe is kept because it is useful orientation
// information for diagnostics (DebugDump).
type growthDirection int

const (
	growsDown growthDirection = iota
	growsUp
)

var (
	growthOnce   sync.Once
	cachedGrowth growthDirection
)

//go:noinline
func probeCallee(parent uintptr) growthDirection {
	var local int
	child := uintptr(unsafe.Pointer(&local))
	if child < parent {
		return growsDown
	}
	return growsUp
}

// detectGrowthDirection runs the probe exactly once per process and caches
// the result.
func detectGrowthDirection() growthDirection {
	growthOnce.Do(func() {
		var local int
		parent := uintptr(unsafe.Pointer(&local))
		cachedGrowth = probeCallee(parent)
	})
	return cachedGrowth
}

// machineStackSlice stands in for a captured region of machine stack: since
// raw call-stack bytes are not reachable, it stores a real captured
// call-stack trace of the owning goroutine (its "source" and "length" are
// the trace's base pointer and frame count) taken at the moment of
// capture. It is never used to perform control transfer -- that is the job
// of the panic/recover trampoline (continuation.go) or the transfer
// channel (fiber.go) -- but it is freed and memsize'd like any other owned
// Context buffer (it holds no Values, so mark skips it), and is useful for
// diagnosing where a capture happened.
type machineStackSlice struct {
	trace     stack.CallStack
	direction growthDirection
}

// captureMachineStack records the current goroutine's call stack, skipping
// the frames belonging to this package's own capture machinery.
func captureMachineStack(skip int) machineStackSlice {
	return machineStackSlice{
		trace:     stack.Trace().TrimBelow(stack.Caller(skip)),
		direction: detectGrowthDirection(),
	}
}

func (m machineStackSlice) words() int {
	return len(m.trace) * int(unsafe.Sizeof(stack.Call{}))
}
