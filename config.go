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

// Config are the tunable options for a Thread and the fibers it creates,
// mirroring the constants spec'd for the original subsystem.
type Config struct {
	// FiberStackWords is the pre-allocated value-stack capacity, in words,
	// reserved for each new fiber.
	FiberStackWords int

	// StackPaddingWords is retained for parity with the source's restore
	// recursion padding. It is carried in Config and loaded from TOML, but
	// no code in this package reads it.
	StackPaddingWords int

	// CaptureJustValidVMStack selects the split value-stack capture form
	// (live-data prefix + control-frame suffix) over a full-stack copy.
	CaptureJustValidVMStack bool

	// Debug enables tracing of fiber transfers and continuation calls
	// through Tracer.
	Debug bool

	// Tracer receives debug events when Debug is set. With a nil Tracer no
	// events are reported, whatever Debug says.
	Tracer Tracer

	// TLSCapacity bounds the fiber-local-storage table every Fiber (and
	// the root fiber) is given its own copy of (see fiber.go, thread.go).
	TLSCapacity int
}

// Tracer observes fiber and continuation control transfers. Implementations
// must not block or transfer control themselves.
type Tracer interface {
	CaptureTransfer(kind string, from, to *Fiber)
	CaptureCapture(th *Thread, k *Continuation)
	CaptureInvoke(k *Continuation, argc int)
}

// DefaultConfig returns the configuration used when a Thread is created
// without an explicit Config.
func DefaultConfig() Config {
	return Config{
		FiberStackWords:         4096,
		StackPaddingWords:       1024,
		CaptureJustValidVMStack: true,
		TLSCapacity:             256,
	}
}
