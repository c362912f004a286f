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

// Package corofiber implements the cooperative coroutine (fiber) and
// first-class continuation primitives of a dynamic-language runtime.
//
// A Thread stands in for one host OS thread of the embedding evaluator: it
// owns a value stack, a handler-tag chain, and a ring of Fibers. Capture and
// Call/Raise implement re-entrant continuations scoped to a single Thread.
// NewFiber, Resume, Transfer and Yield implement cooperative, explicitly
// scheduled coroutines that share that Thread's value stack region but each
// run on a dedicated goroutine, handed control through an unbuffered
// channel.
//
// Nothing in this package is safe for concurrent use from more than one
// goroutine against the same Thread at a time: a Thread, like the host
// thread it models, runs exactly one fiber at any instant.
package corofiber
