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

import "github.com/davecgh/go-spew/spew"

// DebugDump pretty-prints c's payload and saved stacks for use under
// Config.Debug.
func (c *Context) DebugDump() string {
	return spew.Sdump(struct {
		Kind         contextKind
		Handle       string
		ArgCount     int
		Payload      Value
		ValueStack   valueStackSlice
		MachineStack machineStackSlice
	}{c.kind, c.selfHandle.String(), c.argCount, c.payload, c.valueStack, c.machineStack})
}

// DebugDump pretty-prints f's status and context for use under Config.Debug.
func (f *Fiber) DebugDump() string {
	return spew.Sdump(struct {
		Status  fiberStatus
		Started bool
		Context string
	}{f.status, f.started, f.context.DebugDump()})
}
