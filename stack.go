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

import "sync"

// valstack is the Thread's operand stack. It is pooled via sync.Pool since
// captures happen on a hot path (every Capture and every fiber transfer
// touches one).
type valstack struct {
	data []Value
}

var valstackPool = sync.Pool{
	New: func() interface{} { return &valstack{data: make([]Value, 0, 64)} },
}

func newValstack() *valstack {
	return valstackPool.Get().(*valstack)
}

func returnValstack(s *valstack) {
	s.data = s.data[:0]
	valstackPool.Put(s)
}

func (s *valstack) push(v Value) { s.data = append(s.data, v) }

func (s *valstack) pop() Value {
	n := len(s.data)
	v := s.data[n-1]
	s.data = s.data[:n-1]
	return v
}

func (s *valstack) len() int { return len(s.data) }

func (s *valstack) back(n int) Value { return s.data[len(s.data)-1-n] }

// valueStackSlice is a captured value-stack region: either a full copy of
// the live region, or (when Config.CaptureJustValidVMStack is set) a split
// copy of the live-data prefix and the control-frame suffix.
type valueStackSlice struct {
	split  bool
	prefix []Value // [base, sp+mark_len) in the full form this is the whole slice
	suffix []Value // control-frame suffix, only populated when split
}

// captureValueStack copies th's live operand-stack region out of the
// Thread. Ownership of the returned slices belongs to the caller (the
// Context being built); the Thread's own stack is left untouched.
func captureValueStack(th *Thread, split bool) valueStackSlice {
	live := th.vstack.data
	if !split {
		cp := make([]Value, len(live))
		copy(cp, live)
		return valueStackSlice{split: false, prefix: cp}
	}
	// [base, sp+mark_len), clamped to the live region the slice holds.
	end := len(live) + th.stackMarkLen
	if end > len(live) {
		end = len(live)
	}
	prefix := make([]Value, end)
	copy(prefix, live[:end])
	suffix := make([]Value, len(th.controlFrames))
	copy(suffix, th.controlFrames)
	return valueStackSlice{split: true, prefix: prefix, suffix: suffix}
}

// restore copies the saved slice(s) back into th, overwriting whatever th's
// operand stack and control-frame region currently hold. This never
// transfers ownership of the saved buffers: the owning Context keeps
// owning them and may restore from them again later.
func (v valueStackSlice) restore(th *Thread) {
	th.vstack.data = th.vstack.data[:0]
	th.vstack.data = append(th.vstack.data, v.prefix...)
	if v.split {
		th.controlFrames = th.controlFrames[:0]
		th.controlFrames = append(th.controlFrames, v.suffix...)
	}
}

// words reports the word count retained by the slice, for memsize.
func (v valueStackSlice) words() int {
	return len(v.prefix) + len(v.suffix)
}
