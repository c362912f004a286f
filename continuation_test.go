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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinuationDirectReturn(t *testing.T) {
	th := NewThread(DefaultConfig())
	got := th.Capture(func(k *Continuation) Value {
		return "hello"
	})
	assert.Equal(t, "hello", got)
}

// TestContinuationRestartLoop exercises the restart-loop idiom: a capture
// taken immediately before consuming the next element of a shared list,
// re-invoked until a matching element is printed.
func TestContinuationRestartLoop(t *testing.T) {
	th := NewThread(DefaultConfig())
	names := []string{"Freddie", "Herbie", "Ron", "Max", "Ringo"}
	var printed []string
	i := 0

	th.Capture(func(k *Continuation) Value {
		name := names[i]
		i++
		printed = append(printed, name)
		if name == "Max" {
			return nil
		}
		k.Call(th)
		return nil // unreachable
	})

	assert.Equal(t, []string{"Freddie", "Herbie", "Ron", "Max"}, printed)
}

func TestContinuationArityRule(t *testing.T) {
	th := NewThread(DefaultConfig())
	step := 0
	got := th.Capture(func(k *Continuation) Value {
		step++
		switch step {
		case 1:
			k.Call(th) // zero args -> nil
		case 2:
			return k.Value()
		}
		return nil
	})
	assert.Nil(t, got)

	th2 := NewThread(DefaultConfig())
	step = 0
	got = th2.Capture(func(k *Continuation) Value {
		step++
		switch step {
		case 1:
			k.Call(th2, 42) // one arg -> that value
		case 2:
			return k.Value()
		}
		return nil
	})
	assert.Equal(t, 42, got)

	th3 := NewThread(DefaultConfig())
	step = 0
	got = th3.Capture(func(k *Continuation) Value {
		step++
		switch step {
		case 1:
			k.Call(th3, 1, 2, 3) // more -> Seq
		case 2:
			return k.Value()
		}
		return nil
	})
	assert.Equal(t, Seq{1, 2, 3}, got)
}

func TestContinuationRaiseReRaises(t *testing.T) {
	th := NewThread(DefaultConfig())
	boom := errors.New("boom")
	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Equal(t, boom, r)
	}()
	th.Capture(func(k *Continuation) Value {
		k.Raise(th, boom)
		return nil
	})
}

// TestContinuationCrossThreadRejected captures on th1 and attempts to
// invoke from th2: the call must fail cleanly and th2 (and th1) must be
// left unchanged.
func TestContinuationCrossThreadRejected(t *testing.T) {
	th1 := NewThread(DefaultConfig())
	th2 := NewThread(DefaultConfig())

	var k *Continuation
	result := th1.Capture(func(c *Continuation) Value {
		k = c
		return "captured"
	})
	require.Equal(t, "captured", result)

	err := k.Call(th2)
	require.Error(t, err)
	assert.True(t, errors.Is(err.(*TransferError).Err, ErrCrossThreadTransfer))
}

func TestContinuationCrossFiberRejected(t *testing.T) {
	th := NewThread(DefaultConfig())
	var k *Continuation
	th.Capture(func(c *Continuation) Value {
		k = c
		return nil
	})

	f := NewFiber(th, func(first Value) Value {
		err := k.Call(th)
		require.Error(t, err)
		assert.True(t, errors.Is(err.(*TransferError).Err, ErrCrossFiberContinuation))
		return "done"
	})
	v, err := f.Resume()
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}
