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

// TestFiberGenerator exercises the generator idiom: fiber_yield(1); 2.
func TestFiberGenerator(t *testing.T) {
	th := NewThread(DefaultConfig())
	f := NewFiber(th, func(first Value) Value {
		th.Yield(1)
		return 2
	})

	v, err := f.Resume()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, f.Alive())

	v, err = f.Resume()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.False(t, f.Alive())

	_, err = f.Resume()
	require.Error(t, err)
	assert.True(t, errors.Is(err.(*TransferError).Err, ErrDeadFiber))
}

// TestFiberArgumentPassing exercises argument flow across resume/yield.
func TestFiberArgumentPassing(t *testing.T) {
	th := NewThread(DefaultConfig())
	f := NewFiber(th, func(first Value) Value {
		firstInt := first.(int)
		second, _ := th.Yield(firstInt + 2)
		return second
	})

	v, err := f.Resume(10)
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = f.Resume(14)
	require.NoError(t, err)
	assert.Equal(t, 14, v)

	_, err = f.Resume(18)
	require.Error(t, err)
	assert.True(t, errors.Is(err.(*TransferError).Err, ErrDeadFiber))
}

// TestFiberTransferSymmetry has two fibers hand control back and forth via
// Transfer. fiberA's return value travels to the root fiber driving the
// test, not to fiberB (which last transferred to it), since Transfer never
// records a resumer the way Resume does.
func TestFiberTransferSymmetry(t *testing.T) {
	th := NewThread(DefaultConfig())
	var got []string
	var fiberA, fiberB *Fiber

	fiberA = NewFiber(th, func(first Value) Value {
		got = append(got, "A:"+first.(string))
		v, _ := fiberB.Transfer("from-A")
		got = append(got, "A:"+v.(string))
		return "A-done"
	})
	fiberB = NewFiber(th, func(first Value) Value {
		got = append(got, "B:"+first.(string))
		v, _ := fiberA.Transfer("from-B")
		got = append(got, "B:"+v.(string))
		return "B-done"
	})

	result, err := fiberA.Transfer("start")
	require.NoError(t, err)
	assert.Equal(t, "A-done", result)
	assert.Equal(t, []string{"A:start", "B:from-A", "A:from-B"}, got)

	// fiberA already ran its entry to completion above.
	_, err = fiberA.Resume()
	require.Error(t, err)
	assert.True(t, errors.Is(err.(*TransferError).Err, ErrDeadFiber))
}

// TestFiberDoubleResume has a fiber try to resume itself while its own
// first activation (and thus its prev link) is still live.
func TestFiberDoubleResume(t *testing.T) {
	th := NewThread(DefaultConfig())
	var self *Fiber
	self = NewFiber(th, func(first Value) Value {
		_, err := self.Resume()
		require.Error(t, err)
		assert.True(t, errors.Is(err.(*TransferError).Err, ErrDoubleResume))
		return "ok"
	})
	v, err := self.Resume()
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestYieldFromRoot(t *testing.T) {
	th := NewThread(DefaultConfig())
	_, err := th.Yield()
	require.Error(t, err)
	assert.True(t, errors.Is(err.(*TransferError).Err, ErrYieldFromRoot))
}

func TestFiberBodyRaiseForwardsToResumer(t *testing.T) {
	th := NewThread(DefaultConfig())
	boom := errors.New("boom")
	f := NewFiber(th, func(first Value) Value {
		panic(boom)
	})
	_, err := f.Resume()
	require.Error(t, err)
	var te *TerminationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, boom, te.Cause)
	assert.False(t, f.Alive())
}
