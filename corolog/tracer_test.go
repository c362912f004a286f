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

package corolog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corlang/corofiber"
	"github.com/corlang/corofiber/corolog"
)

func TestTracerRecordsCaptureAndTransfer(t *testing.T) {
	var buf bytes.Buffer
	tracer := corolog.NewTracer(corolog.New(&buf))

	cfg := corofiber.DefaultConfig()
	cfg.Debug = true
	cfg.Tracer = tracer

	th := corofiber.NewThread(cfg)
	got := th.Capture(func(k *corofiber.Continuation) corofiber.Value {
		return "done"
	})
	require.Equal(t, "done", got)

	f := corofiber.NewFiber(th, func(first corofiber.Value) corofiber.Value {
		return "fiber-done"
	})
	v, err := f.Resume()
	require.NoError(t, err)
	assert.Equal(t, "fiber-done", v)

	out := buf.String()
	assert.Contains(t, out, "[cont]")
	assert.Contains(t, out, "[fiber]")
}
