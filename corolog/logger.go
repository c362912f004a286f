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

// Package corolog is a small terminal-aware logger used to trace fiber
// transfers and continuation invocations when Config.Debug is set.
package corolog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger writes colorized trace lines when attached to a terminal and
// plain lines otherwise.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
}

// New returns a Logger writing to w. If w is os.Stdout/os.Stderr and is a
// real terminal, output is colorized and wrapped with go-colorable so it
// renders correctly on Windows consoles too.
func New(w io.Writer) *Logger {
	l := &Logger{out: w}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		l.colorize = true
		l.out = colorable.NewColorable(f)
	}
	return l
}

var defaultLogger = New(os.Stderr)

// Default returns the process-wide default Logger.
func Default() *Logger { return defaultLogger }

// Tracef writes one trace line, e.g. fiber-transfer or continuation-call
// events surfaced via corofiber.Config.Tracer.
func (l *Logger) Tracef(tag, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.colorize {
		fmt.Fprintf(l.out, "%s %s\n", color.CyanString("["+tag+"]"), msg)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", tag, msg)
}
