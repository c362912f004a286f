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

// Value is an arbitrary managed value carried across a continuation or
// fiber transfer. The evaluator owns the concrete representation; this
// package only ever stores and forwards it.
type Value interface{}

// Seq is the ordered sequence produced when a transfer carries more than
// one argument (arity rule: zero args -> nil, one arg -> that arg, more ->
// Seq).
type Seq []Value

// argValue applies the arity rule shared by continuation invocation and
// fiber transfer: no args -> nil, one arg -> that arg, more -> a Seq.
func argValue(args []Value) Value {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	default:
		out := make(Seq, len(args))
		copy(out, args)
		return out
	}
}
