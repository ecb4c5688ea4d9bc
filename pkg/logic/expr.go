// Copyright The hwgraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package logic

import "github.com/hwgraph/hwgraph/pkg/fourstate"

// Op identifies which operator derived a signal, so that the synthesizer
// can render it symbolically (e.g. "a & b") rather than only being able
// to evaluate it numerically during simulation.
type Op int

// The operators derive() can construct.
const (
	OpAnd Op = iota
	OpOr
	OpXor
	OpNot
	OpAdd
	OpSub
	OpMul
	OpShl
	OpShr
	OpSlice
	OpSwizzle
)

// Expr is a pure function of its operand signals' current values,
// recomputed whenever any operand glitches. Derived signals (the results
// of Signal.And, Signal.Slice, etc.) are continuously driven by an Expr
// rather than by an explicit Gets call.
type Expr struct {
	operands []*Signal
	width    uint
	eval     func([]fourstate.Value) fourstate.Value
	op       Op
	// sliceHi/sliceLo are meaningful only when op == OpSlice.
	sliceHi, sliceLo uint
}

// Operands returns the signals this expression reads.
func (e *Expr) Operands() []*Signal {
	return e.operands
}

// Op returns the operator this expression was built from.
func (e *Expr) Op() Op {
	return e.op
}

// SliceBounds returns the [hi,lo] bit range of an OpSlice expression.
func (e *Expr) SliceBounds() (hi, lo uint) {
	return e.sliceHi, e.sliceLo
}

// Eval recomputes the expression's value from its operands' current
// values.
func (e *Expr) Eval() fourstate.Value {
	vals := make([]fourstate.Value, len(e.operands))
	for i, op := range e.operands {
		vals[i] = op.value
	}

	return e.eval(vals)
}

// derive constructs a new derived signal continuously driven by expr,
// evaluating it immediately to seed the initial value.
func derive(width uint, op Op, expr func([]fourstate.Value) fourstate.Value, operands ...*Signal) *Signal {
	s := NewDerived(width)
	s.expr = &Expr{operands: operands, width: width, eval: expr, op: op}
	s.value = s.expr.Eval()

	for _, o := range operands {
		o.destinations = append(o.destinations, s)
	}

	return s
}

// Expr returns this signal's continuous driving expression, if it is a
// derived signal (nil for plain named signals and for signals driven by
// Gets).
func (s *Signal) Expr() *Expr {
	return s.expr
}

// And returns a new signal continuously driven by the bitwise AND of s
// and o.
func (s *Signal) And(o *Signal) *Signal {
	return derive(s.width, OpAnd, func(v []fourstate.Value) fourstate.Value {
		return fourstate.And(v[0], v[1])
	}, s, o)
}

// Or returns a new signal continuously driven by the bitwise OR of s and o.
func (s *Signal) Or(o *Signal) *Signal {
	return derive(s.width, OpOr, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Or(v[0], v[1])
	}, s, o)
}

// Xor returns a new signal continuously driven by the bitwise XOR of s and o.
func (s *Signal) Xor(o *Signal) *Signal {
	return derive(s.width, OpXor, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Xor(v[0], v[1])
	}, s, o)
}

// Not returns a new signal continuously driven by the bitwise complement
// of s.
func (s *Signal) Not() *Signal {
	return derive(s.width, OpNot, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Not(v[0])
	}, s)
}

// Add returns a new signal continuously driven by the arithmetic sum of s
// and o, wrapping modulo 2^width.
func (s *Signal) Add(o *Signal) *Signal {
	return derive(s.width, OpAdd, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Add(v[0], v[1])
	}, s, o)
}

// Sub returns a new signal continuously driven by the arithmetic
// difference of s and o, wrapping modulo 2^width.
func (s *Signal) Sub(o *Signal) *Signal {
	return derive(s.width, OpSub, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Sub(v[0], v[1])
	}, s, o)
}

// Mul returns a new signal continuously driven by the arithmetic product
// of s and o, wrapping modulo 2^width.
func (s *Signal) Mul(o *Signal) *Signal {
	return derive(s.width, OpMul, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Mul(v[0], v[1])
	}, s, o)
}

// Shl returns a new signal continuously driven by s shifted left by n.
func (s *Signal) Shl(n *Signal) *Signal {
	return derive(s.width, OpShl, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Shl(v[0], v[1])
	}, s, n)
}

// Shr returns a new signal continuously driven by s shifted right by n.
func (s *Signal) Shr(n *Signal) *Signal {
	return derive(s.width, OpShr, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Shr(v[0], v[1])
	}, s, n)
}

// Slice returns a new signal of width hi-lo+1 continuously driven by bits
// [lo,hi] of s.
func (s *Signal) Slice(hi, lo uint) *Signal {
	d := derive(hi-lo+1, OpSlice, func(v []fourstate.Value) fourstate.Value {
		return v[0].Slice(hi, lo)
	}, s)
	d.expr.sliceHi, d.expr.sliceLo = hi, lo

	return d
}

// Swizzle returns a new signal that is the concatenation of parts,
// MSB-first (parts[0] becomes the most significant segment).
func Swizzle(parts ...*Signal) *Signal {
	width := uint(0)
	for _, p := range parts {
		width += p.width
	}

	return derive(width, OpSwizzle, func(v []fourstate.Value) fourstate.Value {
		return fourstate.Swizzle(v...)
	}, parts...)
}
