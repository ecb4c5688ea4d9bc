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
package fourstate

// Not computes the bitwise complement. X and Z both yield X.
func Not(v Value) Value {
	r := AllX(v.width)

	for i := uint(0); i < v.width; i++ {
		switch v.At(i) {
		case Zero:
			setWordBit(r.mask, i, true)
			setWordBit(r.bits, i, true)
		case One:
			setWordBit(r.mask, i, true)
		default:
			// X or Z in, X out.
		}
	}

	return r
}

func binaryBitwise(a, b Value, table func(Bit, Bit) Bit) Value {
	if a.width != b.width {
		panic("fourstate: width mismatch in bitwise operation")
	}

	r := AllX(a.width)

	for i := uint(0); i < a.width; i++ {
		setBitValue(&r, i, table(normalize(a.At(i)), normalize(b.At(i))))
	}

	return r
}

// normalize treats Z as X for the purposes of bitwise logic tables, per
// standard four-state semantics.
func normalize(b Bit) Bit {
	if b == Z {
		return X
	}

	return b
}

func setBitValue(v *Value, i uint, b Bit) {
	switch b {
	case Zero:
		setWordBit(v.mask, i, true)
	case One:
		setWordBit(v.mask, i, true)
		setWordBit(v.bits, i, true)
	case Z:
		setWordBit(v.hiZ, i, true)
	case X:
	}
}

// And computes the bitwise AND of two equal-width values.
func And(a, b Value) Value {
	return binaryBitwise(a, b, func(x, y Bit) Bit {
		if x == Zero || y == Zero {
			return Zero
		}

		if x == One && y == One {
			return One
		}

		return X
	})
}

// Or computes the bitwise OR of two equal-width values.
func Or(a, b Value) Value {
	return binaryBitwise(a, b, func(x, y Bit) Bit {
		if x == One || y == One {
			return One
		}

		if x == Zero && y == Zero {
			return Zero
		}

		return X
	})
}

// Xor computes the bitwise XOR of two equal-width values.
func Xor(a, b Value) Value {
	return binaryBitwise(a, b, func(x, y Bit) Bit {
		if x == X || y == X {
			return X
		}

		if x == y {
			return Zero
		}

		return One
	})
}

// Add computes the arithmetic sum of two equal-width values, wrapping
// modulo 2^width. If either operand contains any X/Z bit, the entire
// result is all-X (contamination).
func Add(a, b Value) Value {
	return arith(a, b, func(x, y uint64) uint64 { return x + y })
}

// Sub computes the arithmetic difference of two equal-width values,
// wrapping modulo 2^width, with the same X/Z contamination rule as Add.
func Sub(a, b Value) Value {
	return arith(a, b, func(x, y uint64) uint64 { return x - y })
}

// Mul computes the arithmetic product of two equal-width values, wrapping
// modulo 2^width, with the same X/Z contamination rule as Add.
func Mul(a, b Value) Value {
	return arith(a, b, func(x, y uint64) uint64 { return x * y })
}

func arith(a, b Value, op func(x, y uint64) uint64) Value {
	if a.width != b.width {
		panic("fourstate: width mismatch in arithmetic operation")
	}

	if !a.IsFullyDefined() || !b.IsFullyDefined() {
		return AllX(a.width)
	}

	// Widths in this framework describe bus widths for control/datapath
	// signals, not arbitrary-precision integers; restricting arithmetic
	// to <=64 bits keeps this a simple wrap-around uint64 operation,
	// matching typical register widths synthesized to SystemVerilog.
	if a.width > 64 {
		panic("fourstate: arithmetic only supported up to 64 bits")
	}

	av, _ := a.Uint64()
	bv, _ := b.Uint64()
	r := op(av, bv)

	return FromUint64(r, a.width)
}

// Shl shifts v left by the (fully-defined) unsigned amount n, shifting in
// defined zero bits. If n contains any X/Z bit, the result is all-X.
func Shl(v Value, n Value) Value {
	amt, err := n.Uint64()
	if err != nil {
		return AllX(v.width)
	}

	r := AllX(v.width)

	for i := uint(0); i < v.width; i++ {
		if i < uint(amt) {
			setBitValue(&r, i, Zero)
			continue
		}

		setBitFrom(&r, i, v, i-uint(amt))
	}

	return r
}

// Shr shifts v right (logically) by the (fully-defined) unsigned amount n,
// shifting in defined zero bits. If n contains any X/Z bit, the result is
// all-X.
func Shr(v Value, n Value) Value {
	amt, err := n.Uint64()
	if err != nil {
		return AllX(v.width)
	}

	r := AllX(v.width)

	for i := uint(0); i < v.width; i++ {
		src := i + uint(amt)
		if src >= v.width {
			setBitValue(&r, i, Zero)
			continue
		}

		setBitFrom(&r, i, v, src)
	}

	return r
}
