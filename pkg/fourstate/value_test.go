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
package fourstate_test

import (
	"testing"

	"github.com/hwgraph/hwgraph/pkg/fourstate"
)

func TestFromUint64RoundTrip(t *testing.T) {
	v := fourstate.FromUint64(0b1011, 4)
	if got := v.String(); got != "1011" {
		t.Fatalf("got %q, want %q", got, "1011")
	}

	u, err := v.Uint64()
	if err != nil {
		t.Fatal(err)
	}

	if u != 0b1011 {
		t.Fatalf("got %d, want %d", u, 0b1011)
	}
}

func TestFromBitsXZ(t *testing.T) {
	v, err := fourstate.FromBits("1x0z")
	if err != nil {
		t.Fatal(err)
	}

	if v.IsFullyDefined() {
		t.Fatal("expected value to not be fully defined")
	}

	if _, err := v.Uint64(); err == nil {
		t.Fatal("expected XZPropagation error")
	}

	if got := v.String(); got != "1x0z" {
		t.Fatalf("got %q, want %q", got, "1x0z")
	}
}

func TestArithmeticContamination(t *testing.T) {
	a := fourstate.FromUint64(3, 4)

	b, err := fourstate.FromBits("xxxx")
	if err != nil {
		t.Fatal(err)
	}

	sum := fourstate.Add(a, b)
	if sum.IsFullyDefined() {
		t.Fatal("expected contaminated (all-X) result")
	}

	for i := uint(0); i < 4; i++ {
		if sum.At(i) != fourstate.X {
			t.Fatalf("bit %d: got %s, want X", i, sum.At(i))
		}
	}
}

func TestBitwiseTables(t *testing.T) {
	a, _ := fourstate.FromBits("10x")
	b, _ := fourstate.FromBits("1x0")

	and := fourstate.And(a, b)
	if and.String() != "100" {
		// bit2: 1&1=1, bit1: 0&x=0 (a zero operand forces 0), bit0: x&0=0
		t.Fatalf("got %q", and.String())
	}

	or := fourstate.Or(a, b)
	if or.String() != "1xx" {
		t.Fatalf("got %q", or.String())
	}
}

func TestSliceAndSwizzle(t *testing.T) {
	v := fourstate.FromUint64(0b10110, 5)
	lo := v.Slice(3, 0)

	if lo.String() != "0110" {
		t.Fatalf("got %q, want %q", lo.String(), "0110")
	}

	combined := fourstate.Swizzle(fourstate.FromUint64(1, 1), lo)
	if combined.String() != "10110" {
		t.Fatalf("got %q, want %q", combined.String(), "10110")
	}
}

func TestEqual(t *testing.T) {
	a := fourstate.FromUint64(5, 4)
	b := fourstate.FromUint64(5, 4)
	c := fourstate.FromUint64(6, 4)

	if !a.Equal(b) {
		t.Fatal("expected equal")
	}

	if a.Equal(c) {
		t.Fatal("expected not equal")
	}
}

func TestShifts(t *testing.T) {
	v := fourstate.FromUint64(0b0001, 4)
	shl := fourstate.Shl(v, fourstate.FromUint64(2, 2))

	if got, _ := shl.Uint64(); got != 0b0100 {
		t.Fatalf("got %04b", got)
	}

	shr := fourstate.Shr(v, fourstate.FromUint64(1, 2))
	if got, _ := shr.Uint64(); got != 0 {
		t.Fatalf("got %04b", got)
	}
}
