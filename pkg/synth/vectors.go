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
package synth

import (
	"encoding/json"
	"fmt"

	"github.com/hwgraph/hwgraph/pkg/fourstate"
)

// LogicValue is a vector-file scalar: either an integer literal (zero-
// extended to the declared signal width) or the sentinel "x", meaning
// "don't care" -- it matches any four-state value during comparison.
type LogicValue struct {
	DontCare bool
	Value    uint64
}

// UnmarshalJSON accepts either a JSON number or the string "x".
func (l *LogicValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "x" {
			return fmt.Errorf("synth: invalid LogicValue literal %q", s)
		}

		l.DontCare = true

		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("synth: invalid LogicValue: %w", err)
	}

	l.Value = n

	return nil
}

// Vector is one co-simulation test step: a set of named input stimuli
// applied before one clock period elapses, and a set of named expected
// outputs compared bit-exact afterward (matching spec.md §6 exactly).
type Vector struct {
	Inputs          map[string]LogicValue `json:"inputs"`
	ExpectedOutputs map[string]LogicValue `json:"expected_outputs"`
}

// CoSimContract bundles everything the reference-simulator harness needs:
// the generated HDL text, the top module's type label, the ordered
// vectors to apply, and a width map for multi-bit signals.
type CoSimContract struct {
	HDL     string
	TopType string
	Vectors []Vector
	Widths  map[string]uint
}

// DecodeVectors parses a JSON vector file: a bare array of vector
// objects, each with "inputs" and "expected_outputs" maps of name to
// either an integer literal or the string "x".
func DecodeVectors(data []byte) ([]Vector, error) {
	var vectors []Vector
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("synth: decoding vector file: %w", err)
	}

	return vectors, nil
}

// ToFourState converts a LogicValue to a fourstate.Value of the given
// width: an all-X value for the don't-care sentinel, or the zero-extended
// integer literal otherwise.
func (l LogicValue) ToFourState(width uint) fourstate.Value {
	if l.DontCare {
		return fourstate.AllX(width)
	}

	return fourstate.FromUint64(l.Value, width)
}

// Matches reports whether actual satisfies this expected value: always
// true for the don't-care sentinel, else a bit-exact comparison against
// the zero-extended literal.
func (l LogicValue) Matches(actual fourstate.Value) bool {
	if l.DontCare {
		return true
	}

	return actual.Equal(fourstate.FromUint64(l.Value, actual.Width()))
}
