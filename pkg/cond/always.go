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
package cond

import "github.com/hwgraph/hwgraph/pkg/logic"

// Always is the sum type of behavioral blocks: either Combinational or
// FF. Both bind an ordered Body to a sensitivity.
type Always interface {
	isAlways()
	// ReadSet returns every signal read anywhere in this block's body
	// (conditions, selectors, and assignment sources), used by the
	// simulator to determine when the block must be re-evaluated.
	ReadSet() []*logic.Signal
	// Body returns the block's ordered conditional IR.
	Body() Block
}

// Combinational is re-evaluated whenever any signal in its ReadSet
// glitches. Assignments within it apply in textual order: later writes to
// a target supersede earlier ones, and a read of a target already
// written earlier in the same evaluation observes the new (blocking)
// value.
type Combinational struct {
	body Block
}

// NewCombinational constructs a Combinational block over the given body.
func NewCombinational(body Block) *Combinational {
	return &Combinational{body: body}
}

func (*Combinational) isAlways() {}

// Body returns this block's ordered conditional IR.
func (c *Combinational) Body() Block { return c.body }

// ReadSet returns every signal read by this block.
func (c *Combinational) ReadSet() []*logic.Signal {
	return readSet(c.body)
}

// FF is re-evaluated only on the rising edge of Clock. All
// right-hand-sides are sampled against pre-edge signal values, then every
// assigned target is updated simultaneously once the body finishes
// (non-blocking semantics).
type FF struct {
	clock *logic.Signal
	body  Block
}

// NewFF constructs an FF block triggered by the rising edge of clock. It
// fails if two Assign nodes in body write the same target along branch
// paths that are not mutually exclusive, since the simulator's
// non-blocking update would otherwise make the result depend silently on
// evaluation order.
func NewFF(clock *logic.Signal, body Block) (*FF, error) {
	if err := CheckFFDrivers(body); err != nil {
		return nil, err
	}

	return &FF{clock: clock, body: body}, nil
}

func (*FF) isAlways() {}

// Clock returns the clock signal that triggers this block.
func (f *FF) Clock() *logic.Signal { return f.clock }

// Body returns this block's ordered conditional IR.
func (f *FF) Body() Block { return f.body }

// ReadSet returns every signal read by this block. It does not include
// the clock itself; the simulator schedules FF re-evaluation directly
// from edge detection rather than glitch propagation.
func (f *FF) ReadSet() []*logic.Signal {
	return readSet(f.body)
}

func readSet(b Block) []*logic.Signal {
	seen := map[*logic.Signal]bool{}

	var out []*logic.Signal

	add := func(s *logic.Signal) {
		if s == nil || seen[s] {
			return
		}

		seen[s] = true

		out = append(out, s)
		// An expression-derived signal's operands are themselves reads.
		if e := s.Expr(); e != nil {
			for _, op := range e.Operands() {
				add(op)
			}
		}
	}

	Walk(b, Visitor{
		Assign: func(a *Assign) { add(a.Source) },
		If:     func(n *If) { add(n.Cond) },
		Case: func(c *Case) {
			add(c.Selector)
			for _, item := range c.Items {
				add(item.Pattern)
			}
		},
		CaseZ: func(c *CaseZ) {
			add(c.Selector)
			for _, item := range c.Items {
				add(item.Pattern)
			}
		},
	})

	return out
}

// WriteSet returns every signal assigned anywhere in this block's body,
// without duplicates.
func WriteSet(b Block) []*logic.Signal {
	seen := map[*logic.Signal]bool{}

	var out []*logic.Signal

	Walk(b, Visitor{Assign: func(a *Assign) {
		if !seen[a.Target] {
			seen[a.Target] = true

			out = append(out, a.Target)
		}
	}})

	return out
}
