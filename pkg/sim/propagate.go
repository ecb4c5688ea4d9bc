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
package sim

import (
	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/logic"
)

// RegisterCombinational arranges for c to be evaluated once immediately
// (to seed its outputs) and again every time any signal in its read-set
// glitches, per spec.md's Combinational re-evaluation rule.
func (s *Session) RegisterCombinational(c *cond.Combinational) {
	eval := func(sess *Session) {
		sess.evalCombinational(c)
	}

	eval(s)

	for _, rd := range c.ReadSet() {
		s.subscribers[rd] = append(s.subscribers[rd], eval)
	}
}

// RegisterFF arranges for f to be evaluated on every rising edge of its
// clock, sampling reads against pre-edge values and applying every target
// update simultaneously once the body finishes, per spec.md's FF rule.
func (s *Session) RegisterFF(f *cond.FF) {
	clock := f.Clock()

	var prev uint64

	if v, err := clock.Value().Uint64(); err == nil {
		prev = v
	}

	s.subscribers[clock] = append(s.subscribers[clock], func(sess *Session) {
		cur, err := clock.Value().Uint64()
		if err != nil {
			prev = 0
			return
		}

		if prev == 0 && cur == 1 {
			sess.evalFF(f)
		}

		prev = cur
	})
}

// notify fires every registered subscriber of sig, then cascades into
// every destination signal continuously driven by sig: a derived
// (expression) signal is recomputed from its operands, and a plain
// Gets-wired signal is forwarded sig's new value -- both kinds Put their
// new value and, if it actually changed, recurse into notify themselves.
// This is how a glitch on a primary input reaches every transitively
// derived signal within the same virtual instant.
func (s *Session) notify(sig *logic.Signal) {
	for _, fn := range s.subscribers[sig] {
		fn(s)
	}

	for _, dst := range sig.Destinations() {
		if e := dst.Expr(); e != nil {
			s.drive(dst, e.Eval())
		} else if dst.Source() == sig {
			s.drive(dst, sig.Value())
		}
	}
}
