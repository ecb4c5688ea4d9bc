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
	"github.com/hwgraph/hwgraph/pkg/fourstate"
	"github.com/hwgraph/hwgraph/pkg/logic"
)

// tristate classifies a (possibly multi-bit) condition value.
type tristate int

const (
	condFalse tristate = iota
	condTrue
	condUndefined
)

func classify(v fourstate.Value) tristate {
	if !v.IsFullyDefined() {
		return condUndefined
	}

	n, _ := v.Uint64()
	if n != 0 {
		return condTrue
	}

	return condFalse
}

// caseZMatch reports whether selector matches pattern under CaseZ
// wildcard rules: a Z bit in pattern matches either selector bit, every
// other bit must match exactly. The caller has already verified selector
// is fully defined.
func caseZMatch(selector, pattern fourstate.Value) bool {
	for i := uint(0); i < pattern.Width(); i++ {
		if pattern.At(i) == fourstate.Z {
			continue
		}

		if pattern.At(i) != selector.At(i) {
			return false
		}
	}

	return true
}

// evalCtx carries the state of one always-block evaluation: whether
// reads feeding the current branch are X-contaminated (an upstream
// condition/selector was undefined), whether assigns apply immediately
// (Combinational, blocking) or are deferred to the end (FF, non-blocking),
// and the set of distinct targets written so far (for post-evaluation
// glitch propagation).
type evalCtx struct {
	contaminate bool
	blocking    bool
	writes      map[*logic.Signal]fourstate.Value
	changed     []*logic.Signal
	seen        map[*logic.Signal]bool
}

func (c *evalCtx) record(target *logic.Signal) {
	if !c.seen[target] {
		c.seen[target] = true
		c.changed = append(c.changed, target)
	}
}

func (s *Session) evalCombinational(c *cond.Combinational) {
	if s.evaluating[c] {
		// c is already on the glitch-propagation call stack: a feedback
		// loop through one or more other blocks fed this re-trigger back
		// into c within the same batch. Cut it here rather than recurse
		// forever -- c keeps the result of its outer invocation, which is
		// not re-run for whatever changed underneath it.
		return
	}

	s.evaluating[c] = true
	defer delete(s.evaluating, c)

	ctx := &evalCtx{blocking: true, seen: map[*logic.Signal]bool{}}
	s.execBlock(c.Body(), ctx)

	for _, t := range ctx.changed {
		s.notify(t)
	}
}

func (s *Session) evalFF(f *cond.FF) {
	ctx := &evalCtx{blocking: false, writes: map[*logic.Signal]fourstate.Value{}, seen: map[*logic.Signal]bool{}}
	s.execBlock(f.Body(), ctx)

	var actuallyChanged []*logic.Signal

	for _, t := range ctx.changed {
		before := t.Seq()
		t.Put(ctx.writes[t])

		if t.Seq() != before {
			actuallyChanged = append(actuallyChanged, t)
		}
	}

	for _, t := range actuallyChanged {
		s.notify(t)
	}
}

func (s *Session) execBlock(b cond.Block, ctx *evalCtx) {
	for _, n := range b {
		s.execNode(n, ctx)
	}
}

func (s *Session) execNode(n cond.Node, ctx *evalCtx) {
	switch t := n.(type) {
	case *cond.Assign:
		s.execAssign(t, ctx)
	case *cond.If:
		switch classify(t.Cond.Value()) {
		case condTrue:
			s.execBlock(t.Then, ctx)
		case condFalse:
			s.execBlock(t.Else, ctx)
		case condUndefined:
			sub := *ctx
			sub.contaminate = true
			s.execBlock(t.Then, &sub)
		}
	case *cond.Case:
		s.execCase(t.Selector, t.Items, t.Default, ctx, false)
	case *cond.CaseZ:
		s.execCase(t.Selector, t.Items, t.Default, ctx, true)
	}
}

func (s *Session) execCase(sel *logic.Signal, items []cond.CaseItem, def cond.Block, ctx *evalCtx, wildcard bool) {
	selVal := sel.Value()

	if !selVal.IsFullyDefined() {
		sub := *ctx
		sub.contaminate = true
		s.execBlock(def, &sub)

		return
	}

	for _, item := range items {
		patVal := item.Pattern.Value()

		matched := false
		if wildcard {
			matched = caseZMatch(selVal, patVal)
		} else {
			matched = selVal.Equal(patVal)
		}

		if matched {
			s.execBlock(item.Body, ctx)
			return
		}
	}

	s.execBlock(def, ctx)
}

func (s *Session) execAssign(a *cond.Assign, ctx *evalCtx) {
	var v fourstate.Value
	if ctx.contaminate {
		v = fourstate.AllX(a.Target.Width())
	} else {
		v = a.Source.Value()
	}

	if ctx.blocking {
		before := a.Target.Seq()
		a.Target.Put(v)

		if a.Target.Seq() != before {
			ctx.record(a.Target)
		}

		return
	}

	ctx.writes[a.Target] = v
	ctx.record(a.Target)
}
