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
package sim_test

import (
	"testing"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/fourstate"
	"github.com/hwgraph/hwgraph/pkg/logic"
	"github.com/hwgraph/hwgraph/pkg/sim"
)

func mustUint(t *testing.T, s *logic.Signal) uint64 {
	t.Helper()

	u, err := s.ValueUint64()
	if err != nil {
		t.Fatalf("%s: %v", s.Name(), err)
	}

	return u
}

// TestCombinationalReevaluatesOnInputGlitch exercises spec scenario 4
// (priority if/elseif/else): c tracks a OR b, and must update within the
// same virtual instant a or b changes, with no explicit clock involved.
func TestCombinationalReevaluatesOnInputGlitch(t *testing.T) {
	a := logic.New("a", 1)
	b := logic.New("b", 1)
	c := logic.New("c", 1)

	a.Put(fourstate.FromUint64(0, 1))
	b.Put(fourstate.FromUint64(0, 1))

	one := logic.New("one", 1)
	one.Put(fourstate.FromUint64(1, 1))
	zero := logic.New("zero", 1)
	zero.Put(fourstate.FromUint64(0, 1))

	body := cond.Block{
		&cond.If{
			Cond: a,
			Then: cond.Block{&cond.Assign{Target: c, Source: one}},
			Else: cond.Block{
				&cond.If{
					Cond: b,
					Then: cond.Block{&cond.Assign{Target: c, Source: one}},
					Else: cond.Block{&cond.Assign{Target: c, Source: zero}},
				},
			},
		},
	}

	comb := cond.NewCombinational(body)

	s := sim.New()
	s.RegisterCombinational(comb)

	if mustUint(t, c) != 0 {
		t.Fatalf("expected c=0 initially, got %d", mustUint(t, c))
	}

	s.Drive(a, fourstate.FromUint64(1, 1))

	if mustUint(t, c) != 1 {
		t.Fatalf("expected c=1 after driving a high, got %d", mustUint(t, c))
	}

	s.Drive(a, fourstate.FromUint64(0, 1))
	s.Drive(b, fourstate.FromUint64(1, 1))

	if mustUint(t, c) != 1 {
		t.Fatalf("expected c=1 after driving b high, got %d", mustUint(t, c))
	}

	s.Drive(b, fourstate.FromUint64(0, 1))

	if mustUint(t, c) != 0 {
		t.Fatalf("expected c=0 after both inputs low, got %d", mustUint(t, c))
	}
}

// TestFFSamplesPreEdgeValues exercises spec scenario 2 (synchronous
// counter): the FF body reads val to compute next, and must see val's
// pre-edge value even though val is also this same FF's write target.
func TestFFSamplesPreEdgeValues(t *testing.T) {
	clk := logic.New("clk", 1)
	en := logic.New("en", 1)
	val := logic.New("val", 8)

	clk.Put(fourstate.FromUint64(0, 1))
	en.Put(fourstate.FromUint64(1, 1))
	val.Put(fourstate.FromUint64(0, 8))

	one := logic.New("one", 8)
	one.Put(fourstate.FromUint64(1, 8))

	next := val.Add(one)

	body := cond.Block{
		&cond.If{
			Cond: en,
			Then: cond.Block{&cond.Assign{Target: val, Source: next}},
		},
	}

	ff, err := cond.NewFF(clk, body)
	if err != nil {
		t.Fatalf("NewFF: %v", err)
	}

	s := sim.New()
	s.RegisterFF(ff)

	for i := uint64(1); i <= 4; i++ {
		s.Drive(clk, fourstate.FromUint64(1, 1))
		s.Drive(clk, fourstate.FromUint64(0, 1))

		if got := mustUint(t, val); got != i {
			t.Fatalf("after %d rising edges: expected val=%d, got %d", i, i, got)
		}
	}
}

// TestRegisterClockProducesSquareWave checks the clock generator toggles
// clk every halfPeriod starting low, and that RunFor advances exactly to
// the requested virtual time.
func TestRegisterClockProducesSquareWave(t *testing.T) {
	clk := logic.New("clk", 1)

	s := sim.New()
	s.RegisterClock(clk, 5)

	if mustUint(t, clk) != 0 {
		t.Fatalf("expected clk low immediately after registration, got %d", mustUint(t, clk))
	}

	s.RunFor(5)

	if mustUint(t, clk) != 1 {
		t.Fatalf("expected clk high at t=5, got %d", mustUint(t, clk))
	}

	if s.Now() != 5 {
		t.Fatalf("expected Now()=5, got %d", s.Now())
	}

	s.RunFor(10)

	if mustUint(t, clk) != 0 {
		t.Fatalf("expected clk low at t=10, got %d", mustUint(t, clk))
	}
}

// TestResetRewindsTimeButKeepsSubscriptions ensures Reset drops pending
// events and rewinds time without undoing RegisterCombinational/
// RegisterFF subscriptions, per spec.md's reset contract.
func TestResetRewindsTimeButKeepsSubscriptions(t *testing.T) {
	a := logic.New("a", 1)
	y := logic.New("y", 1)

	a.Put(fourstate.FromUint64(0, 1))

	body := cond.Block{&cond.Assign{Target: y, Source: a}}
	comb := cond.NewCombinational(body)

	s := sim.New()
	s.RegisterClock(logic.New("clk", 1), 5)
	s.RegisterCombinational(comb)

	s.RunFor(20)
	if s.Now() == 0 {
		t.Fatalf("expected Now() to have advanced before Reset")
	}

	s.Reset()

	if s.Now() != 0 {
		t.Fatalf("expected Now()=0 after Reset, got %d", s.Now())
	}

	s.Drive(a, fourstate.FromUint64(1, 1))

	if mustUint(t, y) != 1 {
		t.Fatalf("expected combinational subscription to survive Reset, y=%d", mustUint(t, y))
	}
}

// TestCombinationalSelfLoopDoesNotRecurseForever builds a single
// Combinational block that both reads and writes y (y <- NOT y), the
// degenerate case of the divergent feedback loops spec.md permits as
// input that "does not settle". Without a re-entrancy guard, driving y
// once would recurse through notify -> evalCombinational -> notify
// forever; this asserts the block is re-evaluated at most once per
// glitch batch instead.
func TestCombinationalSelfLoopDoesNotRecurseForever(t *testing.T) {
	y := logic.New("y", 1)
	y.Put(fourstate.FromUint64(0, 1))

	one := logic.New("one", 1)
	one.Put(fourstate.FromUint64(1, 1))
	zero := logic.New("zero", 1)
	zero.Put(fourstate.FromUint64(0, 1))

	body := cond.Block{
		&cond.If{
			Cond: y,
			Then: cond.Block{&cond.Assign{Target: y, Source: zero}},
			Else: cond.Block{&cond.Assign{Target: y, Source: one}},
		},
	}

	comb := cond.NewCombinational(body)

	s := sim.New()
	s.RegisterCombinational(comb)

	// The initial seed evaluation reads y=0 (false) and assigns y=one, so
	// registration itself already leaves y=1 -- the block's one and only
	// stable-looking value until something drives y again.
	if mustUint(t, y) != 1 {
		t.Fatalf("expected y=1 after initial seed, got %d", mustUint(t, y))
	}

	// Forcing y back to 0 triggers its own subscriber, which re-evaluates
	// the block and flips y back to 1; the guard must cut off the
	// resulting re-entrant notify(y) before it can flip y to 0 again and
	// loop forever. If it returns at all with y settled back at 1, the
	// re-entrancy guard did its job.
	s.Drive(y, fourstate.FromUint64(0, 1))

	if mustUint(t, y) != 1 {
		t.Fatalf("expected the self-loop to settle back at 1 after exactly one re-evaluation, y=%d", mustUint(t, y))
	}
}
