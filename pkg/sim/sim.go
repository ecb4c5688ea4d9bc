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

// Package sim implements Session, an event-driven simulator over virtual
// time: a min-heap of (time, action) entries driving clock generation,
// with signal glitch propagation and always-block re-evaluation handled
// synchronously (within a single tick) as each Put cascades to its
// dependents.
package sim

import (
	"container/heap"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/fourstate"
	"github.com/hwgraph/hwgraph/pkg/logic"
)

// Time is virtual simulation time: a non-negative integer tick count. The
// real-world unit it denotes (ns, ps, abstract cycles) is left to the
// caller, exactly as spec.md leaves it to the source.
type Time uint64

// action is one scheduled event: run fn at time t. seq breaks ties
// between actions registered for the same time in registration order,
// since container/heap does not otherwise guarantee FIFO among equals.
type action struct {
	t   Time
	seq uint64
	fn  func(s *Session)
}

type actionHeap []action

func (h actionHeap) Len() int { return len(h) }
func (h actionHeap) Less(i, j int) bool {
	if h[i].t != h[j].t {
		return h[i].t < h[j].t
	}

	return h[i].seq < h[j].seq
}
func (h actionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *actionHeap) Push(x interface{}) { *h = append(*h, x.(action)) }
func (h *actionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// Session is an explicit, independently-resettable simulation context,
// replacing a process-wide singleton: the event heap, current time, and
// every registered always-block subscription live on the Session value,
// so concurrent test cases each get an isolated instance rather than
// contending for shared global state.
type Session struct {
	now  Time
	heap actionHeap
	seq  uint64

	subscribers map[*logic.Signal][]func(*Session)

	// evaluating tracks which Combinational blocks are currently on the
	// glitch-propagation call stack, so a feedback loop across blocks (two
	// modules wired into each other, which spec.md permits as input that
	// "does not settle") re-triggers a block at most once per glitch batch
	// instead of recursing forever. See evalCombinational.
	evaluating map[*cond.Combinational]bool
}

// New constructs a fresh Session at time 0 with an empty event queue and
// no registered always-blocks.
func New() *Session {
	return &Session{
		subscribers: map[*logic.Signal][]func(*Session){},
		evaluating:  map[*cond.Combinational]bool{},
	}
}

// Now returns the session's current virtual time.
func (s *Session) Now() Time {
	return s.now
}

// RegisterAction schedules fn to run at virtual time t. Actions
// registered for the same t run in the order RegisterAction was called.
func (s *Session) RegisterAction(t Time, fn func(s *Session)) {
	s.seq++
	heap.Push(&s.heap, action{t: t, seq: s.seq, fn: fn})
}

// Tick advances time to the next scheduled entry and drains every action
// scheduled for that exact time, propagating any glitches they cause,
// before returning. It returns false if the queue was already empty.
func (s *Session) Tick() bool {
	if len(s.heap) == 0 {
		return false
	}

	t := s.heap[0].t
	s.now = t

	for len(s.heap) > 0 && s.heap[0].t == t {
		a := heap.Pop(&s.heap).(action)
		a.fn(s)
	}

	return true
}

// RunFor repeatedly ticks until the session's virtual time would exceed
// until, or the queue empties, whichever comes first.
func (s *Session) RunFor(until Time) {
	for len(s.heap) > 0 && s.heap[0].t <= until {
		if !s.Tick() {
			return
		}
	}
}

// Reset discards all pending entries and returns the session to time 0.
// Registered always-block subscriptions survive a reset; only the event
// queue and clock are rewound, matching spec.md's "reset is the only
// cancellation primitive" (construction is not re-done by reset).
func (s *Session) Reset() {
	s.now = 0
	s.heap = nil
}

// RegisterClock schedules a recurring half-period toggle action producing
// a square wave on clk starting low at t=0, per spec.md's clock-generator
// convention.
func (s *Session) RegisterClock(clk *logic.Signal, halfPeriod Time) {
	s.drive(clk, fourstate.FromUint64(0, clk.Width()))

	var toggle func(sess *Session)

	toggle = func(sess *Session) {
		cur, _ := clk.Value().Uint64()

		next := uint64(1)
		if cur == 1 {
			next = 0
		}

		sess.drive(clk, fourstate.FromUint64(next, clk.Width()))
		sess.RegisterAction(sess.now+halfPeriod, toggle)
	}

	s.RegisterAction(halfPeriod, toggle)
}

// Drive forces sig to v, exactly as Signal.Put does for external
// stimulus, then synchronously propagates the resulting glitch to every
// derived signal, wired destination, and always-block that reads it.
func (s *Session) Drive(sig *logic.Signal, v fourstate.Value) {
	s.drive(sig, v)
}

func (s *Session) drive(sig *logic.Signal, v fourstate.Value) {
	before := sig.Seq()

	sig.Put(v)

	if sig.Seq() != before {
		s.notify(sig)
	}
}
