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

// Package logic implements Signal, the multi-bit four-state wire that is
// the fundamental node of the hardware graph: every Module port and every
// internal wire is a Signal, connected to others via source/destination
// edges discovered during a parent Module's build.
package logic

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hwgraph/hwgraph/pkg/fourstate"
	"github.com/hwgraph/hwgraph/pkg/hwerr"
)

// unpreferredPrefix marks names of signals synthesized by expression
// operators (slice, swizzle, arithmetic) rather than declared by user
// code. The synthesizer elides these where it safely can.
const unpreferredPrefix = "_t"

// Parent abstracts the owning module of a signal, avoiding an import cycle
// between logic and module: module.Module implements this interface.
type Parent interface {
	// Name returns the module's declared (not instance-unique) name.
	Name() string
}

// Signal is a named or derived multi-bit wire carrying a four-state
// value. A Signal has at most one source connection (the signal or
// expression driving it) and any number of destination connections (the
// signals it drives in turn).
type Signal struct {
	id    uint
	name  string
	width uint

	value fourstate.Value

	source       *Signal
	destinations []*Signal

	isInput  bool
	isOutput bool

	parent Parent

	glitch chan fourstate.Value
	seq    uint64

	expr *Expr
}

var anonCounter uint64
var idCounter uint

// New constructs a named internal signal of the given width, initialized
// to all-X.
func New(name string, width uint) *Signal {
	if width == 0 {
		panic("logic: width must be >= 1")
	}

	idCounter++

	return &Signal{name: name, width: width, value: fourstate.AllX(width), id: idCounter}
}

// ID returns a process-unique, dense (small, monotonically increasing)
// identifier for this signal, suitable for indexing a bitset during
// build's visited-signal tracking.
func (s *Signal) ID() uint {
	return s.id
}

// NewDerived constructs an unnamed signal produced by an expression
// operator (e.g. slice, swizzle, arithmetic). Its name carries the
// unpreferred-name marker so the synthesizer may elide it at use sites.
func NewDerived(width uint) *Signal {
	anonCounter++
	return New(fmt.Sprintf("%s%d", unpreferredPrefix, anonCounter), width)
}

// Name returns this signal's declared name.
func (s *Signal) Name() string {
	return s.name
}

// IsUnpreferredName reports whether this signal's name was synthesized
// rather than declared by user code.
func (s *Signal) IsUnpreferredName() bool {
	return len(s.name) >= len(unpreferredPrefix) && s.name[:len(unpreferredPrefix)] == unpreferredPrefix
}

// Width returns the number of bits carried by this signal.
func (s *Signal) Width() uint {
	return s.width
}

// Value returns the signal's current four-state value.
func (s *Signal) Value() fourstate.Value {
	return s.value
}

// ValueUint64 returns the signal's current value as an unsigned integer,
// failing with XZPropagation if any bit is X or Z.
func (s *Signal) ValueUint64() (uint64, error) {
	return s.value.Uint64()
}

// MarkInput flags this signal as an input port of its (future) parent
// module.
func (s *Signal) MarkInput() {
	s.isInput = true
}

// MarkOutput flags this signal as an output port of its (future) parent
// module.
func (s *Signal) MarkOutput() {
	s.isOutput = true
}

// IsInput reports whether this signal is an input port.
func (s *Signal) IsInput() bool {
	return s.isInput
}

// IsOutput reports whether this signal is an output port.
func (s *Signal) IsOutput() bool {
	return s.isOutput
}

// IsPort reports whether this signal is an input or output port of some
// module.
func (s *Signal) IsPort() bool {
	return s.isInput || s.isOutput
}

// Parent returns this signal's owning module, or nil if it has not yet
// been claimed during a build pass.
func (s *Signal) Parent() Parent {
	return s.parent
}

// SetParent assigns this signal's owning module. It is an internal
// primitive used by package module during build tracing; callers outside
// that package should never need it. Re-assignment to the same parent is
// a no-op; re-assignment to a different parent panics, since the "parent
// assigned at most once" invariant is load-bearing for build's
// termination guarantee.
func (s *Signal) SetParent(p Parent) {
	if s.parent != nil {
		if s.parent == p {
			return
		}

		panic("logic: signal parent already assigned")
	}

	s.parent = p
}

// Source returns this signal's source connection, or nil if undriven.
func (s *Signal) Source() *Signal {
	return s.source
}

// Destinations returns the signals driven by this one.
func (s *Signal) Destinations() []*Signal {
	return s.destinations
}

// Gets establishes src as this signal's unique source driver. It fails
// with DriverConflict if a source is already connected.
func (s *Signal) Gets(src *Signal) error {
	if s.source != nil {
		return &hwerr.DriverConflict{Signal: s.name}
	}

	if src.width != s.width {
		return &hwerr.WidthMismatch{Signal: s.name, Expected: s.width, Actual: src.width}
	}

	s.source = src
	src.destinations = append(src.destinations, s)

	log.Debugf("logic: %s <- %s", s.name, src.name)

	return nil
}

// Put forces the current value of this signal (for simulation input
// stimulus). It fires the glitch stream iff the new value differs from
// the prior one.
func (s *Signal) Put(v fourstate.Value) {
	if v.Width() != s.width {
		panic("logic: value width mismatch")
	}

	if s.value.Equal(v) {
		return
	}

	s.value = v
	s.seq++

	if s.glitch != nil {
		select {
		case s.glitch <- v:
		default:
			// Buffered channel full: drain stale value, keep latest.
			select {
			case <-s.glitch:
			default:
			}

			s.glitch <- v
		}
	}
}

// Glitches returns a channel delivering values this signal is put to that
// differ from their predecessor. The channel is created lazily and buffers
// one value: a Put that finds it full replaces the stale value with the
// latest one. Package sim does not read it; propagation there goes through
// Destinations. Repeated calls return the same channel.
func (s *Signal) Glitches() <-chan fourstate.Value {
	if s.glitch == nil {
		s.glitch = make(chan fourstate.Value, 1)
	}

	return s.glitch
}

// Seq returns a monotonically increasing counter bumped on every value
// change, used by the simulator to detect whether a signal changed since
// a prior observation without consuming the glitch channel.
func (s *Signal) Seq() uint64 {
	return s.seq
}

func (s *Signal) String() string {
	return fmt.Sprintf("%s[%d]=%s", s.name, s.width, s.value.String())
}
