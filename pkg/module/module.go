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

// Package module implements Module, the named scope that owns input
// ports, output ports, internal signals, and sub-modules, and hosts the
// build tracing pass that discovers containment without user code ever
// registering a sub-module by hand.
package module

import (
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/hwerr"
	"github.com/hwgraph/hwgraph/pkg/logic"
	"github.com/hwgraph/hwgraph/pkg/util"
)

// identifierPattern is the lexical rule port/signal identifiers must
// satisfy to be legal in the target HDL.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Port pairs a declared port name with its signal, preserving declaration
// order for synthesis (unlike a map).
type Port struct {
	Name   string
	Signal *logic.Signal
}

// Module is a named scope owning input ports, output ports, internal
// (non-port) signals, and sub-modules discovered during build.
type Module struct {
	id   uint
	name string

	inputs  []Port
	outputs []Port

	internals []*logic.Signal

	always []cond.Always

	subModules   []*Module
	instanceName string
	nameCounts   map[string]int

	parent *Module

	hasBuilt bool
	path     util.Path

	customVerilog func() (string, error)
}

var idCounter uint

// New constructs a new, empty module with the given declared name. The
// name need not be unique across the design; uniqueness of the
// *instance* name among siblings is established during the parent's
// build.
func New(name string) *Module {
	idCounter++
	return &Module{id: idCounter, name: name, nameCounts: map[string]int{}}
}

// ID returns a process-unique identifier, used internally to index
// bitsets during build tracing.
func (m *Module) ID() uint {
	return m.id
}

// Name returns this module's declared (not instance-unique) name. This
// also satisfies logic.Parent so a *Module can own a Signal.
func (m *Module) Name() string {
	return m.name
}

// InstanceName returns the unique-within-its-parent name assigned during
// build, failing with NotBuilt if called on the root before Build, or on
// a non-root module before its parent has discovered it.
func (m *Module) InstanceName() (string, error) {
	if m.instanceName == "" {
		return "", &hwerr.NotBuilt{Module: m.name}
	}

	return m.instanceName, nil
}

// Parent returns this module's enclosing module, or nil for the root.
func (m *Module) Parent() *Module {
	return m.parent
}

// HasBuilt reports whether Build has completed successfully on this
// module.
func (m *Module) HasBuilt() bool {
	return m.hasBuilt
}

// Path returns this module's hierarchical dotted path from the root,
// valid only after the root's Build has completed.
func (m *Module) Path() util.Path {
	return m.path
}

// SubModules returns the sub-modules discovered during Build, in
// discovery order.
func (m *Module) SubModules() []*Module {
	return m.subModules
}

// Inputs returns this module's input ports in declaration order.
func (m *Module) Inputs() []Port {
	return m.inputs
}

// Outputs returns this module's output ports in declaration order.
func (m *Module) Outputs() []Port {
	return m.outputs
}

// InternalSignals returns the signals discovered to belong to this
// module during Build that are neither inputs nor outputs.
func (m *Module) InternalSignals() []*logic.Signal {
	return m.internals
}

// Signal looks up one of this module's named ports by name, returning nil
// if no input or output port carries that name. It does not search
// internal signals, which are unnamed from the module's own perspective.
func (m *Module) Signal(name string) *logic.Signal {
	for _, p := range m.inputs {
		if p.Name == name {
			return p.Signal
		}
	}

	for _, p := range m.outputs {
		if p.Name == name {
			return p.Signal
		}
	}

	return nil
}

// AddAlways attaches a Combinational or FF behavioral block to this
// module. Order of attachment matters only for synthesis output
// ordering, not for simulation (each Always is independently scheduled).
func (m *Module) AddAlways(a cond.Always) {
	m.always = append(m.always, a)
}

// AlwaysBlocks returns this module's attached behavioral blocks in
// attachment order.
func (m *Module) AlwaysBlocks() []cond.Always {
	return m.always
}

// UseCustomVerilog registers a capability that, when present, causes the
// synthesizer to emit fn's output verbatim for this module type instead
// of lowering its always-blocks. Used by modules like clock generators
// whose behavior (an `initial` block) has no expression in this
// framework's behavioral IR.
func (m *Module) UseCustomVerilog(fn func() (string, error)) {
	m.customVerilog = fn
}

// CustomVerilog returns the registered custom-emission capability, if
// any.
func (m *Module) CustomVerilog() (func() (string, error), bool) {
	return m.customVerilog, m.customVerilog != nil
}

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return &hwerr.InvalidIdentifier{Name: name}
	}

	return nil
}

func (m *Module) hasPort(name string) bool {
	for _, p := range m.inputs {
		if p.Name == name {
			return true
		}
	}

	for _, p := range m.outputs {
		if p.Name == name {
			return true
		}
	}

	return false
}

// AddInput creates an input port of this module named name and the given
// width (defaulting to 1 if width is omitted), wired from external. The
// port signal's parent is this module immediately; external's parent is
// unaffected. Fails with InvalidIdentifier, DuplicatePort, or
// WidthMismatch.
func (m *Module) AddInput(name string, external *logic.Signal, width ...uint) (*logic.Signal, error) {
	w := uint(1)
	if len(width) > 0 {
		w = width[0]
	}

	if err := checkIdentifier(name); err != nil {
		return nil, err
	}

	if m.hasPort(name) {
		return nil, &hwerr.DuplicatePort{Module: m.name, Name: name}
	}

	if external.Width() != w {
		return nil, &hwerr.WidthMismatch{Signal: name, Expected: w, Actual: external.Width()}
	}

	s := logic.New(name, w)
	s.MarkInput()
	s.SetParent(m)

	if err := s.Gets(external); err != nil {
		return nil, err
	}

	m.inputs = append(m.inputs, Port{name, s})

	log.Debugf("module %s: added input %s[%d]", m.name, name, w)

	return s, nil
}

// AddOutput creates an output port of this module named name and the
// given width (defaulting to 1 if width is omitted). The signal is
// unsourced; the module's behavioral body must assign it before Build.
// Fails with InvalidIdentifier or DuplicatePort.
func (m *Module) AddOutput(name string, width ...uint) (*logic.Signal, error) {
	w := uint(1)
	if len(width) > 0 {
		w = width[0]
	}

	if err := checkIdentifier(name); err != nil {
		return nil, err
	}

	if m.hasPort(name) {
		return nil, &hwerr.DuplicatePort{Module: m.name, Name: name}
	}

	s := logic.New(name, w)
	s.MarkOutput()
	s.SetParent(m)

	m.outputs = append(m.outputs, Port{name, s})

	log.Debugf("module %s: added output %s[%d]", m.name, name, w)

	return s, nil
}
