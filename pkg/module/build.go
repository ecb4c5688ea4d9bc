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
package module

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/hwerr"
	"github.com/hwgraph/hwgraph/pkg/logic"
	"github.com/hwgraph/hwgraph/pkg/util"
)

// direction selects which edge set (Source/Expr operands, or
// Destinations) the flood fill follows from a given signal.
type direction int

const (
	upstream direction = iota
	downstream
)

func neighbors(s *logic.Signal, dir direction) []*logic.Signal {
	if dir == downstream {
		return s.Destinations()
	}

	if src := s.Source(); src != nil {
		return []*logic.Signal{src}
	}

	if e := s.Expr(); e != nil {
		return e.Operands()
	}

	return nil
}

// Build performs the post-construction tracing pass: it discovers
// sub-modules purely by walking the signal graph from m's ports (upstream
// from outputs, downstream from inputs), claims every interior signal it
// finds as an internal signal of m, recurses Build into every discovered
// sub-module, and assigns unique-within-parent instance names to them.
// Build is idempotent-forbidden: a second call fails with AlreadyBuilt.
func (m *Module) Build() error {
	if m.hasBuilt {
		return &hwerr.AlreadyBuilt{Module: m.name}
	}

	if m.parent == nil {
		m.path = util.NewAbsolutePath(m.name)
		m.instanceName = strings.ToLower(legalizeIdentifier(m.name))
	}

	visited := bitset.New(0)

	for _, p := range m.outputs {
		if err := m.walk(p.Signal, upstream, visited); err != nil {
			return err
		}
	}

	for _, p := range m.inputs {
		if err := m.walk(p.Signal, downstream, visited); err != nil {
			return err
		}
	}

	// Signals touched only inside a behavioral block's Assign nodes (not
	// wired through Gets/Expr) still need to be discovered and claimed:
	// an always-block's read-set and write-set are graph edges just as
	// much as Gets/Expr are, they just aren't continuous connections.
	for _, a := range m.always {
		for _, rd := range a.ReadSet() {
			if err := m.walk(rd, upstream, visited); err != nil {
				return err
			}
		}

		for _, wr := range cond.WriteSet(a.Body()) {
			if err := m.walk(wr, upstream, visited); err != nil {
				return err
			}
		}
	}

	for _, sub := range m.subModules {
		if err := sub.Build(); err != nil {
			return err
		}
	}

	m.assignInstanceNames()
	m.assignPaths()

	m.hasBuilt = true

	return nil
}

func (m *Module) walk(s *logic.Signal, dir direction, visited *bitset.BitSet) error {
	if s == nil || visited.Test(s.ID()) {
		return nil
	}

	owner, _ := s.Parent().(*Module)

	// One of m's own input ports reached while walking upstream, or one of
	// its own output ports reached while walking downstream, is m's
	// boundary: what lies beyond it belongs to the enclosing module.
	if owner == m && ((dir == upstream && s.IsInput()) || (dir == downstream && s.IsOutput())) {
		return nil
	}

	visited.Set(s.ID())

	switch {
	case owner == nil:
		if s.IsPort() {
			return &hwerr.PortViolation{
				Path:   m.pathString(),
				Detail: fmt.Sprintf("signal %q is a port of no known module", s.Name()),
			}
		}

		s.SetParent(m)
		m.internals = append(m.internals, s)

	case owner == m:
		// Already ours (one of our own ports, or an internal signal
		// claimed earlier in this same walk); keep exploring through
		// it.

	default:
		if owner.parent == nil {
			owner.parent = m
			m.subModules = append(m.subModules, owner)

			log.Debugf("module %s: discovered sub-module %s via %s", m.name, owner.name, s.Name())
		} else if owner.parent != m {
			return &hwerr.PortViolation{
				Path: m.pathString(),
				Detail: fmt.Sprintf("signal %q belongs to module %q, already a child of %q",
					s.Name(), owner.name, owner.parent.name),
			}
		}
		// Boundary reached: owner's interior is discovered by owner's
		// own (recursive) Build call, not by m's walk.
		return nil
	}

	for _, n := range neighbors(s, dir) {
		if err := m.walk(n, dir, visited); err != nil {
			return err
		}
	}

	return nil
}

func (m *Module) pathString() string {
	if m.parent == nil {
		return m.name
	}

	return m.path.String()
}

// legalizeIdentifier strips/rewrites characters disallowed by the target
// HDL's identifier rules, providing a best-effort instance-name base when
// a module's declared name is not already legal on its own (declared
// names are free text; instance names must be legal identifiers).
var illegalIdentChar = regexp.MustCompile(`[^A-Za-z0-9_]`)

func legalizeIdentifier(name string) string {
	s := illegalIdentChar.ReplaceAllString(name, "_")
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "_" + s
	}

	return s
}

// assignInstanceNames derives an HDL-legal instance name for each
// discovered sub-module, disambiguating collisions within this parent
// with a monotonic numeric suffix.
func (m *Module) assignInstanceNames() {
	for _, sub := range m.subModules {
		base := strings.ToLower(legalizeIdentifier(sub.name))

		n := m.nameCounts[base]
		m.nameCounts[base] = n + 1

		if n == 0 {
			sub.instanceName = base
		} else {
			sub.instanceName = fmt.Sprintf("%s_%d", base, n)
		}
	}
}

func (m *Module) assignPaths() {
	for _, sub := range m.subModules {
		if sub.parent == m {
			sub.path = *m.path.Extend(sub.instanceName)
		}
	}
}
