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

// Package iface implements Interface, a reusable bundle of port
// definitions tagged by direction, instantiated once per connection via
// connectIO rather than wired port-by-port at every call site.
package iface

import (
	log "github.com/sirupsen/logrus"

	"github.com/hwgraph/hwgraph/pkg/hwerr"
	"github.com/hwgraph/hwgraph/pkg/logic"
	"github.com/hwgraph/hwgraph/pkg/module"
)

// PortDef declares one port of an interface: a name, a width, and the set
// of direction tags it carries. Tag is left generic so callers can define
// their own small tag enum (e.g. a master/slave pair) the way different
// bus protocols assign direction differently for the same port name.
type PortDef[Tag comparable] struct {
	Name  string
	Width uint
	Tags  []Tag
}

func (d PortDef[Tag]) hasTag(t Tag) bool {
	for _, tag := range d.Tags {
		if tag == t {
			return true
		}
	}

	return false
}

// Interface is a reusable bundle of port definitions. A zero Interface
// with a populated Ports slice is the "definition"; ConnectIO binds it to
// a concrete module and a concrete peer to produce the "local view".
type Interface[Tag comparable] struct {
	Ports     []PortDef[Tag]
	InputTags []Tag
	OutputTag Tag

	local map[string]*logic.Signal
}

// Peer is the minimal surface ConnectIO needs from the other side of a
// connection: a named, width-checked signal lookup. *module.Module
// satisfies this via its port accessors through the small adapter below.
type Peer interface {
	Signal(name string) (*logic.Signal, bool)
}

// ModulePeer adapts a *module.Module (searched across both its inputs and
// outputs) to the Peer interface expected by ConnectIO.
type ModulePeer struct {
	M *module.Module
}

// Signal looks up a port by name across both the module's inputs and
// outputs.
func (p ModulePeer) Signal(name string) (*logic.Signal, bool) {
	s := p.M.Signal(name)
	return s, s != nil
}

// ConnectIO is the sole wiring primitive: for each port definition whose
// tags intersect inputTags, parent gains an input port of the same name
// and width, sourced from the corresponding port of other; symmetrically,
// for each definition tagged outputTag, parent gains an output port that
// other's same-named port (input or output) is wired from. A definition whose tags
// intersect neither set is silently omitted; one intersecting both raises
// AmbiguousDirection.
func ConnectIO[Tag comparable](parent *module.Module, other Peer, intf Interface[Tag]) (*Interface[Tag], error) {
	local := &Interface[Tag]{Ports: intf.Ports, InputTags: intf.InputTags, OutputTag: intf.OutputTag,
		local: map[string]*logic.Signal{}}

	for _, def := range intf.Ports {
		isInput := false
		for _, t := range intf.InputTags {
			if def.hasTag(t) {
				isInput = true
				break
			}
		}

		isOutput := def.hasTag(intf.OutputTag)

		switch {
		case isInput && isOutput:
			return nil, &hwerr.AmbiguousDirection{Port: def.Name}
		case isInput:
			peer, ok := other.Signal(def.Name)
			if !ok {
				continue
			}

			s, err := parent.AddInput(def.Name, peer, def.Width)
			if err != nil {
				return nil, err
			}

			local.local[def.Name] = s
		case isOutput:
			s, err := parent.AddOutput(def.Name, def.Width)
			if err != nil {
				return nil, err
			}

			local.local[def.Name] = s

			if peer, ok := other.Signal(def.Name); ok {
				if err := peer.Gets(s); err != nil {
					return nil, err
				}
			}
		default:
			log.Debugf("iface: port %q carries no recognised direction tag, omitted", def.Name)
		}
	}

	return local, nil
}

// Port returns the local module-side signal bound to the named port
// definition, or nil if that port was omitted by ConnectIO.
func (i *Interface[Tag]) Port(name string) *logic.Signal {
	return i.local[name]
}
