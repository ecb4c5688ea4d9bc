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
package cmd

import (
	"fmt"
	"sort"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/logic"
	"github.com/hwgraph/hwgraph/pkg/module"
	"github.com/hwgraph/hwgraph/pkg/sim"
)

// Design bundles a constructed module together with the Session it will
// simulate in and the primary I/O the CLI needs a handle on (clock,
// reset, and so on). Library callers embedding hwgraph construct these
// directly in Go; the CLI's registry below exists so the command-line
// tool has something concrete to build/simulate/synthesize without
// requiring an external design-description file.
type Design struct {
	Module  *module.Module
	Session *sim.Session
}

// designBuilder constructs one named, ready-to-build demo design.
type designBuilder func() (*Design, error)

var designRegistry = map[string]designBuilder{
	"counter":      buildCounterDesign,
	"priority-mux": buildPriorityMuxDesign,
}

// DesignNames returns the names of every registered demo design, sorted.
func DesignNames() []string {
	names := make([]string, 0, len(designRegistry))
	for n := range designRegistry {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// BuildDesign constructs, wires, and builds the named demo design.
func BuildDesign(name string) (*Design, error) {
	b, ok := designRegistry[name]
	if !ok {
		return nil, fmt.Errorf("hwgraph: unknown design %q (available: %v)", name, DesignNames())
	}

	d, err := b()
	if err != nil {
		return nil, err
	}

	if err := d.Module.Build(); err != nil {
		return nil, err
	}

	return d, nil
}

// buildCounterDesign implements spec scenario 2: an 8-bit synchronous
// counter with clk/en/reset input ports and an 8-bit val output port,
// each added directly with AddInput/AddOutput.
func buildCounterDesign() (*Design, error) {
	m := module.New("counter8")

	extClk := logic.New("clk", 1)
	extEn := logic.New("en", 1)
	extReset := logic.New("reset", 1)

	clk, err := m.AddInput("clk", extClk)
	if err != nil {
		return nil, err
	}

	en, err := m.AddInput("en", extEn)
	if err != nil {
		return nil, err
	}

	reset, err := m.AddInput("reset", extReset)
	if err != nil {
		return nil, err
	}

	val, err := m.AddOutput("val", 8)
	if err != nil {
		return nil, err
	}

	next := val.Add(oneSignal(8))

	body := cond.Block{
		&cond.If{
			Cond: reset,
			Then: cond.Block{&cond.Assign{Target: val, Source: zeroSignal(8)}},
			Else: cond.Block{
				&cond.If{
					Cond: en,
					Then: cond.Block{&cond.Assign{Target: val, Source: next}},
				},
			},
		},
	}

	ff, err := cond.NewFF(clk, body)
	if err != nil {
		return nil, err
	}

	m.AddAlways(ff)

	sess := sim.New()
	sess.RegisterClock(extClk, 5)
	sess.RegisterFF(ff)

	return &Design{Module: m, Session: sess}, nil
}

// buildPriorityMuxDesign implements spec scenario 4: a priority if/elseif
// /else combinational block over two inputs.
func buildPriorityMuxDesign() (*Design, error) {
	m := module.New("priority_mux")

	extA := logic.New("ext_a", 1)
	extB := logic.New("ext_b", 1)

	a, err := m.AddInput("a", extA)
	if err != nil {
		return nil, err
	}

	b, err := m.AddInput("b", extB)
	if err != nil {
		return nil, err
	}

	c, err := m.AddOutput("c")
	if err != nil {
		return nil, err
	}

	d, err := m.AddOutput("d")
	if err != nil {
		return nil, err
	}

	one := oneSignal(1)
	zero := zeroSignal(1)

	body := cond.Block{
		&cond.If{
			Cond: a,
			Then: cond.Block{&cond.Assign{Target: c, Source: one}, &cond.Assign{Target: d, Source: zero}},
			Else: cond.Block{
				&cond.If{
					Cond: b,
					Then: cond.Block{&cond.Assign{Target: c, Source: one}, &cond.Assign{Target: d, Source: zero}},
					Else: cond.Block{&cond.Assign{Target: c, Source: zero}, &cond.Assign{Target: d, Source: one}},
				},
			},
		},
	}

	comb := cond.NewCombinational(body)
	m.AddAlways(comb)

	sess := sim.New()
	sess.RegisterCombinational(comb)

	return &Design{Module: m, Session: sess}, nil
}
