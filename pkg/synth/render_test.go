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
package synth_test

import (
	"strings"
	"testing"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/fourstate"
	"github.com/hwgraph/hwgraph/pkg/logic"
	"github.com/hwgraph/hwgraph/pkg/module"
	"github.com/hwgraph/hwgraph/pkg/synth"
)

// constGate builds a one-input passthrough module whose output is forced
// high whenever the input is low, via a bare constant signal (one) that is
// only ever read as an Assign source -- never wired through Gets/Expr and
// never itself an Assign target, so it has no continuous source of its own.
func constGate() *module.Module {
	m := module.New("const_gate")

	ext := logic.New("ext_in", 1)
	in, _ := m.AddInput("in", ext)
	out, _ := m.AddOutput("out")

	one := logic.New("one", 1)
	one.Put(fourstate.FromUint64(1, 1))

	body := cond.Block{
		&cond.If{
			Cond: in,
			Then: cond.Block{&cond.Assign{Target: out, Source: in}},
			Else: cond.Block{&cond.Assign{Target: out, Source: one}},
		},
	}

	m.AddAlways(cond.NewCombinational(body))

	return m
}

func TestGenerateRendersConstantAsLocalparam(t *testing.T) {
	m := constGate()

	if err := m.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, err := synth.Generate(m, synth.DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "localparam") {
		t.Fatalf("expected a localparam declaration for the one-time constant, got:\n%s", out)
	}

	if strings.Contains(out, "wire  one;") || strings.Contains(out, "wire one;") {
		t.Fatalf("constant signal should not be declared as a bare wire, got:\n%s", out)
	}
}

func TestGenerateDeduplicatesStructurallyIdenticalSubmodules(t *testing.T) {
	top := module.New("top")

	extA := logic.New("a", 1)
	extB := logic.New("b", 1)
	extC := logic.New("c", 1)
	extD := logic.New("d", 1)

	a, _ := top.AddInput("a", extA)
	b, _ := top.AddInput("b", extB)
	c, _ := top.AddInput("c", extC)
	d, _ := top.AddInput("d", extD)

	out1, _ := top.AddOutput("out1")
	out2, _ := top.AddOutput("out2")

	g1 := orGate2()
	_ = g1.Inputs()[0].Signal.Gets(a)
	_ = g1.Inputs()[1].Signal.Gets(b)

	g2 := orGate2()
	_ = g2.Inputs()[0].Signal.Gets(c)
	_ = g2.Inputs()[1].Signal.Gets(d)

	_ = out1.Gets(g1.Outputs()[0].Signal)
	_ = out2.Gets(g2.Outputs()[0].Signal)

	if err := top.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, err := synth.Generate(top, synth.DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if n := strings.Count(out, "endmodule"); n != 2 {
		t.Fatalf("expected 2 emitted module definitions (top + one shared or2), got %d:\n%s", n, out)
	}
}

func TestGenerateUsesBlockingAssignmentInsideAlwaysComb(t *testing.T) {
	m := module.New("last_write_wins")

	extA := logic.New("ext_a", 1)
	a, _ := m.AddInput("a", extA)
	x, _ := m.AddOutput("x")

	body := cond.Block{
		&cond.Assign{Target: x, Source: a},
		&cond.Assign{Target: x, Source: a.Not()},
	}

	m.AddAlways(cond.NewCombinational(body))

	if err := m.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, err := synth.Generate(m, synth.DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "x = a;") {
		t.Fatalf("expected blocking assignment \"x = a;\" inside always_comb, got:\n%s", out)
	}

	if strings.Contains(out, "x <= a;") {
		t.Fatalf("always_comb body should not use non-blocking assignment, got:\n%s", out)
	}
}

func TestGenerateUsesNonBlockingAssignmentInsideAlwaysFF(t *testing.T) {
	clk := logic.New("clk", 1)
	val := logic.New("val", 1)

	extEn := logic.New("ext_en", 1)

	m := module.New("toggler")
	en, _ := m.AddInput("en", extEn)

	body := cond.Block{
		&cond.If{
			Cond: en,
			Then: cond.Block{&cond.Assign{Target: val, Source: val.Not()}},
		},
	}

	ff, err := cond.NewFF(clk, body)
	if err != nil {
		t.Fatalf("NewFF: %v", err)
	}

	m.AddAlways(ff)

	if err := m.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, err := synth.Generate(m, synth.DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "val <= ") {
		t.Fatalf("expected non-blocking assignment \"val <= ...\" inside always_ff, got:\n%s", out)
	}

	if strings.Contains(out, "val = ") {
		t.Fatalf("always_ff body should not use blocking assignment, got:\n%s", out)
	}
}

// orGate2 mirrors the module package's own orGate test helper, kept local
// to avoid depending on an unexported test helper across packages.
func orGate2() *module.Module {
	g := module.New("or2")

	extA := logic.New("ext_a", 1)
	extB := logic.New("ext_b", 1)

	a, _ := g.AddInput("a", extA)
	b, _ := g.AddInput("b", extB)

	y, _ := g.AddOutput("y")
	_ = y.Gets(a.Or(b))

	return g
}
