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
package synth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/module"
)

// TypeSignature computes a structural hash of m: its port names/widths/
// directions and the shape of its behavioral IR, deliberately excluding
// instance-specific data (declared name, instance name, sub-module
// instance names). Two modules with identical signatures are structurally
// identical and the synthesizer emits one shared HDL definition for both,
// per spec.md §4.6's "signature equivalence collapses structurally
// identical instances" rule.
func TypeSignature(m *module.Module) string {
	var sb strings.Builder

	for _, p := range m.Inputs() {
		fmt.Fprintf(&sb, "in %s:%d;", p.Name, p.Signal.Width())
	}

	for _, p := range m.Outputs() {
		fmt.Fprintf(&sb, "out %s:%d;", p.Name, p.Signal.Width())
	}

	for _, sub := range m.SubModules() {
		fmt.Fprintf(&sb, "sub[%s];", TypeSignature(sub))
	}

	for _, a := range m.AlwaysBlocks() {
		writeAlwaysShape(&sb, a)
	}

	if _, ok := m.CustomVerilog(); ok {
		sb.WriteString("custom;")
	}

	sum := sha256.Sum256([]byte(sb.String()))

	return hex.EncodeToString(sum[:])[:16]
}

func writeAlwaysShape(sb *strings.Builder, a cond.Always) {
	switch a.(type) {
	case *cond.Combinational:
		sb.WriteString("comb{")
	case *cond.FF:
		sb.WriteString("ff{")
	}

	writeBlockShape(sb, a.Body())
	sb.WriteString("}")
}

// writeBlockShape renders the IR's shape (node kinds, operand widths, and
// branch arm counts) without any signal name, so that two bodies which
// differ only in the names of their internal wires hash identically.
func writeBlockShape(sb *strings.Builder, b cond.Block) {
	cond.Walk(b, cond.Visitor{
		Assign: func(n *cond.Assign) {
			fmt.Fprintf(sb, "a%d;", n.Target.Width())
		},
		If: func(n *cond.If) {
			sb.WriteString("if(")
			writeBlockShape(sb, n.Then)
			sb.WriteString(")(")
			writeBlockShape(sb, n.Else)
			sb.WriteString(");")
		},
		Case: func(n *cond.Case) {
			fmt.Fprintf(sb, "case%d[", len(n.Items))

			for _, item := range n.Items {
				writeBlockShape(sb, item.Body)
				sb.WriteString("|")
			}

			writeBlockShape(sb, n.Default)
			sb.WriteString("];")
		},
		CaseZ: func(n *cond.CaseZ) {
			fmt.Fprintf(sb, "casez%d[", len(n.Items))

			for _, item := range n.Items {
				writeBlockShape(sb, item.Body)
				sb.WriteString("|")
			}

			writeBlockShape(sb, n.Default)
			sb.WriteString("];")
		},
	})
}
