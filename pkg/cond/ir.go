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

// Package cond implements the behavioral IR: a closed sum type of
// conditional nodes (Assign, If, Case, CaseZ) organized into ordered
// Blocks, plus the Combinational and FF always-block constructs that bind
// a Block to its sensitivity (continuous vs. clock-edge). The IR is
// evaluated by package sim and rendered by package synth; both visit it
// via Walk rather than a type switch sprinkled through each package.
package cond

import "github.com/hwgraph/hwgraph/pkg/logic"

// Node is the closed sum type of the conditional IR: every concrete node
// type (Assign, If, Case, CaseZ) implements it. Consumers should not add
// new implementations outside this package; visit nodes with Walk.
type Node interface {
	isNode()
}

// Block is an ordered sequence of IR nodes.
type Block []Node

// Assign is the leaf IR node: write Source's current value to Target.
// Whether the write is blocking (visible to later reads in the same
// evaluation) or non-blocking (sampled now, applied at the end of the
// tick) is determined entirely by the kind of always-block containing it
// -- Combinational bodies are always blocking, FF bodies always
// non-blocking. The IR itself carries no such flag.
type Assign struct {
	Target *logic.Signal
	Source *logic.Signal
}

func (*Assign) isNode() {}

// If is a short-circuit conditional: if Cond is fully defined and
// non-zero, Then executes; if it is fully defined and zero, Else executes
// (Else may itself be a single-element Block containing another If,
// modeling ElseIf). If Cond holds any X or Z bit, Then executes with every
// target it assigns written as X. An Else of length zero is legal and
// means "no else branch".
type If struct {
	Cond *logic.Signal
	Then Block
	Else Block
}

func (*If) isNode() {}

// ConditionalType governs the overlap/exhaustiveness diagnostics applied
// to a Case or CaseZ at synthesis time.
type ConditionalType uint8

// The three conditional overlap/exhaustiveness disciplines.
const (
	// None applies no additional diagnostics.
	None ConditionalType = iota
	// Unique asserts at most one item pattern matches any selector value.
	Unique
	// Priority asserts at least one item pattern matches any selector
	// value (the synthesized case is exhaustive).
	Priority
)

// CaseItem bundles a constant four-state match pattern with the block to
// execute when the selector matches it.
type CaseItem struct {
	// Pattern is matched bit-exact for Case, with Z bits acting as
	// wildcards for CaseZ.
	Pattern *logic.Signal
	Body    Block
}

// Case evaluates Selector once, then executes the body of the first
// Items entry whose Pattern bit-exact-matches; failing that, Default (if
// any). X or Z in Selector matches nothing and falls to Default, with
// every target Default assigns written as X.
type Case struct {
	Selector *logic.Signal
	Items    []CaseItem
	Default  Block
	Type     ConditionalType
}

func (*Case) isNode() {}

// CaseZ is as Case, except Pattern bits holding Z act as a wildcard
// matching either 0 or 1 in the corresponding Selector bit.
type CaseZ struct {
	Selector *logic.Signal
	Items    []CaseItem
	Default  Block
	Type     ConditionalType
}

func (*CaseZ) isNode() {}

// Visitor receives a callback per concrete node kind during Walk. Any nil
// field is simply skipped for nodes of that kind.
type Visitor struct {
	Assign func(*Assign)
	If     func(*If)
	Case   func(*Case)
	CaseZ  func(*CaseZ)
}

// Walk recursively visits every node in a block in textual order,
// descending into If/Case/CaseZ sub-blocks after invoking the visitor
// callback for the containing node.
func Walk(b Block, v Visitor) {
	for _, n := range b {
		walkNode(n, v)
	}
}

func walkNode(n Node, v Visitor) {
	switch t := n.(type) {
	case *Assign:
		if v.Assign != nil {
			v.Assign(t)
		}
	case *If:
		if v.If != nil {
			v.If(t)
		}

		Walk(t.Then, v)
		Walk(t.Else, v)
	case *Case:
		if v.Case != nil {
			v.Case(t)
		}

		for _, item := range t.Items {
			Walk(item.Body, v)
		}

		Walk(t.Default, v)
	case *CaseZ:
		if v.CaseZ != nil {
			v.CaseZ(t)
		}

		for _, item := range t.Items {
			Walk(item.Body, v)
		}

		Walk(t.Default, v)
	}
}
