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

// Package synth implements the SystemVerilog synthesizer: it walks a
// built Module tree and emits one HDL module definition per unique
// structural type signature, collapsing instances that are structurally
// identical.
package synth

// Config carries synthesis options, constructed with defaults and
// overridden by library callers or by pkg/cmd's synth subcommand flags,
// mirroring the teacher's LoweringConfig-style plain option struct.
type Config struct {
	// Comments, when true, annotates emitted modules with the originating
	// declared module name (since type-signature collapsing can merge
	// several declared names into one emitted definition).
	Comments bool
	// ElideUnpreferredNames, when true, drops the declaration of an
	// unpreferred-named signal that is wired by Gets from a source and read
	// by exactly one destination, rendering its source's name in its place.
	// Expression-derived signals are always declared, with their own
	// continuous assign.
	ElideUnpreferredNames bool
	// ClockXIsEdge records whether an X transition on a clock signal counts
	// as a rising edge. No code in this module reads it; the in-memory
	// simulator always requires a defined 0->1 transition.
	ClockXIsEdge bool
}

// DefaultConfig returns the synthesizer's default options.
func DefaultConfig() Config {
	return Config{Comments: true, ElideUnpreferredNames: true, ClockXIsEdge: false}
}
