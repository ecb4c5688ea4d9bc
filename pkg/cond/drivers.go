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
package cond

import (
	"github.com/hwgraph/hwgraph/pkg/hwerr"
	"github.com/hwgraph/hwgraph/pkg/logic"
)

// branchKey identifies one arm of one conditional node: arm 0/1 for
// If.Then/If.Else, arm 0..len(Items)-1 for Case/CaseZ items, and
// len(Items) for their Default.
type branchKey struct {
	owner Node
	arm   int
}

// assignSite records where (down which branch path) an Assign occurs.
type assignSite struct {
	path   []branchKey
	assign *Assign
}

// CheckFFDrivers verifies that no target is written by two Assign nodes
// that are reachable together in a single evaluation of body -- i.e.
// whose branch paths are not mutually exclusive. Two sites are mutually
// exclusive iff their paths diverge at a shared conditional ancestor into
// different arms; if one path is a prefix of the other (nesting) or they
// never diverge, both can execute in the same tick and writing the same
// target from both is a driver conflict. FF bodies forbid this even
// though the simulator's runtime behaviour (last-assign-wins) would
// otherwise paper over it silently.
func CheckFFDrivers(body Block) error {
	sites := collectSites(body, nil)

	byTarget := map[*logic.Signal][]assignSite{}
	for _, s := range sites {
		byTarget[s.assign.Target] = append(byTarget[s.assign.Target], s)
	}

	for _, group := range byTarget {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if !exclusive(group[i].path, group[j].path) {
					return &hwerr.DriverConflict{Signal: group[i].assign.Target.Name()}
				}
			}
		}
	}

	return nil
}

// extend returns a fresh copy of path with one branchKey appended,
// avoiding aliasing between sibling branches that would otherwise share
// backing-array capacity from a common parent path.
func extend(path []branchKey, owner Node, arm int) []branchKey {
	cp := make([]branchKey, len(path)+1)
	copy(cp, path)
	cp[len(path)] = branchKey{owner, arm}

	return cp
}

func collectSites(b Block, path []branchKey) []assignSite {
	var out []assignSite

	for _, n := range b {
		switch t := n.(type) {
		case *Assign:
			cp := make([]branchKey, len(path))
			copy(cp, path)
			out = append(out, assignSite{cp, t})
		case *If:
			out = append(out, collectSites(t.Then, extend(path, t, 0))...)
			out = append(out, collectSites(t.Else, extend(path, t, 1))...)
		case *Case:
			for idx, item := range t.Items {
				out = append(out, collectSites(item.Body, extend(path, t, idx))...)
			}

			out = append(out, collectSites(t.Default, extend(path, t, len(t.Items)))...)
		case *CaseZ:
			for idx, item := range t.Items {
				out = append(out, collectSites(item.Body, extend(path, t, idx))...)
			}

			out = append(out, collectSites(t.Default, extend(path, t, len(t.Items)))...)
		}
	}

	return out
}

// exclusive reports whether two branch paths can never both execute in
// the same evaluation.
func exclusive(a, b []branchKey) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		if a[i].owner == b[i].owner && a[i].arm != b[i].arm {
			return true
		}
	}

	return false
}
