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

	"github.com/hwgraph/hwgraph/pkg/fourstate"
	"github.com/hwgraph/hwgraph/pkg/logic"
)

var constCounter int

// zeroSignal returns a fresh named signal of the given width permanently
// driven to all-zero, used as an Assign source for behavioral constants.
func zeroSignal(width uint) *logic.Signal {
	constCounter++

	s := logic.New(fmt.Sprintf("zero_%d", constCounter), width)
	s.Put(fourstate.FromUint64(0, width))

	return s
}

// oneSignal returns a fresh named signal of the given width permanently
// driven to the integer value 1, used as an Assign source for behavioral
// constants.
func oneSignal(width uint) *logic.Signal {
	constCounter++

	s := logic.New(fmt.Sprintf("one_%d", constCounter), width)
	s.Put(fourstate.FromUint64(1, width))

	return s
}
