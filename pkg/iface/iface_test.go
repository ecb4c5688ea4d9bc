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
package iface_test

import (
	"testing"

	"github.com/hwgraph/hwgraph/pkg/hwerr"
	"github.com/hwgraph/hwgraph/pkg/iface"
	"github.com/hwgraph/hwgraph/pkg/module"
)

type role int

const (
	masterOut role = iota
	masterIn
)

func busInterface() iface.Interface[role] {
	return iface.Interface[role]{
		Ports: []iface.PortDef[role]{
			{Name: "req", Width: 1, Tags: []role{masterOut}},
			{Name: "ack", Width: 1, Tags: []role{masterIn}},
			{Name: "data", Width: 8, Tags: []role{masterOut}},
		},
		InputTags: []role{masterIn},
		OutputTag: masterOut,
	}
}

func TestConnectIOWiresBothDirections(t *testing.T) {
	// slave's req/data/ack ports all start out unsourced outputs, the
	// role connectIO drives (for req/data) or reads from (for ack) --
	// mirroring how a peer module under construction leaves its
	// interface-facing signals unwired until a master connects to them.
	slave := module.New("peripheral")

	if _, err := slave.AddOutput("req"); err != nil {
		t.Fatalf("slave AddOutput req: %v", err)
	}

	if _, err := slave.AddOutput("data", 8); err != nil {
		t.Fatalf("slave AddOutput data: %v", err)
	}

	if _, err := slave.AddOutput("ack"); err != nil {
		t.Fatalf("slave AddOutput ack: %v", err)
	}

	master := module.New("master")

	local, err := iface.ConnectIO(master, iface.ModulePeer{M: slave}, busInterface())
	if err != nil {
		t.Fatalf("ConnectIO: %v", err)
	}

	if local.Port("req") == nil {
		t.Fatalf("expected req bound on master side")
	}

	if local.Port("ack") == nil {
		t.Fatalf("expected ack bound on master side")
	}

	if len(master.Outputs()) != 2 {
		t.Fatalf("expected master to gain 2 outputs (req, data), got %d", len(master.Outputs()))
	}

	if len(master.Inputs()) != 1 {
		t.Fatalf("expected master to gain 1 input (ack), got %d", len(master.Inputs()))
	}

	// master's ack input should be wired from slave's ack output.
	if local.Port("ack").Source() != slave.Outputs()[2].Signal {
		t.Fatalf("expected master.ack sourced from slave's ack output")
	}

	// master's req output should drive slave's req output signal.
	if slave.Outputs()[0].Signal.Source() != local.Port("req") {
		t.Fatalf("expected slave.req sourced from master's req output")
	}
}

func TestConnectIOOmitsUntaggedPort(t *testing.T) {
	intf := iface.Interface[role]{
		Ports: []iface.PortDef[role]{
			{Name: "untagged", Width: 1},
		},
		InputTags: []role{masterIn},
		OutputTag: masterOut,
	}

	master := module.New("master")
	other := module.New("other")

	local, err := iface.ConnectIO(master, iface.ModulePeer{M: other}, intf)
	if err != nil {
		t.Fatalf("ConnectIO: %v", err)
	}

	if local.Port("untagged") != nil {
		t.Fatalf("expected untagged port to be omitted")
	}

	if len(master.Inputs())+len(master.Outputs()) != 0 {
		t.Fatalf("expected no ports added for an untagged definition")
	}
}

func TestConnectIOAmbiguousDirection(t *testing.T) {
	intf := iface.Interface[role]{
		Ports: []iface.PortDef[role]{
			{Name: "both", Width: 1, Tags: []role{masterIn, masterOut}},
		},
		InputTags: []role{masterIn},
		OutputTag: masterOut,
	}

	master := module.New("master")
	other := module.New("other")

	_, err := iface.ConnectIO(master, iface.ModulePeer{M: other}, intf)

	if _, ok := err.(*hwerr.AmbiguousDirection); !ok {
		t.Fatalf("expected AmbiguousDirection, got %v", err)
	}
}
