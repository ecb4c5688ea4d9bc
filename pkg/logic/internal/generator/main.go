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
package main

import (
	"fmt"
	"os"

	"github.com/consensys/bavard"
)

const copyrightHolder = "hwgraph Authors"

type opSpec struct {
	Name  string
	Label string
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2026, "hwgraph")

	cfg := struct {
		Ops []opSpec
	}{
		Ops: []opSpec{
			{"OpAnd", "&"},
			{"OpOr", "|"},
			{"OpXor", "^"},
			{"OpNot", "~"},
			{"OpAdd", "+"},
			{"OpSub", "-"},
			{"OpMul", "*"},
			{"OpShl", "<<"},
			{"OpShr", ">>"},
			{"OpSlice", "[]"},
			{"OpSwizzle", "{}"},
		},
	}

	err := bgen.Generate(cfg, "logic", "templates",
		bavard.Entry{
			File:      "../../op_string.go",
			Templates: []string{"op_string.go.tmpl"},
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
