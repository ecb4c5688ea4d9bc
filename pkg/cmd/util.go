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
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hwgraph/hwgraph/pkg/synth"
)

// GetFlag gets an expected flag, or exits the process if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt gets an expected signed integer, or exits the process if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits the process if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	return r
}

// GetString gets an expected string, or exits the process if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	return r
}

// GetStringArray gets an expected string array, or exits the process if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	return r
}

// GetIntArray gets an expected int array, or exits the process if an error arises.
func GetIntArray(cmd *cobra.Command, flag string) []int {
	tmp, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	r := make([]int, len(tmp))

	for i, str := range tmp {
		ith, err := strconv.ParseInt(str, 16, 8)
		if err != nil {
			fmt.Println(err)
			os.Exit(4)
		}

		r[i] = int(ith)
	}

	return r
}

// ReadVectorFile reads and decodes a co-simulation vector file from disk,
// exiting the process on any I/O or decode failure -- the CLI boundary is
// the only place in this module that calls os.Exit.
func ReadVectorFile(filename string) []synth.Vector {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	vectors, err := synth.DecodeVectors(data)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	return vectors
}

// WriteTextFile writes generated HDL (or any other text artifact) to
// disk, exiting the process on failure.
func WriteTextFile(filename string, text string) {
	if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
}
