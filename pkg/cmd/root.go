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

// Package cmd implements the hwgraph command-line tool: a small registry
// of demo designs that can be built, simulated against a vector file, or
// synthesized to SystemVerilog, exercising the library end to end without
// requiring every user to write Go code just to try it out.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hwgraph/hwgraph/pkg/sim"
	"github.com/hwgraph/hwgraph/pkg/synth"
	"github.com/hwgraph/hwgraph/pkg/util"
)

// Version is filled when building with make, but *not* when installing via
// "go install".
var Version string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hwgraph",
	Short: "A host-language hardware construction and simulation framework.",
	Long:  "hwgraph builds in-memory hardware designs, simulates them, and synthesizes them to SystemVerilog.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("hwgraph ")

			switch {
			case Version != "":
				fmt.Printf("%s", Version)
			default:
				if info, ok := debug.ReadBuildInfo(); ok {
					fmt.Printf("%s", info.Main.Version)
				} else {
					fmt.Printf("(unknown version)")
				}
			}

			fmt.Println()
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a registered demo design and report its hierarchy.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		stats := util.NewPerfStats()

		d, err := BuildDesign(GetString(cmd, "design"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		stats.Log("Building design")

		reportHierarchy(d, 0)
	},
}

func reportHierarchy(d *Design, indent int) {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	inst := d.Module.Name()
	if name, err := d.Module.InstanceName(); err == nil && indent > 0 {
		inst = name
	}

	fmt.Printf("%s%s (%s): %d inputs, %d outputs, %d internal signals, %d sub-modules\n",
		prefix, inst, d.Module.Name(), len(d.Module.Inputs()), len(d.Module.Outputs()),
		len(d.Module.InternalSignals()), len(d.Module.SubModules()))

	for _, sub := range d.Module.SubModules() {
		reportHierarchy(&Design{Module: sub}, indent+1)
	}
}

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Synthesize a registered demo design to SystemVerilog.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		stats := util.NewPerfStats()

		d, err := BuildDesign(GetString(cmd, "design"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		stats.Log("Building design")

		cfg := synth.DefaultConfig()
		cfg.Comments = GetFlag(cmd, "comments")
		cfg.ElideUnpreferredNames = !GetFlag(cmd, "no-elide")

		text, err := synth.Generate(d.Module, cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		stats.Log("Synthesizing SystemVerilog")

		out := GetString(cmd, "output")
		if out == "" {
			fmt.Print(text)
			return
		}

		WriteTextFile(out, text)
	},
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate a registered demo design against a JSON vector file.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		stats := util.NewPerfStats()

		d, err := BuildDesign(GetString(cmd, "design"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		stats.Log("Building design")

		period := sim.Time(GetUint(cmd, "period"))

		vectors := ReadVectorFile(GetString(cmd, "vectors"))

		stats.Log("Reading vector file")

		for i, vec := range vectors {
			for name, lv := range vec.Inputs {
				sig := d.Module.Signal(name)
				if sig == nil {
					fmt.Printf("vector %d: unknown input %q\n", i, name)
					os.Exit(3)
				}

				d.Session.Drive(sig, lv.ToFourState(sig.Width()))
			}

			d.Session.RunFor(d.Session.Now() + period)

			for name, want := range vec.ExpectedOutputs {
				sig := d.Module.Signal(name)
				if sig == nil {
					fmt.Printf("vector %d: unknown output %q\n", i, name)
					os.Exit(3)
				}

				if !want.Matches(sig.Value()) {
					fmt.Printf("vector %d: output %q mismatch: want %v got %s\n", i, name, want, sig.Value())
					os.Exit(1)
				}
			}

			log.Debugf("sim: vector %d passed at t=%d", i, d.Session.Now())
		}

		stats.Log("Simulating vectors")

		fmt.Printf("%d vectors passed\n", len(vectors))
	},
}

func init() {
	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	for _, c := range []*cobra.Command{buildCmd, synthCmd, simCmd} {
		c.Flags().String("design", "counter", fmt.Sprintf("demo design to use (one of: %v)", DesignNames()))
	}

	synthCmd.Flags().String("output", "", "write generated SystemVerilog to this file instead of stdout")
	synthCmd.Flags().Bool("comments", true, "annotate emitted modules with their declared name")
	synthCmd.Flags().Bool("no-elide", false, "keep unpreferred-named internal signal declarations")

	simCmd.Flags().String("vectors", "", "JSON vector file to simulate against")
	simCmd.Flags().Uint("period", 10, "virtual time to advance between vectors")

	rootCmd.AddCommand(buildCmd, synthCmd, simCmd)
}
