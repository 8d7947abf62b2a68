// Copyright go-hdl Authors.
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

	"github.com/spf13/cobra"

	"github.com/go-hdl/hdl/pkg/hdl/emit/sim"
	"github.com/go-hdl/hdl/pkg/hdl/memconfig"
	"github.com/go-hdl/hdl/pkg/util"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <design>",
	Short: "Emit a Go cycle simulator package for a design.",
	Long: `Emit a Go cycle simulator package for a design.

The generated package exposes New<Design>(), Reset(), Prop() and
PosedgeClk() on a struct with one exported field per input and output.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		m, err := lookupDesign(args[0])
		if err != nil {
			fail(err)
		}

		if meminit := GetString(cmd, "meminit"); meminit != "" {
			data, err := os.ReadFile(meminit)
			if err != nil {
				fail(err)
			}

			if err := memconfig.LoadAndApply(m, data); err != nil {
				fail(err)
			}
		}

		stats := util.NewPerfStats()

		text, err := sim.Generate(m, GetString(cmd, "package"))

		stats.Log("simulator generation")

		if err != nil {
			fail(err)
		}

		if err := writeOutput(GetString(cmd, "out"), text); err != nil {
			fail(err)
		}
	},
}

func init() {
	simulateCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	simulateCmd.Flags().String("package", "sim", "Go package name for the generated file")
	simulateCmd.Flags().String("meminit", "", "JSON file of memory initial contents (see memconfig)")
	rootCmd.AddCommand(simulateCmd)
}
