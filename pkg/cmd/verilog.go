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

	"github.com/go-hdl/hdl/pkg/hdl/emit/verilog"
	"github.com/go-hdl/hdl/pkg/util"
)

var verilogCmd = &cobra.Command{
	Use:   "verilog <design>",
	Short: "Emit structural SystemVerilog for a design.",
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

		stats := util.NewPerfStats()

		text, err := verilog.Generate(m)

		stats.Log("SystemVerilog generation")

		if err != nil {
			fail(err)
		}

		if err := writeOutput(GetString(cmd, "out"), text); err != nil {
			fail(err)
		}
	},
}

func init() {
	verilogCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(verilogCmd)
}
