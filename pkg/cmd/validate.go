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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-hdl/hdl/pkg/hdl/validate"
	"github.com/go-hdl/hdl/pkg/util"
)

var validateCmd = &cobra.Command{
	Use:   "validate <design>",
	Short: "Check a design for recursion, undriven signals, and combinational loops.",
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

		err = validate.Validate(m)

		stats.Log("validation")

		if err != nil {
			fail(err)
		}

		log.Infof("design %q is valid", args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
