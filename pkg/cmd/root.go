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

// Package cmd implements the hdlgen command-line front end: it wires the
// ir/validate/emit packages to a small cobra command tree so built-in example
// designs (optionally with memory initial contents loaded from a JSON file)
// can be validated and emitted from a terminal.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version can be set at link time (-ldflags "-X ...Version=..."); when it is
// empty, the module version from the build info is reported instead.
var Version string

var rootCmd = &cobra.Command{
	Use:   "hdlgen",
	Short: "A hardware description library and code generator.",
	Long:  "hdlgen builds, validates, and emits SystemVerilog or a Go cycle simulator for hardware designs.",
	Run: func(cmd *cobra.Command, args []string) {
		if !GetFlag(cmd, "version") {
			fmt.Println(cmd.UsageString())
			return
		}

		fmt.Print("hdlgen ")

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
	},
}

// Execute adds all child commands to the root command and runs it. This is
// called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

// configureLogging applies the --verbose flag. Subcommands call this first
// in their Run function, matching the rest of the tree.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}
