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
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected bool flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// diagnosticWidth returns the column width diagnostics should wrap at: the
// width of the controlling terminal on stdout, or 100 columns when stdout is
// not a terminal (e.g. redirected into a file or pipe).
func diagnosticWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 100
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 100
	}

	return w
}

// printWrapped prints msg word-wrapped to the terminal width, each
// continuation line indented beneath the first.
func printWrapped(msg string) {
	width := diagnosticWidth()
	words := strings.Fields(msg)

	if len(words) == 0 {
		return
	}

	line := words[0]

	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			fmt.Println(line)

			line = "  " + w

			continue
		}

		line += " " + w
	}

	fmt.Println(line)
}

// fail prints err wrapped to the terminal and exits with a non-zero status.
func fail(err error) {
	printWrapped(err.Error())
	os.Exit(1)
}

// writeOutput writes data to filename, or to stdout when filename is empty.
func writeOutput(filename, data string) error {
	if filename == "" {
		fmt.Print(data)
		return nil
	}

	return os.WriteFile(filename, []byte(data), 0o644)
}
