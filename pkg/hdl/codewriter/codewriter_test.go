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
package codewriter

import "testing"

func TestBlockIndentation(t *testing.T) {
	w := New("  ")
	w.Line("module top (")
	w.Block("  input a,", func() {
		w.Line("output b")
	}, ");")
	w.Line("endmodule")

	want := "module top (\n  input a,\n  output b\n);\nendmodule\n"
	if got := w.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnindentAtZeroIsNoop(t *testing.T) {
	w := New("\t")
	w.Unindent()
	w.Line("x")

	if got := w.String(); got != "x\n" {
		t.Errorf("got %q", got)
	}
}

func TestLinef(t *testing.T) {
	w := New("  ")
	w.Indent()
	w.Linef("logic [%d:0] %s;", 7, "foo")

	if got := w.String(); got != "  logic [7:0] foo;\n" {
		t.Errorf("got %q", got)
	}
}
