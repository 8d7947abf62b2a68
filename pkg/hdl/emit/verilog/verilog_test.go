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
package verilog

import (
	"strings"
	"testing"

	"github.com/go-hdl/hdl/pkg/hdl/ir"
)

func TestGenerateCombinationalModule(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("bitwise_and")
	a, _ := m.NewInput("a", 8)
	b, _ := m.NewInput("b", 8)

	and, err := ir.BinaryOpSignal(ir.BitAnd, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.NewOutput("o", and); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := Generate(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"module bitwise_and (",
		"input reset_n,",
		"input clk,",
		"input [7:0] a,",
		"output [7:0] o",
		"endmodule",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected generated text to contain %q, got:\n%s", want, text)
		}
	}
}

func TestGenerateRegisteredModule(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("counter")
	en, _ := m.NewInput("en", 1)
	reg, _ := m.NewRegister("count", 4, nil)

	one, _ := m.Lit(ir.ValueFromUint64(1), 4)
	sum, err := ir.BinaryOpSignal(ir.Add, reg.Value(), one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, err := m.NewMux(reg.Value(), sum, en)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := reg.DriveNextWith(next); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.NewOutput("count", reg.Value()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := Generate(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"always_ff @(posedge clk or negedge reset_n) begin",
		"if (!reset_n) begin",
		"end else begin",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected generated text to contain %q, got:\n%s", want, text)
		}
	}
}

func TestGenerateNestedInstance(t *testing.T) {
	c := ir.NewContext()
	inv, _ := c.NewModule("inverter")
	iin, _ := inv.NewInput("i", 1)
	if err := inv.NewOutput("o", ir.NotOp(iin)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top, _ := c.NewModule("top")
	topIn, _ := top.NewInput("i", 1)
	inst, _ := top.NewInstance("inv0", "inverter")

	if err := inst.DriveInput("i", topIn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := inst.Output("o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := top.NewOutput("o", out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := Generate(top)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "module inverter (") {
		t.Error("expected the instantiated module to be emitted")
	}

	if !strings.Contains(text, "inverter inv0 (") {
		t.Error("expected a structural instantiation of inverter")
	}

	if strings.Index(text, "module inverter (") > strings.Index(text, "module top (") {
		t.Error("expected the leaf module to be emitted before its user")
	}
}

func TestGenerateRejectsRecursiveDesign(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("m")

	if _, err := m.NewInstance("self", "m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Generate(m); err == nil {
		t.Fatal("expected an error for a recursive module definition")
	}
}
