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
package validate

import (
	"testing"

	"github.com/go-hdl/hdl/pkg/hdl/ir"
)

func TestValidWellFormedModulePasses(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("m")

	in, _ := m.NewInput("i", 8)
	if err := m.NewOutput("o", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg, _ := m.NewRegister("r", 8, nil)
	if err := reg.DriveNextWith(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Validate(m); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestRecursiveModuleDefinitionSelfLoop(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("m")

	if _, err := m.NewInstance("self", "m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Validate(m)
	if err == nil {
		t.Fatal("expected a RecursiveModuleError")
	}

	recErr, ok := err.(*ir.RecursiveModuleError)
	if !ok {
		t.Fatalf("expected *ir.RecursiveModuleError, got %T: %v", err, err)
	}

	if !recErr.SelfLoop {
		t.Error("expected SelfLoop to be true")
	}
}

func TestRecursiveModuleDefinitionMutualCycle(t *testing.T) {
	c := ir.NewContext()
	a, _ := c.NewModule("a")
	b, _ := c.NewModule("b")

	if _, err := a.NewInstance("b_inst", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := b.NewInstance("a_inst", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Validate(a)
	if err == nil {
		t.Fatal("expected a RecursiveModuleError")
	}

	recErr, ok := err.(*ir.RecursiveModuleError)
	if !ok {
		t.Fatalf("expected *ir.RecursiveModuleError, got %T: %v", err, err)
	}

	if recErr.SelfLoop {
		t.Error("expected SelfLoop to be false for a mutual cycle")
	}
}

func TestUndrivenInstanceInput(t *testing.T) {
	c := ir.NewContext()
	sub, _ := c.NewModule("sub")
	sub.NewInput("a", 1)

	top, _ := c.NewModule("top")
	if _, err := top.NewInstance("s", "sub"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Validate(top)
	if err == nil {
		t.Fatal("expected an UndrivenError")
	}
}

func TestUndrivenRegister(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("m")
	m.NewRegister("r", 4, nil)

	if err := Validate(m); err == nil {
		t.Fatal("expected an UndrivenError")
	}
}

func TestMemoryWithoutReadPorts(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("m")

	mem, _ := m.NewMemory("mem", 4, 8)
	if err := mem.SetInitialContents([]ir.Value{ir.ValueFromUint64(1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Validate(m); err == nil {
		t.Fatal("expected a MissingReadPortError")
	}
}

func TestMemoryWithoutInitialContentsOrWritePort(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("m")

	mem, _ := m.NewMemory("mem", 4, 8)

	addr, _ := m.NewInput("addr", 4)
	en, _ := m.NewInput("en", 1)
	if _, err := mem.ReadPort(addr, en); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Validate(m); err == nil {
		t.Fatal("expected a MissingSourceError")
	}
}

func TestMuxOverSharedInputIsNotACombinationalLoop(t *testing.T) {
	c := ir.NewContext()
	m, _ := c.NewModule("m")

	in, _ := m.NewInput("i", 1)
	notIn := ir.NotOp(in)

	loop, err := m.NewMux(in, notIn, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.NewOutput("o", loop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// This graph is not itself a loop (no cycle exists since nothing refers
	// back to "loop"); validate should pass.
	if err := Validate(m); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestCombinationalLoopAcrossInstanceBoundary(t *testing.T) {
	c := ir.NewContext()

	inverter, _ := c.NewModule("inverter")
	iin, _ := inverter.NewInput("i", 1)
	if err := inverter.NewOutput("o", ir.NotOp(iin)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top, _ := c.NewModule("top")
	inst, _ := top.NewInstance("inv", "inverter")

	out, err := inst.Output("o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := inst.DriveInput("i", out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// top declares no output at all: the loop closes entirely through the
	// instance boundary (inv's own output drives back into its own input),
	// so detecting it cannot rely on walking from a declared module output.
	if err := Validate(top); err == nil {
		t.Fatal("expected a CombinationalLoopError")
	}
}
