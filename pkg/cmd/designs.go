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
	"sort"
	"strings"

	"github.com/go-hdl/hdl/pkg/hdl/ir"
	"github.com/spf13/cobra"
)

// design builds a module ready for validation or code generation.
type design func() (*ir.Module, error)

// designs is the registry of built-in example designs, driven by name from
// the "designs", "validate", "verilog" and "simulate" subcommands.
var designs = map[string]design{
	"adder":       buildAdder,
	"counter":     buildCounter,
	"fifo":        buildFifo,
	"dual-invert": buildDualInvert,
}

// buildAdder is a purely combinational design: a single n-bit addition.
func buildAdder() (*ir.Module, error) {
	c := ir.NewContext()

	m, err := c.NewModule("adder")
	if err != nil {
		return nil, err
	}

	a, err := m.NewInput("a", 32)
	if err != nil {
		return nil, err
	}

	b, err := m.NewInput("b", 32)
	if err != nil {
		return nil, err
	}

	sum, err := ir.BinaryOpSignal(ir.Add, a, b)
	if err != nil {
		return nil, err
	}

	if err := m.NewOutput("sum", sum); err != nil {
		return nil, err
	}

	return m, nil
}

// buildCounter is a registered design: a free-running up counter gated by an
// enable input, with reset to zero handled by the simulator's Reset() and by
// the SystemVerilog emitter's asynchronous active-low reset_n port.
func buildCounter() (*ir.Module, error) {
	c := ir.NewContext()

	m, err := c.NewModule("counter")
	if err != nil {
		return nil, err
	}

	en, err := m.NewInput("en", 1)
	if err != nil {
		return nil, err
	}

	reg, err := m.NewRegister("count", 16, nil)
	if err != nil {
		return nil, err
	}

	one, err := m.Lit(ir.ValueFromUint64(1), 16)
	if err != nil {
		return nil, err
	}

	sum, err := ir.BinaryOpSignal(ir.Add, reg.Value(), one)
	if err != nil {
		return nil, err
	}

	next, err := m.NewMux(reg.Value(), sum, en)
	if err != nil {
		return nil, err
	}

	if err := reg.DriveNextWith(next); err != nil {
		return nil, err
	}

	if err := m.NewOutput("count", reg.Value()); err != nil {
		return nil, err
	}

	return m, nil
}

// buildFifo is a memory-backed design: a single-read, single-write RAM
// addressed directly by the caller (no internal pointer management), so that
// the simulator backend exercises its memory port paths. The SystemVerilog
// backend emits no memory storage or ports for it.
func buildFifo() (*ir.Module, error) {
	c := ir.NewContext()

	m, err := c.NewModule("fifo")
	if err != nil {
		return nil, err
	}

	waddr, err := m.NewInput("waddr", 8)
	if err != nil {
		return nil, err
	}

	wdata, err := m.NewInput("wdata", 32)
	if err != nil {
		return nil, err
	}

	we, err := m.NewInput("we", 1)
	if err != nil {
		return nil, err
	}

	raddr, err := m.NewInput("raddr", 8)
	if err != nil {
		return nil, err
	}

	mem, err := m.NewMemory("store", 8, 32)
	if err != nil {
		return nil, err
	}

	if err := mem.WritePort(waddr, wdata, we); err != nil {
		return nil, err
	}

	rdata, err := mem.ReadPort(raddr, m.High())
	if err != nil {
		return nil, err
	}

	if err := m.NewOutput("rdata", rdata); err != nil {
		return nil, err
	}

	return m, nil
}

// buildDualInvert instantiates the same leaf module twice, so that both
// emitters' instance-handling paths (structural instantiation in
// SystemVerilog, independent per-instance flattening in the simulator) are
// exercised by a single built-in design.
func buildDualInvert() (*ir.Module, error) {
	c := ir.NewContext()

	inv, err := c.NewModule("inverter")
	if err != nil {
		return nil, err
	}

	in, err := inv.NewInput("i", 8)
	if err != nil {
		return nil, err
	}

	if err := inv.NewOutput("o", ir.NotOp(in)); err != nil {
		return nil, err
	}

	top, err := c.NewModule("dual_invert")
	if err != nil {
		return nil, err
	}

	a, err := top.NewInput("a", 8)
	if err != nil {
		return nil, err
	}

	inst0, err := top.NewInstance("inv0", "inverter")
	if err != nil {
		return nil, err
	}

	if err := inst0.DriveInput("i", a); err != nil {
		return nil, err
	}

	mid, err := inst0.Output("o")
	if err != nil {
		return nil, err
	}

	inst1, err := top.NewInstance("inv1", "inverter")
	if err != nil {
		return nil, err
	}

	if err := inst1.DriveInput("i", mid); err != nil {
		return nil, err
	}

	out, err := inst1.Output("o")
	if err != nil {
		return nil, err
	}

	if err := top.NewOutput("o", out); err != nil {
		return nil, err
	}

	return top, nil
}

// lookupDesign resolves a design name from the registry, reporting the known
// names on failure.
func lookupDesign(name string) (*ir.Module, error) {
	build, ok := designs[name]
	if !ok {
		return nil, fmt.Errorf("unknown design %q (known: %s)", name, strings.Join(designNames(), ", "))
	}

	return build()
}

func designNames() []string {
	names := make([]string, 0, len(designs))
	for name := range designs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var designsCmd = &cobra.Command{
	Use:   "designs",
	Short: "List the built-in example designs.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range designNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(designsCmd)
}
