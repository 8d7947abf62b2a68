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
package ir

import "fmt"

// Output is a (name, source) binding on a module.
type Output struct {
	Name   string
	Source Signal
}

// Module is a named collection of inputs, outputs, registers, instances and
// memories.  A Module does not own its signals (its Context does); it holds
// only the insertion-ordered, name-keyed tables needed for lookup and
// emission.
type Module struct {
	ctx  *Context
	Name string

	inputs    *orderedMap[Signal]
	outputs   *orderedMap[*Output]
	registers *orderedMap[*Register]
	instances *orderedMap[*Instance]
	memories  *orderedMap[*Memory]
}

func newModule(ctx *Context, name string) *Module {
	return &Module{
		ctx:       ctx,
		Name:      name,
		inputs:    newOrderedMap[Signal](),
		outputs:   newOrderedMap[*Output](),
		registers: newOrderedMap[*Register](),
		instances: newOrderedMap[*Instance](),
		memories:  newOrderedMap[*Memory](),
	}
}

// Context returns the arena that owns this module.
func (m *Module) Context() *Context { return m.ctx }

// Inputs returns this module's inputs, in declaration order.
func (m *Module) Inputs() []Signal { return m.inputs.values() }

// Input looks up a declared input by name.
func (m *Module) Input(name string) (Signal, bool) { return m.inputs.get(name) }

// Outputs returns this module's outputs, in declaration order.
func (m *Module) Outputs() []*Output { return m.outputs.values() }

// Registers returns this module's registers, in declaration order.
func (m *Module) Registers() []*Register { return m.registers.values() }

// Instances returns this module's instances, in declaration order.
func (m *Module) Instances() []*Instance { return m.instances.values() }

// Memories returns this module's memories, in declaration order.
func (m *Module) Memories() []*Memory { return m.memories.values() }

// Lit creates a Signal representing the constant value with the given bit
// width.
func (m *Module) Lit(value Value, width uint) (Signal, error) {
	if err := checkWidth("literal", width); err != nil {
		return nil, err
	}

	if !value.FitsWidth(width) {
		return nil, &ValueTooWideError{Value: value, Width: width}
	}

	return &Literal{base: base{ctx: m.ctx, mod: m}, Value: value, width: width}, nil
}

// Low returns a 1-bit Signal representing a constant 0.
func (m *Module) Low() Signal {
	s, _ := m.Lit(Value{}, 1)
	return s
}

// High returns a 1-bit Signal representing a constant 1.
func (m *Module) High() Signal {
	s, _ := m.Lit(ValueFromUint64(1), 1)
	return s
}

// NewInput creates a new input called name with the given bit width, and
// returns the Signal representing its value.
func (m *Module) NewInput(name string, width uint) (Signal, error) {
	if m.inputs.has(name) {
		return nil, &DuplicateNameError{Kind: "input", Scope: m.Name, Name: name}
	}

	if err := checkWidth(fmt.Sprintf("input %q", name), width); err != nil {
		return nil, err
	}

	in := &Input{base: base{ctx: m.ctx, mod: m}, Name: name, width: width}
	m.inputs.put(name, in)

	return in, nil
}

// NewOutput creates an output called name, driven by source, which must
// belong to this module.
func (m *Module) NewOutput(name string, source Signal) error {
	if source.Module() != m {
		return &CrossModuleError{Operation: fmt.Sprintf("output signal as %q", name)}
	}

	if m.outputs.has(name) {
		return &DuplicateNameError{Kind: "output", Scope: m.Name, Name: name}
	}

	m.outputs.put(name, &Output{Name: name, Source: source})

	return nil
}

// NewRegister declares a register called name with the given bit width and
// optional initial value.  Its next-cycle source starts unset; see
// Register.DriveNextWith.
func (m *Module) NewRegister(name string, width uint, initial *Value) (*Register, error) {
	if m.registers.has(name) {
		return nil, &DuplicateNameError{Kind: "register", Scope: m.Name, Name: name}
	}

	if err := checkWidth(fmt.Sprintf("register %q", name), width); err != nil {
		return nil, err
	}

	if initial != nil && !initial.FitsWidth(width) {
		return nil, &ValueTooWideError{Value: *initial, Width: width}
	}

	value := &RegisterValue{base: base{ctx: m.ctx, mod: m}, Name: name, Initial: initial, width: width}
	reg := &Register{module: m, value: value}
	m.registers.put(name, reg)

	return reg, nil
}

// NewMux creates a Signal that selects b when sel is 1, a otherwise.  a and
// b must share a bit width; sel must be 1 bit wide.
func (m *Module) NewMux(a, b, sel Signal) (Signal, error) {
	if err := sameOwner("construct a mux", a, b); err != nil {
		return nil, err
	}

	if err := sameOwner("construct a mux", a, sel); err != nil {
		return nil, err
	}

	if a.Width() != b.Width() {
		return nil, &WidthMismatchError{Context: "mux", LeftWidth: a.Width(), RightWidth: b.Width()}
	}

	if sel.Width() != 1 {
		return nil, &WidthOutOfRangeError{Context: "mux selector", Width: sel.Width()}
	}

	return &Mux{base: base{ctx: m.ctx, mod: m}, A: a, B: b, Sel: sel}, nil
}

// NewInstance creates a use-site, called instName, of the module registered
// under moduleName in this Context.
func (m *Module) NewInstance(instName string, moduleName string) (*Instance, error) {
	if m.instances.has(instName) {
		return nil, &DuplicateNameError{Kind: "instance", Scope: m.Name, Name: instName}
	}

	target, ok := m.ctx.Module(moduleName)
	if !ok {
		return nil, fmt.Errorf("ir: no module named %q has been defined in this context", moduleName)
	}

	inst := newInstance(m, instName, target)
	m.instances.put(instName, inst)

	return inst, nil
}

// NewMemory creates a memory called name with the given address and data
// widths.
func (m *Module) NewMemory(name string, addrWidth, dataWidth uint) (*Memory, error) {
	if m.memories.has(name) {
		return nil, &DuplicateNameError{Kind: "memory", Scope: m.Name, Name: name}
	}

	if err := checkWidth(fmt.Sprintf("memory %q address", name), addrWidth); err != nil {
		return nil, err
	}

	if err := checkWidth(fmt.Sprintf("memory %q data", name), dataWidth); err != nil {
		return nil, err
	}

	mem := newMemory(m, name, addrWidth, dataWidth)
	m.memories.put(name, mem)

	return mem, nil
}
