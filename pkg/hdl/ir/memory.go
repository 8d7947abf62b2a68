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

// ReadPort is one read port of a Memory: Addr selects the word, Enable
// gates whether Data is updated on the next clock edge.
type ReadPort struct {
	Addr, Enable Signal
	Data         Signal
}

// WritePort is the (at most one) write port of a Memory.
type WritePort struct {
	Addr, Value, Enable Signal
}

// Memory models a synchronous-read random access memory: a name, an
// address width, a data width, optional initial contents, an optional
// single write port, and a non-empty set of read ports.  ReadPort.Data is a
// structurally valid placeholder signal sized to the memory's data width.
// Memory storage is generated only by the simulator emitter (as an array
// field); the SystemVerilog emitter emits no memory storage or ports.
type Memory struct {
	module    *Module
	Name      string
	AddrWidth uint
	DataWidth uint

	InitialContents []Value
	Write           *WritePort
	Reads           []*ReadPort
}

func newMemory(m *Module, name string, addrWidth, dataWidth uint) *Memory {
	return &Memory{module: m, Name: name, AddrWidth: addrWidth, DataWidth: dataWidth}
}

// Module returns the module this memory belongs to.
func (mem *Memory) Module() *Module { return mem.module }

// ReadPort adds a read port and returns the Signal representing the data
// word visible at this port, one cycle after addr/enable are sampled.
func (mem *Memory) ReadPort(addr, enable Signal) (Signal, error) {
	if err := mem.checkPortSignal("read port address", addr, mem.AddrWidth); err != nil {
		return nil, err
	}

	if err := mem.checkPortSignal("read port enable", enable, 1); err != nil {
		return nil, err
	}

	data := &memoryReadData{base: base{ctx: mem.module.ctx, mod: mem.module}, width: mem.DataWidth}
	mem.Reads = append(mem.Reads, &ReadPort{Addr: addr, Enable: enable, Data: data})

	return data, nil
}

// WritePort sets the memory's single write port: when enable is 1, value is
// written to addr on the next clock edge.  Calling WritePort a second time
// replaces the prior port.
func (mem *Memory) WritePort(addr, value, enable Signal) error {
	if err := mem.checkPortSignal("write port address", addr, mem.AddrWidth); err != nil {
		return err
	}

	if err := mem.checkPortSignal("write port value", value, mem.DataWidth); err != nil {
		return err
	}

	if err := mem.checkPortSignal("write port enable", enable, 1); err != nil {
		return err
	}

	mem.Write = &WritePort{Addr: addr, Value: value, Enable: enable}

	return nil
}

// SetInitialContents sets the memory's power-on contents.  Values beyond the
// memory's addressable range are ignored; fewer values than 2^AddrWidth
// leave the remaining words zero-initialized.
func (mem *Memory) SetInitialContents(words []Value) error {
	if mem.AddrWidth < 64 {
		if depth := uint64(1) << mem.AddrWidth; uint64(len(words)) > depth {
			words = words[:depth]
		}
	}

	for _, w := range words {
		if !w.FitsWidth(mem.DataWidth) {
			return &ValueTooWideError{Value: w, Width: mem.DataWidth}
		}
	}

	mem.InitialContents = words

	return nil
}

func (mem *Memory) checkPortSignal(context string, s Signal, width uint) error {
	if s.Module() != mem.module {
		return &CrossModuleError{Operation: fmt.Sprintf("%s of memory %q", context, mem.Name)}
	}

	if s.Width() != width {
		return &WidthMismatchError{Context: fmt.Sprintf("%s of memory %q", context, mem.Name), LeftWidth: width, RightWidth: s.Width()}
	}

	return nil
}

// memoryReadData is the Signal variant produced by Memory.ReadPort.
type memoryReadData struct {
	base
	width uint
}

func (s *memoryReadData) Width() uint { return s.width }
