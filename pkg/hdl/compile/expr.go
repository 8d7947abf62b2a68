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
package compile

import "github.com/go-hdl/hdl/pkg/hdl/ir"

// Expr is a single already-lowered operation, referencing its operands by
// name rather than by Signal pointer. Backends render Exprs into their own
// target syntax; they never need to walk the original signal graph.
type Expr interface{ isExpr() }

// Lit is a constant value.
type Lit struct{ Value ir.Value }

// NotExpr is bitwise complement.
type NotExpr struct{ Src string }

// BinExpr is a binary operator applied to two named operands.
type BinExpr struct {
	Op          ir.BinaryOp
	Left, Right string
	// OperandWidth is the width Left and Right share (needed by comparison
	// operators, whose own Width() is always 1).
	OperandWidth uint
}

// BitExpr selects a single bit.
type BitExpr struct {
	Src   string
	Index uint
}

// BitsExpr selects an inclusive bit range.
type BitsExpr struct {
	Src       string
	High, Low uint
}

// RepeatExpr tiles Src Count times.
type RepeatExpr struct {
	Src   string
	Width uint
	Count uint
}

// ConcatExpr concatenates High above Low. LowWidth is Low's declared width,
// the shift amount backends need to place High above it; High's width is
// recoverable as the enclosing Assignment's Width minus LowWidth.
type ConcatExpr struct {
	High, Low string
	LowWidth  uint
}

// MuxExpr selects B when Sel is 1, A otherwise.
type MuxExpr struct{ A, B, Sel string }

// RefExpr aliases another already-compiled name under a fresh one. It backs
// the mangled identifiers (a register's "_next" name, an instance's
// "__<instance>_input_<port>" wire) that spec.md mandates as their own named
// node even when the compiled expression feeding them needed no computation
// of its own.
type RefExpr struct{ Src string }

func (*Lit) isExpr()        {}
func (*NotExpr) isExpr()    {}
func (*BinExpr) isExpr()    {}
func (*BitExpr) isExpr()    {}
func (*BitsExpr) isExpr()   {}
func (*RepeatExpr) isExpr() {}
func (*ConcatExpr) isExpr() {}
func (*MuxExpr) isExpr()    {}
func (*RefExpr) isExpr()    {}

// Assignment binds Name, a freshly minted or mangled identifier, to Expr.
// Assignments appear in dependency order: every name Expr refers to was
// assigned (or declared as a port/register/input) earlier in the list.
type Assignment struct {
	Name  string
	Width uint
	Expr  Expr
}

// RegisterDecl describes one register discovered while compiling, with the
// mangled names under which its current value and next-cycle expression are
// available.
type RegisterDecl struct {
	Name     string
	Width    uint
	Initial  *ir.Value
	ValueRef string
	NextRef  string
}

// MemoryDecl describes one memory discovered while compiling.
type MemoryDecl struct {
	Name      string
	AddrWidth uint
	DataWidth uint
	Initial   []ir.Value

	HasWrite       bool
	WriteAddrRef   string
	WriteValueRef  string
	WriteEnableRef string
	ReadPorts      []MemoryReadPort
}

// MemoryReadPort describes one read port, with the mangled name its data is
// published under.
type MemoryReadPort struct {
	AddrRef   string
	EnableRef string
	DataRef   string
}

// InputDecl describes one root-level input port.
type InputDecl struct {
	Name  string
	Width uint
}

// OutputDecl describes one root-level output port.
type OutputDecl struct {
	Name  string
	Width uint
	Ref   string
}

// Program is the compiled form of a module (or, when compiled with
// Flatten, of the whole hierarchy reachable from it): a flat list of named
// assignments sufficient to compute every output and every register's next
// value.
type Program struct {
	Root      *ir.Module
	Inputs    []InputDecl
	Outputs   []OutputDecl
	Registers []RegisterDecl
	Memories  []MemoryDecl

	Instances []InstanceDecl

	Assignments []Assignment
}

// InstanceDecl describes one direct instance of root, for backends (like the
// structural SystemVerilog emitter) that render instantiations rather than
// inlining them.
type InstanceDecl struct {
	Name   string
	Target *ir.Module
	// InputRefs maps each of Target's input names to the name it is driven
	// by within Program's assignments/ports.
	InputRefs map[string]string
	// OutputRefs maps each of Target's output names to the mangled wire name
	// this Program declares to carry it.
	OutputRefs map[string]string
}
