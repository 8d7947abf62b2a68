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

// Package verilog emits structural SystemVerilog for a validated module
// hierarchy: one `module` per reachable IR module, instance boundaries
// rendered as ordinary module instantiations rather than inlined, registers
// as an always_ff block with an active-low asynchronous reset.
package verilog

import (
	"fmt"

	"github.com/go-hdl/hdl/pkg/hdl/codewriter"
	"github.com/go-hdl/hdl/pkg/hdl/compile"
	"github.com/go-hdl/hdl/pkg/hdl/ir"
	"github.com/go-hdl/hdl/pkg/hdl/validate"
)

// Generate returns the SystemVerilog text implementing root and every
// module it transitively instantiates, leaf modules emitted first.
func Generate(root *ir.Module) (string, error) {
	if err := validate.Validate(root); err != nil {
		return "", err
	}

	w := codewriter.New("  ")

	for _, m := range reachableModulesPostOrder(root) {
		prog, err := (compile.Compiler{}).Compile(m)
		if err != nil {
			return "", fmt.Errorf("verilog: compiling module %q: %w", m.Name, err)
		}

		emitModule(w, prog)
		w.Blank()
	}

	return w.String(), nil
}

func reachableModulesPostOrder(root *ir.Module) []*ir.Module {
	var (
		seen    = map[*ir.Module]bool{}
		ordered []*ir.Module
	)

	var visit func(m *ir.Module)
	visit = func(m *ir.Module) {
		if seen[m] {
			return
		}

		seen[m] = true

		for _, inst := range m.Instances() {
			visit(inst.Target)
		}

		ordered = append(ordered, m)
	}
	visit(root)

	return ordered
}

func emitModule(w *codewriter.Writer, prog *compile.Program) {
	w.Linef("module %s (", prog.Root.Name)
	w.Indent()
	w.Line("input reset_n,")
	w.Line("input clk,")

	for _, in := range prog.Inputs {
		w.Line(portDecl("input", in.Name, in.Width) + ",")
	}

	for i, out := range prog.Outputs {
		suffix := ","
		if i == len(prog.Outputs)-1 {
			suffix = ""
		}

		w.Line(portDecl("output", out.Name, out.Width) + suffix)
	}

	w.Unindent()
	w.Line(");")
	w.Indent()

	for _, inst := range prog.Instances {
		for _, out := range inst.Target.Outputs() {
			w.Linef("logic%s %s;", widthSuffix(out.Source.Width()), inst.OutputRefs[out.Name])
		}
	}

	for _, reg := range prog.Registers {
		w.Linef("logic%s %s;", widthSuffix(reg.Width), reg.ValueRef)
	}

	for _, asn := range prog.Assignments {
		w.Linef("logic%s %s;", widthSuffix(asn.Width), asn.Name)
	}

	w.Blank()

	for _, asn := range prog.Assignments {
		w.Linef("assign %s = %s;", asn.Name, renderExpr(asn.Expr, asn.Width))
	}

	for _, out := range prog.Outputs {
		w.Linef("assign %s = %s;", out.Name, out.Ref)
	}

	w.Blank()

	for _, reg := range prog.Registers {
		emitRegister(w, reg)
	}

	for _, inst := range prog.Instances {
		emitInstance(w, inst)
	}

	w.Unindent()
	w.Line("endmodule")
}

func emitRegister(w *codewriter.Writer, reg compile.RegisterDecl) {
	w.Line("always_ff @(posedge clk or negedge reset_n) begin")
	w.Indent()
	w.Line("if (!reset_n) begin")
	w.Indent()
	w.Linef("%s <= %s;", reg.ValueRef, initialLiteral(reg))
	w.Unindent()
	w.Line("end else begin")
	w.Indent()
	w.Linef("%s <= %s;", reg.ValueRef, reg.NextRef)
	w.Unindent()
	w.Line("end")
	w.Unindent()
	w.Line("end")
	w.Blank()
}

func initialLiteral(reg compile.RegisterDecl) string {
	if reg.Initial != nil {
		return litSV(*reg.Initial, reg.Width)
	}

	return litSV(ir.Value{}, reg.Width)
}

func emitInstance(w *codewriter.Writer, inst compile.InstanceDecl) {
	w.Linef("%s %s (", inst.Target.Name, inst.Name)
	w.Indent()
	w.Line(".reset_n(reset_n),")
	w.Line(".clk(clk),")

	for _, in := range inst.Target.Inputs() {
		name := inputNameOf(in)
		w.Linef(".%s(%s),", name, inst.InputRefs[name])
	}

	outs := inst.Target.Outputs()
	for i, out := range outs {
		suffix := ","
		if i == len(outs)-1 {
			suffix = ""
		}

		w.Linef(".%s(%s)%s", out.Name, inst.OutputRefs[out.Name], suffix)
	}

	w.Unindent()
	w.Line(");")
	w.Blank()
}

func inputNameOf(s ir.Signal) string {
	if in, ok := s.(*ir.Input); ok {
		return in.Name
	}

	return ""
}

func portDecl(direction, name string, width uint) string {
	if width == 1 {
		return fmt.Sprintf("%s %s", direction, name)
	}

	return fmt.Sprintf("%s [%d:0] %s", direction, width-1, name)
}

func widthSuffix(width uint) string {
	if width == 1 {
		return ""
	}

	return fmt.Sprintf(" [%d:0]", width-1)
}

func litSV(v ir.Value, width uint) string {
	return fmt.Sprintf("%d'h%s", width, v.Mask(width).BigInt().Text(16))
}

func renderExpr(e compile.Expr, width uint) string {
	switch x := e.(type) {
	case *compile.Lit:
		return litSV(x.Value, width)

	case *compile.NotExpr:
		return "~" + x.Src

	case *compile.BinExpr:
		return binExprSV(x)

	case *compile.BitExpr:
		return fmt.Sprintf("%s[%d]", x.Src, x.Index)

	case *compile.BitsExpr:
		return fmt.Sprintf("%s[%d:%d]", x.Src, x.High, x.Low)

	case *compile.RepeatExpr:
		return fmt.Sprintf("{%d{%s}}", x.Count, x.Src)

	case *compile.ConcatExpr:
		return fmt.Sprintf("{%s, %s}", x.High, x.Low)

	case *compile.MuxExpr:
		return fmt.Sprintf("%s ? %s : %s", x.Sel, x.B, x.A)

	case *compile.RefExpr:
		return x.Src

	default:
		return "/* unsupported expression */"
	}
}

func binOpSV(op ir.BinaryOp) (sym string, signed bool) {
	switch op {
	case ir.BitAnd:
		return "&", false
	case ir.BitOr:
		return "|", false
	case ir.BitXor:
		return "^", false
	case ir.Add:
		return "+", false
	case ir.Eq:
		return "==", false
	case ir.Ne:
		return "!=", false
	case ir.Lt:
		return "<", false
	case ir.Le:
		return "<=", false
	case ir.Gt:
		return ">", false
	case ir.Ge:
		return ">=", false
	case ir.LtS:
		return "<", true
	case ir.LeS:
		return "<=", true
	case ir.GtS:
		return ">", true
	case ir.GeS:
		return ">=", true
	default:
		return "?", false
	}
}

func binExprSV(x *compile.BinExpr) string {
	sym, signed := binOpSV(x.Op)
	if !signed {
		return fmt.Sprintf("%s %s %s", x.Left, sym, x.Right)
	}

	return fmt.Sprintf("$signed(%s) %s $signed(%s)", x.Left, sym, x.Right)
}
