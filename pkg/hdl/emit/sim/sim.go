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

// Package sim emits a self-contained Go source file implementing an
// imperative, two-phase cycle simulator for a validated module hierarchy
// (design component G.2). Unlike the structural SystemVerilog emitter, sim
// always compiles with compile.Compiler{Flatten: true}: the whole reachable
// instance hierarchy collapses into a single generated struct, since a
// simulator has no use for separately-instantiable units.
//
// Every compiled signal - every input, output, register, memory port and
// intermediate subexpression - becomes its own struct field, typed by its
// storage class (pkg/hdl/compile.StorageClass). Prop recomputes every field
// from the current register and memory contents; PosedgeClk latches
// registers and applies memory writes from the values Prop last computed,
// then calls Prop again so outputs reflect the new state.
package sim

import (
	"fmt"
	"unicode"

	"github.com/go-hdl/hdl/pkg/hdl/codewriter"
	"github.com/go-hdl/hdl/pkg/hdl/compile"
	"github.com/go-hdl/hdl/pkg/hdl/ir"
	"github.com/go-hdl/hdl/pkg/hdl/validate"
)

// Generate returns a Go source file, in package pkgName, defining a
// simulator for root named exportName(root.Name).
func Generate(root *ir.Module, pkgName string) (string, error) {
	if err := validate.Validate(root); err != nil {
		return "", err
	}

	prog, err := (compile.Compiler{Flatten: true}).Compile(root)
	if err != nil {
		return "", fmt.Errorf("sim: compiling module %q: %w", root.Name, err)
	}

	g := &generator{prog: prog, typeName: exportName(root.Name)}

	return g.generate(pkgName), nil
}

type generator struct {
	prog     *compile.Program
	typeName string
}

func (g *generator) generate(pkgName string) string {
	w := codewriter.New("\t")

	w.Linef("package %s", pkgName)
	w.Blank()

	if g.usesWord128() {
		w.Line(`import "github.com/go-hdl/hdl/pkg/hdl/runtime/word128"`)
		w.Blank()
	}

	g.emitStruct(w)
	g.emitConstructor(w)
	g.emitReset(w)
	g.emitProp(w)
	g.emitPosedgeClk(w)
	g.emitPreamble(w)

	return w.String()
}

func (g *generator) usesWord128() bool {
	for _, width := range g.allWidths() {
		if compile.StorageClass(width) == 128 {
			return true
		}
	}

	return false
}

func (g *generator) allWidths() []uint {
	var widths []uint

	for _, in := range g.prog.Inputs {
		widths = append(widths, in.Width)
	}

	for _, out := range g.prog.Outputs {
		widths = append(widths, out.Width)
	}

	for _, reg := range g.prog.Registers {
		widths = append(widths, reg.Width)
	}

	for _, mem := range g.prog.Memories {
		widths = append(widths, mem.DataWidth)
	}

	for _, asn := range g.prog.Assignments {
		widths = append(widths, asn.Width)
	}

	return widths
}

// goType returns the Go type a signal of width is stored as.
func goType(width uint) string {
	switch compile.StorageClass(width) {
	case 1, 8:
		return "uint8"
	case 16:
		return "uint16"
	case 32:
		return "uint32"
	case 64:
		return "uint64"
	default:
		return "word128.Word"
	}
}

func classBits(width uint) uint {
	return compile.StorageClass(width)
}

func (g *generator) emitStruct(w *codewriter.Writer) {
	w.Linef("// %s is a generated two-phase cycle simulator for the %q module.", g.typeName, g.prog.Root.Name)
	w.Linef("//")
	w.Linef("// Callers drive it by setting the exported input fields, calling Prop to")
	w.Linef("// recompute combinational outputs, and calling PosedgeClk to advance one")
	w.Linef("// clock cycle. Input fields must only ever hold values within their")
	w.Linef("// declared width; Prop and PosedgeClk assume this and do not re-mask them.")
	w.Linef("type %s struct {", g.typeName)
	w.Indent()

	for _, in := range g.prog.Inputs {
		w.Linef("%s %s // input, %d bit(s)", exportName(in.Name), goType(in.Width), in.Width)
	}

	for _, out := range g.prog.Outputs {
		w.Linef("%s %s // output, %d bit(s)", exportName(out.Name), goType(out.Width), out.Width)
	}

	for _, reg := range g.prog.Registers {
		w.Linef("%s %s", reg.ValueRef, goType(reg.Width))
	}

	for _, mem := range g.prog.Memories {
		w.Linef("%s []%s", mem.Name, goType(mem.DataWidth))
	}

	for _, asn := range g.prog.Assignments {
		w.Linef("%s %s", asn.Name, goType(asn.Width))
	}

	for _, mem := range g.prog.Memories {
		for _, rp := range mem.ReadPorts {
			w.Linef("%s %s", rp.DataRef, goType(mem.DataWidth))
		}
	}

	w.Unindent()
	w.Line("}")
	w.Blank()
}

func (g *generator) emitConstructor(w *codewriter.Writer) {
	w.Linef("// New%s constructs a simulator with every register and memory at its", g.typeName)
	w.Linef("// declared initial contents (zero, where none was specified).")
	w.Linef("func New%s() *%s {", g.typeName, g.typeName)
	w.Indent()
	w.Linef("m := &%s{}", g.typeName)

	for _, mem := range g.prog.Memories {
		w.Linef("%s = make([]%s, %d)", memFieldRef(mem.Name), goType(mem.DataWidth), uint64(1)<<mem.AddrWidth)
	}

	w.Line("m.Reset()")
	w.Line("return m")
	w.Unindent()
	w.Line("}")
	w.Blank()
}

func (g *generator) emitReset(w *codewriter.Writer) {
	w.Linef("// Reset restores every register to its initial value and every memory to")
	w.Linef("// its initial contents, then recomputes combinational outputs.")
	w.Linef("func (m *%s) Reset() {", g.typeName)
	w.Indent()

	for _, reg := range g.prog.Registers {
		w.Linef("%s = %s", fieldRef(reg.ValueRef), litGo(initialValue(reg), reg.Width))
	}

	for _, mem := range g.prog.Memories {
		ref := memFieldRef(mem.Name)
		w.Linef("for i := range %s {", ref)
		w.Indent()
		w.Linef("%s[i] = %s", ref, litGo(ir.Value{}, mem.DataWidth))
		w.Unindent()
		w.Line("}")

		for i, v := range mem.Initial {
			w.Linef("%s[%d] = %s", ref, i, litGo(v, mem.DataWidth))
		}
	}

	w.Line("m.Prop()")
	w.Unindent()
	w.Line("}")
	w.Blank()
}

func (g *generator) emitProp(w *codewriter.Writer) {
	w.Linef("// Prop recomputes every combinational signal and output from the current")
	w.Linef("// register and memory contents. It is idempotent: calling it twice in a")
	w.Linef("// row without an intervening input change or PosedgeClk leaves state")
	w.Linef("// unchanged.")
	w.Linef("func (m *%s) Prop() {", g.typeName)
	w.Indent()

	for _, asn := range g.prog.Assignments {
		g.emitAssignment(w, asn)
	}

	for _, mem := range g.prog.Memories {
		for _, rp := range mem.ReadPorts {
			w.Linef("if %s != 0 {", g.ref(rp.EnableRef))
			w.Indent()
			w.Linef("%s = %s[%s]", fieldRef(rp.DataRef), memFieldRef(mem.Name), g.ref(rp.AddrRef))
			w.Unindent()
			w.Line("}")
		}
	}

	for _, out := range g.prog.Outputs {
		w.Linef("%s = %s", fieldRef(exportName(out.Name)), g.ref(out.Ref))
	}

	w.Unindent()
	w.Line("}")
	w.Blank()
}

func (g *generator) emitPosedgeClk(w *codewriter.Writer) {
	w.Linef("// PosedgeClk advances the simulator by one clock cycle: it latches every")
	w.Linef("// register's next value and applies every pending memory write using the")
	w.Linef("// state Prop last computed, then calls Prop again so outputs and")
	w.Linef("// combinational signals reflect the new cycle.")
	w.Linef("func (m *%s) PosedgeClk() {", g.typeName)
	w.Indent()

	for _, reg := range g.prog.Registers {
		w.Linef("%s := %s", localNext(reg.ValueRef), g.ref(reg.NextRef))
	}

	for _, reg := range g.prog.Registers {
		w.Linef("%s = %s", fieldRef(reg.ValueRef), localNext(reg.ValueRef))
	}

	for _, mem := range g.prog.Memories {
		if !mem.HasWrite {
			continue
		}

		w.Linef("if %s != 0 {", g.ref(mem.WriteEnableRef))
		w.Indent()
		w.Linef("%s[%s] = %s", memFieldRef(mem.Name), g.ref(mem.WriteAddrRef), g.ref(mem.WriteValueRef))
		w.Unindent()
		w.Line("}")
	}

	w.Line("m.Prop()")
	w.Unindent()
	w.Line("}")
	w.Blank()
}

// emitAssignment renders one compiled Assignment as a statement (or, for Mux,
// an if/else block) inside Prop.
func (g *generator) emitAssignment(w *codewriter.Writer, asn compile.Assignment) {
	switch x := asn.Expr.(type) {
	case *compile.MuxExpr:
		w.Linef("if %s != 0 {", g.ref(x.Sel))
		w.Indent()
		w.Linef("%s = %s", fieldRef(asn.Name), g.ref(x.B))
		w.Unindent()
		w.Line("} else {")
		w.Indent()
		w.Linef("%s = %s", fieldRef(asn.Name), g.ref(x.A))
		w.Unindent()
		w.Line("}")

	default:
		w.Linef("%s = %s", fieldRef(asn.Name), g.renderExpr(asn.Expr, asn.Width))
	}
}

func (g *generator) renderExpr(e compile.Expr, width uint) string {
	class := classBits(width)

	switch x := e.(type) {
	case *compile.Lit:
		return litGo(x.Value, width)

	case *compile.NotExpr:
		if class == 128 {
			return fmt.Sprintf("word128.Not(%s, %d)", g.ref(x.Src), width)
		}

		return fmt.Sprintf("%s(^%s%s)", goType(class), g.ref(x.Src), maskLiteral(width, class))

	case *compile.BinExpr:
		return g.binExprGo(x, width)

	case *compile.BitExpr:
		if g.widthOfRef(x.Src) == 128 {
			return fmt.Sprintf("%s(word128.Bit(%s, %d).Uint64())", goType(width), g.ref(x.Src), x.Index)
		}

		return fmt.Sprintf("%s((%s >> %d) & 1)", goType(width), g.ref(x.Src), x.Index)

	case *compile.BitsExpr:
		return g.bitsExprGo(x, width)

	case *compile.RepeatExpr:
		return g.repeatExprGo(x, width)

	case *compile.ConcatExpr:
		return g.concatExprGo(x, width)

	case *compile.RefExpr:
		return g.ref(x.Src)

	default:
		return fmt.Sprintf("%s(0) /* unsupported expression */", goType(width))
	}
}

func (g *generator) binExprGo(x *compile.BinExpr, resultWidth uint) string {
	operandClass := classBits(x.OperandWidth)
	left, right := g.ref(x.Left), g.ref(x.Right)

	if x.Op.IsComparison() {
		return fmt.Sprintf("boolToUint8(%s)", g.compareGo(x, operandClass, left, right))
	}

	if operandClass == 128 {
		switch x.Op {
		case ir.BitAnd:
			return fmt.Sprintf("word128.And(%s, %s)", left, right)
		case ir.BitOr:
			return fmt.Sprintf("word128.Or(%s, %s)", left, right)
		case ir.BitXor:
			return fmt.Sprintf("word128.Xor(%s, %s)", left, right)
		default: // ir.Add
			return fmt.Sprintf("word128.Add(%s, %s, %d)", left, right, x.OperandWidth)
		}
	}

	resultType := goType(resultWidth)

	switch x.Op {
	case ir.BitAnd:
		return fmt.Sprintf("%s(%s & %s)", resultType, left, right)
	case ir.BitOr:
		return fmt.Sprintf("%s(%s | %s)", resultType, left, right)
	case ir.BitXor:
		return fmt.Sprintf("%s(%s ^ %s)", resultType, left, right)
	default: // ir.Add; non-comparison binary ops always share their operands' width.
		return fmt.Sprintf("%s(%s + %s)%s", resultType, left, right, maskLiteral(x.OperandWidth, operandClass))
	}
}

func (g *generator) compareGo(x *compile.BinExpr, operandClass uint, left, right string) string {
	if operandClass == 128 {
		switch x.Op {
		case ir.Eq:
			return fmt.Sprintf("word128.Eq(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.Ne:
			return fmt.Sprintf("word128.Ne(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.Lt:
			return fmt.Sprintf("word128.Lt(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.Le:
			return fmt.Sprintf("word128.Le(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.Gt:
			return fmt.Sprintf("word128.Gt(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.Ge:
			return fmt.Sprintf("word128.Ge(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.LtS:
			return fmt.Sprintf("word128.LtS(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.LeS:
			return fmt.Sprintf("word128.LeS(%s, %s, %d)", left, right, x.OperandWidth)
		case ir.GtS:
			return fmt.Sprintf("word128.GtS(%s, %s, %d)", left, right, x.OperandWidth)
		default: // ir.GeS
			return fmt.Sprintf("word128.GeS(%s, %s, %d)", left, right, x.OperandWidth)
		}
	}

	if !x.Op.IsSigned() {
		sym, _ := unsignedSymbol(x.Op)
		return fmt.Sprintf("%s %s %s", left, sym, right)
	}

	sym, _ := unsignedSymbol(signedToUnsigned(x.Op))
	fn := signExtendFunc(operandClass)

	return fmt.Sprintf("%s(%s, %d) %s %s(%s, %d)", fn, left, x.OperandWidth, sym, fn, right, x.OperandWidth)
}

func unsignedSymbol(op ir.BinaryOp) (string, bool) {
	switch op {
	case ir.Eq:
		return "==", true
	case ir.Ne:
		return "!=", true
	case ir.Lt:
		return "<", true
	case ir.Le:
		return "<=", true
	case ir.Gt:
		return ">", true
	case ir.Ge:
		return ">=", true
	default:
		return "?", false
	}
}

func signedToUnsigned(op ir.BinaryOp) ir.BinaryOp {
	switch op {
	case ir.LtS:
		return ir.Lt
	case ir.LeS:
		return ir.Le
	case ir.GtS:
		return ir.Gt
	default: // ir.GeS
		return ir.Ge
	}
}

// signExtendFunc names the preamble helper that sign-extends a value of the
// given storage class to a signed Go comparison, wrapping it as e.g.
// "int32(signExtend32(x, width))" at the call site is avoided by having the
// helper itself take the true width and return a directly comparable signed
// value.
func signExtendFunc(class uint) string {
	if class == 1 {
		// 1-bit values are held in a uint8, so they share the 8-bit helper.
		class = 8
	}

	return fmt.Sprintf("signExtend%d", class)
}

func (g *generator) bitsExprGo(x *compile.BitsExpr, resultWidth uint) string {
	if classBits(x.High-x.Low+1) == 128 {
		return fmt.Sprintf("word128.Bits(%s, %d, %d)", g.ref(x.Src), x.High, x.Low)
	}

	srcClass := g.widthOfRef(x.Src)
	if srcClass == 128 {
		return fmt.Sprintf("%s(word128.Bits(%s, %d, %d).Uint64())", goType(resultWidth), g.ref(x.Src), x.High, x.Low)
	}

	return fmt.Sprintf("%s((%s >> %d)%s)", goType(resultWidth), g.ref(x.Src), x.Low, maskLiteral(x.High-x.Low+1, classBits(resultWidth)))
}

func (g *generator) repeatExprGo(x *compile.RepeatExpr, resultWidth uint) string {
	resultClass := classBits(resultWidth)
	srcClass := classBits(x.Width)

	if resultClass == 128 {
		base := g.ref(x.Src)
		if srcClass != 128 {
			base = fmt.Sprintf("word128.FromUint64(uint64(%s))", base)
		}

		acc := base

		for i := uint(1); i < x.Count; i++ {
			acc = fmt.Sprintf("word128.Or(%s, word128.Shl(%s, %d, %d))", acc, base, i*x.Width, resultWidth)
		}

		return acc
	}

	resultType := goType(resultClass)
	base := fmt.Sprintf("%s(%s)", resultType, g.ref(x.Src))

	acc := base
	for i := uint(1); i < x.Count; i++ {
		acc = fmt.Sprintf("%s | (%s << %d)", acc, base, i*x.Width)
	}

	return fmt.Sprintf("(%s)", acc)
}

func (g *generator) concatExprGo(x *compile.ConcatExpr, resultWidth uint) string {
	resultClass := classBits(resultWidth)

	if resultClass == 128 {
		high := g.toWordGo(x.High)
		low := g.toWordGo(x.Low)

		return fmt.Sprintf("word128.Or(word128.Shl(%s, %d, %d), %s)", high, x.LowWidth, resultWidth, low)
	}

	resultType := goType(resultClass)

	return fmt.Sprintf("(%s(%s) << %d) | %s(%s)", resultType, g.ref(x.High), x.LowWidth, resultType, g.ref(x.Low))
}

func (g *generator) toWordGo(ref string) string {
	if g.widthOfRef(ref) == 128 {
		return g.ref(ref)
	}

	return fmt.Sprintf("word128.FromUint64(uint64(%s))", g.ref(ref))
}

// widthOfRef looks up the storage class a previously-compiled name was
// declared at, consulting ports, registers, memories and assignments in
// turn. It returns 0 (never a valid class) if ref names something this
// generator does not track, which only happens for names it mints itself
// and already knows the class of at the call site.
func (g *generator) widthOfRef(ref string) uint {
	for _, in := range g.prog.Inputs {
		if in.Name == ref {
			return classBits(in.Width)
		}
	}

	for _, reg := range g.prog.Registers {
		if reg.ValueRef == ref || reg.NextRef == ref {
			return classBits(reg.Width)
		}
	}

	for _, mem := range g.prog.Memories {
		for _, rp := range mem.ReadPorts {
			if rp.DataRef == ref {
				return classBits(mem.DataWidth)
			}
		}
	}

	for _, asn := range g.prog.Assignments {
		if asn.Name == ref {
			return classBits(asn.Width)
		}
	}

	return 0
}

func (g *generator) emitPreamble(w *codewriter.Writer) {
	w.Line("func boolToUint8(b bool) uint8 {")
	w.Indent()
	w.Line("if b {")
	w.Indent()
	w.Line("return 1")
	w.Unindent()
	w.Line("}")
	w.Line("return 0")
	w.Unindent()
	w.Line("}")
	w.Blank()

	for _, class := range []uint{8, 16, 32, 64} {
		emitSignExtend(w, class)
	}
}

func emitSignExtend(w *codewriter.Writer, class uint) {
	uType := goTypeForClass(class)
	sType := signedTypeForClass(class)

	w.Linef("// %s sign-extends a width-bit value held in the low bits of a %s to a", signExtendFunc(class), uType)
	w.Linef("// directly comparable %s.", sType)
	w.Linef("func %s(v %s, width uint) %s {", signExtendFunc(class), uType, sType)
	w.Indent()
	w.Linef("if width >= %d {", class)
	w.Indent()
	w.Linef("return %s(v)", sType)
	w.Unindent()
	w.Line("}")
	w.Linef("signBit := %s(1) << (width - 1)", uType)
	w.Line("if v&signBit != 0 {")
	w.Indent()
	w.Linef("v |= ^%s(0) << width", uType)
	w.Unindent()
	w.Line("}")
	w.Linef("return %s(v)", sType)
	w.Unindent()
	w.Line("}")
	w.Blank()
}

func goTypeForClass(class uint) string {
	switch class {
	case 8:
		return "uint8"
	case 16:
		return "uint16"
	case 32:
		return "uint32"
	default:
		return "uint64"
	}
}

func signedTypeForClass(class uint) string {
	switch class {
	case 8:
		return "int8"
	case 16:
		return "int16"
	case 32:
		return "int32"
	default:
		return "int64"
	}
}

func initialValue(reg compile.RegisterDecl) ir.Value {
	if reg.Initial != nil {
		return *reg.Initial
	}

	return ir.Value{}
}

func litGo(v ir.Value, width uint) string {
	masked := v.Mask(width)

	if classBits(width) == 128 {
		return fmt.Sprintf("word128.Word{Lo: 0x%x, Hi: 0x%x}", masked.Lo, masked.Hi)
	}

	return fmt.Sprintf("%s(0x%x)", goType(width), masked.Lo)
}

// maskLiteral returns a " & 0x.." suffix clearing every bit at or above
// width within a value of the given storage class, or "" when width already
// spans the whole class and no bits need clearing.
func maskLiteral(width, class uint) string {
	if width >= class {
		return ""
	}

	return fmt.Sprintf(" & 0x%x", compile.LiveMask(width))
}

// fieldRef is the Go expression naming a field this generator itself
// declared under exactly this name: register values, memory arrays, memory
// read-port data and assignment temporaries never collide with an exported
// port name, so these need no further translation.
func fieldRef(name string) string { return "m." + name }

// memFieldRef is fieldRef, documented at the memory-array call sites: a
// MemoryDecl's Name is already the mangled field name, not a local name
// needing further qualification.
func memFieldRef(name string) string { return fieldRef(name) }

// ref is the Go expression reading a previously-compiled signal reference,
// which compile.Compiler always names after the underlying *ir.Input's bare
// (unexported) name when it names an input directly. Every other kind of
// reference (a temporary, a register or memory field) is also a valid Go
// identifier as-is. Any reference that equals some input's name is
// rewritten to that input's exported struct field so reads agree with how
// emitStruct declared it.
func (g *generator) ref(name string) string {
	for _, in := range g.prog.Inputs {
		if in.Name == name {
			return fieldRef(exportName(name))
		}
	}

	return fieldRef(name)
}

func localNext(ref string) string { return "next_" + ref }

func exportName(name string) string {
	if name == "" {
		return name
	}

	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}
