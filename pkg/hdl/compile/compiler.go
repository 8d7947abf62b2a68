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

import (
	"fmt"

	"github.com/go-hdl/hdl/pkg/hdl/ir"
)

// StorageClass rounds width up to the narrowest of {1, 8, 16, 32, 64, 128}
// that can hold it. Generated simulator code stores every signal in its
// storage class's native Go representation (uint8, uint16, uint32, uint64 or
// word128.Word; the 1-bit class also uses uint8, holding only 0 or 1),
// trading a little memory for a small, fixed set of arithmetic helpers
// instead of one per distinct declared width.
func StorageClass(width uint) uint {
	switch {
	case width <= 1:
		return 1
	case width <= 8:
		return 8
	case width <= 16:
		return 16
	case width <= 32:
		return 32
	case width <= 64:
		return 64
	default:
		return 128
	}
}

// Compiler lowers signal graphs into Programs. A single Compiler may be
// reused to compile several Programs; doing so shares nothing but its zero
// state, since all working state lives in a fresh compilation below.
type Compiler struct {
	// Flatten selects which backend this Compiler serves. false (the
	// structural mode, used by the SystemVerilog emitter) stops at every
	// instance boundary: an instantiated module's input/output signals are
	// simply named local wires, and the instantiated module is compiled
	// separately, once, as its own Program. true (the flattening mode, used
	// by the simulator emitter) descends through instance boundaries,
	// substituting each instance input with whatever drives it in the
	// parent scope, so the whole reachable hierarchy collapses into one
	// Program.
	Flatten bool
}

type cacheKey struct {
	ctx *ModuleContext
	sig ir.Signal
}

type compilation struct {
	flatten bool

	cache       map[cacheKey]string
	regValueRef map[cacheKey]string
	regOrdinal  map[*ModuleContext]int
	temps       int

	assignments []Assignment
	registers   []RegisterDecl
	regIndex    map[cacheKey]int
	memories    []MemoryDecl
	memIndex    map[*ir.Memory]int
}

// Compile lowers root (and, in Flatten mode, every module it transitively
// instantiates) into a Program. Callers should run validate.Validate(root)
// first; Compile assumes an acyclic, fully-driven graph and does not
// re-check it.
func (c Compiler) Compile(root *ir.Module) (*Program, error) {
	comp := &compilation{
		flatten:     c.Flatten,
		cache:       map[cacheKey]string{},
		regValueRef: map[cacheKey]string{},
		regOrdinal:  map[*ModuleContext]int{},
		regIndex:    map[cacheKey]int{},
		memIndex:    map[*ir.Memory]int{},
	}

	rootCtx := NewRootContext(root)

	prog := &Program{Root: root}

	for _, in := range root.Inputs() {
		name := inputName(in)
		prog.Inputs = append(prog.Inputs, InputDecl{Name: name, Width: in.Width()})
	}

	// Memory ports come first so that every read port's data name is cached
	// before any output or register next value refers to it.
	if err := comp.compileMemoryPorts(rootCtx); err != nil {
		return nil, err
	}

	for _, out := range root.Outputs() {
		ref, err := comp.compile(rootCtx, out.Source)
		if err != nil {
			return nil, fmt.Errorf("compile: output %q: %w", out.Name, err)
		}

		prog.Outputs = append(prog.Outputs, OutputDecl{Name: out.Name, Width: out.Source.Width(), Ref: ref})
	}

	if err := comp.compileRegisterNexts(rootCtx); err != nil {
		return nil, err
	}

	if !c.Flatten {
		for _, inst := range root.Instances() {
			decl, err := comp.compileInstanceDecl(rootCtx, inst)
			if err != nil {
				return nil, err
			}

			prog.Instances = append(prog.Instances, decl)
		}
	}

	prog.Assignments = comp.assignments
	prog.Registers = comp.registers
	prog.Memories = comp.memories

	return prog, nil
}

func inputName(s ir.Signal) string {
	if in, ok := s.(*ir.Input); ok {
		return in.Name
	}

	return ""
}

func (comp *compilation) newTemp() string {
	comp.temps++
	return fmt.Sprintf("__t%d", comp.temps)
}

func (comp *compilation) emit(name string, width uint, e Expr) {
	comp.assignments = append(comp.assignments, Assignment{Name: name, Width: width, Expr: e})
}

// compile returns the name under which sig's value is available within ctx,
// emitting whatever assignments are needed to make that true. Repeated
// requests for the same (ctx, sig) pair are served from cache.
func (comp *compilation) compile(ctx *ModuleContext, sig ir.Signal) (string, error) {
	key := cacheKey{ctx, sig}
	if name, ok := comp.cache[key]; ok {
		return name, nil
	}

	switch s := sig.(type) {
	case *ir.Literal:
		name := comp.newTemp()
		comp.emit(name, s.Width(), &Lit{Value: s.Value})
		comp.cache[key] = name

		return name, nil

	case *ir.Input:
		if !comp.flatten || ctx.Instance == nil {
			comp.cache[key] = s.Name
			return s.Name, nil
		}

		driver, ok := ctx.Instance.DrivenInput(s.Name)
		if !ok {
			return "", fmt.Errorf("instance input %q is not driven", s.Name)
		}

		ref, err := comp.compile(ctx.Parent, driver)
		if err != nil {
			return "", err
		}

		comp.cache[key] = ref

		return ref, nil

	case *ir.RegisterValue:
		return comp.registerValueRef(ctx, s), nil

	case *ir.UnOp:
		src, err := comp.compile(ctx, s.Source)
		if err != nil {
			return "", err
		}

		name := comp.newTemp()
		comp.emit(name, s.Width(), &NotExpr{Src: src})
		comp.cache[key] = name

		return name, nil

	case *ir.BinOp:
		left, err := comp.compile(ctx, s.Left)
		if err != nil {
			return "", err
		}

		right, err := comp.compile(ctx, s.Right)
		if err != nil {
			return "", err
		}

		name := comp.newTemp()
		comp.emit(name, s.Width(), &BinExpr{Op: s.Op, Left: left, Right: right, OperandWidth: s.Left.Width()})
		comp.cache[key] = name

		return name, nil

	case *ir.Bit:
		src, err := comp.compile(ctx, s.Source)
		if err != nil {
			return "", err
		}

		name := comp.newTemp()
		comp.emit(name, s.Width(), &BitExpr{Src: src, Index: s.Index})
		comp.cache[key] = name

		return name, nil

	case *ir.Bits:
		src, err := comp.compile(ctx, s.Source)
		if err != nil {
			return "", err
		}

		if !withinLiveBits(s.Source.Width(), s.High, s.Low) {
			panic(fmt.Sprintf("compile: bit range [%d:%d] escapes a %d-bit source", s.High, s.Low, s.Source.Width()))
		}

		name := comp.newTemp()
		comp.emit(name, s.Width(), &BitsExpr{Src: src, High: s.High, Low: s.Low})
		comp.cache[key] = name

		return name, nil

	case *ir.Repeat:
		src, err := comp.compile(ctx, s.Source)
		if err != nil {
			return "", err
		}

		name := comp.newTemp()
		comp.emit(name, s.Width(), &RepeatExpr{Src: src, Width: s.Source.Width(), Count: s.Count})
		comp.cache[key] = name

		return name, nil

	case *ir.Concat:
		high, err := comp.compile(ctx, s.High)
		if err != nil {
			return "", err
		}

		low, err := comp.compile(ctx, s.Low)
		if err != nil {
			return "", err
		}

		name := comp.newTemp()
		comp.emit(name, s.Width(), &ConcatExpr{High: high, Low: low, LowWidth: s.Low.Width()})
		comp.cache[key] = name

		return name, nil

	case *ir.Mux:
		a, err := comp.compile(ctx, s.A)
		if err != nil {
			return "", err
		}

		b, err := comp.compile(ctx, s.B)
		if err != nil {
			return "", err
		}

		sel, err := comp.compile(ctx, s.Sel)
		if err != nil {
			return "", err
		}

		name := comp.newTemp()
		comp.emit(name, s.Width(), &MuxExpr{A: a, B: b, Sel: sel})
		comp.cache[key] = name

		return name, nil

	case *ir.InstanceOutput:
		if !comp.flatten {
			name := localInstanceWire(s.Instance.Name, "output", s.Name)
			comp.cache[key] = name

			return name, nil
		}

		childCtx := ctx.Child(s.Instance)

		for _, o := range s.Instance.Target.Outputs() {
			if o.Name != s.Name {
				continue
			}

			ref, err := comp.compile(childCtx, o.Source)
			if err != nil {
				return "", err
			}

			comp.cache[key] = ref

			return ref, nil
		}

		return "", fmt.Errorf("instance %q has no output %q", s.Instance.Name, s.Name)

	default:
		name := comp.newTemp()
		comp.cache[key] = name

		return name, nil
	}
}

// registerValueRef returns the stable mangled name holding reg's current
// value within ctx, recording a RegisterDecl the first time it is seen.
// Register names always take the "__reg_<name>_<ordinal>" form, with ordinal
// assigned in per-context registration order: unlike other mangled kinds,
// this scheme is not conditioned on hierarchy depth, matching the
// ground-truth generator, which numbers a module's registers by how many it
// has already emitted rather than by instance path.
func (comp *compilation) registerValueRef(ctx *ModuleContext, reg *ir.RegisterValue) string {
	key := cacheKey{ctx, reg}
	if ref, ok := comp.regValueRef[key]; ok {
		return ref
	}

	ordinal := comp.regOrdinal[ctx]
	comp.regOrdinal[ctx] = ordinal + 1

	name := fmt.Sprintf("__reg_%s_%d", reg.Name, ordinal)
	comp.regValueRef[key] = name
	comp.regIndex[key] = len(comp.registers)
	comp.registers = append(comp.registers, RegisterDecl{
		Name:     reg.Name,
		Width:    reg.Width(),
		Initial:  reg.Initial,
		ValueRef: name,
	})
	comp.cache[key] = name

	return name
}

// compileRegisterNexts ensures every register reachable from ctx (whether or
// not its current value was referenced by a combinational output) has its
// next-cycle expression compiled, and records the resulting reference on its
// RegisterDecl.
func (comp *compilation) compileRegisterNexts(ctx *ModuleContext) error {
	for _, reg := range ctx.Module.Registers() {
		rv, ok := reg.Value().(*ir.RegisterValue)
		if !ok {
			continue
		}

		valueRef := comp.registerValueRef(ctx, rv)

		nextRef, err := comp.compile(ctx, rv.Next)
		if err != nil {
			return fmt.Errorf("compile: register %q next value: %w", reg.Name(), err)
		}

		nextName := valueRef + "_next"
		comp.emit(nextName, rv.Width(), &RefExpr{Src: nextRef})

		key := cacheKey{ctx, rv}
		idx := comp.regIndex[key]
		comp.registers[idx].NextRef = nextName
	}

	if comp.flatten {
		for _, inst := range ctx.Module.Instances() {
			if err := comp.compileRegisterNexts(ctx.Child(inst)); err != nil {
				return err
			}
		}
	}

	return nil
}

// compileMemoryPorts compiles the address/enable/value operands of every
// memory's ports reachable from ctx, and records a MemoryDecl for each.
func (comp *compilation) compileMemoryPorts(ctx *ModuleContext) error {
	for _, mem := range ctx.Module.Memories() {
		decl := MemoryDecl{
			Name:      ctx.Mangle("mem", mem.Name),
			AddrWidth: mem.AddrWidth,
			DataWidth: mem.DataWidth,
			Initial:   mem.InitialContents,
		}

		if mem.Write != nil {
			addrRef, err := comp.compile(ctx, mem.Write.Addr)
			if err != nil {
				return err
			}

			valueRef, err := comp.compile(ctx, mem.Write.Value)
			if err != nil {
				return err
			}

			enableRef, err := comp.compile(ctx, mem.Write.Enable)
			if err != nil {
				return err
			}

			decl.HasWrite = true
			decl.WriteAddrRef = addrRef
			decl.WriteValueRef = valueRef
			decl.WriteEnableRef = enableRef
		}

		for i, rp := range mem.Reads {
			addrRef, err := comp.compile(ctx, rp.Addr)
			if err != nil {
				return err
			}

			enableRef, err := comp.compile(ctx, rp.Enable)
			if err != nil {
				return err
			}

			dataRef := ctx.Mangle(fmt.Sprintf("mem_%s_read%d", mem.Name, i), "data")
			comp.cache[cacheKey{ctx, rp.Data}] = dataRef

			decl.ReadPorts = append(decl.ReadPorts, MemoryReadPort{
				AddrRef: addrRef, EnableRef: enableRef, DataRef: dataRef,
			})
		}

		comp.memIndex[mem] = len(comp.memories)
		comp.memories = append(comp.memories, decl)
	}

	if comp.flatten {
		for _, inst := range ctx.Module.Instances() {
			if err := comp.compileMemoryPorts(ctx.Child(inst)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (comp *compilation) compileInstanceDecl(ctx *ModuleContext, inst *ir.Instance) (InstanceDecl, error) {
	decl := InstanceDecl{
		Name:       inst.Name,
		Target:     inst.Target,
		InputRefs:  map[string]string{},
		OutputRefs: map[string]string{},
	}

	for _, in := range inst.Target.Inputs() {
		name := inputName(in)

		driver, ok := inst.DrivenInput(name)
		if !ok {
			return InstanceDecl{}, fmt.Errorf("instance %q input %q is not driven", inst.Name, name)
		}

		ref, err := comp.compile(ctx, driver)
		if err != nil {
			return InstanceDecl{}, err
		}

		wire := localInstanceWire(inst.Name, "input", name)
		comp.emit(wire, in.Width(), &RefExpr{Src: ref})
		decl.InputRefs[name] = wire
	}

	for _, out := range inst.Target.Outputs() {
		decl.OutputRefs[out.Name] = localInstanceWire(inst.Name, "output", out.Name)
	}

	return decl, nil
}

// localInstanceWire names the wire, local to a single module's own
// generated code, that carries one port of one of its direct instances.
// Unlike ModuleContext.Mangle it never looks further up the hierarchy:
// structural (non-flattening) compilation never descends past an instance
// boundary, so every name it mints is single-level by construction.
func localInstanceWire(instName, kind, port string) string {
	return "__" + instName + "_" + kind + "_" + port
}
