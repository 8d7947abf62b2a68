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

// Package validate implements the structural checks a module hierarchy must
// pass before it can be compiled or emitted: recursion detection,
// driven-ness, combinational-loop detection and memory well-formedness
// (design component D). Every check below a module's own recursion sweep
// collects as many faults as it can find and reports them together via
// go.uber.org/multierr, rather than stopping at the first one.
package validate

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/go-hdl/hdl/pkg/hdl/ir"
)

// Validate runs every structural check against the module hierarchy reachable
// from root (root itself, plus every module transitively instantiated by
// it). Recursion is checked first and, if found, is returned alone: the
// remaining checks assume an acyclic instance graph to terminate.
func Validate(root *ir.Module) error {
	if err := checkRecursion(root); err != nil {
		return err
	}

	modules := reachableModules(root)

	var errs error
	errs = multierr.Append(errs, checkDriven(modules))
	errs = multierr.Append(errs, checkMemories(modules))
	errs = multierr.Append(errs, checkCombinationalLoops(modules))

	return errs
}

// reachableModules returns root and every module transitively reachable
// through instantiation, each exactly once, in depth-first discovery order.
func reachableModules(root *ir.Module) []*ir.Module {
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
		ordered = append(ordered, m)

		for _, inst := range m.Instances() {
			visit(inst.Target)
		}
	}
	visit(root)

	return ordered
}

// checkRecursion detects cycles in the instance graph reachable from root:
// a module that, directly or through some chain of instances, ends up
// instantiating itself.
func checkRecursion(root *ir.Module) error {
	return visitForRecursion(root, root, nil)
}

func visitForRecursion(root, m *ir.Module, path []*ir.Module) error {
	extended := make([]*ir.Module, len(path)+1)
	copy(extended, path)
	extended[len(path)] = m

	for _, inst := range m.Instances() {
		for _, ancestor := range extended {
			if ancestor == inst.Target {
				return &ir.RecursiveModuleError{
					Root:      root.Name,
					Instance:  inst.Name,
					Container: m.Name,
					SelfLoop:  inst.Target == m,
				}
			}
		}

		if err := visitForRecursion(root, inst.Target, extended); err != nil {
			return err
		}
	}

	return nil
}

// checkDriven verifies that every register has a next-cycle source and every
// instance input is driven, across all of modules.
func checkDriven(modules []*ir.Module) error {
	var errs error

	for _, m := range modules {
		for _, reg := range m.Registers() {
			if !reg.IsDriven() {
				errs = multierr.Append(errs, &ir.UndrivenError{Module: m.Name, Register: reg.Name()})
			}
		}

		for _, inst := range m.Instances() {
			for _, in := range inst.Target.Inputs() {
				name := inputName(in)

				if _, ok := inst.DrivenInput(name); !ok {
					errs = multierr.Append(errs, &ir.UndrivenError{
						Module:   m.Name,
						Instance: inst.Name,
						Input:    name,
					})
				}
			}
		}
	}

	return errs
}

func inputName(s ir.Signal) string {
	if in, ok := s.(*ir.Input); ok {
		return in.Name
	}

	return ""
}

// checkMemories verifies that every memory has at least one read port and a
// source for its contents (initial contents or a write port).
func checkMemories(modules []*ir.Module) error {
	var errs error

	for _, m := range modules {
		for _, mem := range m.Memories() {
			if len(mem.Reads) == 0 {
				errs = multierr.Append(errs, &ir.MissingReadPortError{Module: m.Name, Memory: mem.Name})
			}

			if mem.Write == nil && len(mem.InitialContents) == 0 {
				errs = multierr.Append(errs, &ir.MissingSourceError{Module: m.Name, Memory: mem.Name})
			}
		}
	}

	return errs
}

// checkCombinationalLoops verifies that no output's value transitively
// depends on itself through purely combinational signals. Register current
// values and memory read data are treated as cut points: they hold their
// value across the cycle boundary, so a dependency that passes through one
// cannot form a combinational loop. The search crosses instance boundaries by
// substituting each instantiated input with the signal driving it in the
// parent scope.
//
// A loop can close entirely inside an instance boundary, with no declared
// module output anywhere on it: an instance's own output driving back into
// one of its own inputs. Walking only from each module's declared outputs
// would miss that shape, so every instance output is also walked as its own
// root, from the instantiating module's scope.
func checkCombinationalLoops(modules []*ir.Module) error {
	var errs error

	for _, m := range modules {
		for _, out := range m.Outputs() {
			stack := map[string]bool{}
			if err := walk(out.Source, nil, stack, m.Name, out.Name); err != nil {
				errs = multierr.Append(errs, err)
			}
		}

		for _, inst := range m.Instances() {
			for _, o := range inst.Target.Outputs() {
				instSig, err := inst.Output(o.Name)
				if err != nil {
					continue
				}

				stack := map[string]bool{}
				if err := walk(instSig, nil, stack, m.Name, inst.Name+"."+o.Name); err != nil {
					errs = multierr.Append(errs, err)
				}
			}
		}
	}

	return errs
}

func walk(sig ir.Signal, scope []*ir.Instance, onStack map[string]bool, owner, output string) error {
	k := nodeKey(sig, scope)
	if onStack[k] {
		return &ir.CombinationalLoopError{Module: owner, Output: output}
	}

	onStack[k] = true
	defer delete(onStack, k)

	switch s := sig.(type) {
	case *ir.UnOp:
		return walk(s.Source, scope, onStack, owner, output)

	case *ir.BinOp:
		if err := walk(s.Left, scope, onStack, owner, output); err != nil {
			return err
		}

		return walk(s.Right, scope, onStack, owner, output)

	case *ir.Bit:
		return walk(s.Source, scope, onStack, owner, output)

	case *ir.Bits:
		return walk(s.Source, scope, onStack, owner, output)

	case *ir.Repeat:
		return walk(s.Source, scope, onStack, owner, output)

	case *ir.Concat:
		if err := walk(s.High, scope, onStack, owner, output); err != nil {
			return err
		}

		return walk(s.Low, scope, onStack, owner, output)

	case *ir.Mux:
		if err := walk(s.A, scope, onStack, owner, output); err != nil {
			return err
		}

		if err := walk(s.B, scope, onStack, owner, output); err != nil {
			return err
		}

		return walk(s.Sel, scope, onStack, owner, output)

	case *ir.Input:
		if len(scope) == 0 {
			return nil
		}

		inst := scope[len(scope)-1]

		driver, ok := inst.DrivenInput(s.Name)
		if !ok {
			return nil
		}

		return walk(driver, scope[:len(scope)-1], onStack, owner, output)

	case *ir.InstanceOutput:
		for _, o := range s.Instance.Target.Outputs() {
			if o.Name == s.Name {
				extended := make([]*ir.Instance, len(scope)+1)
				copy(extended, scope)
				extended[len(scope)] = s.Instance

				return walk(o.Source, extended, onStack, owner, output)
			}
		}

		return nil

	default:
		// Literal, RegisterValue and memory read data are cut points: they
		// do not carry a combinational dependency forward.
		return nil
	}
}

func nodeKey(sig ir.Signal, scope []*ir.Instance) string {
	k := fmt.Sprintf("%p", sig)
	for _, inst := range scope {
		k += fmt.Sprintf("/%p", inst)
	}

	return k
}
