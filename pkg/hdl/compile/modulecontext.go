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

// Package compile lowers a validated module graph into an ordered sequence
// of named assignments (design component F), using a tree of ModuleContexts
// (component E) to give every signal a name that is unique across instance
// boundaries when a hierarchy is flattened for simulation.
package compile

import "github.com/go-hdl/hdl/pkg/hdl/ir"

// ModuleContext identifies one position in an instance hierarchy: the root
// context names the top-level module itself, and each child names one
// instance beneath some ancestor context. Children are memoized by instance
// identity, so asking for the same instance's context twice returns the same
// *ModuleContext, which is what makes it usable as half of a compiler cache
// key.
type ModuleContext struct {
	Module   *ir.Module
	Instance *ir.Instance
	Parent   *ModuleContext

	children map[*ir.Instance]*ModuleContext
}

// NewRootContext creates the context for m considered as a top-level module.
func NewRootContext(m *ir.Module) *ModuleContext {
	return &ModuleContext{Module: m, children: map[*ir.Instance]*ModuleContext{}}
}

// Child returns the (memoized) context for inst, instantiated somewhere
// beneath c. inst.Target must be the module that child context describes.
func (c *ModuleContext) Child(inst *ir.Instance) *ModuleContext {
	if child, ok := c.children[inst]; ok {
		return child
	}

	child := &ModuleContext{
		Module:   inst.Target,
		Instance: inst,
		Parent:   c,
		children: map[*ir.Instance]*ModuleContext{},
	}
	c.children[inst] = child

	return child
}

// instancePath returns the chain of instance names from just below the root
// down to and including this context, or nil at the root.
func (c *ModuleContext) instancePath() []string {
	if c.Parent == nil {
		return nil
	}

	return append(c.Parent.instancePath(), c.Instance.Name)
}

// Mangle builds a flat, hierarchy-qualified identifier for a local name of
// the given kind ("mem", "mem_<name>_read<i>", ...) belonging to this
// context's module. At the root it degrades to the bare local name, since a
// root-level port or memory needs no disambiguation there. Registers are not
// named through Mangle at all: they always take the unconditional
// "__reg_<name>_<ordinal>" form (see compiler.go's registerValueRef), which
// the ground-truth generator applies regardless of hierarchy depth.
func (c *ModuleContext) Mangle(kind, local string) string {
	path := c.instancePath()
	if len(path) == 0 {
		return local
	}

	prefix := "__"
	for _, p := range path {
		prefix += p + "_"
	}

	return prefix + kind + "_" + local
}
