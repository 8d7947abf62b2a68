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

// Package ir implements the module graph: the arena-owned context, the
// tagged signal IR, and the per-module construction-time checks described
// for components A-C of the design.
package ir

import "fmt"

// DuplicateNameError occurs when two items of the same kind (module, input,
// output, register, instance or memory) share a name within the same scope.
type DuplicateNameError struct {
	// Kind names the category of item, e.g. "module", "input".
	Kind string
	// Scope names the enclosing module (empty for module-level duplicates).
	Scope string
	// Name is the colliding name.
	Name string
}

func (e *DuplicateNameError) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("a %s named %q already exists in this context", e.Kind, e.Name)
	}

	return fmt.Sprintf("module %q already has a %s named %q", e.Scope, e.Kind, e.Name)
}

// WidthOutOfRangeError occurs when a declared or derived width falls outside
// [MinSignalWidth, MaxSignalWidth].
type WidthOutOfRangeError struct {
	Context string
	Width   uint
}

func (e *WidthOutOfRangeError) Error() string {
	return fmt.Sprintf("%s has a width of %d bit(s), which is outside the permitted range [%d, %d]",
		e.Context, e.Width, MinSignalWidth, MaxSignalWidth)
}

// ValueTooWideError occurs when a literal's numeric value does not fit
// within its declared width.
type ValueTooWideError struct {
	Value Value
	Width uint
}

func (e *ValueTooWideError) Error() string {
	return fmt.Sprintf("literal value %s does not fit in %d bit(s)", e.Value, e.Width)
}

// WidthMismatchError occurs when two operands are required to share a width
// but do not.
type WidthMismatchError struct {
	Context    string
	LeftWidth  uint
	RightWidth uint
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("%s: operand widths disagree (%d and %d bit(s), respectively)",
		e.Context, e.LeftWidth, e.RightWidth)
}

// IndexOutOfRangeError occurs when a bit or bit-range index falls outside a
// source signal's width, or a range's low bound exceeds its high bound.
type IndexOutOfRangeError struct {
	Message string
}

func (e *IndexOutOfRangeError) Error() string {
	return e.Message
}

// CrossModuleError occurs when signals belonging to different modules are
// composed together.
type CrossModuleError struct {
	Operation string
}

func (e *CrossModuleError) Error() string {
	return fmt.Sprintf("cannot %s: signals belong to different modules", e.Operation)
}

// CrossContextError occurs when signals belonging to different contexts are
// composed together.
type CrossContextError struct {
	Operation string
}

func (e *CrossContextError) Error() string {
	return fmt.Sprintf("cannot %s: signals belong to different contexts", e.Operation)
}

// AlreadyDrivenError occurs when a register's next-cycle source is set more
// than once.
type AlreadyDrivenError struct {
	Register string
	Module   string
}

func (e *AlreadyDrivenError) Error() string {
	return fmt.Sprintf("register %q in module %q is already driven", e.Register, e.Module)
}

// RecursiveModuleError occurs when the instance graph rooted at a module
// contains a cycle.
type RecursiveModuleError struct {
	// Root is the module emission was requested for.
	Root string
	// Instance is the name of the instance that closes the cycle.
	Instance string
	// Container is the module in which Instance appears; equal to Root for
	// a direct self-instantiation.
	Container string
	// SelfLoop is true when a module instantiates itself directly.
	SelfLoop bool
}

func (e *RecursiveModuleError) Error() string {
	if e.SelfLoop {
		return fmt.Sprintf(
			"cannot generate code for module %q because it has a recursive definition formed by an instance of itself called %q",
			e.Root, e.Instance)
	}

	return fmt.Sprintf(
		"cannot generate code for module %q because it has a recursive definition formed by an instance of itself called %q in module %q",
		e.Root, e.Instance, e.Container)
}

// UndrivenError occurs when a register has no next-cycle source, or an
// instance's input is not driven.
type UndrivenError struct {
	// Module containing the fault.
	Module string
	// Register is set when a register lacks a next-cycle source.
	Register string
	// Instance/Input are set when an instance input is not driven.
	Instance string
	Input    string
}

func (e *UndrivenError) Error() string {
	if e.Register != "" {
		return fmt.Sprintf(
			"cannot generate code for module %q because module %q contains a register called %q which is not driven",
			e.Module, e.Module, e.Register)
	}

	return fmt.Sprintf(
		"cannot generate code for module %q because module %q contains an instance called %q whose input %q is not driven",
		e.Module, e.Module, e.Instance, e.Input)
}

// MissingReadPortError occurs when a memory has no read ports.
type MissingReadPortError struct {
	Module string
	Memory string
}

func (e *MissingReadPortError) Error() string {
	return fmt.Sprintf(
		"cannot generate code for module %q because module %q contains a memory called %q which doesn't have any read ports",
		e.Module, e.Module, e.Memory)
}

// MissingSourceError occurs when a memory has neither initial contents nor a
// write port.
type MissingSourceError struct {
	Module string
	Memory string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf(
		"cannot generate code for module %q because module %q contains a memory called %q which doesn't have initial contents or a write port specified. At least one of the two is required",
		e.Module, e.Module, e.Memory)
}

// CombinationalLoopError occurs when a dependency cycle between purely
// combinational signals crosses an instance boundary.
type CombinationalLoopError struct {
	Module string
	Output string
}

func (e *CombinationalLoopError) Error() string {
	return fmt.Sprintf(
		"cannot generate code for module %q because module %q contains an output called %q which forms a combinational loop with itself",
		e.Module, e.Module, e.Output)
}
