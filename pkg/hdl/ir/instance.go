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

// Instance is a use-site of one module (Target) inside another (Parent).
type Instance struct {
	Parent *Module
	Name   string
	Target *Module

	driven  map[string]Signal
	outputs map[string]*InstanceOutput
}

func newInstance(parent *Module, name string, target *Module) *Instance {
	return &Instance{
		Parent:  parent,
		Name:    name,
		Target:  target,
		driven:  make(map[string]Signal),
		outputs: make(map[string]*InstanceOutput),
	}
}

// DriveInput binds the instantiated module's input called name to source,
// which must belong to the instantiating (parent) module.
func (i *Instance) DriveInput(name string, source Signal) error {
	if _, ok := i.Target.Input(name); !ok {
		return fmt.Errorf("ir: module %q has no input named %q", i.Target.Name, name)
	}

	if source.Module() != i.Parent {
		return &CrossModuleError{Operation: fmt.Sprintf("drive instance input %q", name)}
	}

	in, _ := i.Target.Input(name)
	if source.Width() != in.Width() {
		return &WidthMismatchError{
			Context:    fmt.Sprintf("instance %q input %q", i.Name, name),
			LeftWidth:  in.Width(),
			RightWidth: source.Width(),
		}
	}

	i.driven[name] = source

	return nil
}

// DrivenInput returns the signal bound to the instantiated module's input
// called name, if DriveInput has been called for it.
func (i *Instance) DrivenInput(name string) (Signal, bool) {
	s, ok := i.driven[name]
	return s, ok
}

// Output returns the Signal representing the instantiated module's output
// called name, as observed from the instantiating module.  Repeated calls
// for the same name return the same Signal.
func (i *Instance) Output(name string) (Signal, error) {
	if out, ok := i.outputs[name]; ok {
		return out, nil
	}

	target, ok := find(i.Target.Outputs(), name)
	if !ok {
		return nil, fmt.Errorf("ir: module %q has no output named %q", i.Target.Name, name)
	}

	out := &InstanceOutput{
		base:     base{ctx: i.Parent.ctx, mod: i.Parent},
		Instance: i,
		Name:     name,
		width:    target.Source.Width(),
	}
	i.outputs[name] = out

	return out, nil
}

func find(outputs []*Output, name string) (*Output, bool) {
	for _, o := range outputs {
		if o.Name == name {
			return o, true
		}
	}

	return nil, false
}
