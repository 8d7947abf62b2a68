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

import (
	"github.com/sirupsen/logrus"
)

// Context is the arena and registry for one compilation: it owns every
// module, signal, register, instance and memory built against it, and its
// lifetime encloses everything built using it.  Nodes are never freed
// individually; they are reclaimed together when the Context is garbage
// collected.
type Context struct {
	modules *orderedMap[*Module]
	// Logger receives structural diagnostics emitted during validation and
	// compilation (debug-level progress, not user-facing errors).
	Logger *logrus.Logger
}

// NewContext creates a new, empty Context.
func NewContext() *Context {
	return &Context{
		modules: newOrderedMap[*Module](),
		Logger:  logrus.StandardLogger(),
	}
}

// NewModule creates a new Module called name in this Context.  Module names
// must be unique within a Context.
func (c *Context) NewModule(name string) (*Module, error) {
	if c.modules.has(name) {
		return nil, &DuplicateNameError{Kind: "module", Name: name}
	}

	m := newModule(c, name)
	c.modules.put(name, m)

	return m, nil
}

// Module looks up a previously created module by name.
func (c *Context) Module(name string) (*Module, bool) {
	return c.modules.get(name)
}

// Modules returns every module created in this Context, in creation order.
func (c *Context) Modules() []*Module {
	return c.modules.values()
}
