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

// Register is a handle onto an edge-triggered state element.  Its Value is a
// Signal of variant *RegisterValue; its next-cycle source is recorded via
// DriveNextWith, which may be called at most once.
type Register struct {
	module *Module
	value  *RegisterValue
}

// Name returns the register's declared name.
func (r *Register) Name() string { return r.value.Name }

// Module returns the module this register belongs to.
func (r *Register) Module() *Module { return r.module }

// Value returns the Signal representing this register's current value.
func (r *Register) Value() Signal { return r.value }

// Width returns this register's bit width.
func (r *Register) Width() uint { return r.value.width }

// IsDriven reports whether DriveNextWith has been called.
func (r *Register) IsDriven() bool { return r.value.Next != nil }

// DriveNextWith records n as this register's next-cycle source.  n must
// belong to the same context and module as the register, and must share its
// bit width.  Calling DriveNextWith a second time is an error.
func (r *Register) DriveNextWith(n Signal) error {
	if r.value.Next != nil {
		return &AlreadyDrivenError{Register: r.value.Name, Module: r.module.Name}
	}

	if err := sameOwner("drive register next value", r.value, n); err != nil {
		return err
	}

	if n.Width() != r.value.width {
		return &WidthMismatchError{
			Context:    "register next-cycle source",
			LeftWidth:  r.value.width,
			RightWidth: n.Width(),
		}
	}

	r.value.Next = n

	return nil
}
