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

// sameOwner checks that a and b were built from the same context and belong
// to the same module, which is required before they can be composed.
func sameOwner(op string, a, b Signal) error {
	if a.Context() != b.Context() {
		return &CrossContextError{Operation: op}
	}

	if a.Module() != b.Module() {
		return &CrossModuleError{Operation: op}
	}

	return nil
}

// NotOp returns a Signal representing the bitwise complement of s.
func NotOp(s Signal) Signal {
	return &UnOp{base: base{ctx: s.Context(), mod: s.Module()}, Op: Not, Source: s}
}

// BinaryOpSignal combines lhs and rhs with the given operator.  lhs and rhs
// must belong to the same context, the same module, and (for every operator
// defined here) the same bit width.
func BinaryOpSignal(op BinaryOp, lhs, rhs Signal) (Signal, error) {
	if err := sameOwner(op.String(), lhs, rhs); err != nil {
		return nil, err
	}

	if lhs.Width() != rhs.Width() {
		return nil, &WidthMismatchError{
			Context:    fmt.Sprintf("binary operator %q", op),
			LeftWidth:  lhs.Width(),
			RightWidth: rhs.Width(),
		}
	}

	return &BinOp{base: base{ctx: lhs.Context(), mod: lhs.Module()}, Op: op, Left: lhs, Right: rhs}, nil
}

// BitAt returns a Signal representing the single bit of s at index, where
// index 0 is s's least-significant bit.
func BitAt(s Signal, index uint) (Signal, error) {
	if index >= s.Width() {
		return nil, &IndexOutOfRangeError{Message: fmt.Sprintf(
			"bit index %d is out of range for a signal with a width of %d bit(s) (valid range [0, %d])",
			index, s.Width(), s.Width()-1)}
	}

	return &Bit{base: base{ctx: s.Context(), mod: s.Module()}, Source: s, Index: index}, nil
}

// BitsRange returns a Signal representing the inclusive bit range [low, high]
// of s, low being the least-significant bit of the result.
func BitsRange(s Signal, high, low uint) (Signal, error) {
	if low >= s.Width() || high >= s.Width() {
		return nil, &IndexOutOfRangeError{Message: fmt.Sprintf(
			"bit range [%d, %d] is out of range for a signal with a width of %d bit(s) (valid range [0, %d])",
			low, high, s.Width(), s.Width()-1)}
	}

	if low > high {
		return nil, &IndexOutOfRangeError{Message: fmt.Sprintf(
			"bit range lower bound %d exceeds upper bound %d", low, high)}
	}

	return &Bits{base: base{ctx: s.Context(), mod: s.Module()}, Source: s, High: high, Low: low}, nil
}

// RepeatSignal returns a Signal representing s tiled count times.
func RepeatSignal(s Signal, count uint) (Signal, error) {
	width := s.Width() * count
	if err := checkWidth(fmt.Sprintf("repeating a %d-bit signal %d time(s)", s.Width(), count), width); err != nil {
		return nil, err
	}

	return &Repeat{base: base{ctx: s.Context(), mod: s.Module()}, Source: s, Count: count}, nil
}

// ConcatSignals returns a Signal representing hi concatenated with lo, hi
// occupying the most-significant bits of the result.
func ConcatSignals(hi, lo Signal) (Signal, error) {
	if err := sameOwner("concatenate signals", hi, lo); err != nil {
		return nil, err
	}

	width := hi.Width() + lo.Width()
	if err := checkWidth("concatenating signals", width); err != nil {
		return nil, err
	}

	return &Concat{base: base{ctx: hi.Context(), mod: hi.Module()}, High: hi, Low: lo}, nil
}

func checkWidth(context string, width uint) error {
	if width < MinSignalWidth || width > MaxSignalWidth {
		return &WidthOutOfRangeError{Context: context, Width: width}
	}

	return nil
}
