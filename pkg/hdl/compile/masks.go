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

import "github.com/bits-and-blooms/bitset"

// liveBits returns the set of bit positions [0, width) a value of that
// width actually occupies, as distinct from the always-zero padding bits
// above it once the value is held in a wider native storage class.
func liveBits(width uint) *bitset.BitSet {
	live := bitset.New(width)

	for i := uint(0); i < width; i++ {
		live.Set(i)
	}

	return live
}

// withinLiveBits reports whether the inclusive range [low, high] lies
// entirely within a value's live bits. ir.BitsRange's own
// construction-time checks already guarantee this for any Bits signal that
// reaches the compiler, so a false result here indicates a compiler bug
// rather than a user-facing error; callers are expected to panic on it.
func withinLiveBits(width, high, low uint) bool {
	live := liveBits(width)

	for i := low; i <= high; i++ {
		if !live.Test(i) {
			return false
		}
	}

	return true
}

// LiveMask returns, as a uint64, the bit mask covering a value's live bits:
// the positions [0, width) it actually occupies once held in a wider native
// storage class. Backends that generate arithmetic over a storage class
// wider than a signal's declared width (the simulator emitter's Not and
// modular Add) use this to clear the always-zero padding bits above width,
// built from the same bitset representation withinLiveBits checks against
// rather than a second, independently hand-rolled shift.
func LiveMask(width uint) uint64 {
	live := liveBits(width)

	var mask uint64
	for i := uint(0); i < width; i++ {
		if live.Test(i) {
			mask |= uint64(1) << i
		}
	}

	return mask
}
