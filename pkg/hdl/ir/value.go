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
	"fmt"
	"math/big"
)

// MinSignalWidth is the narrowest permitted signal, in bits.
const MinSignalWidth uint = 1

// MaxSignalWidth is the widest permitted signal, in bits.  This bound exists
// so that generated simulator storage always fits within a pair of native
// 64-bit words (see pkg/hdl/runtime/word128).
const MaxSignalWidth uint = 128

// Value is an unsigned integer of up to MaxSignalWidth bits, represented as
// two 64-bit limbs (Lo holds bits [63:0], Hi holds bits [127:64]).  Values
// for widths <= 64 always have Hi == 0.
type Value struct {
	Lo uint64
	Hi uint64
}

// ValueFromUint64 constructs a Value from a native 64-bit unsigned integer.
func ValueFromUint64(v uint64) Value {
	return Value{Lo: v}
}

// ValueFromBigInt constructs a Value from an arbitrary-precision integer.  It
// panics if v is negative or does not fit in MaxSignalWidth bits; callers
// that need a checked conversion should use FitsWidth first.
func ValueFromBigInt(v *big.Int) Value {
	if v.Sign() < 0 {
		panic("ir: cannot construct a Value from a negative big.Int")
	}

	mask := new(big.Int).Lsh(big.NewInt(1), MaxSignalWidth)
	if v.Cmp(mask) >= 0 {
		panic("ir: big.Int does not fit in MaxSignalWidth bits")
	}

	var (
		lo64 = new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
		hi   = new(big.Int).Rsh(v, 64)
		hi64 = new(big.Int).And(hi, new(big.Int).SetUint64(^uint64(0)))
	)

	return Value{Lo: lo64.Uint64(), Hi: hi64.Uint64()}
}

// BigInt returns the arbitrary-precision representation of this value.
func (v Value) BigInt() *big.Int {
	r := new(big.Int).SetUint64(v.Hi)
	r.Lsh(r, 64)
	r.Or(r, new(big.Int).SetUint64(v.Lo))

	return r
}

// FitsWidth reports whether v can be represented using exactly width bits,
// i.e. all bits at or above position width are zero.
func (v Value) FitsWidth(width uint) bool {
	return v.Mask(width) == v
}

// Mask returns v with all bits at or above position width cleared.
func (v Value) Mask(width uint) Value {
	switch {
	case width == 0:
		return Value{}
	case width >= 128:
		return v
	case width >= 64:
		hiBits := width - 64
		return Value{Lo: v.Lo, Hi: v.Hi & (^uint64(0) >> (64 - hiBits))}
	default:
		return Value{Lo: v.Lo & (^uint64(0) >> (64 - width))}
	}
}

// String renders v as a hexadecimal literal.
func (v Value) String() string {
	if v.Hi == 0 {
		return fmt.Sprintf("0x%x", v.Lo)
	}

	return fmt.Sprintf("0x%x%016x", v.Hi, v.Lo)
}
