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

// Package word128 is imported by generated simulator code, never by this
// module itself: it gives a Go program built from an emitted simulator the
// 128-bit-wide arithmetic its wider signals need, since Go has no native
// integer type past 64 bits. It intentionally depends on nothing but the
// standard library, since every generated simulator that has a 128-bit
// storage-class signal imports it.
package word128

import "fmt"

// Word is an unsigned integer of up to 128 bits, held as two 64-bit limbs.
type Word struct {
	Lo uint64
	Hi uint64
}

// FromUint64 widens a native unsigned integer to a Word.
func FromUint64(v uint64) Word { return Word{Lo: v} }

// Uint64 narrows w to its low 64 bits, discarding Hi.
func (w Word) Uint64() uint64 { return w.Lo }

// Mask clears every bit at or above position width.
func (w Word) Mask(width uint) Word {
	switch {
	case width == 0:
		return Word{}
	case width >= 128:
		return w
	case width >= 64:
		hiBits := width - 64
		return Word{Lo: w.Lo, Hi: w.Hi & (^uint64(0) >> (64 - hiBits))}
	default:
		return Word{Lo: w.Lo & (^uint64(0) >> (64 - width))}
	}
}

// Add returns a+b, modulo 2^width (the sum wraps silently, matching the
// bit-vector add operator's semantics).
func Add(a, b Word, width uint) Word {
	lo, carry := bits64Add(a.Lo, b.Lo, 0)
	hi, _ := bits64Add(a.Hi, b.Hi, carry)

	return Word{Lo: lo, Hi: hi}.Mask(width)
}

func bits64Add(x, y, carryIn uint64) (sum, carryOut uint64) {
	sum = x + y + carryIn
	if sum < x || (carryIn == 1 && sum == x) {
		carryOut = 1
	}

	return sum, carryOut
}

// Not returns the bitwise complement of w, masked to width.
func Not(w Word, width uint) Word {
	return Word{Lo: ^w.Lo, Hi: ^w.Hi}.Mask(width)
}

// And returns the bitwise AND of a and b.
func And(a, b Word) Word { return Word{Lo: a.Lo & b.Lo, Hi: a.Hi & b.Hi} }

// Or returns the bitwise OR of a and b.
func Or(a, b Word) Word { return Word{Lo: a.Lo | b.Lo, Hi: a.Hi | b.Hi} }

// Xor returns the bitwise XOR of a and b.
func Xor(a, b Word) Word { return Word{Lo: a.Lo ^ b.Lo, Hi: a.Hi ^ b.Hi} }

// Shl shifts w left by n bits, masked to width.
func Shl(w Word, n, width uint) Word {
	if n == 0 {
		return w.Mask(width)
	}

	if n >= 128 {
		return Word{}
	}

	if n >= 64 {
		return Word{Lo: 0, Hi: w.Lo << (n - 64)}.Mask(width)
	}

	return Word{
		Lo: w.Lo << n,
		Hi: (w.Hi << n) | (w.Lo >> (64 - n)),
	}.Mask(width)
}

// Shr shifts w right by n bits (logical, zero-filling).
func Shr(w Word, n uint) Word {
	if n == 0 {
		return w
	}

	if n >= 128 {
		return Word{}
	}

	if n >= 64 {
		return Word{Lo: w.Hi >> (n - 64), Hi: 0}
	}

	return Word{
		Lo: (w.Lo >> n) | (w.Hi << (64 - n)),
		Hi: w.Hi >> n,
	}
}

// Bits extracts the inclusive [low, high] bit range of w as a right-aligned
// result.
func Bits(w Word, high, low uint) Word {
	return Shr(w, low).Mask(high - low + 1)
}

// Bit extracts a single bit of w as a 0/1 Word.
func Bit(w Word, index uint) Word {
	return Shr(w, index).Mask(1)
}

// Eq reports whether a and b, masked to width, are equal.
func Eq(a, b Word, width uint) bool { return a.Mask(width) == b.Mask(width) }

// Ne is the negation of Eq.
func Ne(a, b Word, width uint) bool { return !Eq(a, b, width) }

// Lt reports whether a < b as width-bit unsigned values.
func Lt(a, b Word, width uint) bool {
	a, b = a.Mask(width), b.Mask(width)
	if a.Hi != b.Hi {
		return a.Hi < b.Hi
	}

	return a.Lo < b.Lo
}

// Le reports whether a <= b as width-bit unsigned values.
func Le(a, b Word, width uint) bool { return !Lt(b, a, width) }

// Gt reports whether a > b as width-bit unsigned values.
func Gt(a, b Word, width uint) bool { return Lt(b, a, width) }

// Ge reports whether a >= b as width-bit unsigned values.
func Ge(a, b Word, width uint) bool { return !Lt(a, b, width) }

// signExtend replicates bit (width-1) upward, yielding the two's-complement
// interpretation of a width-bit value in a full 128-bit Word.
func signExtend(w Word, width uint) Word {
	w = w.Mask(width)
	if width == 0 || width >= 128 {
		return w
	}

	if Bit(w, width-1).Lo == 0 {
		return w
	}

	ones := Not(Word{}, 128)

	return Or(w, Shl(ones, width, 128))
}

// LtS reports whether a < b, interpreting both as two's-complement signed
// values of the given width.
func LtS(a, b Word, width uint) bool {
	sa, sb := signExtend(a, width), signExtend(b, width)
	// Flip the sign bit of each 128-bit-wide extension so unsigned order
	// matches signed order, then compare unsigned.
	flip := Word{Hi: 1 << 63}
	return Lt(Xor(sa, flip), Xor(sb, flip), 128)
}

// LeS reports whether a <= b under signed, width-bit comparison.
func LeS(a, b Word, width uint) bool { return !LtS(b, a, width) }

// GtS reports whether a > b under signed, width-bit comparison.
func GtS(a, b Word, width uint) bool { return LtS(b, a, width) }

// GeS reports whether a >= b under signed, width-bit comparison.
func GeS(a, b Word, width uint) bool { return !LtS(a, b, width) }

// String renders w as a hexadecimal literal.
func (w Word) String() string {
	if w.Hi == 0 {
		return fmt.Sprintf("0x%x", w.Lo)
	}

	return fmt.Sprintf("0x%x%016x", w.Hi, w.Lo)
}
