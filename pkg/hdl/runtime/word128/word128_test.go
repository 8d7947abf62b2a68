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
package word128

import "testing"

func TestAddWrapsAtWidth(t *testing.T) {
	a := FromUint64(0xFF)
	b := FromUint64(1)

	got := Add(a, b, 8)
	if got.Lo != 0 {
		t.Errorf("expected wraparound to 0, got %#x", got.Lo)
	}
}

func TestAddCarriesAcrossLimbBoundary(t *testing.T) {
	a := Word{Lo: 0xFFFFFFFFFFFFFFFF, Hi: 0}
	b := FromUint64(1)

	got := Add(a, b, 128)
	if got.Lo != 0 || got.Hi != 1 {
		t.Errorf("expected {Lo:0, Hi:1}, got %+v", got)
	}
}

func TestMaskClearsHighBits(t *testing.T) {
	w := Word{Lo: 0xFFFFFFFFFFFFFFFF, Hi: 0xFFFFFFFFFFFFFFFF}
	got := w.Mask(70)

	if got.Hi != 0x3F {
		t.Errorf("expected Hi=0x3f, got %#x", got.Hi)
	}

	if got.Lo != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("expected Lo unchanged, got %#x", got.Lo)
	}
}

func TestShlAcrossLimbBoundary(t *testing.T) {
	w := FromUint64(1)
	got := Shl(w, 64, 128)

	if got.Lo != 0 || got.Hi != 1 {
		t.Errorf("expected {0,1}, got %+v", got)
	}
}

func TestShrAcrossLimbBoundary(t *testing.T) {
	w := Word{Lo: 0, Hi: 1}
	got := Shr(w, 64)

	if got.Lo != 1 || got.Hi != 0 {
		t.Errorf("expected {1,0}, got %+v", got)
	}
}

func TestBitsExtractsRange(t *testing.T) {
	w := FromUint64(0b1011010)
	got := Bits(w, 5, 2)

	if got.Lo != 0b0110 {
		t.Errorf("expected 0b0110, got %b", got.Lo)
	}
}

func TestUnsignedComparison(t *testing.T) {
	a := FromUint64(200)
	b := FromUint64(10)

	if !Gt(a, b, 8) {
		t.Error("expected 200 > 10 as 8-bit unsigned values")
	}
}

func TestSignedComparisonNegativeLessThanPositive(t *testing.T) {
	// As 8-bit two's complement, 0xFF is -1 and 0x01 is 1.
	neg := FromUint64(0xFF)
	pos := FromUint64(0x01)

	if !LtS(neg, pos, 8) {
		t.Error("expected -1 <s 1")
	}

	if LtS(pos, neg, 8) {
		t.Error("expected 1 not <s -1")
	}
}

func TestEqRespectsWidth(t *testing.T) {
	a := Word{Lo: 0x1FF}
	b := Word{Lo: 0x0FF}

	if Eq(a, b, 9) {
		t.Error("expected inequality at width 9")
	}

	if !Eq(a, b, 8) {
		t.Error("expected equality once masked to width 8")
	}
}
