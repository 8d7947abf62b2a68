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

import "testing"

func TestUniqueModuleNames(t *testing.T) {
	c := NewContext()

	if _, err := c.NewModule("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.NewModule("b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.NewModule("a"); err == nil {
		t.Fatal("expected a DuplicateNameError")
	} else if _, ok := err.(*DuplicateNameError); !ok {
		t.Fatalf("expected *DuplicateNameError, got %T", err)
	}
}

func TestLitWidthBounds(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")

	if _, err := m.Lit(Value{}, 0); err == nil {
		t.Fatal("expected WidthOutOfRangeError for width 0")
	}

	if _, err := m.Lit(Value{}, 129); err == nil {
		t.Fatal("expected WidthOutOfRangeError for width 129")
	}
}

func TestLitValueTooWide(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")

	if _, err := m.Lit(ValueFromUint64(0x100), 8); err == nil {
		t.Fatal("expected ValueTooWideError")
	}

	if _, err := m.Lit(ValueFromUint64(0xff), 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInputDuplicateName(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")

	if _, err := m.NewInput("i", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.NewInput("i", 1); err == nil {
		t.Fatal("expected DuplicateNameError")
	}
}

func TestOutputFromOtherModuleErrors(t *testing.T) {
	c := NewContext()
	m1, _ := c.NewModule("a")
	m2, _ := c.NewModule("b")

	i := m2.High()

	if err := m1.NewOutput("a", i); err == nil {
		t.Fatal("expected CrossModuleError")
	}
}

func TestBitWidthDerivation(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("m")

	lit, _ := m.Lit(ValueFromUint64(42), 7)
	if lit.Width() != 7 {
		t.Errorf("expected width 7, got %d", lit.Width())
	}

	in, _ := m.NewInput("i", 27)
	if in.Width() != 27 {
		t.Errorf("expected width 27, got %d", in.Width())
	}

	reg, _ := m.NewRegister("r", 46, nil)
	if reg.Value().Width() != 46 {
		t.Errorf("expected width 46, got %d", reg.Value().Width())
	}

	notLow := NotOp(m.Low())
	if notLow.Width() != 1 {
		t.Errorf("expected width 1, got %d", notLow.Width())
	}

	orOp, err := BinaryOpSignal(BitOr, m.High(), m.Low())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if orOp.Width() != 1 {
		t.Errorf("expected width 1, got %d", orOp.Width())
	}

	wide, _ := m.Lit(ValueFromUint64(12), 100)
	bit, err := BitAt(wide, 30)
	if err != nil || bit.Width() != 1 {
		t.Errorf("bit() width should be 1, got %d (err=%v)", bit.Width(), err)
	}

	wide2, _ := m.Lit(ValueFromUint64(1), 99)
	bits, err := BitsRange(wide2, 37, 29)
	if err != nil || bits.Width() != 9 {
		t.Errorf("bits(37,29) width should be 9, got %d (err=%v)", bits.Width(), err)
	}

	rep, err := RepeatSignal(m.High(), 35)
	if err != nil || rep.Width() != 35 {
		t.Errorf("repeat(35) width should be 35, got %d (err=%v)", rep.Width(), err)
	}

	narrow, _ := m.Lit(ValueFromUint64(1), 20)
	cc, err := ConcatSignals(narrow, m.High())
	if err != nil || cc.Width() != 21 {
		t.Errorf("concat width should be 21, got %d (err=%v)", cc.Width(), err)
	}

	a4, _ := m.Lit(ValueFromUint64(5), 4)
	b4, _ := m.Lit(ValueFromUint64(6), 4)
	mux, err := m.NewMux(a4, b4, m.Low())
	if err != nil || mux.Width() != 4 {
		t.Errorf("mux width should be 4, got %d (err=%v)", mux.Width(), err)
	}
}

func TestBitIndexOutOfRange(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")
	in, _ := m.NewInput("i", 3)

	for _, idx := range []uint{0, 1, 2} {
		if _, err := BitAt(in, idx); err != nil {
			t.Fatalf("unexpected error at index %d: %v", idx, err)
		}
	}

	if _, err := BitAt(in, 3); err == nil {
		t.Fatal("expected IndexOutOfRangeError")
	}
}

func TestBitsRangeErrors(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")
	in, _ := m.NewInput("i", 3)

	if _, err := BitsRange(in, 4, 3); err == nil {
		t.Fatal("expected error for out-of-range high bound")
	}

	if _, err := BitsRange(in, 3, 2); err == nil {
		t.Fatal("expected error for out-of-range high bound")
	}

	if _, err := BitsRange(in, 0, 1); err == nil {
		t.Fatal("expected error for low > high")
	}
}

func TestRepeatBounds(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")
	in, _ := m.NewInput("i", 1)

	if _, err := RepeatSignal(in, 0); err == nil {
		t.Fatal("expected WidthOutOfRangeError for repeat count 0")
	}

	if _, err := RepeatSignal(in, 129); err == nil {
		t.Fatal("expected WidthOutOfRangeError for repeat count 129")
	}
}

func TestConcatBounds(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")
	i1, _ := m.NewInput("i1", 128)
	i2, _ := m.NewInput("i2", 1)

	if _, err := ConcatSignals(i1, i2); err == nil {
		t.Fatal("expected WidthOutOfRangeError")
	}
}

func TestBinOpCrossModuleAndWidthErrors(t *testing.T) {
	c := NewContext()
	m1, _ := c.NewModule("a")
	i1, _ := m1.NewInput("a", 1)

	m2, _ := c.NewModule("b")
	i2 := m2.High()

	if _, err := BinaryOpSignal(BitAnd, i1, i2); err == nil {
		t.Fatal("expected CrossModuleError")
	}

	j1, _ := m1.NewInput("j1", 3)
	j2, _ := m1.NewInput("j2", 5)

	if _, err := BinaryOpSignal(BitAnd, j1, j2); err == nil {
		t.Fatal("expected WidthMismatchError")
	}
}

func TestRegisterDriveNextOnceOnly(t *testing.T) {
	c := NewContext()
	m, _ := c.NewModule("a")
	reg, _ := m.NewRegister("r", 4, nil)

	if err := reg.DriveNextWith(m.Low()); err == nil {
		t.Fatal("expected WidthMismatchError (1-bit source into 4-bit register)")
	}

	n, _ := m.Lit(ValueFromUint64(0), 4)
	if err := reg.DriveNextWith(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := reg.DriveNextWith(n); err == nil {
		t.Fatal("expected AlreadyDrivenError")
	}
}

func TestValueMaskAndFitsWidth(t *testing.T) {
	v := ValueFromUint64(0xFFFFFFFF)
	if v.FitsWidth(27) {
		t.Fatal("0xFFFFFFFF should not fit in 27 bits")
	}

	masked := v.Mask(27)
	if masked.Lo != 0x07FFFFFF {
		t.Errorf("expected 0x07FFFFFF, got 0x%x", masked.Lo)
	}
}

func TestValueBigIntRoundTrip(t *testing.T) {
	big128 := ValueFromUint64(1)
	v := Value{Lo: 0xFFFFFFFFFFFFFFFF, Hi: 0x0FFFFFFFFFFFFFFF}

	if got := ValueFromBigInt(v.BigInt()); got != v {
		t.Errorf("round trip mismatch: got %+v", got)
	}

	_ = big128
}
