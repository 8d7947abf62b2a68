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

import "testing"

func TestWithinLiveBitsAcceptsInRangeSelection(t *testing.T) {
	if !withinLiveBits(8, 7, 0) {
		t.Error("expected [7:0] to lie within an 8-bit value's live bits")
	}

	if !withinLiveBits(8, 3, 1) {
		t.Error("expected [3:1] to lie within an 8-bit value's live bits")
	}
}

func TestWithinLiveBitsRejectsOutOfRangeSelection(t *testing.T) {
	if withinLiveBits(8, 8, 0) {
		t.Error("expected [8:0] to escape an 8-bit value's live bits")
	}
}

func TestLiveMaskCoversExactlyWidthBits(t *testing.T) {
	if got, want := LiveMask(5), uint64(0x1f); got != want {
		t.Errorf("LiveMask(5) = 0x%x, want 0x%x", got, want)
	}

	if got, want := LiveMask(1), uint64(0x1); got != want {
		t.Errorf("LiveMask(1) = 0x%x, want 0x%x", got, want)
	}

	if got, want := LiveMask(0), uint64(0); got != want {
		t.Errorf("LiveMask(0) = 0x%x, want 0x%x", got, want)
	}
}

func TestLiveBitsHasExactlyWidthBitsSet(t *testing.T) {
	live := liveBits(5)

	for i := uint(0); i < 5; i++ {
		if !live.Test(i) {
			t.Errorf("expected bit %d to be live", i)
		}
	}

	if live.Test(5) {
		t.Error("expected bit 5 to be outside a 5-bit live set")
	}
}
