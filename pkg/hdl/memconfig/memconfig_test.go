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
package memconfig

import (
	"strings"
	"testing"

	"github.com/go-hdl/hdl/pkg/hdl/ir"
)

func newModuleWithMemory(t *testing.T, name string, addrWidth, dataWidth uint) (*ir.Module, *ir.Memory) {
	t.Helper()

	c := ir.NewContext()

	m, err := c.NewModule("m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mem, err := m.NewMemory(name, addrWidth, dataWidth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return m, mem
}

func TestLoadAndApplyDecimalAndHex(t *testing.T) {
	m, mem := newModuleWithMemory(t, "ram", 2, 8)

	data := []byte(`{"ram": ["0", "0x2a", "255", "0XFF"]}`)
	if err := LoadAndApply(m, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []uint64{0, 0x2a, 255, 0xff}
	if len(mem.InitialContents) != len(want) {
		t.Fatalf("expected %d words, got %d", len(want), len(mem.InitialContents))
	}

	for i, w := range want {
		if got := mem.InitialContents[i].Lo; got != w {
			t.Errorf("word %d: expected %#x, got %#x", i, w, got)
		}
	}
}

func TestLoadAndApplyUnknownMemory(t *testing.T) {
	m, _ := newModuleWithMemory(t, "ram", 2, 8)

	err := LoadAndApply(m, []byte(`{"rom": ["0"]}`))
	if err == nil {
		t.Fatal("expected an error for a memory not present on the module")
	}

	if !strings.Contains(err.Error(), "rom") {
		t.Errorf("expected error to name the missing memory, got: %v", err)
	}
}

func TestLoadAndApplyValueTooWide(t *testing.T) {
	m, _ := newModuleWithMemory(t, "ram", 2, 8)

	err := LoadAndApply(m, []byte(`{"ram": ["256"]}`))
	if err == nil {
		t.Fatal("expected an error for a value that does not fit the data width")
	}
}

func TestLoadAndApplyMalformedLiteral(t *testing.T) {
	m, _ := newModuleWithMemory(t, "ram", 2, 8)

	err := LoadAndApply(m, []byte(`{"ram": ["not-a-number"]}`))
	if err == nil {
		t.Fatal("expected an error for a malformed literal")
	}
}

func TestLoadAndApplyNegativeValue(t *testing.T) {
	m, _ := newModuleWithMemory(t, "ram", 2, 8)

	err := LoadAndApply(m, []byte(`{"ram": ["-1"]}`))
	if err == nil {
		t.Fatal("expected an error for a negative value")
	}
}

func TestLoadAndApplyMalformedJSON(t *testing.T) {
	m, _ := newModuleWithMemory(t, "ram", 2, 8)

	if err := LoadAndApply(m, []byte(`{not json`)); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
