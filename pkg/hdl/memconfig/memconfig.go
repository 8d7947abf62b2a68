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

// Package memconfig loads memory initial-contents files: a JSON document
// mapping memory names to arrays of words, applied to the matching
// ir.Memory declarations of a module via SetInitialContents.
//
// Words are written as JSON strings rather than numbers because a memory's
// data width can reach ir.MaxSignalWidth (128 bits), well beyond what a
// JSON number safely round-trips through float64. A string is parsed as
// decimal, or as hexadecimal when prefixed with "0x"/"0X".
package memconfig

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/go-hdl/hdl/pkg/hdl/ir"
)

// File is the parsed form of a memory initial-contents document: a mapping
// from memory name to its power-on word values, in address order.
type File map[string][]string

// Parse decodes a memory initial-contents document.
func Parse(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("memconfig: %w", err)
	}

	return f, nil
}

// Apply loads the contents of f into the memories of m, matching by name.
// A memory named in f that does not exist on m is an error; a memory on m
// with no entry in f is left with its existing (if any) initial contents
// untouched. Values that do not fit the target memory's data width, or that
// cannot be parsed, are reported with the offending memory and index.
func Apply(m *ir.Module, f File) error {
	for name, words := range f {
		mem := findMemory(m, name)
		if mem == nil {
			return fmt.Errorf("memconfig: module %q has no memory named %q", m.Name, name)
		}

		values, err := parseWords(name, words, mem.DataWidth)
		if err != nil {
			return err
		}

		if err := mem.SetInitialContents(values); err != nil {
			return fmt.Errorf("memconfig: memory %q: %w", name, err)
		}
	}

	return nil
}

// LoadAndApply is the common-case entry point: parse data as a memory
// initial-contents document and apply it to m.
func LoadAndApply(m *ir.Module, data []byte) error {
	f, err := Parse(data)
	if err != nil {
		return err
	}

	return Apply(m, f)
}

func findMemory(m *ir.Module, name string) *ir.Memory {
	for _, mem := range m.Memories() {
		if mem.Name == name {
			return mem
		}
	}

	return nil
}

func parseWords(memName string, words []string, width uint) ([]ir.Value, error) {
	values := make([]ir.Value, len(words))

	for i, w := range words {
		v, err := parseWord(w)
		if err != nil {
			return nil, fmt.Errorf("memconfig: memory %q, word %d: %w", memName, i, err)
		}

		if !v.FitsWidth(width) {
			return nil, fmt.Errorf("memconfig: memory %q, word %d: value %s does not fit in %d bits",
				memName, i, v, width)
		}

		values[i] = v
	}

	return values, nil
}

func parseWord(w string) (ir.Value, error) {
	base := 10

	if rest, ok := strings.CutPrefix(w, "0x"); ok {
		w, base = rest, 16
	} else if rest, ok := strings.CutPrefix(w, "0X"); ok {
		w, base = rest, 16
	}

	n, ok := new(big.Int).SetString(w, base)
	if !ok {
		return ir.Value{}, fmt.Errorf("malformed integer literal %q", w)
	}

	if n.Sign() < 0 {
		return ir.Value{}, fmt.Errorf("negative value %q", w)
	}

	if n.BitLen() > int(ir.MaxSignalWidth) {
		return ir.Value{}, fmt.Errorf("value %q exceeds %d bits", w, ir.MaxSignalWidth)
	}

	return ir.ValueFromBigInt(n), nil
}
