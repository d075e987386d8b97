// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package xmlconverter

import (
	"sort"

	"go4.org/bytereplacer"
)

// An EscapeTable maps characters to the literal strings that replace them
// in converted text.
type EscapeTable map[rune]string

// HTMLEscapes returns a new table that escapes
// the characters with special meaning in HTML text.
func HTMLEscapes() EscapeTable {
	return EscapeTable{
		'<': "&lt;",
		'>': "&gt;",
		'&': "&amp;",
	}
}

// MergeEscapes returns a new table with the entries of base and overrides.
// Entries in overrides take precedence.
func MergeEscapes(base, overrides EscapeTable) EscapeTable {
	merged := make(EscapeTable, len(base)+len(overrides))
	for c, s := range base {
		merged[c] = s
	}
	for c, s := range overrides {
		merged[c] = s
	}
	return merged
}

// An Escaper replaces characters according to an [EscapeTable].
// Escapers are safe to use from multiple goroutines.
type Escaper struct {
	r *bytereplacer.Replacer
}

// NewEscaper compiles the table into an [Escaper].
// Later changes to the table do not affect the Escaper.
func NewEscaper(table EscapeTable) *Escaper {
	if len(table) == 0 {
		return &Escaper{}
	}
	keys := make([]rune, 0, len(table))
	for c := range table {
		keys = append(keys, c)
	}
	// Deterministic argument order; keys are distinct single characters,
	// so the order never changes the result.
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	oldnew := make([]string, 0, 2*len(keys))
	for _, c := range keys {
		oldnew = append(oldnew, string(c), table[c])
	}
	return &Escaper{r: bytereplacer.New(oldnew...)}
}

// Escape returns s with every character in the table replaced.
// Characters absent from the table are passed through unchanged.
func (e *Escaper) Escape(s string) string {
	if e == nil || e.r == nil || s == "" {
		return s
	}
	return string(e.r.Replace([]byte(s)))
}
