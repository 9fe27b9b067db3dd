// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fmindex

import "sort"

// firstColumn maps each character c present in bwt to the total number of
// positions j in bwt with bwt[j] < c -- equivalently, the row at which c's
// run in the sorted first column begins.
type firstColumn struct {
	totals map[byte]uint32 // c -> number of positions j with bwt[j] < c
	keys   []byte          // known characters in ascending order
	n      uint32          // total number of positions (== len(bwt))
}

func buildFirstColumn(bwt []byte) *firstColumn {
	counts := map[byte]uint32{}
	for _, c := range bwt {
		counts[c]++
	}
	keys := make([]byte, 0, len(counts))
	for c := range counts {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	fc := &firstColumn{totals: map[byte]uint32{}, keys: keys}
	running := uint32(0)
	for _, c := range keys {
		fc.totals[c] = running
		running += counts[c]
	}
	fc.n = running
	return fc
}

// countOccurrences returns the number of bwt positions strictly less than c.
// If c never appears in bwt, it returns the first-column total of the
// smallest known character greater than c; if no such character exists
// either, it returns the grand total n, which safely collapses any
// bwm_range interval that reaches this branch (see the Open Questions in
// DESIGN.md for why the out-of-alphabet case never needs to do more than
// this).
func (fc *firstColumn) countOccurrences(c byte) uint32 {
	if total, ok := fc.totals[c]; ok {
		return total
	}
	for _, k := range fc.keys {
		if c < k {
			return fc.totals[k]
		}
	}
	return fc.n
}
