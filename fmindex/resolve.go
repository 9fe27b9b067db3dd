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

import "fmt"

// resolve maps a BWT row to its text offset by walking the LF-mapping
// (walking the text right to left) until it lands on a row retained in the
// downsampled suffix array. Termination is guaranteed within ssaIval steps:
// the downsampled array retains at least one row per ssaIval consecutive
// text positions, and each LF step strictly advances through the text (mod
// n). A walk exceeding ssaIval steps indicates a corrupt index.
func (idx *Index) resolve(row int) int {
	steps := 0
	for {
		if off, ok := idx.ssa[row]; ok {
			return off + steps
		}
		if steps > idx.ssaIval {
			panic(fmt.Sprintf("fmindex: resolve exceeded ssaIval=%d steps from row %d; index is corrupt", idx.ssaIval, row))
		}
		c := idx.bwt[row]
		row = int(idx.checkpoints.rank(idx.bwt, c, row-1)) + int(idx.firstCol.countOccurrences(c))
		steps++
	}
}
