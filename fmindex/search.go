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

// bwmRange narrows a row interval in the BWT matrix to those rows whose
// suffix begins with query, walking query back to front (standard FM-index
// backward search). It returns a half-open interval [l, r); an empty result
// has l >= r.
//
// The current implementation treats every query character as an exact
// match -- there is no mismatch budget here, by design; see DESIGN.md's
// Open Question decisions for why a "mismatches" parameter does not appear
// on this or the entry points in query.go.
func (idx *Index) bwmRange(query []byte) (l, r int) {
	l, r = 0, idx.n-1
	for i := len(query) - 1; i >= 0; i-- {
		c := query[i]
		cntLT := int(idx.firstCol.countOccurrences(c))
		l = int(idx.checkpoints.rank(idx.bwt, c, l-1)) + cntLT
		r = int(idx.checkpoints.rank(idx.bwt, c, r)) + cntLT - 1
		if r < l {
			break
		}
	}
	return l, r + 1
}
