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

import baseunsafe "github.com/grailbio/base/unsafe"

// NotFound is returned by FirstOccurrence when query does not occur in the
// indexed text.
const NotFound = -1

// FirstOccurrence returns the text offset of some occurrence of query, or
// NotFound if query does not occur at all.
//
// Exact match only: approximate (mismatch-tolerant) search is not
// implemented. See DESIGN.md's Open Question decisions.
func (idx *Index) FirstOccurrence(query []byte) int {
	l, r := idx.bwmRange(query)
	if l >= r {
		return NotFound
	}
	return idx.resolve(l)
}

// AllOccurrences returns the text offsets of every occurrence of query, in
// BWT-row order (not text order).
func (idx *Index) AllOccurrences(query []byte) []int {
	l, r := idx.bwmRange(query)
	if l >= r {
		return nil
	}
	out := make([]int, 0, r-l)
	for row := l; row < r; row++ {
		out = append(out, idx.resolve(row))
	}
	return out
}

// FirstOccurrenceString is FirstOccurrence for a query already held as a
// string (as read lines typically are). It avoids the copy an ordinary
// []byte(query) conversion would make, the same zero-copy view
// encoding/fasta uses for its own hot path.
func (idx *Index) FirstOccurrenceString(query string) int {
	return idx.FirstOccurrence(baseunsafe.StringToBytes(query))
}

// AllOccurrencesString is AllOccurrences for a query already held as a
// string.
func (idx *Index) AllOccurrencesString(query string) []int {
	return idx.AllOccurrences(baseunsafe.StringToBytes(query))
}
