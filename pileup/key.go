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

// Package pileup accumulates per-reference-position base counts from aligned
// reads, one accumulator per worker.
package pileup

import "fmt"

// Key identifies a pileup column. Most columns anchor directly to a
// reference offset (Ordinal == 0); a column created by an inserted base
// carries the 1-based ordinal of that base within its insertion run, so that
// Key{100, 1} and Key{100, 2} both sort strictly between Key{100, 0} and
// Key{101, 0} -- matching the "100 < 100.01 < 100.02 < 101" ordering an
// insertion run must preserve.
type Key struct {
	Anchor  uint64
	Ordinal uint8
}

// Less reports whether k sorts before other under the numeric ordering of
// the key's string form.
func (k Key) Less(other Key) bool {
	if k.Anchor != other.Anchor {
		return k.Anchor < other.Anchor
	}
	return k.Ordinal < other.Ordinal
}

// String renders k the way Emit prints it: an integer key has no decimal
// point; an insertion key is "anchor.NN" with the ordinal zero-padded to two
// digits (an insertion run may hold at most 99 bases).
func (k Key) String() string {
	if k.Ordinal == 0 {
		return fmt.Sprintf("%d", k.Anchor)
	}
	return fmt.Sprintf("%d.%02d", k.Anchor, k.Ordinal)
}
