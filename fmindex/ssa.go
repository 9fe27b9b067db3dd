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

// downsampleSuffixArray returns a sparse row->text-offset map containing
// exactly those rows i where sa[i] is a multiple of ssaIval. Offset 0 always
// satisfies this (for any ssaIval > 0), so it is always present.
func downsampleSuffixArray(sa []int, ssaIval int) map[int]int {
	ssa := make(map[int]int, len(sa)/ssaIval+1)
	for i, off := range sa {
		if off%ssaIval == 0 {
			ssa[i] = off
		}
	}
	return ssa
}
