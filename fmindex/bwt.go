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

// buildBWT derives the last column of the sorted rotation matrix from the
// suffix array: bwt[i] is the character preceding the suffix at sa[i], or the
// sentinel when that suffix starts at position 0.
func buildBWT(text []byte, sa []int) []byte {
	bwt := make([]byte, len(sa))
	for i, s := range sa {
		if s == 0 {
			bwt[i] = Sentinel
		} else {
			bwt[i] = text[s-1]
		}
	}
	return bwt
}
