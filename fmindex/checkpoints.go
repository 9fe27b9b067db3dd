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

// checkpoints holds periodic cumulative per-character counts over a BWT
// string, plus a bounded on-the-fly scan to answer rank queries between
// checkpoints. The spacing between checkpoints, cpIval, trades space for
// rank-query latency: larger values use less memory but walk further.
type checkpoints struct {
	cpIval int
	cps    map[byte][]uint32 // one entry per distinct byte observed in bwt
}

// buildCheckpoints walks bwt left to right, recording the running per-
// character tally every cpIval positions (inclusive of the current index).
// The tally recorded at i is a post-increment snapshot: at i=0, bwt[0]'s
// tally is already 1 by the time the i%cpIval==0 snapshot is taken.
func buildCheckpoints(bwt []byte, cpIval int) *checkpoints {
	cp := &checkpoints{cpIval: cpIval, cps: map[byte][]uint32{}}
	tally := map[byte]uint32{}
	for _, c := range bwt {
		if _, ok := cp.cps[c]; !ok {
			cp.cps[c] = nil
		}
	}
	for i, c := range bwt {
		tally[c]++
		if i%cpIval == 0 {
			for ch := range cp.cps {
				cp.cps[ch] = append(cp.cps[ch], tally[ch])
			}
		}
	}
	return cp
}

// rank returns the number of occurrences of c in bwt[0..row] inclusive. The
// walk is bounded by cpIval steps: it moves left from row until it reaches a
// checkpointed index, counting matches of c along the way, then adds in the
// checkpoint's running total.
func (cp *checkpoints) rank(bwt []byte, c byte, row int) uint32 {
	if row < 0 {
		return 0
	}
	counts, known := cp.cps[c]
	if !known {
		return 0
	}
	i, nocc := row, uint32(0)
	for i%cp.cpIval != 0 {
		if bwt[i] == c {
			nocc++
		}
		i--
	}
	return counts[i/cp.cpIval] + nocc
}
