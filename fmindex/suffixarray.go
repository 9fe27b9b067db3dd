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

// Sentinel is the distinguished end-of-text character. It must compare
// strictly less than every other symbol in the text and must not otherwise
// appear in it.
const Sentinel = '$'

// withSentinel returns text with exactly one trailing Sentinel byte.
func withSentinel(text []byte) []byte {
	if len(text) > 0 && text[len(text)-1] == Sentinel {
		return text
	}
	out := make([]byte, len(text)+1)
	copy(out, text)
	out[len(text)] = Sentinel
	return out
}

// buildSuffixArray computes the suffix array of text (which must already be
// sentinel-terminated) using prefix-doubling with dense integer-rank
// bucketing at each round: the rank of the 2k-length prefix starting at i is
// uniquely determined by the pair (rank(i, k), rank(i+k, k)), so re-ranking
// those pairs each round preserves lexicographic order while letting the key
// space double every iteration.
func buildSuffixArray(text []byte) []int {
	n := len(text)
	if n == 0 {
		return nil
	}
	ranks := textToIntKeys(text)
	if n == 1 {
		return []int{0}
	}
	pairs := make([][2]int, n)
	for k := 1; maxOf(ranks) < n-1; k <<= 1 {
		for i := 0; i < n; i++ {
			b := -1
			if i+k < n {
				b = ranks[i+k]
			}
			pairs[i] = [2]int{ranks[i], b}
		}
		ranks = rankPairs(pairs)
	}
	// ranks[i] is now the rank of suffix text[i:]; invert the permutation.
	sa := make([]int, n)
	for i, r := range ranks {
		sa[r] = i
	}
	return sa
}

// textToIntKeys assigns each byte of text a dense rank among the distinct
// byte values present, in sorted order. Equal bytes get equal ranks.
func textToIntKeys(text []byte) []int {
	var seen [256]bool
	for _, b := range text {
		seen[b] = true
	}
	var distinct []int
	for b := 0; b < 256; b++ {
		if seen[b] {
			distinct = append(distinct, b)
		}
	}
	var index [256]int
	for rank, b := range distinct {
		index[b] = rank
	}
	out := make([]int, len(text))
	for i, b := range text {
		out[i] = index[b]
	}
	return out
}

func maxOf(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// rankPairs assigns dense ranks to pairs, preserving their relative order.
// Equal pairs receive equal ranks.
func rankPairs(pairs [][2]int) []int {
	n := len(pairs)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		pi, pj := pairs[order[i]], pairs[order[j]]
		if pi[0] != pj[0] {
			return pi[0] < pj[0]
		}
		return pi[1] < pj[1]
	})
	ranks := make([]int, n)
	rank := 0
	for i, idx := range order {
		if i > 0 {
			prev := pairs[order[i-1]]
			if prev != pairs[idx] {
				rank++
			}
		}
		ranks[idx] = rank
	}
	return ranks
}
