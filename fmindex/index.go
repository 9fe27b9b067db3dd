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

// Package fmindex builds and queries an FM-index over a reference text: a
// suffix array derived via prefix-doubling, the Burrows-Wheeler transform of
// that array, a checkpointed rank structure, and a downsampled suffix array
// for position resolution. It supports exact backward search
// (first/all occurrence lookup) over short query strings.
package fmindex

const (
	// DefaultCheckpointInterval is the default spacing between rank
	// checkpoints (cpIval).
	DefaultCheckpointInterval = 128
	// DefaultDownsampleInterval is the default spacing between retained
	// suffix-array entries (ssaIval).
	DefaultDownsampleInterval = 32
)

// Index is the immutable, queryable representation of a reference text: the
// BWT, a downsampled suffix array, rank checkpoints, and the first-column
// table, together with the parameters they were built with.
type Index struct {
	n           int
	cpIval      int
	ssaIval     int
	bwt         []byte
	ssa         map[int]int
	checkpoints *checkpoints
	firstCol    *firstColumn
}

// Build constructs an FM-index over text using the given checkpoint and
// downsample intervals. A sentinel byte is appended to text unless it is
// already present at the end.
func Build(text []byte, cpIval, ssaIval int) *Index {
	t := withSentinel(text)
	sa := buildSuffixArray(t)
	bwt := buildBWT(t, sa)
	return &Index{
		n:           len(t),
		cpIval:      cpIval,
		ssaIval:     ssaIval,
		bwt:         bwt,
		ssa:         downsampleSuffixArray(sa, ssaIval),
		checkpoints: buildCheckpoints(bwt, cpIval),
		firstCol:    buildFirstColumn(bwt),
	}
}

// BuildDefault builds an index using DefaultCheckpointInterval and
// DefaultDownsampleInterval.
func BuildDefault(text []byte) *Index {
	return Build(text, DefaultCheckpointInterval, DefaultDownsampleInterval)
}

// Len returns the length of the sentinel-terminated text the index was
// built from.
func (idx *Index) Len() int { return idx.n }
