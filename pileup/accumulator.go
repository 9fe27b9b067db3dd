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

package pileup

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/fmindex/internal/alphabet"
	"github.com/pkg/errors"
)

// noRefBase marks a pileup entry that has no associated reference base, the
// case for every insertion column.
const noRefBase = 0

type entry struct {
	refBase byte
	refName string
	counts  [alphabet.NSlots]uint32
}

// Accumulator folds per-read base observations into a map keyed by
// reference column. It is owned by a single worker for its whole lifetime:
// built, fed one aligned read at a time, and drained exactly once by Emit.
type Accumulator struct {
	includeRefName bool
	entries        map[Key]*entry
}

// NewAccumulator returns an empty Accumulator. includeRefName controls
// whether Emit prints the ref_name field; the FM-index mapper variant omits
// it (it has no contig map), the native-aligner variant includes it.
func NewAccumulator(includeRefName bool) *Accumulator {
	return &Accumulator{includeRefName: includeRefName, entries: map[Key]*entry{}}
}

// OpKind distinguishes the three ways a read can touch a reference column.
type OpKind int

const (
	// OpMatch covers both a true match and a mismatch: the query contributed
	// a real base opposite a reference base.
	OpMatch OpKind = iota
	// OpDelete is a subject deletion: the reference base has no opposing
	// query base: it is tallied into the D slot.
	OpDelete
	// OpInsert is a subject insertion: the query contributed a base with no
	// opposing reference position. It anchors to the most recent OpMatch or
	// OpDelete position in the same read.
	OpInsert
)

// ReadOp is one column of a single aligned read's contribution, in
// reference order.
type ReadOp struct {
	Kind      OpKind
	RefPos    uint64 // meaningful for OpMatch and OpDelete
	RefBase   byte   // meaningful for OpMatch and OpDelete
	QueryBase byte   // meaningful for OpMatch and OpInsert
}

// ErrInsertBeforeAnchor is returned by ObserveRead when a read's op sequence
// opens with an OpInsert, which has no reference position to anchor to.
var ErrInsertBeforeAnchor = errors.New("pileup: insertion before any reference anchor")

// Observe folds a single query base observation into the entry for key,
// creating it (recording refBase and refName) on first touch.
func (a *Accumulator) Observe(key Key, refBase byte, refName string, queryBase byte) {
	e, ok := a.entries[key]
	if !ok {
		e = &entry{refBase: refBase, refName: refName}
		a.entries[key] = e
	}
	if slot, known := alphabet.Classify(queryBase); known {
		e.counts[slot]++
	} else {
		e.counts[alphabet.N]++
	}
}

// ObserveRead folds every column of one aligned read into a, in order.
// Consecutive OpInsert entries following the same anchor receive
// consecutive 1-based ordinals, matching the insertion-run encoding rule.
func (a *Accumulator) ObserveRead(refName string, ops []ReadOp) error {
	var anchor uint64
	var ordinal uint8
	haveAnchor := false
	for _, op := range ops {
		switch op.Kind {
		case OpMatch:
			a.Observe(Key{Anchor: op.RefPos}, op.RefBase, refName, op.QueryBase)
			anchor, haveAnchor, ordinal = op.RefPos, true, 0
		case OpDelete:
			a.Observe(Key{Anchor: op.RefPos}, op.RefBase, refName, 'D')
			anchor, haveAnchor, ordinal = op.RefPos, true, 0
		case OpInsert:
			if !haveAnchor {
				return ErrInsertBeforeAnchor
			}
			ordinal++
			a.Observe(Key{Anchor: anchor, Ordinal: ordinal}, noRefBase, refName, op.QueryBase)
		default:
			return errors.Errorf("pileup: unknown op kind %d", op.Kind)
		}
	}
	return nil
}

// Emit writes one line per accumulated key to w, sorted by key, in the
// stdout format mappers and combiners share. A key with no recorded
// reference base prints "." in its place.
func (a *Accumulator) Emit(w io.Writer) error {
	keys := make([]Key, 0, len(a.entries))
	for k := range a.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	tsvw := tsv.NewWriter(w)
	for _, k := range keys {
		e := a.entries[k]
		tsvw.WriteString(k.String())
		tsvw.WriteString(formatRecord(e, a.includeRefName))
		if err := tsvw.EndLine(); err != nil {
			return errors.Wrap(err, "pileup: write record")
		}
	}
	return errors.Wrap(tsvw.Flush(), "pileup: flush output")
}

func formatRecord(e *entry, includeRefName bool) string {
	refBase := "."
	if e.refBase != noRefBase {
		refBase = string(e.refBase)
	}
	c := e.counts
	counts := formatCounts(c)
	if includeRefName {
		return refBase + ";" + e.refName + ";" + counts
	}
	return refBase + ";" + counts
}

func formatCounts(c [alphabet.NSlots]uint32) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, ",")
}
