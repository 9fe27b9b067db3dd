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
	"strconv"
	"strings"

	"github.com/grailbio/fmindex/internal/alphabet"
	"github.com/pkg/errors"
)

// ParseKey parses a key in its emitted string form ("100" or "100.01") back
// into a Key.
func ParseKey(s string) (Key, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	anchor, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return Key{}, errors.Wrapf(err, "pileup: parse key %q", s)
	}
	if !hasFrac {
		return Key{Anchor: anchor}, nil
	}
	ordinal, err := strconv.ParseUint(frac, 10, 8)
	if err != nil {
		return Key{}, errors.Wrapf(err, "pileup: parse key %q", s)
	}
	return Key{Anchor: anchor, Ordinal: uint8(ordinal)}, nil
}

// ParseLine parses one mapper/combiner output line back into its
// constituent fields. includeRefName must match how the line was produced:
// true for the native-aligner variant's "ref;name;counts" field, false for
// the FM-index variant's "ref;counts" field.
func ParseLine(line string, includeRefName bool) (key Key, refBase byte, refName string, counts [alphabet.NSlots]uint32, err error) {
	keyStr, rest, ok := strings.Cut(line, "\t")
	if !ok {
		return Key{}, 0, "", counts, errors.Errorf("pileup: malformed line %q: no tab", line)
	}
	key, err = ParseKey(keyStr)
	if err != nil {
		return Key{}, 0, "", counts, err
	}

	fields := strings.Split(rest, ";")
	wantFields := 2
	if includeRefName {
		wantFields = 3
	}
	if len(fields) != wantFields {
		return Key{}, 0, "", counts, errors.Errorf("pileup: malformed line %q: want %d semicolon fields, got %d", line, wantFields, len(fields))
	}
	if fields[0] != "." {
		refBase = fields[0][0]
	}
	countsField := fields[1]
	if includeRefName {
		refName = fields[1]
		countsField = fields[2]
	}

	parts := strings.Split(countsField, ",")
	if len(parts) != alphabet.NSlots {
		return Key{}, 0, "", counts, errors.Errorf("pileup: malformed line %q: want %d counts, got %d", line, alphabet.NSlots, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Key{}, 0, "", counts, errors.Wrapf(err, "pileup: parse count %q", p)
		}
		counts[i] = uint32(v)
	}
	return key, refBase, refName, counts, nil
}

// MergeCounts adds counts (already tallied, e.g. parsed from a mapper's
// output line) into the entry for key, creating it on first touch. Unlike
// Observe, it adds a whole count vector at once; combiners use this to sum
// partial tallies across mapper shards rather than re-classifying bases.
func (a *Accumulator) MergeCounts(key Key, refBase byte, refName string, counts [alphabet.NSlots]uint32) {
	e, ok := a.entries[key]
	if !ok {
		e = &entry{refBase: refBase, refName: refName}
		a.entries[key] = e
	}
	for i, v := range counts {
		e.counts[i] += v
	}
}
