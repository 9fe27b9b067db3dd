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

package fmindex_test

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/grailbio/fmindex/fmindex"
	"github.com/grailbio/testutil/assert"
)

func TestBuildAndQueryTrivial(t *testing.T) {
	idx := fmindex.BuildDefault([]byte("abaaba"))

	got := idx.AllOccurrences([]byte("aba"))
	sort.Ints(got)
	assert.EQ(t, got, []int{0, 3})

	assert.EQ(t, idx.FirstOccurrence([]byte("b")) >= 0, true)
	assert.EQ(t, idx.FirstOccurrence([]byte("xyz")), fmindex.NotFound)
	assert.EQ(t, idx.AllOccurrences([]byte("xyz")), []int(nil))
}

func TestBuildAndQuerySingleSentinelChar(t *testing.T) {
	idx := fmindex.BuildDefault([]byte("$"))
	got := idx.AllOccurrences([]byte("$"))
	assert.EQ(t, len(got), 1)
}

func TestBuildAndQueryRepeats(t *testing.T) {
	idx := fmindex.Build([]byte("AAAAA"), 2, 2)
	got := idx.AllOccurrences([]byte("AA"))
	sort.Ints(got)
	assert.EQ(t, got, []int{0, 1, 2, 3})

	got = idx.AllOccurrences([]byte("AAAAA"))
	assert.EQ(t, got, []int{0})
}

func TestQueryMissingCharacter(t *testing.T) {
	idx := fmindex.Build([]byte("ACGTACGT"), 4, 4)
	assert.EQ(t, idx.FirstOccurrence([]byte("N")), fmindex.NotFound)
	assert.EQ(t, idx.FirstOccurrence([]byte("ACGTN")), fmindex.NotFound)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	text := strings.Repeat("banana", 20) + "xyz"
	idx := fmindex.Build([]byte(text), 8, 8)

	var buf bytes.Buffer
	assert.NoError(t, idx.Encode(&buf))

	decoded, err := fmindex.Decode(&buf)
	assert.NoError(t, err)
	assert.EQ(t, decoded.Len(), idx.Len())

	for _, q := range []string{"banana", "xyz", "ana", "nan"} {
		want := idx.AllOccurrences([]byte(q))
		got := decoded.AllOccurrences([]byte(q))
		sort.Ints(want)
		sort.Ints(got)
		assert.EQ(t, got, want)
	}
}

func TestOccurrenceStringVariantsMatchByteVariants(t *testing.T) {
	idx := fmindex.BuildDefault([]byte("abaaba"))
	assert.EQ(t, idx.FirstOccurrenceString("aba"), idx.FirstOccurrence([]byte("aba")))

	want := idx.AllOccurrences([]byte("a"))
	got := idx.AllOccurrencesString("a")
	sort.Ints(want)
	sort.Ints(got)
	assert.EQ(t, got, want)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := fmindex.Decode(bytes.NewReader(make([]byte, 64)))
	assert.Error(t, err)
}

func TestDecodeRejectsCorruptedBody(t *testing.T) {
	idx := fmindex.Build([]byte("acgtacgtacgtacgt"), 4, 4)
	var buf bytes.Buffer
	assert.NoError(t, idx.Encode(&buf))

	corrupted := buf.Bytes()
	// Flip a byte inside the gzip-compressed body, past the 40-byte index
	// header and the 10-byte gzip member header.
	corrupted[50] ^= 0xFF

	_, err := fmindex.Decode(bytes.NewReader(corrupted))
	assert.Error(t, err)
}
