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

package pileup_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/fmindex/pileup"
	"github.com/grailbio/testutil/assert"
)

func TestKeyOrderingMatchesNumericForm(t *testing.T) {
	keys := []pileup.Key{
		{Anchor: 101},
		{Anchor: 100, Ordinal: 2},
		{Anchor: 100, Ordinal: 1},
		{Anchor: 100},
	}
	want := []string{"100", "100.01", "100.02", "101"}
	for i := 0; i < len(keys); i++ {
		for j := 0; j < len(keys); j++ {
			gotLess := keys[i].Less(keys[j])
			wantLess := indexOf(want, keys[i].String()) < indexOf(want, keys[j].String())
			if gotLess != wantLess {
				t.Fatalf("Less(%v, %v) = %v, want %v", keys[i], keys[j], gotLess, wantLess)
			}
		}
	}
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

func TestInsertionEncoding(t *testing.T) {
	a := pileup.NewAccumulator(true)
	err := a.ObserveRead("chr1", []pileup.ReadOp{
		{Kind: pileup.OpMatch, RefPos: 100, RefBase: 'G', QueryBase: 'G'},
		{Kind: pileup.OpInsert, QueryBase: 'A'},
		{Kind: pileup.OpInsert, QueryBase: 'C'},
		{Kind: pileup.OpMatch, RefPos: 101, RefBase: 'T', QueryBase: 'T'},
	})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, a.Emit(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.EQ(t, len(lines), 4)

	var keys []string
	for _, line := range lines {
		keys = append(keys, strings.SplitN(line, "\t", 2)[0])
	}
	assert.EQ(t, keys, []string{"100", "100.01", "100.02", "101"})
}

func TestInsertionBeforeAnchorFails(t *testing.T) {
	a := pileup.NewAccumulator(false)
	err := a.ObserveRead("chr1", []pileup.ReadOp{
		{Kind: pileup.OpInsert, QueryBase: 'A'},
	})
	assert.Error(t, err)
}

func TestAggregationAcrossReads(t *testing.T) {
	a := pileup.NewAccumulator(true)
	for i := 0; i < 2; i++ {
		err := a.ObserveRead("chr1", []pileup.ReadOp{
			{Kind: pileup.OpMatch, RefPos: 42, RefBase: 'G', QueryBase: 'A'},
		})
		assert.NoError(t, err)
	}

	var buf bytes.Buffer
	assert.NoError(t, a.Emit(&buf))
	assert.EQ(t, buf.String(), "42\tG;chr1;2,0,0,0,0,0\n")
}

func TestAggregationOmitsRefNameWhenDisabled(t *testing.T) {
	a := pileup.NewAccumulator(false)
	assert.NoError(t, a.ObserveRead("chr1", []pileup.ReadOp{
		{Kind: pileup.OpMatch, RefPos: 42, RefBase: 'G', QueryBase: 'A'},
	}))

	var buf bytes.Buffer
	assert.NoError(t, a.Emit(&buf))
	assert.EQ(t, buf.String(), "42\tG;1,0,0,0,0,0\n")
}

func TestDeletionTalliesDSlot(t *testing.T) {
	a := pileup.NewAccumulator(false)
	assert.NoError(t, a.ObserveRead("chr1", []pileup.ReadOp{
		{Kind: pileup.OpDelete, RefPos: 7, RefBase: 'C'},
	}))

	var buf bytes.Buffer
	assert.NoError(t, a.Emit(&buf))
	assert.EQ(t, buf.String(), "7\tC;0,0,0,0,1,0\n")
}

func TestCombinerRoundTripsMapperOutput(t *testing.T) {
	mapper1 := pileup.NewAccumulator(false)
	assert.NoError(t, mapper1.ObserveRead("chr1", []pileup.ReadOp{
		{Kind: pileup.OpMatch, RefPos: 42, RefBase: 'G', QueryBase: 'A'},
	}))
	mapper2 := pileup.NewAccumulator(false)
	assert.NoError(t, mapper2.ObserveRead("chr1", []pileup.ReadOp{
		{Kind: pileup.OpMatch, RefPos: 42, RefBase: 'G', QueryBase: 'A'},
	}))

	var buf1, buf2 bytes.Buffer
	assert.NoError(t, mapper1.Emit(&buf1))
	assert.NoError(t, mapper2.Emit(&buf2))

	combined := pileup.NewAccumulator(false)
	for _, line := range []string{
		strings.TrimRight(buf1.String(), "\n"),
		strings.TrimRight(buf2.String(), "\n"),
	} {
		key, refBase, refName, counts, err := pileup.ParseLine(line, false)
		assert.NoError(t, err)
		combined.MergeCounts(key, refBase, refName, counts)
	}

	var out bytes.Buffer
	assert.NoError(t, combined.Emit(&out))
	assert.EQ(t, out.String(), "42\tG;2,0,0,0,0,0\n")
}

func TestParseKeyRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "42", "100.01", "100.99"} {
		k, err := pileup.ParseKey(s)
		assert.NoError(t, err)
		assert.EQ(t, k.String(), s)
	}
}

func TestUnknownQueryBaseCountsAsN(t *testing.T) {
	a := pileup.NewAccumulator(false)
	assert.NoError(t, a.ObserveRead("chr1", []pileup.ReadOp{
		{Kind: pileup.OpMatch, RefPos: 1, RefBase: 'A', QueryBase: '?'},
	}))

	var buf bytes.Buffer
	assert.NoError(t, a.Emit(&buf))
	assert.EQ(t, buf.String(), "1\tA;0,0,0,0,0,1\n")
}
