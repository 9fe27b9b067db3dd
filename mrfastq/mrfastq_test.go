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

package mrfastq_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/fmindex/mrfastq"
	"github.com/grailbio/testutil/assert"
)

const sampleFastq = "@read1\nACGTACGT\n+\nIIIIIIII\n@read2\nTTTTCCCC\n+\nFFFFFFFF\n"

func TestReshapeUnreshapeRoundTrip(t *testing.T) {
	var reshaped bytes.Buffer
	assert.NoError(t, mrfastq.Reshape(strings.NewReader(sampleFastq), &reshaped))

	lines := strings.Split(strings.TrimRight(reshaped.String(), "\n"), "\n")
	assert.EQ(t, len(lines), 2)
	for _, line := range lines {
		assert.EQ(t, strings.Count(line, mrfastq.LineSeparator), 3)
	}

	var restored bytes.Buffer
	assert.NoError(t, mrfastq.Unreshape(&reshaped, &restored))
	assert.EQ(t, restored.String(), sampleFastq)
}

func TestExtractReads(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, mrfastq.ExtractReads(strings.NewReader(sampleFastq), &out))
	assert.EQ(t, out.String(), "ACGTACGT\nTTTTCCCC\n")
}

func TestReshapeRejectsMissingAtSign(t *testing.T) {
	bad := "read1\nACGT\n+\nIIII\n"
	var out bytes.Buffer
	err := mrfastq.Reshape(strings.NewReader(bad), &out)
	assert.Error(t, err)
}

func TestReshapeRejectsShortRecord(t *testing.T) {
	bad := "@read1\nACGT\n+\n"
	var out bytes.Buffer
	err := mrfastq.Reshape(strings.NewReader(bad), &out)
	assert.Error(t, err)
}

func TestUnreshapeRejectsWrongFieldCount(t *testing.T) {
	bad := "only" + mrfastq.LineSeparator + "two\n"
	var out bytes.Buffer
	err := mrfastq.Unreshape(strings.NewReader(bad), &out)
	assert.Error(t, err)
}
