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

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// ErrMultiContig is returned by ReadReference when the input contains more
// than one FASTA header. This reimplementation forbids multi-contig
// reference inputs rather than silently conflating contig boundaries into a
// single flat offset space; see DESIGN.md's Open Question decisions.
var ErrMultiContig = errors.New("fmindex: multi-contig reference input is not supported")

// ReadReference reads a reference sequence from r and returns its bases and,
// if present, its contig name.
//
// Two input shapes are accepted:
//   - A single-contig FASTA file: one ">name" header line followed by
//     sequence, optionally wrapped across multiple lines.
//   - A bare text file with no FASTA header at all: the whole input is
//     treated as the sequence, a non-empty byte string over an arbitrary
//     alphabet.
//
// A file containing more than one ">" header returns ErrMultiContig.
func ReadReference(r io.Reader) (seq []byte, name string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)

	var buf bytes.Buffer
	seenHeader := false
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if seenHeader {
				return nil, "", ErrMultiContig
			}
			seenHeader = true
			name = string(bytes.TrimSpace(line[1:]))
			continue
		}
		buf.Write(bytes.TrimRight(line, "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, "", errors.Wrap(err, "fmindex: read reference")
	}
	if buf.Len() == 0 {
		return nil, "", errors.New("fmindex: empty reference input")
	}
	return buf.Bytes(), name, nil
}
