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
	"bytes"
	"encoding/binary"
	"io"
	"io/ioutil"
	"sort"

	farm "github.com/dgryski/go-farm"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// On-disk layout: a 40-byte header (magic, format version, cpIval, ssaIval,
// text length, checksum) followed by a gzip-compressed body holding the
// bwt, checkpoints, downsampled suffix array, and first-column table. The
// checksum covers every byte of the (uncompressed) body, so a truncated or
// bit-flipped file is caught at Decode time rather than surfacing later as a
// silent bad answer.
var magic = [4]byte{'F', 'M', 'X', '1'}

const formatVersion = 1

// ErrBadMagic is returned by Decode when the input does not begin with the
// expected magic bytes.
var ErrBadMagic = errors.New("fmindex: bad magic bytes")

// ErrUnsupportedVersion is returned by Decode when the input's format
// version is not one this build understands.
var ErrUnsupportedVersion = errors.New("fmindex: unsupported format version")

// ErrChecksumMismatch is returned by Decode when the body checksum does not
// match the header, indicating a truncated or corrupted file.
var ErrChecksumMismatch = errors.New("fmindex: checksum mismatch")

// Encode serializes idx to w.
func (idx *Index) Encode(w io.Writer) error {
	body, err := idx.encodeBody()
	if err != nil {
		return errors.Wrap(err, "fmindex: encode body")
	}
	checksum := farm.Hash64(body)

	var header bytes.Buffer
	header.Write(magic[:])
	writeUint32(&header, formatVersion)
	writeUint64(&header, uint64(idx.cpIval))
	writeUint64(&header, uint64(idx.ssaIval))
	writeUint64(&header, uint64(idx.n))
	writeUint64(&header, checksum)
	if _, err := w.Write(header.Bytes()); err != nil {
		return errors.Wrap(err, "fmindex: write header")
	}

	gz := gzip.NewWriter(w)
	if _, err := gz.Write(body); err != nil {
		return errors.Wrap(err, "fmindex: write compressed body")
	}
	return errors.Wrap(gz.Close(), "fmindex: close gzip writer")
}

// Decode deserializes an Index previously written by Encode.
func Decode(r io.Reader) (*Index, error) {
	header := make([]byte, 40)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, "fmindex: read header")
	}
	if !bytes.Equal(header[0:4], magic[:]) {
		return nil, ErrBadMagic
	}
	version := binary.LittleEndian.Uint32(header[4:8])
	if version != formatVersion {
		return nil, ErrUnsupportedVersion
	}
	cpIval := int(binary.LittleEndian.Uint64(header[8:16]))
	ssaIval := int(binary.LittleEndian.Uint64(header[16:24]))
	n := int(binary.LittleEndian.Uint64(header[24:32]))
	wantChecksum := binary.LittleEndian.Uint64(header[32:40])

	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "fmindex: open gzip reader")
	}
	body, err := ioutil.ReadAll(gz)
	if err != nil {
		return nil, errors.Wrap(err, "fmindex: read compressed body")
	}
	if err := gz.Close(); err != nil {
		return nil, errors.Wrap(err, "fmindex: close gzip reader")
	}
	if farm.Hash64(body) != wantChecksum {
		return nil, ErrChecksumMismatch
	}

	idx := &Index{n: n, cpIval: cpIval, ssaIval: ssaIval}
	if err := idx.decodeBody(body); err != nil {
		return nil, errors.Wrap(err, "fmindex: decode body")
	}
	return idx, nil
}

func (idx *Index) encodeBody() ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(idx.bwt)

	chars := make([]byte, 0, len(idx.checkpoints.cps))
	for c := range idx.checkpoints.cps {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	writeUint32(&buf, uint32(len(chars)))
	for _, c := range chars {
		buf.WriteByte(c)
		counts := idx.checkpoints.cps[c]
		for _, v := range counts {
			writeUint32(&buf, v)
		}
	}

	rows := make([]int, 0, len(idx.ssa))
	for row := range idx.ssa {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	writeUint32(&buf, uint32(len(rows)))
	for _, row := range rows {
		writeUint64(&buf, uint64(row))
		writeUint64(&buf, uint64(idx.ssa[row]))
	}

	writeUint32(&buf, uint32(len(idx.firstCol.keys)))
	for _, c := range idx.firstCol.keys {
		buf.WriteByte(c)
		writeUint64(&buf, uint64(idx.firstCol.totals[c]))
	}

	return buf.Bytes(), nil
}

func (idx *Index) decodeBody(body []byte) error {
	r := bytes.NewReader(body)

	bwt := make([]byte, idx.n)
	if _, err := io.ReadFull(r, bwt); err != nil {
		return errors.Wrap(err, "read bwt")
	}
	idx.bwt = bwt

	nChars, err := readUint32(r)
	if err != nil {
		return errors.Wrap(err, "read checkpoint char count")
	}
	nEntries := 0
	if idx.n > 0 {
		nEntries = (idx.n-1)/idx.cpIval + 1
	}
	cps := make(map[byte][]uint32, nChars)
	for i := uint32(0); i < nChars; i++ {
		c, err := r.ReadByte()
		if err != nil {
			return errors.Wrap(err, "read checkpoint char")
		}
		counts := make([]uint32, nEntries)
		for j := range counts {
			v, err := readUint32(r)
			if err != nil {
				return errors.Wrap(err, "read checkpoint value")
			}
			counts[j] = v
		}
		cps[c] = counts
	}
	idx.checkpoints = &checkpoints{cpIval: idx.cpIval, cps: cps}

	nSSA, err := readUint32(r)
	if err != nil {
		return errors.Wrap(err, "read ssa count")
	}
	ssa := make(map[int]int, nSSA)
	for i := uint32(0); i < nSSA; i++ {
		row, err := readUint64(r)
		if err != nil {
			return errors.Wrap(err, "read ssa row")
		}
		off, err := readUint64(r)
		if err != nil {
			return errors.Wrap(err, "read ssa offset")
		}
		ssa[int(row)] = int(off)
	}
	idx.ssa = ssa

	nFC, err := readUint32(r)
	if err != nil {
		return errors.Wrap(err, "read first-column count")
	}
	totals := make(map[byte]uint32, nFC)
	keys := make([]byte, 0, nFC)
	for i := uint32(0); i < nFC; i++ {
		c, err := r.ReadByte()
		if err != nil {
			return errors.Wrap(err, "read first-column char")
		}
		total, err := readUint64(r)
		if err != nil {
			return errors.Wrap(err, "read first-column total")
		}
		totals[c] = uint32(total)
		keys = append(keys, c)
	}
	idx.firstCol = &firstColumn{totals: totals, keys: keys, n: uint32(idx.n)}

	return nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
