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

// fm-map is the FM-index mapper worker: it reads bare read strings from
// stdin, searches each against a preloaded index, and emits a pileup of the
// hits to stdout. It is exact-match only; gapped alignment is out of scope.
package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fmindex/fmindex"
	"github.com/grailbio/fmindex/pileup"
)

var (
	indexPath = flag.String("index", "", "Path to a serialized FM-index (default $FMINDEX_INDEX_PATH)")
	refPath   = flag.String("ref", "", "Path to the reference sequence the index was built from (default $FMINDEX_REF_PATH)")
)

func flagOrEnv(flagVal, envName string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv(envName)
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	idxPath := flagOrEnv(*indexPath, "FMINDEX_INDEX_PATH")
	seqPath := flagOrEnv(*refPath, "FMINDEX_REF_PATH")
	if idxPath == "" || seqPath == "" {
		log.Fatalf("fm-map: -index/$FMINDEX_INDEX_PATH and -ref/$FMINDEX_REF_PATH are both required")
	}

	ctx := vcontext.Background()

	idxFile, err := file.Open(ctx, idxPath)
	if err != nil {
		log.Fatalf("fm-map: open index %s: %v", idxPath, err)
	}
	idx, err := fmindex.Decode(idxFile.Reader(ctx))
	if cerr := idxFile.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("fm-map: decode index %s: %v", idxPath, err)
	}

	refFile, err := file.Open(ctx, seqPath)
	if err != nil {
		log.Fatalf("fm-map: open reference %s: %v", seqPath, err)
	}
	seq, _, err := fmindex.ReadReference(refFile.Reader(ctx))
	if cerr := refFile.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("fm-map: read reference %s: %v", seqPath, err)
	}

	acc := pileup.NewAccumulator(false)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	nReads, nHits := 0, 0
	for scanner.Scan() {
		nReads++
		read := scanner.Bytes()
		off := idx.FirstOccurrence(read)
		if off == fmindex.NotFound {
			continue
		}
		nHits++
		ops := make([]pileup.ReadOp, len(read))
		for i, b := range read {
			ops[i] = pileup.ReadOp{
				Kind:      pileup.OpMatch,
				RefPos:    uint64(off + i),
				RefBase:   seq[off+i],
				QueryBase: b,
			}
		}
		if err := acc.ObserveRead("", ops); err != nil {
			log.Fatalf("fm-map: accumulate read: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("fm-map: read stdin: %v", err)
	}

	if err := acc.Emit(os.Stdout); err != nil {
		log.Fatalf("fm-map: emit pileup: %v", err)
	}
	log.Printf("fm-map: mapped %d/%d reads", nHits, nReads)
}
