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

// fm-build constructs an FM-index from a reference sequence file and writes
// the serialized index to disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fmindex/fmindex"
)

var (
	cpIval  = flag.Int("cp-interval", fmindex.DefaultCheckpointInterval, "Rank checkpoint interval")
	ssaIval = flag.Int("ssa-interval", fmindex.DefaultDownsampleInterval, "Suffix array downsample interval")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] <reference_file> <output_index_file>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		log.Fatalf("fm-build: expected exactly 2 positional arguments, got %d", flag.NArg())
	}
	refPath, outPath := flag.Arg(0), flag.Arg(1)

	ctx := vcontext.Background()
	in, err := file.Open(ctx, refPath)
	if err != nil {
		log.Fatalf("fm-build: open reference %s: %v", refPath, err)
	}
	seq, _, err := fmindex.ReadReference(in.Reader(ctx))
	if cerr := in.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("fm-build: read reference %s: %v", refPath, err)
	}

	idx := fmindex.Build(seq, *cpIval, *ssaIval)

	out, err := file.Create(ctx, outPath)
	if err != nil {
		log.Fatalf("fm-build: create index %s: %v", outPath, err)
	}
	if err := idx.Encode(out.Writer(ctx)); err != nil {
		log.Fatalf("fm-build: encode index: %v", err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("fm-build: close index %s: %v", outPath, err)
	}
	log.Printf("fm-build: wrote index for %d-byte reference to %s", len(seq), outPath)
}
