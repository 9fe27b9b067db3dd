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

// fq-reshape exposes the FASTQ preprocessing steps of the map/reduce
// pipeline: reshaping a FASTQ file into one-record-per-line form for the
// shuffle, and extracting just the reads from a FASTQ file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fmindex/mrfastq"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s {mrfastq|reads} <input.fastq>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		log.Fatalf("fq-reshape: expected a subcommand and an input path, got %d args", flag.NArg())
	}
	subcommand, inPath := flag.Arg(0), flag.Arg(1)

	var outPath string
	switch subcommand {
	case "mrfastq":
		outPath = "output.mr.fastq"
	case "reads":
		outPath = "output.fq.reads"
	default:
		log.Fatalf("fq-reshape: unknown subcommand %q (want mrfastq or reads)", subcommand)
	}

	ctx := vcontext.Background()
	in, err := file.Open(ctx, inPath)
	if err != nil {
		log.Fatalf("fq-reshape: open %s: %v", inPath, err)
	}
	out, err := file.Create(ctx, outPath)
	if err != nil {
		log.Fatalf("fq-reshape: create %s: %v", outPath, err)
	}

	switch subcommand {
	case "mrfastq":
		err = mrfastq.Reshape(in.Reader(ctx), out.Writer(ctx))
	case "reads":
		err = mrfastq.ExtractReads(in.Reader(ctx), out.Writer(ctx))
	}
	if cerr := in.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := out.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("fq-reshape: %s %s: %v", subcommand, inPath, err)
	}
	log.Printf("fq-reshape: wrote %s", outPath)
}
