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

// fm-combine sums pre-sorted mapper output lines by reference key and emits
// the combined tally, mirroring the reduce side of the map/reduce pileup
// pipeline.
package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/fmindex/pileup"
)

var withRefName = flag.Bool("ref-name", false, "Input lines carry a ref_name field (native-aligner variant); default is the FM-index variant's 2-field form")

func main() {
	shutdown := grail.Init()
	defer shutdown()

	acc := pileup.NewAccumulator(*withRefName)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	nLines := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		key, refBase, refName, counts, err := pileup.ParseLine(line, *withRefName)
		if err != nil {
			log.Fatalf("fm-combine: %v", err)
		}
		acc.MergeCounts(key, refBase, refName, counts)
		nLines++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("fm-combine: read stdin: %v", err)
	}

	if err := acc.Emit(os.Stdout); err != nil {
		log.Fatalf("fm-combine: emit pileup: %v", err)
	}
	log.Printf("fm-combine: combined %d input lines", nLines)
}
