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
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/epicollapse/collapse"
)

var (
	outPath       = flag.String("out", "", "Output epiread path; bgzf-compressed if it ends in .gz")
	parallelism   = flag.Int("parallelism", collapse.DefaultOpts.Parallelism, "Maximum number of fragments collapsed concurrently; 0 = runtime.NumCPU()")
	batchSize     = flag.Int("batch-size", collapse.DefaultOpts.BatchSize, "Number of fragments collapsed per batch")
	skipMalformed = flag.Bool("skip-malformed", collapse.DefaultOpts.SkipMalformed, "Log and drop fragments that cannot be collapsed instead of exiting")
)

func bioEpireadCollapseUsage() {
	fmt.Printf("Usage: %s [OPTIONS] epiread-path\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

// exitOnError terminates the process if err is non-nil.  Malformed fragments
// are reported with both source reads.
func exitOnError(err error) {
	if err == nil {
		return
	}
	if ae, ok := err.(*collapse.AssemblyError); ok {
		log.Error.Printf("%s", ae.Diagnostic())
	}
	log.Fatalf("%v", err)
}

func main() {
	flag.Usage = bioEpireadCollapseUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (epiread path) required; got '%s'", strings.Join(flag.Args(), " "))
	}
	if *outPath == "" {
		log.Fatalf("-out is required")
	}
	ctx := vcontext.Background()
	opts := collapse.Opts{
		Parallelism:   *parallelism,
		BatchSize:     *batchSize,
		SkipMalformed: *skipMalformed,
	}
	_, err := collapse.Run(ctx, flag.Arg(0), *outPath, opts)
	exitOnError(err)
	log.Debug.Printf("exiting")
}
