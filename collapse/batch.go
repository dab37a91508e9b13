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
package collapse

import (
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/epicollapse/encoding/epiread"
)

// Opts controls batch collapsing.
type Opts struct {
	// Parallelism is the maximum number of goroutines used to collapse one
	// batch.  0 means runtime.NumCPU().
	Parallelism int
	// BatchSize is the number of fragments Run collapses at a time.
	BatchSize int
	// SkipMalformed causes fragments that fail to collapse to be logged and
	// dropped instead of aborting the run.
	SkipMalformed bool
}

// DefaultOpts is the default Opts.
var DefaultOpts = Opts{
	Parallelism: 0,
	BatchSize:   1 << 16,
}

// Stats counts the outcome of each fragment.
type Stats struct {
	Passthrough int64
	Contained   int64
	Dovetail    int64
	Canonical   int64
	// Singletons counts groups of one record, passed through as is.
	Singletons int64
	// Skipped counts fragments dropped under Opts.SkipMalformed.
	Skipped int64
}

// Add adds the counts in o to s.
func (s *Stats) Add(o Stats) {
	s.Passthrough += o.Passthrough
	s.Contained += o.Contained
	s.Dovetail += o.Dovetail
	s.Canonical += o.Canonical
	s.Singletons += o.Singletons
	s.Skipped += o.Skipped
}

// Fragments returns the total number of fragments counted in s.
func (s *Stats) Fragments() int64 {
	return s.Passthrough + s.Contained + s.Dovetail + s.Canonical + s.Singletons + s.Skipped
}

func (s *Stats) count(o Overlap) {
	switch o {
	case Passthrough:
		s.Passthrough++
	case Contained:
		s.Contained++
	case Dovetail:
		s.Dovetail++
	case Canonical:
		s.Canonical++
	}
}

func (o *Opts) parallelism() int {
	if o.Parallelism <= 0 {
		return runtime.NumCPU()
	}
	return o.Parallelism
}

// Fragments collapses each group of records with Fragment, in parallel.
// Groups with a single record are passed through unchanged.  The output
// preserves the order of groups.
//
// Unless opts.SkipMalformed is set, Fragments stops at the first group that
// fails and returns its error, along with the Stats of the groups that were
// processed.
func Fragments(groups [][]epiread.Record, opts Opts) ([]epiread.Record, Stats, error) {
	var stats Stats
	if len(groups) == 0 {
		return nil, stats, nil
	}
	parallelism := opts.parallelism()
	if parallelism > len(groups) {
		parallelism = len(groups)
	}
	results := make([][]epiread.Record, len(groups))
	errs := make([]error, len(groups))
	jobStats := make([]Stats, parallelism)

	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(groups)) / parallelism
		endIdx := ((jobIdx + 1) * len(groups)) / parallelism
		st := &jobStats[jobIdx]
		for i := startIdx; i < endIdx; i++ {
			if len(groups[i]) == 1 {
				results[i] = groups[i]
				st.Singletons++
				continue
			}
			recs, overlap, err := fragment(groups[i])
			if err != nil {
				if !opts.SkipMalformed {
					errs[i] = err
					return nil
				}
				logSkipped(err)
				st.Skipped++
				continue
			}
			results[i] = recs
			st.count(overlap)
		}
		return nil
	})
	for _, s := range jobStats {
		stats.Add(s)
	}
	if err != nil {
		return nil, stats, err
	}
	for _, e := range errs {
		if e != nil {
			return nil, stats, e
		}
	}
	n := 0
	for _, recs := range results {
		n += len(recs)
	}
	out := make([]epiread.Record, 0, n)
	for _, recs := range results {
		out = append(out, recs...)
	}
	return out, stats, nil
}

func logSkipped(err error) {
	if ae, ok := err.(*AssemblyError); ok {
		log.Error.Printf("skipping fragment %s: %s", ae.Read1.Name, ae.Diagnostic())
		return
	}
	log.Error.Printf("skipping fragment: %v", err)
}
