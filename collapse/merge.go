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
	"github.com/grailbio/epicollapse/encoding/epiread"
)

// joinFunc combines one call string of mate 1 (c1) with the matching call
// string of mate 2 (c2).  The same joinFunc is applied to the CpG strings and
// to the GpC strings, so both get identical index arithmetic.
type joinFunc func(c1, c2 string) string

// mergeDovetail merges mates where r2 starts before r1.
func mergeDovetail(r1, r2 epiread.Record) (epiread.Record, error) {
	start, end := r2.Start, r1.End
	var join joinFunc
	if r2.End > r1.Start {
		// Number of r2 positions before r1.Start.
		diff := r1.Start - r2.Start
		if r2.End > r1.End {
			end = r2.End
			tail := diff + uint64(len(r1.CpG))
			join = func(c1, c2 string) string {
				return prefix(c2, diff) + c1 + suffix(c2, tail)
			}
		} else {
			join = func(c1, c2 string) string {
				return prefix(c2, diff) + c1
			}
		}
	} else {
		pad := epiread.Gap(int(r1.Start - r2.End))
		join = func(c1, c2 string) string {
			return c2 + pad + c1
		}
	}
	return assemble(r1, r2, start, end, join)
}

// mergeCanonical merges mates where r1 starts at or before r2 and r2 ends
// after r1.
func mergeCanonical(r1, r2 epiread.Record) (epiread.Record, error) {
	var join joinFunc
	if r2.Start > r1.End {
		pad := epiread.Gap(int(r2.Start - r1.End))
		join = func(c1, c2 string) string {
			return c1 + pad + c2
		}
	} else {
		// r1 wins over the overlap.
		diff := r1.End - r2.Start
		join = func(c1, c2 string) string {
			return c1 + suffix(c2, diff)
		}
	}
	return assemble(r1, r2, r1.Start, r2.End, join)
}

// assemble builds the merged record over [start, end) and validates it.
// Everything but the interval and the calls is copied from r1.
func assemble(r1, r2 epiread.Record, start, end uint64, join joinFunc) (epiread.Record, error) {
	merged := epiread.Record{
		Chr:        r1.Chr,
		Start:      start,
		End:        end,
		Name:       r1.Name,
		ReadNumber: epiread.Collapsed,
		BsStrand:   r1.BsStrand,
		CpG:        join(r1.CpG, r2.CpG),
	}
	if r1.HasGpC() {
		merged.GpC = join(r1.GpC, r2.GpC)
	}
	if err := checkAssembly(r1, r2, merged); err != nil {
		return epiread.Record{}, err
	}
	return merged, nil
}

// prefix returns the first n bytes of s, or s if it is shorter.  Truncated
// call strings are left for checkAssembly to report.
func prefix(s string, n uint64) string {
	if n >= uint64(len(s)) {
		return s
	}
	return s[:n]
}

// suffix returns s with the first n bytes removed.
func suffix(s string, n uint64) string {
	if n >= uint64(len(s)) {
		return ""
	}
	return s[n:]
}
