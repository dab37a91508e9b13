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
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/epicollapse/encoding/epiread"
)

// Fragment collapses the two reads of one fragment.  reads holds mate 1 and
// mate 2 in any order.  The result is either both reads unchanged, mate 1
// first (mates on different chromosomes), or a single record with
// ReadNumber epiread.Collapsed.
//
// Fragment returns an *AssemblyError if the merged record is inconsistent,
// and an errors.Invalid or errors.Precondition error if reads is not a
// well-formed mate pair.  It does not modify reads.
func Fragment(reads []epiread.Record) ([]epiread.Record, error) {
	recs, _, err := fragment(reads)
	return recs, err
}

func fragment(reads []epiread.Record) ([]epiread.Record, Overlap, error) {
	r1, r2, err := ResolveMates(reads)
	if err != nil {
		return nil, 0, err
	}
	overlap := Classify(r1, r2)
	var merged epiread.Record
	switch overlap {
	case Passthrough:
		return []epiread.Record{r1, r2}, overlap, nil
	case Contained:
		r1.ReadNumber = epiread.Collapsed
		return []epiread.Record{r1}, overlap, nil
	case Dovetail:
		if err = checkGpC(r1, r2); err == nil {
			merged, err = mergeDovetail(r1, r2)
		}
	case Canonical:
		if err = checkGpC(r1, r2); err == nil {
			merged, err = mergeCanonical(r1, r2)
		}
	}
	if err != nil {
		return nil, overlap, err
	}
	return []epiread.Record{merged}, overlap, nil
}

// checkGpC requires that both mates or neither carry GpC calls.
func checkGpC(r1, r2 epiread.Record) error {
	if r1.HasGpC() == r2.HasGpC() {
		return nil
	}
	return errors.E(errors.Precondition, fmt.Sprintf("collapse: fragment %s: only one mate has GpC calls (read 1: %v, read 2: %v)",
		r1.Name, r1.HasGpC(), r2.HasGpC()))
}
