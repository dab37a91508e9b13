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

// ResolveMates returns the mate 1 and mate 2 records of a fragment.  reads
// must hold exactly two records with the same name, numbered 1 and 2 in any
// order.
func ResolveMates(reads []epiread.Record) (r1, r2 epiread.Record, err error) {
	if len(reads) != 2 {
		return r1, r2, errors.E(errors.Invalid, fmt.Sprintf("collapse: fragment has %d reads, want 2", len(reads)))
	}
	if reads[0].ReadNumber == epiread.Mate1 {
		r1, r2 = reads[0], reads[1]
	} else {
		r1, r2 = reads[1], reads[0]
	}
	if r1.ReadNumber != epiread.Mate1 || r2.ReadNumber != epiread.Mate2 {
		return r1, r2, errors.E(errors.Invalid, fmt.Sprintf("collapse: fragment %s has read numbers %d and %d, want 1 and 2",
			reads[0].Name, reads[0].ReadNumber, reads[1].ReadNumber))
	}
	if r1.Name != r2.Name {
		return r1, r2, errors.E(errors.Invalid, fmt.Sprintf("collapse: mates have different names %s and %s", r1.Name, r2.Name))
	}
	return r1, r2, nil
}
