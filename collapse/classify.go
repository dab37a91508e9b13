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

import "github.com/grailbio/epicollapse/encoding/epiread"

// Overlap is the relative placement of the two mates of a fragment.
type Overlap int

const (
	// Passthrough means the mates are on different chromosomes.
	Passthrough Overlap = iota
	// Contained means mate 1's interval covers mate 2's.
	Contained
	// Dovetail means mate 2 starts before mate 1.
	Dovetail
	// Canonical means mate 1 starts at or before mate 2 and mate 2 ends
	// after mate 1.  The mates may overlap, abut, or leave a gap.
	Canonical
)

var overlapNames = [...]string{"passthrough", "contained", "dovetail", "canonical"}

func (o Overlap) String() string {
	if o < 0 || int(o) >= len(overlapNames) {
		return "unknown"
	}
	return overlapNames[o]
}

// Classify determines how mate 1 (r1) and mate 2 (r2) are placed relative to
// each other.  Equal start positions are resolved as if r1 were upstream.
func Classify(r1, r2 epiread.Record) Overlap {
	if r1.Chr != r2.Chr {
		return Passthrough
	}
	if r1.Start > r2.Start {
		return Dovetail
	}
	if r1.End >= r2.End {
		return Contained
	}
	return Canonical
}
