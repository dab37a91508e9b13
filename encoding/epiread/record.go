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
package epiread

import (
	"fmt"
	"math"
	"strings"

	"github.com/grailbio/base/errors"
)

// GapSymbol is the call placed at reference positions that neither mate of a
// fragment sequenced.  It is a regular member of the call alphabet and
// downstream consumers must treat it as "no call".
const GapSymbol = 'x'

// Gap returns n gap symbols.
func Gap(n int) string {
	return strings.Repeat(string(GapSymbol), n)
}

// Values of Record.ReadNumber.
const (
	// Collapsed marks a record that represents a whole fragment rather than
	// one mate.
	Collapsed uint8 = 0
	Mate1     uint8 = 1
	Mate2     uint8 = 2
)

// BsStrand identifies the bisulfite conversion strand of a read.
type BsStrand byte

const (
	// StrandUnknown is used when the caller could not assign a strand.
	StrandUnknown BsStrand = '.'
	// StrandC2T means C>T conversion (original top strand).
	StrandC2T BsStrand = '+'
	// StrandG2A means G>A conversion (original bottom strand).
	StrandG2A BsStrand = '-'
)

// ParseBsStrand parses the single character bs_strand column.
func ParseBsStrand(s string) (BsStrand, error) {
	if len(s) == 1 {
		switch b := BsStrand(s[0]); b {
		case StrandUnknown, StrandC2T, StrandG2A:
			return b, nil
		}
	}
	return StrandUnknown, errors.E(errors.Invalid, fmt.Sprintf("epiread: invalid bs_strand %q", s))
}

// Record is one read (or one collapsed fragment) with its methylation calls.
type Record struct {
	// Chr is the reference sequence name.
	Chr string
	// Start and End delimit the half-open interval [Start, End) covered by
	// the calls.
	Start, End uint64
	// Name is the template name shared by both mates.
	Name string
	// ReadNumber is Mate1 or Mate2 for a single read, Collapsed for a merged
	// fragment.
	ReadNumber uint8
	BsStrand   BsStrand
	// CpG holds one call per position in [Start, End).
	CpG string
	// GpC is either empty (no GpC calls) or aligned 1:1 with CpG.  The
	// one-call string "." is reserved by the text format for "no GpC calls"
	// and is invalid.
	GpC string
}

// HasGpC reports whether the record carries GpC calls.
func (r Record) HasGpC() bool { return r.GpC != "" }

// Len returns the interval length End-Start.
func (r Record) Len() uint64 { return r.End - r.Start }

// Validate checks the record's internal invariants.
func (r Record) Validate() error {
	if r.End <= r.Start {
		return errors.E(errors.Invalid, fmt.Sprintf("epiread: %s: empty interval [%d,%d)", r.Name, r.Start, r.End))
	}
	if r.End > math.MaxInt64 {
		return errors.E(errors.Invalid, fmt.Sprintf("epiread: %s: end %d exceeds %d", r.Name, r.End, int64(math.MaxInt64)))
	}
	if uint64(len(r.CpG)) != r.Len() {
		return errors.E(errors.Invalid, fmt.Sprintf("epiread: %s: interval [%d,%d) has length %d but CpG string has %d calls",
			r.Name, r.Start, r.End, r.Len(), len(r.CpG)))
	}
	if r.GpC == noGpC {
		return errors.E(errors.Invalid, fmt.Sprintf("epiread: %s: GpC string %q is reserved for records without GpC calls", r.Name, noGpC))
	}
	if r.HasGpC() && len(r.GpC) != len(r.CpG) {
		return errors.E(errors.Invalid, fmt.Sprintf("epiread: %s: GpC string has %d calls, CpG string has %d",
			r.Name, len(r.GpC), len(r.CpG)))
	}
	if r.ReadNumber > Mate2 {
		return errors.E(errors.Invalid, fmt.Sprintf("epiread: %s: invalid read number %d", r.Name, r.ReadNumber))
	}
	return nil
}

// String returns the record as a line of the text format, without the
// trailing newline.
func (r Record) String() string {
	gpc := r.GpC
	if gpc == "" {
		gpc = noGpC
	}
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t%c\t%s\t%s",
		r.Chr, r.Start, r.End, r.Name, r.ReadNumber, r.BsStrand, r.CpG, gpc)
}

// noGpC is the gpc column value of a record without GpC calls.
const noGpC = "."
