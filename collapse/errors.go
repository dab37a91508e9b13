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
	"strings"

	"github.com/grailbio/epicollapse/encoding/epiread"
)

// AssemblyError reports a merged fragment whose interval length disagrees
// with the length of its merged call strings.  It only happens when the
// source records are inconsistent, e.g. a call string shorter than its
// interval.
type AssemblyError struct {
	// Read1 and Read2 are the source records, mate 1 first.
	Read1, Read2 epiread.Record
	// Start and End are the merged interval.
	Start, End uint64
	// CpGLen and GpCLen are the lengths of the merged call strings.  GpCLen
	// is zero when the mates have no GpC calls.
	CpGLen, GpCLen int
}

// Error implements error.
func (e *AssemblyError) Error() string {
	msg := fmt.Sprintf("collapse: malformed collapsed fragment %s: interval [%d,%d) has length %d, merged CpG string has %d calls",
		e.Read1.Name, e.Start, e.End, e.End-e.Start, e.CpGLen)
	if e.Read1.HasGpC() {
		msg += fmt.Sprintf(", merged GpC string has %d calls", e.GpCLen)
	}
	return msg
}

// Diagnostic returns a multi-line description of the error that includes
// both source records in the epiread text format.
func (e *AssemblyError) Diagnostic() string {
	var b strings.Builder
	b.WriteString("Malformed collapsed fragment.\n")
	fmt.Fprintf(&b, "Read 1: %v\n", e.Read1)
	fmt.Fprintf(&b, "Read 2: %v", e.Read2)
	return b.String()
}

// IsAssemblyError reports whether err is an *AssemblyError.
func IsAssemblyError(err error) bool {
	_, ok := err.(*AssemblyError)
	return ok
}

// checkAssembly verifies that the merged record's calls fill its interval.
func checkAssembly(r1, r2, merged epiread.Record) error {
	n := merged.Len()
	if uint64(len(merged.CpG)) == n && (!merged.HasGpC() || uint64(len(merged.GpC)) == n) {
		return nil
	}
	return &AssemblyError{
		Read1:  r1,
		Read2:  r2,
		Start:  merged.Start,
		End:    merged.End,
		CpGLen: len(merged.CpG),
		GpCLen: len(merged.GpC),
	}
}
