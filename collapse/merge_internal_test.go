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
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestPrefixSuffix(t *testing.T) {
	for _, test := range []struct {
		s              string
		n              uint64
		prefix, suffix string
	}{
		{"ACGT", 0, "", "ACGT"},
		{"ACGT", 1, "A", "CGT"},
		{"ACGT", 4, "ACGT", ""},
		{"ACGT", 9, "ACGT", ""},
		{"", 2, "", ""},
	} {
		expect.EQ(t, prefix(test.s, test.n), test.prefix)
		expect.EQ(t, suffix(test.s, test.n), test.suffix)
	}
}

func TestStatsAdd(t *testing.T) {
	var s Stats
	for _, o := range []Overlap{Passthrough, Contained, Contained, Dovetail, Canonical, Canonical, Canonical} {
		s.count(o)
	}
	s.Add(Stats{Singletons: 2, Skipped: 1, Dovetail: 1})
	expect.EQ(t, s, Stats{Passthrough: 1, Contained: 2, Dovetail: 2, Canonical: 3, Singletons: 2, Skipped: 1})
	expect.EQ(t, s.Fragments(), int64(11))
}
