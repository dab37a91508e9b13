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
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/epicollapse/encoding/epiread"
)

// pendingMate is a read whose mate has not been seen yet.
type pendingMate struct {
	rec epiread.Record
	seq int
}

// Pairer groups a stream of records into fragments.  Mates need not be
// adjacent in the stream, but every pending mate is held in memory until its
// partner arrives, and the name of every completed pair is kept so that a
// third read of a fragment is caught.
type Pairer struct {
	pending map[string]pendingMate
	paired  map[string]struct{}
	seq     int
}

// NewPairer creates an empty Pairer.
func NewPairer() *Pairer {
	return &Pairer{
		pending: map[string]pendingMate{},
		paired:  map[string]struct{}{},
	}
}

// Add adds a record to the pairer.  It returns a non-nil group when the group
// is complete: both mates of a pair, or a single record that was already
// collapsed.
func (p *Pairer) Add(r epiread.Record) ([]epiread.Record, error) {
	p.seq++
	if r.ReadNumber == epiread.Collapsed {
		return []epiread.Record{r}, nil
	}
	if _, ok := p.paired[r.Name]; ok {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("collapse: fragment %s has more than two reads", r.Name))
	}
	mate, ok := p.pending[r.Name]
	if !ok {
		p.pending[r.Name] = pendingMate{rec: r, seq: p.seq}
		return nil, nil
	}
	if mate.rec.ReadNumber == r.ReadNumber {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("collapse: fragment %s has two reads with read number %d", r.Name, r.ReadNumber))
	}
	delete(p.pending, r.Name)
	p.paired[r.Name] = struct{}{}
	return []epiread.Record{mate.rec, r}, nil
}

// Pending returns the number of reads waiting for their mate.
func (p *Pairer) Pending() int { return len(p.pending) }

// Flush returns the reads whose mate never arrived, one group per read, in
// the order they were added.  The pairer is empty afterwards, and forgets the
// fragments it has paired.
func (p *Pairer) Flush() [][]epiread.Record {
	mates := make([]pendingMate, 0, len(p.pending))
	for _, m := range p.pending {
		mates = append(mates, m)
	}
	sort.Slice(mates, func(i, j int) bool { return mates[i].seq < mates[j].seq })
	groups := make([][]epiread.Record, len(mates))
	for i, m := range mates {
		groups[i] = []epiread.Record{m.rec}
	}
	p.pending = map[string]pendingMate{}
	p.paired = map[string]struct{}{}
	return groups
}
