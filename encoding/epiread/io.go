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
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// row is the on-disk layout of a Record.
type row struct {
	Chr        string `tsv:"chr"`
	Start      int64  `tsv:"start"`
	End        int64  `tsv:"end"`
	Name       string `tsv:"name"`
	ReadNumber int64  `tsv:"read_number"`
	BsStrand   string `tsv:"bs_strand"`
	CpG        string `tsv:"cpg"`
	GpC        string `tsv:"gpc"`
}

// Reader reads records from the text format.  Every record returned by Read
// has passed Record.Validate.
type Reader struct {
	r *tsv.Reader
	n int
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	tr := tsv.NewReader(r)
	tr.Comment = '#'
	return &Reader{r: tr}
}

// Read returns the next record.  It returns io.EOF after the last record.
func (r *Reader) Read() (Record, error) {
	var raw row
	if err := r.r.Read(&raw); err != nil {
		if err == io.EOF {
			return Record{}, err
		}
		return Record{}, errors.Wrapf(err, "epiread: record %d", r.n+1)
	}
	r.n++
	rec, err := fromRow(&raw)
	if err != nil {
		return Record{}, errors.Wrapf(err, "epiread: record %d", r.n)
	}
	return rec, nil
}

// ReadAll reads records until EOF.
func (r *Reader) ReadAll() ([]Record, error) {
	var recs []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}

func fromRow(raw *row) (Record, error) {
	if raw.Start < 0 || raw.End < 0 {
		return Record{}, errors.Errorf("negative coordinate in [%d,%d)", raw.Start, raw.End)
	}
	if raw.ReadNumber < 0 || raw.ReadNumber > int64(Mate2) {
		return Record{}, errors.Errorf("invalid read number %d", raw.ReadNumber)
	}
	strand, err := ParseBsStrand(raw.BsStrand)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Chr:        raw.Chr,
		Start:      uint64(raw.Start),
		End:        uint64(raw.End),
		Name:       raw.Name,
		ReadNumber: uint8(raw.ReadNumber),
		BsStrand:   strand,
		CpG:        raw.CpG,
	}
	if raw.GpC != noGpC {
		rec.GpC = raw.GpC
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Writer writes records in the text format.  Callers must call Flush when
// done.
type Writer struct {
	w *tsv.Writer
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// Write appends one record.  Records with a GpC string of "." are rejected,
// since they could not be read back.
func (w *Writer) Write(r Record) error {
	if r.GpC == noGpC {
		return errors.Errorf("epiread: %s: GpC string %q is reserved for records without GpC calls", r.Name, noGpC)
	}
	w.w.WriteString(r.Chr)
	w.w.WriteString(strconv.FormatUint(r.Start, 10))
	w.w.WriteString(strconv.FormatUint(r.End, 10))
	w.w.WriteString(r.Name)
	w.w.WriteByte('0' + r.ReadNumber)
	w.w.WriteByte(byte(r.BsStrand))
	w.w.WriteString(r.CpG)
	if r.HasGpC() {
		w.w.WriteString(r.GpC)
	} else {
		w.w.WriteString(noGpC)
	}
	return w.w.EndLine()
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
