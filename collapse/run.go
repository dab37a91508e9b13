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
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/epicollapse/encoding/epiread"
	"github.com/grailbio/hts/bgzf"
)

// Run reads epiread records from inPath, collapses every mate pair, and
// writes the result to outPath.  The input may be compressed in any format
// recognized by compress.NewReader.  If outPath ends in ".gz" the output is
// bgzf-compressed.
//
// Records are written in the order their fragment became complete, i.e.
// when the second mate was read.  Reads without a mate are written last.
func Run(ctx context.Context, inPath, outPath string, opts Opts) (stats Stats, err error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOpts.BatchSize
	}
	in, err := file.Open(ctx, inPath)
	if err != nil {
		return stats, errors.E(err, "couldn't open input:", inPath)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	reader, _ := compress.NewReader(in.Reader(ctx))
	defer func() {
		if e := reader.Close(); e != nil && err == nil {
			err = e
		}
	}()

	out, err := file.Create(ctx, outPath)
	if err != nil {
		return stats, errors.E(err, "couldn't create output:", outPath)
	}
	// The output is only committed if every fragment was collapsed.
	var bgzfWriter *bgzf.Writer
	var dst io.Writer = out.Writer(ctx)
	if strings.HasSuffix(outPath, ".gz") {
		bgzfWriter = bgzf.NewWriter(dst, opts.parallelism())
		dst = bgzfWriter
	}
	if stats, err = collapseStream(reader, dst, inPath, opts); err != nil {
		out.Discard(ctx)
		return stats, err
	}
	if bgzfWriter != nil {
		if err = bgzfWriter.Close(); err != nil {
			out.Discard(ctx)
			return stats, err
		}
	}
	if err = out.Close(ctx); err != nil {
		return stats, errors.E(err, "couldn't close output:", outPath)
	}
	log.Printf("collapse: %s: %d fragments (%d passthrough, %d contained, %d dovetail, %d canonical, %d singleton, %d skipped)",
		inPath, stats.Fragments(), stats.Passthrough, stats.Contained, stats.Dovetail, stats.Canonical, stats.Singletons, stats.Skipped)
	return stats, nil
}

// collapseStream pairs and collapses the records read from in, and writes the
// result to out.  name labels errors.
func collapseStream(in io.Reader, out io.Writer, name string, opts Opts) (stats Stats, err error) {
	w := epiread.NewWriter(out)
	var batch [][]epiread.Record
	flushBatch := func() error {
		recs, s, err := Fragments(batch, opts)
		stats.Add(s)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		batch = batch[:0]
		return nil
	}

	r := epiread.NewReader(in)
	pairer := NewPairer()
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, errors.E(err, name)
		}
		group, err := pairer.Add(rec)
		if err != nil {
			return stats, err
		}
		if group == nil {
			continue
		}
		batch = append(batch, group)
		if len(batch) >= opts.BatchSize {
			if err := flushBatch(); err != nil {
				return stats, err
			}
		}
	}
	if n := pairer.Pending(); n > 0 {
		log.Printf("collapse: %d reads in %s have no mate", n, name)
	}
	batch = append(batch, pairer.Flush()...)
	if err := flushBatch(); err != nil {
		return stats, err
	}
	return stats, w.Flush()
}
