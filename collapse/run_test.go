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
package collapse_test

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/epicollapse/collapse"
	"github.com/grailbio/epicollapse/encoding/epiread"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const runInput = `# chr	start	end	name	read_number	bs_strand	cpg	gpc
chr1	100	110	canon	1	+	CCCCCCCCCC	.
chr1	95	105	dove	2	-	xxxxxZZZZZ	.
chr1	105	115	canon	2	+	TTTTTTTTTT	.
chr1	30	40	gap	2	+	BBBBBBBBBB	.
chr1	100	110	dove	1	-	ZZZZZZZZZZ	.
chr2	500	502	lonely	1	+	CT	.
chr1	50	60	gap	1	+	AAAAAAAAAA	.
chr1	7	9	done	0	+	CC	TT
chr1	200	210	cont	1	+	CCCCCCCCCC	GGGGGGGGGG
chr1	202	208	cont	2	+	TTTTTT	AAAAAA
`

const runOutput = `chr1	100	115	canon	0	+	CCCCCCCCCCTTTTT	.
chr1	95	110	dove	0	-	xxxxxZZZZZZZZZZ	.
chr1	30	60	gap	0	+	BBBBBBBBBBxxxxxxxxxxAAAAAAAAAA	.
chr1	7	9	done	0	+	CC	TT
chr1	200	210	cont	0	+	CCCCCCCCCC	GGGGGGGGGG
chr2	500	502	lonely	1	+	CT	.
`

func writeInput(t *testing.T, dir, data string) string {
	path := filepath.Join(dir, "in.epiread")
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func TestRun(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()
	inPath := writeInput(t, tempDir, runInput)

	for _, batchSize := range []int{1, 2, 100} {
		outPath := filepath.Join(tempDir, "out.epiread")
		stats, err := collapse.Run(ctx, inPath, outPath, collapse.Opts{Parallelism: 2, BatchSize: batchSize})
		assert.NoError(t, err)
		expect.EQ(t, stats, collapse.Stats{Canonical: 1, Dovetail: 2, Contained: 1, Singletons: 2})
		got, err := ioutil.ReadFile(outPath)
		assert.NoError(t, err)
		expect.EQ(t, string(got), runOutput, "batch size %d", batchSize)
	}
}

func TestRunGzip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()
	inPath := writeInput(t, tempDir, runInput)
	outPath := filepath.Join(tempDir, "out.epiread.gz")
	_, err := collapse.Run(ctx, inPath, outPath, collapse.DefaultOpts)
	assert.NoError(t, err)

	f, err := os.Open(outPath)
	assert.NoError(t, err)
	defer f.Close()
	r, _ := compress.NewReader(f)
	defer r.Close()
	recs, err := epiread.NewReader(r).ReadAll()
	assert.NoError(t, err)
	want, err := epiread.NewReader(strings.NewReader(runOutput)).ReadAll()
	assert.NoError(t, err)
	expect.EQ(t, recs, want)
}

func TestRunInvalidRecord(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	inPath := writeInput(t, tempDir, runInput+"chr1\t300\t310\tbad\t1\t+\tCC\t.\n")
	_, err := collapse.Run(context.Background(), inPath, filepath.Join(tempDir, "out.epiread"), collapse.DefaultOpts)
	assert.HasSubstr(t, err.Error(), "record 11")
	assert.HasSubstr(t, err.Error(), "CpG string has 2 calls")
}

func TestRunDuplicateMate(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	inPath := writeInput(t, tempDir, "chr1\t1\t2\tx\t1\t+\tC\t.\nchr1\t1\t2\tx\t1\t+\tC\t.\n")
	_, err := collapse.Run(context.Background(), inPath, filepath.Join(tempDir, "out"), collapse.DefaultOpts)
	assert.HasSubstr(t, err.Error(), "two reads with read number 1")
}

// truncatedRunInput returns n valid pairs followed by a duplicate mate 1 of
// the last pair.
func truncatedRunInput(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "chr1\t%d\t%d\tp%d\t1\t+\tCCCCCCCCCC\t.\n", i*100, i*100+10, i)
		fmt.Fprintf(&b, "chr1\t%d\t%d\tp%d\t2\t+\tTTTTTTTTTT\t.\n", i*100+4, i*100+14, i)
	}
	fmt.Fprintf(&b, "chr1\t%d\t%d\tp%d\t1\t+\tCCCCCCCCCC\t.\n", (n-1)*100, (n-1)*100+10, n-1)
	return b.String()
}

func TestRunDiscardsOutputOnError(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()
	inPath := writeInput(t, tempDir, truncatedRunInput(2000))
	for _, name := range []string{"out.epiread", "out.epiread.gz"} {
		outPath := filepath.Join(tempDir, name)
		_, err := collapse.Run(ctx, inPath, outPath, collapse.Opts{Parallelism: 2, BatchSize: 100})
		assert.HasSubstr(t, err.Error(), "fragment p1999 has more than two reads")
		_, err = os.Stat(outPath)
		expect.True(t, os.IsNotExist(err), "%s: got %v", name, err)
	}
}

func TestRunThirdRead(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	inPath := writeInput(t, tempDir, runInput+"chr1\t500\t501\tcanon\t1\t+\tC\t.\n")
	outPath := filepath.Join(tempDir, "out.epiread")
	_, err := collapse.Run(context.Background(), inPath, outPath, collapse.DefaultOpts)
	assert.HasSubstr(t, err.Error(), "fragment canon has more than two reads")
	_, err = os.Stat(outPath)
	expect.True(t, os.IsNotExist(err), "got %v", err)
}
