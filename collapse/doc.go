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

/*
Package collapse merges the two mates of a bisulfite-sequencing read pair into
one fragment record, so that positions covered by both mates contribute a
single methylation call downstream.

Given mate 1 (R1) and mate 2 (R2) of one fragment, the outcome depends only on
the chromosomes and intervals of the two reads:

  Passthrough: R1 and R2 are on different chromosomes.  Both are returned
               unchanged.

  Contained:   R1.Start <= R2.Start and R1.End >= R2.End.

                 R1 |-----------------|
                 R2     |--------|

               R1 is returned with ReadNumber 0; R2's calls are dropped.

  Canonical:   R1.Start <= R2.Start and R1.End < R2.End.

                 R1 |----------|            R1 |------|
                 R2       |---------|       R2           |------|

               The calls of R1 are kept over the overlap.  A gap between the
               reads is filled with epiread.GapSymbol.

  Dovetail:    R1.Start > R2.Start; the mates cross over each other.

                 R1       |---------|       R1           |------|
                 R2 |----------|            R2 |------|

               R2 contributes the positions before R1.Start (and after R1.End,
               if it extends that far); R1's calls are kept everywhere else.

Every merged record must satisfy End-Start == len(CpG).  A violation means the
input records were inconsistent, and is reported as an *AssemblyError
carrying both source records.  Whether that aborts the run or only drops the
fragment is up to the caller; see Opts.SkipMalformed.
*/
package collapse
