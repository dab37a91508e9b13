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
bio-epiread-collapse merges the two mates of each read pair in an epiread
file into one record per fragment, so that methylation calls at positions
sequenced by both mates are counted once.

Sample usage:
bio-epiread-collapse \
    --out sample.collapsed.epiread.gz \
    sample.epiread.gz

The input is a tab-separated epiread file (see package
github.com/grailbio/epicollapse/encoding/epiread), optionally compressed.
Mates are matched by name and need not be adjacent.  Mates on different
chromosomes are written unchanged; all other pairs become a single record
with read_number 0.  Reads without a mate are written unchanged at the end.

A pair whose merged calls do not fill the merged interval indicates corrupt
input.  By default the tool prints both reads and exits with a non-zero
status; with --skip-malformed it logs the pair and continues.
*/
package main
