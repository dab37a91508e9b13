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
Package epiread defines the per-read methylation record produced by a
bisulfite-sequencing caller, and a tab-separated text encoding for it.

Each record covers a half-open genomic interval [Start, End) and carries one
call character per reference position in CpG (and, for assays that also call
GpC context, in GpC).  The text format has one record per line:

  chr  start  end  name  read_number  bs_strand  cpg  gpc

Coordinates are 0-based.  gpc is "." when the record has no GpC calls.  Lines
starting with '#' are ignored.
*/
package epiread
