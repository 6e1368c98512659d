// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package launchdash

// OutcomeCount is one labeled slice of an OutcomeBreakdown.
type OutcomeCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// OutcomeBreakdown is the ordered summary behind the pie chart. With the All
// selector each label is a launch site and each count the number of
// successful launches there. For a single site the labels are "Success" and
// "Failed".
type OutcomeBreakdown []OutcomeCount

// Total is the sum of all counts.
func (b OutcomeBreakdown) Total() int {
	n := 0
	for _, c := range b {
		n += c.Count
	}
	return n
}

// Labels returns the labels in order.
func (b OutcomeBreakdown) Labels() []string {
	ret := make([]string, len(b))
	for i, c := range b {
		ret[i] = c.Label
	}
	return ret
}

// Counts returns the counts in order.
func (b OutcomeBreakdown) Counts() []int {
	ret := make([]int, len(b))
	for i, c := range b {
		ret[i] = c.Count
	}
	return ret
}

// ComputeOutcomeBreakdown summarizes launch outcomes for site over the whole
// dataset. The payload range does not apply here, unlike
// ProjectCorrelation.
//
// For All it counts successful launches per site, listing only sites with at
// least one success, in the order of each site's first success. For a
// specific site it counts that site's successes and failures, omitting a zero
// count. An unknown site gives an empty breakdown.
func ComputeOutcomeBreakdown(d *Dataset, site string) OutcomeBreakdown {
	if site == All {
		return successesBySite(d.records)
	}
	return outcomesAt(d.records, site)
}

func successesBySite(rows []Record) OutcomeBreakdown {
	ret := make(OutcomeBreakdown, 0)
	idx := make(map[string]int)
	for _, rec := range rows {
		if rec.Class != Success {
			continue
		}
		i, ok := idx[rec.LaunchSite]
		if !ok {
			i = len(ret)
			idx[rec.LaunchSite] = i
			ret = append(ret, OutcomeCount{Label: rec.LaunchSite})
		}
		ret[i].Count++
	}
	return ret
}

func outcomesAt(rows []Record, site string) OutcomeBreakdown {
	var succeeded, failed int
	for _, rec := range FilterBySite(rows, site) {
		if rec.Class == Success {
			succeeded++
		} else {
			failed++
		}
	}
	ret := make(OutcomeBreakdown, 0, 2)
	if succeeded > 0 {
		ret = append(ret, OutcomeCount{Label: Success.String(), Count: succeeded})
	}
	if failed > 0 {
		ret = append(ret, OutcomeCount{Label: Failed.String(), Count: failed})
	}
	return ret
}
