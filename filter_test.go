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

package launchdash_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/test"
)

func flightNumbers(recs []launchdash.Record) []int {
	ret := make([]int, len(recs))
	for i, rec := range recs {
		ret[i] = rec.FlightNumber
	}
	return ret
}

func TestFilterByRange(t *testing.T) {
	recs := test.Records()
	tests := []struct {
		r   launchdash.PayloadRange
		exp []int
	}{
		{r: launchdash.PayloadRange{Low: 0, High: 9600}, exp: []int{1, 2, 6, 17, 20, 22, 25, 40, 56, 57}},
		{r: launchdash.PayloadRange{Low: 500, High: 2490}, exp: []int{2, 6, 17, 20}},
		{r: launchdash.PayloadRange{Low: 525, High: 525}, exp: []int{2}},
		{r: launchdash.PayloadRange{Low: -1e9, High: 1e9}, exp: []int{1, 2, 6, 17, 20, 22, 25, 40, 56, 57}},
		{r: launchdash.PayloadRange{Low: 9601, High: 20000}, exp: []int{}},
		{r: launchdash.PayloadRange{Low: 3000, High: 2000}, exp: []int{}},
		{r: launchdash.PayloadRange{Low: math.NaN(), High: 2000}, exp: []int{}},
	}
	for i, tst := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			got := flightNumbers(launchdash.FilterByRange(recs, tst.r))
			if diff := cmp.Diff(tst.exp, got); diff != "" {
				t.Fatalf("range %+v (-want +got):\n%s", tst.r, diff)
			}
		})
	}
}

func TestFilterBySite(t *testing.T) {
	recs := test.Records()
	test.MustBe(t, flightNumbers(launchdash.FilterBySite(recs, "KSC LC-39A")), []int{20, 25, 40})
	test.MustBe(t, flightNumbers(launchdash.FilterBySite(recs, "XYZ")), []int{})
	test.MustBe(t, flightNumbers(launchdash.FilterBySite(recs, "")), []int{})

	all := launchdash.FilterBySite(recs, launchdash.All)
	if len(all) != len(recs) || &all[0] != &recs[0] {
		t.Fatalf("ALL should return the input unchanged")
	}
}

func TestFilterOrderIndependent(t *testing.T) {
	d := test.Dataset(t)
	recs := d.Records()
	sites := append(d.Sites(), launchdash.All, "XYZ")
	ranges := []launchdash.PayloadRange{
		{Low: 0, High: 9600},
		{Low: 500, High: 4200},
		{Low: 2490, High: 2490},
		{Low: 5000, High: 100},
	}
	for _, site := range sites {
		for _, r := range ranges {
			a := launchdash.FilterBySite(launchdash.FilterByRange(recs, r), site)
			b := launchdash.FilterByRange(launchdash.FilterBySite(recs, site), r)
			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("site %s range %+v (-range-first +site-first):\n%s", site, r, diff)
			}
		}
	}
}

func TestPayloadRangeClamp(t *testing.T) {
	bounds := launchdash.PayloadRange{Low: 0, High: 9600}
	test.MustBe(t, launchdash.PayloadRange{Low: -5, High: 20000}.Clamp(bounds), bounds)
	test.MustBe(t, launchdash.PayloadRange{Low: 100, High: 200}.Clamp(bounds), launchdash.PayloadRange{Low: 100, High: 200})
	if !(launchdash.PayloadRange{Low: 10000, High: 20000}).Clamp(bounds).Empty() {
		t.Fatalf("range above bounds should clamp to empty")
	}
}
