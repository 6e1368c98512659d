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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/test"
)

func TestNewDataset(t *testing.T) {
	d := test.Dataset(t)

	test.MustBe(t, d.Len(), 10, "len")
	test.MustBe(t, d.MinPayload(), 0.0, "min")
	test.MustBe(t, d.MaxPayload(), 9600.0, "max")
	test.MustBe(t, d.Bounds(), launchdash.PayloadRange{Low: 0, High: 9600}, "bounds")
	if diff := cmp.Diff([]string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}, d.Sites()); diff != "" {
		t.Fatalf("sites (-want +got):\n%s", diff)
	}
	if !d.HasSite("KSC LC-39A") || d.HasSite("XYZ") || d.HasSite(launchdash.All) {
		t.Fatalf("unexpected HasSite results")
	}
	if diff := cmp.Diff(test.Records(), d.Records()); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}
}

func TestDatasetIsolatedFromCaller(t *testing.T) {
	recs := test.Records()
	d, err := launchdash.NewDataset(recs)
	test.ErrNil(t, err, "building dataset")

	recs[0].LaunchSite = "changed"
	if d.Record(0).LaunchSite != "CCAFS LC-40" {
		t.Fatalf("dataset shares memory with input slice")
	}
	out := d.Records()
	out[1].PayloadMassKg = -1
	if d.Record(1).PayloadMassKg != 525 {
		t.Fatalf("dataset shares memory with Records result")
	}
	sites := d.Sites()
	sites[0] = "changed"
	if d.Sites()[0] != "CCAFS LC-40" {
		t.Fatalf("dataset shares memory with Sites result")
	}
}

func TestDatasetColumns(t *testing.T) {
	d := test.Dataset(t)
	recs := test.Records()
	sites, payloads, classes, cats := d.LaunchSites(), d.Payloads(), d.Classes(), d.BoosterCategories()
	for i, rec := range recs {
		if sites[i] != rec.LaunchSite || payloads[i] != rec.PayloadMassKg || classes[i] != rec.Class || cats[i] != rec.BoosterVersionCategory {
			t.Fatalf("column mismatch at %d", i)
		}
	}
}

func TestNewDatasetInvalid(t *testing.T) {
	tests := []struct {
		name string
		recs []launchdash.Record
	}{
		{name: "nil", recs: nil},
		{name: "empty", recs: []launchdash.Record{}},
		{name: "bad class", recs: []launchdash.Record{{LaunchSite: "a", Class: 2}}},
		{name: "nan payload", recs: []launchdash.Record{{LaunchSite: "a", PayloadMassKg: math.NaN()}}},
		{name: "inf payload", recs: []launchdash.Record{{LaunchSite: "a"}, {LaunchSite: "b", PayloadMassKg: math.Inf(1)}}},
		{name: "-inf payload", recs: []launchdash.Record{{LaunchSite: "a", PayloadMassKg: math.Inf(-1)}}},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			_, err := launchdash.NewDataset(tst.recs)
			if !launchdash.IsInvalidDatasetState(err) {
				t.Fatalf("expected invalid dataset state, got %v", err)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	test.MustBe(t, launchdash.Success.String(), "Success")
	test.MustBe(t, launchdash.Failed.String(), "Failed")
	test.MustBe(t, launchdash.Outcome(7).String(), "Outcome(7)")
}
