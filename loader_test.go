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
	"io"
	"strings"
	"testing"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/mock"
	"github.com/pilosa/launchdash/test"
	"github.com/pkg/errors"
)

// sliceSource returns each of its values in turn, then io.EOF.
func sliceSource(vals ...interface{}) launchdash.Source {
	i := 0
	return launchdash.SourceFunc(func() (interface{}, error) {
		if i >= len(vals) {
			return nil, io.EOF
		}
		i++
		if err, ok := vals[i-1].(error); ok {
			return nil, err
		}
		return vals[i-1], nil
	})
}

// row is a CSV-style record at KSC LC-39A.
func row(class, payload string) map[string]string {
	return map[string]string{
		"Launch Site":              "KSC LC-39A",
		"class":                    class,
		"Payload Mass (kg)":        payload,
		"Booster Version Category": "FT",
	}
}

func TestLoader(t *testing.T) {
	vals := make([]interface{}, 0)
	for _, rec := range test.Records() {
		vals = append(vals, rec)
	}
	stats := &mock.RecordingStatter{}
	l := launchdash.NewLoader(sliceSource(vals...), nil)
	l.Stats = stats

	d, err := l.Run()
	test.ErrNil(t, err, "loading")
	test.MustBe(t, d.Records(), test.Records())
	test.MustBe(t, stats.Counts["records.loaded"], int64(10))
	test.MustBe(t, stats.Gauges["dataset.sites"], 4.0)
	if _, ok := stats.Timings["load.duration"]; !ok {
		t.Fatalf("expected load.duration timing")
	}
}

func TestLoaderFailures(t *testing.T) {
	good := test.Records()[0]
	tests := []struct {
		name    string
		src     launchdash.Source
		invalid bool
		expErr  string
	}{
		{name: "empty", src: sliceSource(), invalid: true, expErr: "no records"},
		{name: "source error", src: sliceSource(good, errors.New("connection reset")), expErr: "reading record 1: connection reset"},
		{name: "parse error", src: sliceSource(good, map[string]string{"Launch Site": "x"}), invalid: true, expErr: "parsing record 1"},
		{name: "bad type", src: sliceSource("nope"), expErr: "unsupported record type"},
		{name: "bad class", src: sliceSource(good, row("2", "5300")), invalid: true, expErr: "class must be 0 or 1, got 2"},
		{name: "infinite payload", src: sliceSource(good, row("1", "Inf")), invalid: true, expErr: "record 1 has payload +Inf"},
		{name: "negative infinite payload", src: sliceSource(row("0", "-Inf"), good), invalid: true, expErr: "record 0 has payload -Inf"},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			stats := &mock.RecordingStatter{}
			l := launchdash.NewLoader(tst.src, nil)
			l.Stats = stats
			d, err := l.Run()
			if err == nil || d != nil {
				t.Fatalf("expected failure, got %v, %v", d, err)
			}
			if !strings.Contains(err.Error(), tst.expErr) {
				t.Fatalf("error %q doesn't contain %q", err, tst.expErr)
			}
			if launchdash.IsInvalidDatasetState(err) != tst.invalid {
				t.Fatalf("IsInvalidDatasetState(%v) != %v", err, tst.invalid)
			}
		})
	}
}

func TestLoadCustomColumns(t *testing.T) {
	p := &launchdash.RecordParser{Columns: launchdash.Columns{
		LaunchSite:             "site",
		PayloadMassKg:          "kg",
		Class:                  "ok",
		BoosterVersionCategory: "booster",
	}}
	src := sliceSource(
		map[string]interface{}{"site": "A", "kg": 10.0, "ok": 1.0, "booster": "FT"},
		map[string]interface{}{"site": "B", "kg": 20.0, "ok": 0.0, "booster": "B5"},
	)
	d, err := launchdash.NewLoader(src, p).Run()
	test.ErrNil(t, err, "loading")
	test.MustBe(t, d.Sites(), []string{"A", "B"})
	test.MustBe(t, d.Bounds(), launchdash.PayloadRange{Low: 10, High: 20})
}

func TestRecordSource(t *testing.T) {
	src := launchdash.NewRecordSource(test.Records()[:2])
	for i := 0; i < 2; i++ {
		rec, err := src.Record()
		test.ErrNil(t, err, "getting record")
		test.MustBe(t, rec, test.Records()[i])
	}
	_, err := src.Record()
	test.MustBe(t, err, io.EOF)
}
