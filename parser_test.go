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
	"encoding/json"
	"strings"
	"testing"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/test"
)

func TestRecordParser(t *testing.T) {
	p := launchdash.NewRecordParser()
	want := launchdash.Record{
		FlightNumber:           17,
		LaunchSite:             "CCAFS LC-40",
		PayloadMassKg:          2034,
		Class:                  launchdash.Success,
		BoosterVersion:         "F9 FT B1019",
		BoosterVersionCategory: "FT",
	}

	tests := []struct {
		name string
		data interface{}
	}{
		{name: "record", data: want},
		{name: "pointer", data: &want},
		{
			name: "strings",
			data: map[string]string{
				"Flight Number":            "17",
				"Launch Site":              "CCAFS LC-40",
				"class":                    "1",
				"Payload Mass (kg)":        "2034.0",
				"Booster Version":          "F9 FT B1019",
				"Booster Version Category": "FT",
			},
		},
		{
			name: "interfaces",
			data: map[string]interface{}{
				"Flight Number":            17,
				"Launch Site":              "CCAFS LC-40",
				"class":                    int32(1),
				"Payload Mass (kg)":        json.Number("2034"),
				"Booster Version":          "F9 FT B1019",
				"Booster Version Category": "FT",
			},
		},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			got, err := p.Parse(tst.data)
			test.ErrNil(t, err, "parsing")
			test.MustBe(t, got, want)
		})
	}
}

func TestRecordParserOptionalColumns(t *testing.T) {
	p := launchdash.NewRecordParser()
	got, err := p.Parse(map[string]string{
		"Launch Site":              "KSC LC-39A",
		"class":                    "0",
		"Payload Mass (kg)":        "5300",
		"Booster Version Category": "FT",
	})
	test.ErrNil(t, err, "parsing")
	test.MustBe(t, got, launchdash.Record{LaunchSite: "KSC LC-39A", PayloadMassKg: 5300, Class: launchdash.Failed, BoosterVersionCategory: "FT"})
}

func TestRecordParserErrors(t *testing.T) {
	p := launchdash.NewRecordParser()
	base := func() map[string]string {
		return map[string]string{
			"Launch Site":              "KSC LC-39A",
			"class":                    "0",
			"Payload Mass (kg)":        "5300",
			"Booster Version Category": "FT",
		}
	}

	missing := base()
	delete(missing, "Payload Mass (kg)")
	_, err := p.Parse(missing)
	if !launchdash.IsInvalidDatasetState(err) {
		t.Fatalf("missing column should be invalid dataset state, got %v", err)
	}

	badClass := base()
	badClass["class"] = "2"
	if _, err := p.Parse(badClass); err == nil || !strings.Contains(err.Error(), "class must be 0 or 1") {
		t.Fatalf("unexpected error for bad class: %v", err)
	}

	badPayload := base()
	badPayload["Payload Mass (kg)"] = "heavy"
	if _, err := p.Parse(badPayload); err == nil || !strings.Contains(err.Error(), "Payload Mass (kg)") {
		t.Fatalf("unexpected error for bad payload: %v", err)
	}

	if _, err := p.Parse(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	var nilRec *launchdash.Record
	if _, err := p.Parse(nilRec); err == nil {
		t.Fatalf("expected error for nil record")
	}
}
