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

package test

import (
	"io/ioutil"
	"os"
	"reflect"
	"testing"

	"github.com/pilosa/launchdash"
)

// MustBe uses reflect.DeepEqual to assert that thing1 and thing2 are equal, and
// fails otherwise.
func MustBe(t *testing.T, thing1, thing2 interface{}, context ...string) {
	t.Helper()
	var ctx string
	if len(context) == 0 {
		ctx = ""
	} else {
		ctx = context[0] + ": "
	}
	if !reflect.DeepEqual(thing1, thing2) {
		t.Fatalf("%v'%#v' != '%#v'", ctx, thing1, thing2)
	}
}

// ErrNil asserts that the err is nil and fails otherwise.
func ErrNil(t *testing.T, err error, ctx string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%v: %v", ctx, err)
	}
}

// MustTempFile writes content to a new temporary file and returns its name.
// The file is removed when the test finishes.
func MustTempFile(t *testing.T, content string) string {
	t.Helper()
	f, err := ioutil.TempFile("", "launchdash")
	if err != nil {
		t.Fatalf("getting temp file: %v", err)
	}
	defer f.Close()
	n, err := f.WriteString(content)
	if err != nil || n != len(content) {
		t.Fatalf("writing temp file: %v, n: %v", err, n)
	}
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

// MustTempDir creates a temporary directory which is removed when the test
// finishes.
func MustTempDir(t *testing.T) string {
	t.Helper()
	d, err := ioutil.TempDir("", "launchdash")
	if err != nil {
		t.Fatalf("getting temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(d) })
	return d
}

// Records is a small set of launches from three sites.
func Records() []launchdash.Record {
	return []launchdash.Record{
		{FlightNumber: 1, LaunchSite: "CCAFS LC-40", PayloadMassKg: 0, Class: launchdash.Failed, BoosterVersion: "F9 v1.0  B0003", BoosterVersionCategory: "v1.0"},
		{FlightNumber: 2, LaunchSite: "CCAFS LC-40", PayloadMassKg: 525, Class: launchdash.Failed, BoosterVersion: "F9 v1.0  B0005", BoosterVersionCategory: "v1.0"},
		{FlightNumber: 6, LaunchSite: "VAFB SLC-4E", PayloadMassKg: 500, Class: launchdash.Failed, BoosterVersion: "F9 v1.1  B1003", BoosterVersionCategory: "v1.1"},
		{FlightNumber: 17, LaunchSite: "CCAFS LC-40", PayloadMassKg: 2034, Class: launchdash.Success, BoosterVersion: "F9 FT B1019", BoosterVersionCategory: "FT"},
		{FlightNumber: 20, LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Class: launchdash.Success, BoosterVersion: "F9 FT B1031.1", BoosterVersionCategory: "FT"},
		{FlightNumber: 22, LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, Class: launchdash.Success, BoosterVersion: "F9 FT B1029.1", BoosterVersionCategory: "FT"},
		{FlightNumber: 25, LaunchSite: "KSC LC-39A", PayloadMassKg: 5300, Class: launchdash.Failed, BoosterVersion: "F9 FT B1030", BoosterVersionCategory: "FT"},
		{FlightNumber: 40, LaunchSite: "KSC LC-39A", PayloadMassKg: 3600, Class: launchdash.Success, BoosterVersion: "F9 B4 B1041.1", BoosterVersionCategory: "B4"},
		{FlightNumber: 56, LaunchSite: "CCAFS SLC-40", PayloadMassKg: 5384, Class: launchdash.Success, BoosterVersion: "F9 B5  B1048.3", BoosterVersionCategory: "B5"},
		{FlightNumber: 57, LaunchSite: "CCAFS SLC-40", PayloadMassKg: 4200, Class: launchdash.Failed, BoosterVersion: "F9 B5  B1051.2", BoosterVersionCategory: "B5"},
	}
}

// Dataset builds a Dataset from Records.
func Dataset(t *testing.T) *launchdash.Dataset {
	t.Helper()
	d, err := launchdash.NewDataset(Records())
	ErrNil(t, err, "building dataset")
	return d
}

// CSV is Records written in the launch records CSV format.
const CSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,0,525.0,F9 v1.0  B0005,v1.0
6,VAFB SLC-4E,0,500.0,F9 v1.1  B1003,v1.1
17,CCAFS LC-40,1,2034.0,F9 FT B1019,FT
20,KSC LC-39A,1,2490.0,F9 FT B1031.1,FT
22,VAFB SLC-4E,1,9600.0,F9 FT B1029.1,FT
25,KSC LC-39A,0,5300.0,F9 FT B1030,FT
40,KSC LC-39A,1,3600.0,F9 B4 B1041.1,B4
56,CCAFS SLC-40,1,5384.0,F9 B5  B1048.3,B5
57,CCAFS SLC-40,0,4200.0,F9 B5  B1051.2,B5
`
