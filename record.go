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

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Outcome is the class of a launch: 0 for a failed landing, 1 for a
// successful one.
type Outcome uint8

const (
	Failed  Outcome = 0
	Success Outcome = 1
)

// String returns the display label of the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case Failed:
		return "Failed"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Record is a single launch attempt. Records are never modified once they are
// part of a Dataset.
type Record struct {
	FlightNumber           int     `json:"flight_number,omitempty"`
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Class                  Outcome `json:"class"`
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Dataset is the immutable, in-memory table of launch records the dashboard
// is built on. It is safe for concurrent use by any number of readers.
type Dataset struct {
	records []Record
	sites   []string
	siteSet map[string]struct{}

	minPayload float64
	maxPayload float64
}

// NewDataset copies records into a new Dataset, computing the payload bounds
// and the distinct launch sites (in order of first appearance). It returns
// ErrInvalidDatasetState if records is empty.
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(ErrInvalidDatasetState, "no records")
	}
	d := &Dataset{
		records:    make([]Record, len(records)),
		siteSet:    make(map[string]struct{}),
		minPayload: records[0].PayloadMassKg,
		maxPayload: records[0].PayloadMassKg,
	}
	copy(d.records, records)
	for i, rec := range d.records {
		if rec.Class != Success && rec.Class != Failed {
			return nil, errors.Wrapf(ErrInvalidDatasetState, "record %d has class %d", i, rec.Class)
		}
		if math.IsNaN(rec.PayloadMassKg) || math.IsInf(rec.PayloadMassKg, 0) {
			return nil, errors.Wrapf(ErrInvalidDatasetState, "record %d has payload %v", i, rec.PayloadMassKg)
		}
		if rec.PayloadMassKg < d.minPayload {
			d.minPayload = rec.PayloadMassKg
		}
		if rec.PayloadMassKg > d.maxPayload {
			d.maxPayload = rec.PayloadMassKg
		}
		if _, ok := d.siteSet[rec.LaunchSite]; !ok {
			d.siteSet[rec.LaunchSite] = struct{}{}
			d.sites = append(d.sites, rec.LaunchSite)
		}
	}
	return d, nil
}

// MustNewDataset is like NewDataset but panics on error. It is intended for
// tests and fixed fixtures.
func MustNewDataset(records ...Record) *Dataset {
	d, err := NewDataset(records)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Record returns the i'th record.
func (d *Dataset) Record(i int) Record { return d.records[i] }

// Records returns a copy of every record in load order.
func (d *Dataset) Records() []Record {
	ret := make([]Record, len(d.records))
	copy(ret, d.records)
	return ret
}

// MinPayload is the smallest payload mass in the dataset.
func (d *Dataset) MinPayload() float64 { return d.minPayload }

// MaxPayload is the largest payload mass in the dataset.
func (d *Dataset) MaxPayload() float64 { return d.maxPayload }

// Bounds returns [MinPayload, MaxPayload] as a PayloadRange.
func (d *Dataset) Bounds() PayloadRange {
	return PayloadRange{Low: d.minPayload, High: d.maxPayload}
}

// Sites returns the distinct launch sites in order of first appearance.
func (d *Dataset) Sites() []string {
	ret := make([]string, len(d.sites))
	copy(ret, d.sites)
	return ret
}

// HasSite reports whether any record was launched from site.
func (d *Dataset) HasSite(site string) bool {
	_, ok := d.siteSet[site]
	return ok
}

// LaunchSites returns the launch site column.
func (d *Dataset) LaunchSites() []string {
	ret := make([]string, len(d.records))
	for i, rec := range d.records {
		ret[i] = rec.LaunchSite
	}
	return ret
}

// Payloads returns the payload mass column.
func (d *Dataset) Payloads() []float64 {
	ret := make([]float64, len(d.records))
	for i, rec := range d.records {
		ret[i] = rec.PayloadMassKg
	}
	return ret
}

// Classes returns the outcome column.
func (d *Dataset) Classes() []Outcome {
	ret := make([]Outcome, len(d.records))
	for i, rec := range d.records {
		ret[i] = rec.Class
	}
	return ret
}

// BoosterCategories returns the booster version category column.
func (d *Dataset) BoosterCategories() []string {
	ret := make([]string, len(d.records))
	for i, rec := range d.records {
		ret[i] = rec.BoosterVersionCategory
	}
	return ret
}
