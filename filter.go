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

import "math"

// All is the site selector which matches every launch site.
const All = "ALL"

// PayloadRange is an inclusive [Low, High] payload mass interval in kg.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Empty reports whether no payload can fall in the range.
func (r PayloadRange) Empty() bool {
	return math.IsNaN(r.Low) || math.IsNaN(r.High) || r.Low > r.High
}

// Contains reports whether payload lies within [Low, High].
func (r PayloadRange) Contains(payload float64) bool {
	return payload >= r.Low && payload <= r.High
}

// Clamp narrows r to lie within bounds. An empty range stays empty.
func (r PayloadRange) Clamp(bounds PayloadRange) PayloadRange {
	if r.Low < bounds.Low {
		r.Low = bounds.Low
	}
	if r.High > bounds.High {
		r.High = bounds.High
	}
	return r
}

// FilterByRange returns the rows whose payload lies in r. An empty range
// selects nothing. Bounds outside the data behave as if clamped to it.
func FilterByRange(rows []Record, r PayloadRange) []Record {
	ret := make([]Record, 0)
	if r.Empty() {
		return ret
	}
	for _, rec := range rows {
		if r.Contains(rec.PayloadMassKg) {
			ret = append(ret, rec)
		}
	}
	return ret
}

// FilterBySite returns the rows launched from site. If site is All, rows is
// returned unchanged. A site which doesn't appear selects nothing.
func FilterBySite(rows []Record, site string) []Record {
	if site == All {
		return rows
	}
	ret := make([]Record, 0)
	for _, rec := range rows {
		if rec.LaunchSite == site {
			ret = append(ret, rec)
		}
	}
	return ret
}
