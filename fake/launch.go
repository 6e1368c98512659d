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

package fake

import (
	"fmt"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/fake/gen"
)

// Sites are the launch sites generated launches come from, most frequent
// first.
var Sites = []string{"CCAFS SLC-40", "KSC LC-39A", "CCAFS LC-40", "VAFB SLC-4E"}

// era is a booster version category and the flights it was used for.
type era struct {
	category   string
	lastFlight int
	minPayload float64
	maxPayload float64
	success    float64
}

var eras = []era{
	{category: "v1.0", lastFlight: 5, minPayload: 0, maxPayload: 600, success: 0.05},
	{category: "v1.1", lastFlight: 20, minPayload: 500, maxPayload: 4600, success: 0.2},
	{category: "FT", lastFlight: 40, minPayload: 1900, maxPayload: 9600, success: 0.7},
	{category: "B4", lastFlight: 50, minPayload: 2100, maxPayload: 6800, success: 0.6},
	{category: "B5", minPayload: 3000, maxPayload: 9600, success: 0.9},
}

func eraOf(flight int) era {
	for _, e := range eras {
		if flight <= e.lastFlight {
			return e
		}
	}
	return eras[len(eras)-1]
}

// LaunchGenerator generates random launches with increasing flight numbers.
type LaunchGenerator struct {
	g      *gen.Generator
	flight int
}

// NewLaunchGenerator gets a new LaunchGenerator.
func NewLaunchGenerator(seed int64) *LaunchGenerator {
	return &LaunchGenerator{g: gen.NewGenerator(seed)}
}

// Launch generates the next launch.
func (g *LaunchGenerator) Launch() launchdash.Record {
	g.flight++
	e := eraOf(g.flight)
	class := launchdash.Failed
	if g.g.Chance(e.success) {
		class = launchdash.Success
	}
	return launchdash.Record{
		FlightNumber:           g.flight,
		LaunchSite:             g.g.Pick(Sites),
		PayloadMassKg:          g.g.Float64(e.minPayload, e.maxPayload),
		Class:                  class,
		BoosterVersion:         boosterVersion(e.category, g.flight),
		BoosterVersionCategory: e.category,
	}
}

func boosterVersion(category string, flight int) string {
	if category == "v1.0" {
		return fmt.Sprintf("F9 v1.0  B%04d", flight+2)
	}
	return fmt.Sprintf("F9 %s B%d", category, 1000+flight)
}

// Launches returns n generated launches.
func Launches(seed int64, n int) []launchdash.Record {
	g := NewLaunchGenerator(seed)
	recs := make([]launchdash.Record, n)
	for i := range recs {
		recs[i] = g.Launch()
	}
	return recs
}
