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

import "strconv"

// DefaultSliderStep is the payload slider step in kg.
const DefaultSliderStep = 1000

// State is the whole of the dashboard's interaction state. Any change to it
// recomputes both views from scratch.
type State struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// DefaultState selects every site and the full payload range of d.
func DefaultState(d *Dataset) State {
	return State{Site: All, Payload: d.Bounds()}
}

// View holds everything the presentation layer needs to draw both charts for
// one State.
type View struct {
	State        State              `json:"state"`
	PieTitle     string             `json:"pie_title"`
	Outcomes     OutcomeBreakdown   `json:"outcomes"`
	ScatterTitle string             `json:"scatter_title"`
	Points       []CorrelationPoint `json:"points"`
	Categories   []string           `json:"categories"`
}

// Compute derives the View for s. It has no side effects, so concurrent
// callers may share d freely.
func Compute(d *Dataset, s State) View {
	points := ProjectCorrelation(d, s.Site, s.Payload)
	return View{
		State:        s,
		PieTitle:     PieTitle(s.Site),
		Outcomes:     ComputeOutcomeBreakdown(d, s.Site),
		ScatterTitle: ScatterTitle(s.Site),
		Points:       points,
		Categories:   CorrelationCategories(points),
	}
}

// SiteOption is one entry of the launch site dropdown.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions lists "All Sites" followed by each site of d.
func SiteOptions(d *Dataset) []SiteOption {
	ret := []SiteOption{{Label: "All Sites", Value: All}}
	for _, site := range d.sites {
		ret = append(ret, SiteOption{Label: site, Value: site})
	}
	return ret
}

// Slider describes the payload range slider.
type Slider struct {
	Min   float64        `json:"min"`
	Max   float64        `json:"max"`
	Step  int            `json:"step"`
	Marks map[int]string `json:"marks"`
	Value PayloadRange   `json:"value"`
}

// NewSlider builds the slider for d with marks at the (truncated) payload
// bounds. A non-positive step falls back to DefaultSliderStep.
func NewSlider(d *Dataset, step int) Slider {
	if step <= 0 {
		step = DefaultSliderStep
	}
	lo, hi := int(d.minPayload), int(d.maxPayload)
	return Slider{
		Min:  d.minPayload,
		Max:  d.maxPayload,
		Step: step,
		Marks: map[int]string{
			lo: strconv.Itoa(lo),
			hi: strconv.Itoa(hi),
		},
		Value: d.Bounds(),
	}
}
