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

// CorrelationPoint is one point of the payload/outcome scatter plot, coloured
// by booster version category.
type CorrelationPoint struct {
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Class                  Outcome `json:"class"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// ProjectCorrelation selects the records in r launched from site and projects
// them onto (payload, class, booster category), one point per record in
// dataset order. The range is always applied first; site may be All.
func ProjectCorrelation(d *Dataset, site string, r PayloadRange) []CorrelationPoint {
	rows := FilterBySite(FilterByRange(d.records, r), site)
	ret := make([]CorrelationPoint, len(rows))
	for i, rec := range rows {
		ret[i] = CorrelationPoint{
			PayloadMassKg:          rec.PayloadMassKg,
			Class:                  rec.Class,
			BoosterVersionCategory: rec.BoosterVersionCategory,
		}
	}
	return ret
}

// CorrelationCategories returns the distinct booster categories among points
// in order of first appearance.
func CorrelationCategories(points []CorrelationPoint) []string {
	seen := make(map[string]struct{})
	ret := make([]string, 0)
	for _, p := range points {
		if _, ok := seen[p.BoosterVersionCategory]; ok {
			continue
		}
		seen[p.BoosterVersionCategory] = struct{}{}
		ret = append(ret, p.BoosterVersionCategory)
	}
	return ret
}
