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

package gen

import (
	"math"
	"math/rand"
	"sync"
)

// Generator holds state for generating random data in certain distributions.
type Generator struct {
	r  *rand.Rand
	zs map[int]*rand.Zipf
}

// NewGenerator gets a new Generator
func NewGenerator(seed int64) *Generator {
	return &Generator{
		r:  rand.New(rand.NewSource(seed)),
		zs: make(map[int]*rand.Zipf),
	}
}

// Uint64 gets a zipfian random uint64 with the given cardinality.
func (g *Generator) Uint64(cardinality int) uint64 {
	if cardinality < 2 {
		return 0
	}
	z, ok := g.zs[cardinality]
	if !ok {
		// rand.Zipf generates values in [0, imax], so subtracting one gives
		// the [0, n) range of funcs like rand.Intn.
		imax := uint64(cardinality) - 1
		v := 0.05 * float64(imax)
		if v < 1.0 {
			v = 1.0
		}
		z = rand.NewZipf(g.r, 1.1, v, imax)
		g.zs[cardinality] = z
	}
	return z.Uint64()
}

// Pick returns one of choices, favoring earlier ones.
func (g *Generator) Pick(choices []string) string {
	return choices[g.Uint64(len(choices))]
}

// Intn returns a uniform random int in [0, n).
func (g *Generator) Intn(n int) int {
	return g.r.Intn(n)
}

// Float64 returns a uniform random value in [low, high) rounded to one
// decimal place.
func (g *Generator) Float64(low, high float64) float64 {
	v := low + g.r.Float64()*(high-low)
	return math.Round(v*10) / 10
}

// Chance returns true with probability p.
func (g *Generator) Chance(p float64) bool {
	return g.r.Float64() < p
}

// Global convenience funcs

var globalGen = NewGenerator(0)
var globalLk = sync.Mutex{}

// Uint64 gets a zipfian random uint64 with the given cardinality.
func Uint64(cardinality int) uint64 {
	globalLk.Lock()
	defer globalLk.Unlock()
	return globalGen.Uint64(cardinality)
}

// Float64 returns a uniform random value in [low, high) rounded to one
// decimal place.
func Float64(low, high float64) float64 {
	globalLk.Lock()
	defer globalLk.Unlock()
	return globalGen.Float64(low, high)
}
