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
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Main holds the options for writing a fake launch records CSV.
type Main struct {
	Seed int64  `help:"Random seed for generating data. -1 will use current nanosecond."`
	Num  int    `help:"Number of launches to generate."`
	Out  string `help:"File to write the CSV to. Empty writes to stdout."`
}

// NewMain returns a new Main.
func NewMain() *Main {
	return &Main{
		Num: 56,
	}
}

// Run generates the launches and writes them out.
func (m *Main) Run() error {
	if m.Num <= 0 {
		return errors.Errorf("number of launches must be positive, got %d", m.Num)
	}
	if m.Seed == -1 {
		m.Seed = time.Now().UnixNano()
	}
	var w io.Writer = os.Stdout
	if m.Out != "" {
		f, err := os.Create(m.Out)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		w = f
	}
	return errors.Wrap(WriteCSV(w, Launches(m.Seed, m.Num)), "writing launches")
}
