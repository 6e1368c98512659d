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
	"io"
	"time"

	"github.com/pkg/errors"
)

// Loader drains a Source through a RecordParser into a Dataset. It fails on
// the first source or parse error rather than returning a partial Dataset.
type Loader struct {
	Log   Logger
	Stats Statter

	src    Source
	parser *RecordParser
}

// NewLoader returns a Loader for src. If parser is nil, NewRecordParser is
// used.
func NewLoader(src Source, parser *RecordParser) *Loader {
	if parser == nil {
		parser = NewRecordParser()
	}
	return &Loader{
		Log:    NopLogger{},
		Stats:  NopStatter{},
		src:    src,
		parser: parser,
	}
}

// Run reads every record from the source and builds the Dataset.
func (l *Loader) Run() (*Dataset, error) {
	start := time.Now()
	records := make([]Record, 0)
	for i := 0; ; i++ {
		raw, err := l.src.Record()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading record %d", i)
		}
		rec, err := l.parser.Parse(raw)
		if err != nil {
			l.Stats.Count("records.invalid", 1, 1)
			return nil, errors.Wrapf(err, "parsing record %d", i)
		}
		l.Stats.Count("records.loaded", 1, 1)
		l.Log.Debugf("loaded %d: %+v", i, rec)
		records = append(records, rec)
	}
	d, err := NewDataset(records)
	if err != nil {
		return nil, errors.Wrap(err, "building dataset")
	}
	l.Stats.Gauge("dataset.sites", float64(len(d.sites)), 1)
	l.Stats.Timing("load.duration", time.Since(start), 1)
	l.Log.Printf("loaded %d records from %d sites in %v", d.Len(), len(d.sites), time.Since(start))
	return d, nil
}

// Load is a shortcut for NewLoader(src, nil).Run().
func Load(src Source) (*Dataset, error) {
	return NewLoader(src, nil).Run()
}
