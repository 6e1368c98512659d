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

package json

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/pilosa/launchdash"
	"github.com/pkg/errors"
)

// Source reads a stream of JSON objects, one launch record per object. Each
// call to Record returns a map[string]interface{} with numbers as
// json.Number.
type Source struct {
	dec *json.Decoder
}

// NewSource returns a Source reading from r.
func NewSource(r io.Reader) *Source {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Source{
		dec: dec,
	}
}

// Record implements launchdash.Source.
func (s *Source) Record() (rec interface{}, err error) {
	var res map[string]interface{}
	err = s.dec.Decode(&res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

type rawSourceSource struct {
	mu sync.Mutex
	rs launchdash.RawSource

	cur  io.ReadCloser
	name string
	n    int
	s    *Source
}

// NewSourceFromRawSource returns a Source which reads JSON objects from each
// stream of rs in turn.
func NewSourceFromRawSource(rs launchdash.RawSource) launchdash.Source {
	return &rawSourceSource{rs: rs}
}

func (r *rawSourceSource) Record() (interface{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		if r.s == nil {
			reader, name, err := r.rs.NextReader()
			if err == io.EOF {
				return nil, io.EOF
			} else if err != nil {
				return nil, errors.Wrap(err, "getting next reader")
			}
			r.cur, r.name, r.n, r.s = reader, name, 0, NewSource(reader)
		}
		rec, err := r.s.Record()
		if err == io.EOF {
			r.cur.Close()
			r.s = nil
			continue
		} else if err != nil {
			r.cur.Close()
			r.s = nil
			return nil, errors.Wrapf(err, "decoding object %d of %s", r.n+1, r.name)
		}
		r.n++
		return rec, nil
	}
}
