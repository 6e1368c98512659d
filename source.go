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
	"sync"
)

// Source is the interface for getting raw launch data one record at a time.
// Record returns io.EOF once the source is exhausted. Implementations of
// Source should be thread safe.
type Source interface {
	Record() (interface{}, error)
}

// SourceFunc is a wrapper like http.HandlerFunc which allows you to use a bare
// func as a Source.
type SourceFunc func() (interface{}, error)

// Record implements Source.
func (f SourceFunc) Record() (interface{}, error) { return f() }

// RawSource is a series of named streams of raw data, such as files or
// objects in a bucket. NextReader returns io.EOF once every stream has been
// handed out. Callers close each returned reader.
type RawSource interface {
	NextReader() (io.ReadCloser, string, error)
}

// RecordSource is a Source over a slice of Records.
type RecordSource struct {
	mu      sync.Mutex
	records []Record
	next    int
}

// NewRecordSource returns a RecordSource which yields records in order.
func NewRecordSource(records []Record) *RecordSource {
	return &RecordSource{records: records}
}

// Record implements Source.
func (s *RecordSource) Record() (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.records) {
		return nil, io.EOF
	}
	s.next++
	return s.records[s.next-1], nil
}

// SnapshotStore persists loaded records under a name so a later process can
// load them without going back to the original source.
type SnapshotStore interface {
	// Save replaces the named snapshot with records, preserving their order.
	Save(name string, records []Record) error

	// Source returns a Source over the named snapshot. It is an error if the
	// snapshot doesn't exist.
	Source(name string) (Source, error)

	// Names lists the stored snapshots.
	Names() ([]string, error)

	Close() error
}
