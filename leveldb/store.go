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

package leveldb

import (
	"encoding/binary"
	"encoding/json"
	"sort"

	"github.com/pilosa/launchdash"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var _ launchdash.SnapshotStore = &Store{}

var (
	namePrefix   = []byte("n/")
	recordPrefix = []byte("r/")
)

// Store is a launchdash.SnapshotStore in a leveldb directory. A snapshot's
// records are stored as JSON under its name followed by a big endian sequence
// number, so iteration returns them in the order they were saved.
type Store struct {
	db *leveldb.DB
}

// NewStore opens (or creates) the leveldb database in dirname.
func NewStore(dirname string) (*Store, error) {
	db, err := leveldb.OpenFile(dirname, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at '%v'", dirname)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying leveldb instance.
func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "closing leveldb")
}

func recordKeyPrefix(name string) []byte {
	key := make([]byte, 0, len(recordPrefix)+len(name)+1)
	key = append(key, recordPrefix...)
	key = append(key, name...)
	return append(key, 0)
}

// Save replaces the named snapshot with records in a single batch.
func (s *Store) Save(name string, records []launchdash.Record) error {
	if name == "" {
		return errors.New("snapshot name must not be empty")
	}
	prefix := recordKeyPrefix(name)
	batch := new(leveldb.Batch)
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	for iter.Next() {
		batch.Delete(append([]byte{}, iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return errors.Wrapf(err, "clearing snapshot '%s'", name)
	}

	for i, rec := range records {
		val, err := json.Marshal(rec)
		if err != nil {
			return errors.Wrapf(err, "marshaling record %d", i)
		}
		key := make([]byte, len(prefix)+8)
		copy(key, prefix)
		binary.BigEndian.PutUint64(key[len(prefix):], uint64(i))
		batch.Put(key, val)
	}
	batch.Put(append(append([]byte{}, namePrefix...), name...), nil)
	return errors.Wrapf(s.db.Write(batch, nil), "saving snapshot '%s'", name)
}

// Source returns a launchdash.Source over the named snapshot.
func (s *Store) Source(name string) (launchdash.Source, error) {
	ok, err := s.db.Has(append(append([]byte{}, namePrefix...), name...), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "looking up snapshot '%s'", name)
	}
	if !ok {
		return nil, errors.Errorf("no snapshot named '%s'", name)
	}

	records := make([]launchdash.Record, 0)
	iter := s.db.NewIterator(util.BytesPrefix(recordKeyPrefix(name)), nil)
	defer iter.Release()
	for iter.Next() {
		var rec launchdash.Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, errors.Wrapf(err, "unmarshaling record %d of '%s'", len(records), name)
		}
		records = append(records, rec)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrapf(err, "reading snapshot '%s'", name)
	}
	return launchdash.NewRecordSource(records), nil
}

// Names returns the stored snapshot names in sorted order.
func (s *Store) Names() ([]string, error) {
	names := make([]string, 0)
	iter := s.db.NewIterator(util.BytesPrefix(namePrefix), nil)
	defer iter.Release()
	for iter.Next() {
		names = append(names, string(iter.Key()[len(namePrefix):]))
	}
	sort.Strings(names)
	return names, errors.Wrap(iter.Error(), "listing snapshots")
}
