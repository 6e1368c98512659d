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

package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pilosa/launchdash"
	"github.com/pkg/errors"
)

var snapshotBucket = []byte("snapshots")

var _ launchdash.SnapshotStore = &Store{}

// Store is a launchdash.SnapshotStore which keeps each snapshot in its own
// bolt bucket, with records stored as JSON under big endian sequence numbers.
type Store struct {
	Db *bolt.DB
}

// NewStore opens (or creates) the bolt file at filename.
func NewStore(filename string) (*Store, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening db file '%v'", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return errors.Wrap(err, "creating snapshot bucket")
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensuring bucket existence")
	}
	return &Store{Db: db}, nil
}

// Close syncs and closes the underlying bolt file.
func (s *Store) Close() error {
	err := s.Db.Sync()
	if err != nil {
		return errors.Wrap(err, "syncing db")
	}
	return s.Db.Close()
}

// Save replaces the named snapshot with records.
func (s *Store) Save(name string, records []launchdash.Record) error {
	if name == "" {
		return errors.New("snapshot name must not be empty")
	}
	err := s.Db.Update(func(tx *bolt.Tx) error {
		sb := tx.Bucket(snapshotBucket)
		if sb.Bucket([]byte(name)) != nil {
			if err := sb.DeleteBucket([]byte(name)); err != nil {
				return errors.Wrap(err, "deleting old snapshot")
			}
		}
		b, err := sb.CreateBucket([]byte(name))
		if err != nil {
			return errors.Wrap(err, "creating snapshot bucket")
		}
		for i, rec := range records {
			val, err := json.Marshal(rec)
			if err != nil {
				return errors.Wrapf(err, "marshaling record %d", i)
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(i))
			if err := b.Put(key, val); err != nil {
				return errors.Wrapf(err, "putting record %d", i)
			}
		}
		return nil
	})
	return errors.Wrapf(err, "saving snapshot '%s'", name)
}

// Source returns a launchdash.Source over the named snapshot's records in the
// order they were saved.
func (s *Store) Source(name string) (launchdash.Source, error) {
	records := make([]launchdash.Record, 0)
	err := s.Db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotBucket).Bucket([]byte(name))
		if b == nil {
			return errors.Errorf("no snapshot named '%s'", name)
		}
		return b.ForEach(func(k, v []byte) error {
			var rec launchdash.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return errors.Wrapf(err, "unmarshaling record %d", binary.BigEndian.Uint64(k))
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return launchdash.NewRecordSource(records), nil
}

// Names returns the stored snapshot names in sorted order.
func (s *Store) Names() ([]string, error) {
	names := make([]string, 0)
	err := s.Db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotBucket).ForEach(func(k, v []byte) error {
			if v == nil {
				names = append(names, string(k))
			}
			return nil
		})
	})
	return names, errors.Wrap(err, "listing snapshots")
}
