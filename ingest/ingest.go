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

// Package ingest chooses where a dashboard's launch records come from and
// loads them into a Dataset.
package ingest

import (
	"io"
	"strings"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/aws/s3"
	"github.com/pilosa/launchdash/boltdb"
	"github.com/pilosa/launchdash/csv"
	"github.com/pilosa/launchdash/file"
	"github.com/pilosa/launchdash/json"
	"github.com/pilosa/launchdash/kafka"
	"github.com/pilosa/launchdash/leveldb"
	"github.com/pkg/errors"
)

// StoreConfig locates a snapshot store.
type StoreConfig struct {
	Backend string `help:"Snapshot store backend: bolt or leveldb."`
	Path    string `help:"Snapshot store file (bolt) or directory (leveldb)."`
}

// Config describes the input for a dataset. Exactly one input is used: a
// stored snapshot if named, else a kafka topic, else an S3 bucket, else CSV
// files.
type Config struct {
	Files       []string `help:"Comma separated list of CSV files or http(s) URLs, or JSON files and directories."`
	Format      string   `help:"Format of files and S3 objects: csv or json."`
	MaxRetries  int      `help:"Attempts to read each CSV file before giving up."`
	Concurrency int      `help:"Number of CSV files to read at once. Above 1, record order is not preserved."`
	Snapshot    string   `help:"Load this stored snapshot instead of any other input."`
	Columns     launchdash.Columns
	S3          s3.Config
	Kafka       kafka.Config
	Store       StoreConfig
}

// NewConfig returns a Config reading the launch records CSV from the current
// directory.
func NewConfig() Config {
	return Config{
		Files:       []string{"spacex_launch_dash.csv"},
		Format:      "csv",
		Columns:     launchdash.DefaultColumns(),
		MaxRetries:  3,
		Concurrency: 1,
		S3:          s3.NewConfig(),
		Kafka:       kafka.NewConfig(),
		Store: StoreConfig{
			Backend: "bolt",
			Path:    "launchdash.db",
		},
	}
}

// Input describes the input Load will use.
func (c Config) Input() string {
	switch {
	case c.Snapshot != "":
		return "snapshot '" + c.Snapshot + "' in " + c.Store.Backend + " store " + c.Store.Path
	case c.Kafka.Topic != "":
		return "kafka topic " + c.Kafka.Topic
	case c.S3.Bucket != "":
		return "s3://" + c.S3.Bucket + "/" + c.S3.Prefix
	case len(c.Files) > 0:
		return c.format() + " " + strings.Join(c.Files, ",")
	default:
		return "nothing"
	}
}

// Load reads every record from the configured input into a Dataset. Any
// error reading or parsing a record fails the load.
func (c Config) Load(log launchdash.Logger, stats launchdash.Statter) (*launchdash.Dataset, error) {
	var (
		src    launchdash.Source
		parser = &launchdash.RecordParser{Columns: c.Columns}
	)
	switch {
	case c.Snapshot != "":
		store, err := OpenStore(c.Store.Backend, c.Store.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		src, err = store.Source(c.Snapshot)
		if err != nil {
			return nil, errors.Wrap(err, "getting snapshot source")
		}
	case c.Kafka.Topic != "":
		ksrc, kparser, err := c.Kafka.NewSource(log)
		if err != nil {
			return nil, errors.Wrap(err, "configuring kafka source")
		}
		if err := ksrc.Open(); err != nil {
			ksrc.Close()
			return nil, errors.Wrap(err, "opening kafka source")
		}
		src, parser = ksrc, kparser
	case c.S3.Bucket != "":
		rs, err := c.S3.NewRawSource()
		if err != nil {
			return nil, errors.Wrap(err, "getting s3 source")
		}
		src, err = c.fromRaw(rs, rs.OpenStringers())
		if err != nil {
			return nil, err
		}
	case len(c.Files) > 0:
		if c.format() == "json" {
			rs, err := file.NewRawSource(c.Files...)
			if err != nil {
				return nil, errors.Wrap(err, "listing json files")
			}
			src = json.NewSourceFromRawSource(rs)
			break
		}
		if err := c.checkFormat(); err != nil {
			return nil, err
		}
		src = csv.NewSource(
			csv.WithURLs(c.Files),
			csv.WithMaxRetries(c.MaxRetries),
			csv.WithConcurrency(c.Concurrency),
		)
	default:
		return nil, errors.New("no input configured: set files, an S3 bucket, a kafka topic, or a snapshot")
	}

	if cl, ok := src.(io.Closer); ok {
		defer cl.Close()
	}

	l := launchdash.NewLoader(src, parser)
	if log != nil {
		l.Log = log
	}
	if stats != nil {
		l.Stats = stats
	}
	d, err := l.Run()
	return d, errors.Wrapf(err, "loading from %s", c.Input())
}

func (c Config) format() string {
	if c.Format == "" {
		return "csv"
	}
	return strings.ToLower(c.Format)
}

func (c Config) checkFormat() error {
	switch c.format() {
	case "csv", "json":
		return nil
	default:
		return errors.Errorf("unsupported input format '%s'", c.Format)
	}
}

// fromRaw reads the streams of rs as JSON, or the same objects as CSV through
// their OpenStringers.
func (c Config) fromRaw(rs launchdash.RawSource, objs []csv.OpenStringer) (launchdash.Source, error) {
	if err := c.checkFormat(); err != nil {
		return nil, err
	}
	if c.format() == "json" {
		return json.NewSourceFromRawSource(rs), nil
	}
	return csv.NewSource(
		csv.WithOpenStringers(objs),
		csv.WithMaxRetries(c.MaxRetries),
		csv.WithConcurrency(c.Concurrency),
	), nil
}

// OpenStore opens a SnapshotStore with the named backend at path.
func OpenStore(backend, path string) (launchdash.SnapshotStore, error) {
	if path == "" {
		return nil, errors.New("no snapshot store path given")
	}
	switch backend {
	case "bolt", "boltdb":
		st, err := boltdb.NewStore(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening bolt store")
		}
		return st, nil
	case "leveldb":
		st, err := leveldb.NewStore(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening leveldb store")
		}
		return st, nil
	default:
		return nil, errors.Errorf("unknown snapshot store backend '%s'", backend)
	}
}
