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

package ingest

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/termstat"
	"github.com/pkg/errors"
)

// SaveSnapshot stores the records of d under name in the store conf
// describes, replacing any snapshot already saved under that name.
func SaveSnapshot(conf StoreConfig, name string, d *launchdash.Dataset) error {
	store, err := OpenStore(conf.Backend, conf.Path)
	if err != nil {
		return errors.Wrap(err, "opening snapshot store")
	}
	defer store.Close()
	return errors.Wrap(store.Save(name, d.Records()), "saving snapshot")
}

// SnapshotMain holds the config for the snapshot command, which loads launch
// records from any input and saves them to the snapshot store.
type SnapshotMain struct {
	Name     string        `help:"Name to save the snapshot under."`
	Progress time.Duration `help:"Interval between progress updates on stderr. 0 disables them."`
	Verbose  bool          `help:"Enable debug logging."`
	Input    Config

	stderr io.Writer
}

// NewSnapshotMain gets a new SnapshotMain with default values.
func NewSnapshotMain() *SnapshotMain {
	return &SnapshotMain{
		Name:     "latest",
		Progress: time.Second,
		Input:    NewConfig(),
		stderr:   os.Stderr,
	}
}

// Run loads the dataset and saves it.
func (m *SnapshotMain) Run() error {
	if m.Name == "" {
		return errors.New("snapshot name is required")
	}
	logger := launchdash.NewLogger(log.New(m.stderr, "", log.LstdFlags), m.Verbose)
	var stats launchdash.Statter = launchdash.NopStatter{}
	if m.Progress > 0 {
		collector := termstat.NewCollector(m.stderr, m.Progress)
		defer collector.Stop()
		stats = collector
	}

	logger.Printf("loading launch records from %s", m.Input.Input())
	d, err := m.Input.Load(logger, stats)
	if err != nil {
		return errors.Wrap(err, "loading dataset")
	}
	if err := SaveSnapshot(m.Input.Store, m.Name, d); err != nil {
		return err
	}
	logger.Printf("saved %d launches as snapshot '%s' in %s", d.Len(), m.Name, m.Input.Store.Path)
	return nil
}
