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

package http

import (
	"log"
	"net"
	"os"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/ingest"
	"github.com/pkg/errors"
)

// Main holds the config for the serve command.
type Main struct {
	Bind         string `help:"Serve the dashboard on this address."`
	SliderStep   int    `help:"Payload slider step in kg."`
	SaveSnapshot string `help:"After loading, save the records to the snapshot store under this name."`
	Metrics      bool   `help:"Expose Prometheus metrics on /metrics."`
	Verbose      bool   `help:"Enable debug logging."`
	TLS          launchdash.TLSConfig
	Input        ingest.Config

	server *Server
	ready  chan struct{}
}

// NewMain gets a new Main with default values.
func NewMain() *Main {
	return &Main{
		Bind:       ":8050",
		SliderStep: launchdash.DefaultSliderStep,
		Metrics:    true,
		Input:      ingest.NewConfig(),
		ready:      make(chan struct{}),
	}
}

// Ready is closed once Run has loaded the dataset and is listening.
func (m *Main) Ready() <-chan struct{} {
	return m.ready
}

// Server returns the running server. It is nil until Ready is closed.
func (m *Main) Server() *Server {
	return m.server
}

// Run loads the dataset and serves the dashboard. Failing to load is fatal.
func (m *Main) Run() error {
	logger := launchdash.NewLogger(log.New(os.Stderr, "", log.LstdFlags), m.Verbose)
	var (
		stats   launchdash.Statter = launchdash.NopStatter{}
		metrics *Metrics
	)
	if m.Metrics {
		metrics = NewMetrics()
		stats = metrics
	}

	logger.Printf("loading launch records from %s", m.Input.Input())
	d, err := m.Input.Load(logger, stats)
	if err != nil {
		return errors.Wrap(err, "loading dataset")
	}
	if m.SaveSnapshot != "" {
		if err := ingest.SaveSnapshot(m.Input.Store, m.SaveSnapshot, d); err != nil {
			return err
		}
		logger.Printf("saved snapshot '%s' to %s", m.SaveSnapshot, m.Input.Store.Path)
	}

	tlsConf, err := launchdash.GetTLSConfig(m.TLS, logger)
	if err != nil {
		return errors.Wrap(err, "getting TLS config")
	}
	ln, err := net.Listen("tcp", m.Bind)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", m.Bind)
	}
	m.server = NewServer(d,
		WithListener(ln),
		WithStep(m.SliderStep),
		WithMetrics(metrics),
		WithLogger(logger),
		WithAccessLog(os.Stdout),
		WithTLS(tlsConf),
	)
	if m.ready != nil {
		close(m.ready)
	}
	logger.Printf("serving dashboard on %s", m.server.Addr())
	return errors.Wrap(m.server.Serve(), "running dashboard server")
}
