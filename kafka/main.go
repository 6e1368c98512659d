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

package kafka

import (
	"time"

	"github.com/pilosa/launchdash"
	"github.com/pkg/errors"
)

// Config holds the options for loading launch records from a kafka topic.
type Config struct {
	Hosts       []string `help:"Comma separated list of Kafka hosts and ports."`
	Topic       string   `help:"Kafka topic holding launch records. Empty disables kafka."`
	Encoding    string   `help:"Message encoding: json, avro, or confluent (avro with a schema registry)."`
	RegistryURL string   `help:"host:port of the confluent schema registry."`
	Timeout     string   `help:"How long to wait for an expected message, e.g. 10s."`
	TLS         launchdash.TLSConfig
}

// NewConfig returns a Config with defaults for a local broker.
func NewConfig() Config {
	return Config{
		Hosts:       []string{"localhost:9092"},
		Encoding:    "json",
		RegistryURL: "localhost:8081",
		Timeout:     "10s",
	}
}

// NewSource returns an unopened Source for the configured topic along with a
// parser for its field names.
func (c Config) NewSource(log launchdash.Logger) (*Source, *launchdash.RecordParser, error) {
	src := NewSource()
	src.Hosts = c.Hosts
	src.Topic = c.Topic
	if log != nil {
		src.Log = log
	}
	tlsConf, err := launchdash.GetTLSConfig(c.TLS, src.Log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "getting TLS config")
	}
	src.TLS = tlsConf
	if c.Timeout != "" {
		timeout, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, nil, errors.Wrap(err, "parsing timeout")
		}
		if timeout <= 0 {
			return nil, nil, errors.Errorf("timeout must be positive, got %v", timeout)
		}
		src.Timeout = timeout
	}
	switch c.Encoding {
	case "json", "":
		src.Decoder = JSONDecoder{}
	case "avro":
		dec, err := NewAvroDecoder(LaunchSchema)
		if err != nil {
			return nil, nil, err
		}
		src.Decoder = dec
	case "confluent":
		src.Decoder = NewRegistryDecoder(c.RegistryURL)
	default:
		return nil, nil, errors.Errorf("unsupported kafka encoding: '%v'", c.Encoding)
	}
	return src, &launchdash.RecordParser{Columns: Columns()}, nil
}
