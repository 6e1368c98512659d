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

package kafkagen

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/fake"
	"github.com/pilosa/launchdash/kafka"
	"github.com/pkg/errors"
)

// Main holds the execution state for the kafka generator.
type Main struct {
	Hosts    []string      `help:"Comma separated list of Kafka brokers."`
	Topic    string        `help:"Kafka topic to publish launches to."`
	Encoding string        `help:"Message encoding: json or avro."`
	Seed     int64         `help:"Random seed for generating launches. -1 will use current nanosecond."`
	Num      uint64        `help:"Number of launches to publish. 0 means infinity."`
	Rate     time.Duration `help:"Delay between messages."`
	TLS      launchdash.TLSConfig

	producer sarama.SyncProducer
	log      launchdash.Logger
}

// NewMain returns a new Main.
func NewMain() *Main {
	return &Main{
		Hosts:    []string{"localhost:9092"},
		Topic:    "launches",
		Encoding: "json",
		Num:      56,
		log:      launchdash.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)},
	}
}

func (m *Main) encoder() (func(launchdash.Record) ([]byte, error), error) {
	switch m.Encoding {
	case "json", "":
		return kafka.EncodeJSON, nil
	case "avro":
		enc, err := kafka.NewEncoder()
		if err != nil {
			return nil, err
		}
		return enc.Encode, nil
	default:
		return nil, errors.Errorf("unsupported kafka encoding: '%v'", m.Encoding)
	}
}

// Run publishes generated launches to the topic. Each message is keyed by its
// launch site so launches from one site stay in order.
func (m *Main) Run() error {
	if m.Seed == -1 {
		m.Seed = time.Now().UnixNano()
	}
	encode, err := m.encoder()
	if err != nil {
		return err
	}
	producer := m.producer
	if producer == nil {
		conf := sarama.NewConfig()
		conf.Version = sarama.V0_10_0_0
		conf.Producer.Return.Successes = true
		tlsConf, err := launchdash.GetTLSConfig(m.TLS, m.log)
		if err != nil {
			return errors.Wrap(err, "getting TLS config")
		}
		if tlsConf != nil {
			conf.Net.TLS.Enable = true
			conf.Net.TLS.Config = tlsConf
		}
		producer, err = sarama.NewSyncProducer(m.Hosts, conf)
		if err != nil {
			return errors.Wrap(err, "getting new producer")
		}
		defer producer.Close()
	}

	src := fake.NewSource(m.Seed, m.Num)
	for sent := 0; ; sent++ {
		rec, err := src.Record()
		if err == io.EOF {
			m.log.Printf("published %d launches to %s", sent, m.Topic)
			return nil
		} else if err != nil {
			return errors.Wrap(err, "generating launch")
		}
		launch := rec.(launchdash.Record)
		val, err := encode(launch)
		if err != nil {
			return errors.Wrapf(err, "encoding flight %d", launch.FlightNumber)
		}
		msg := &sarama.ProducerMessage{
			Topic: m.Topic,
			Key:   sarama.StringEncoder(launch.LaunchSite),
			Value: sarama.ByteEncoder(val),
		}
		if _, _, err := producer.SendMessage(msg); err != nil {
			return errors.Wrapf(err, "sending flight %d", launch.FlightNumber)
		}
		if m.Rate > 0 {
			time.Sleep(m.Rate)
		}
	}
}
