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
	"crypto/tls"
	"io"
	"sort"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pilosa/launchdash"
	"github.com/pkg/errors"
)

// Offsetter looks up partition offsets. sarama.Client satisfies it.
type Offsetter interface {
	GetOffset(topic string, partitionID int32, time int64) (int64, error)
}

// Source implements the launchdash.Source interface using a kafka topic as a
// data source. Unlike a consumer group it reads every partition of the topic
// from the oldest retained message up to the high water mark seen at Open, and
// then returns io.EOF, so a topic can be loaded as a complete dataset.
type Source struct {
	Hosts   []string
	Topic   string
	Decoder Decoder
	Timeout time.Duration
	Log     launchdash.Logger
	TLS     *tls.Config

	// Consumer and Offsets may be set before Open to use an existing
	// connection. Otherwise Open connects to Hosts and Close disconnects.
	Consumer sarama.Consumer
	Offsets  Offsetter

	client sarama.Client
	parts  []partition
	cur    int
	pc     sarama.PartitionConsumer
	errs   <-chan *sarama.ConsumerError
	next   int64
}

// partition is read from oldest until a message at or past newest-1 arrives.
// Compacted topics have gaps, so messages are not counted.
type partition struct {
	id     int32
	oldest int64
	newest int64
}

// NewSource gets a new Source
func NewSource() *Source {
	return &Source{
		Hosts:   []string{"localhost:9092"},
		Topic:   "launches",
		Decoder: JSONDecoder{},
		Timeout: 10 * time.Second,
		Log:     launchdash.NopLogger{},
	}
}

// Open connects to kafka if needed and records the range of offsets to read on
// each partition of the topic.
func (s *Source) Open() error {
	if s.Consumer == nil {
		config := sarama.NewConfig()
		config.Version = sarama.V0_10_0_0
		config.Consumer.Return.Errors = true
		if s.TLS != nil {
			config.Net.TLS.Enable = true
			config.Net.TLS.Config = s.TLS
		}
		client, err := sarama.NewClient(s.Hosts, config)
		if err != nil {
			return errors.Wrap(err, "getting new client")
		}
		s.Consumer, err = sarama.NewConsumerFromClient(client)
		if err != nil {
			client.Close()
			return errors.Wrap(err, "getting new consumer")
		}
		s.client = client
		s.Offsets = client
	}
	if s.Offsets == nil {
		return errors.New("no offset lookup configured")
	}
	if s.Decoder == nil {
		s.Decoder = JSONDecoder{}
	}
	if s.Log == nil {
		s.Log = launchdash.NopLogger{}
	}

	ids, err := s.Consumer.Partitions(s.Topic)
	if err != nil {
		return errors.Wrapf(err, "getting partitions of '%s'", s.Topic)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	s.parts = s.parts[:0]
	for _, id := range ids {
		oldest, err := s.Offsets.GetOffset(s.Topic, id, sarama.OffsetOldest)
		if err != nil {
			return errors.Wrapf(err, "getting oldest offset of partition %d", id)
		}
		newest, err := s.Offsets.GetOffset(s.Topic, id, sarama.OffsetNewest)
		if err != nil {
			return errors.Wrapf(err, "getting newest offset of partition %d", id)
		}
		if newest <= oldest {
			continue
		}
		s.parts = append(s.parts, partition{id: id, oldest: oldest, newest: newest})
		s.Log.Debugf("kafka %s/%d: reading offsets %d to %d", s.Topic, id, oldest, newest-1)
	}
	return nil
}

// Record returns the decoded value of the next kafka message.
func (s *Source) Record() (interface{}, error) {
	for {
		if s.pc == nil {
			if s.cur >= len(s.parts) {
				return nil, io.EOF
			}
			p := s.parts[s.cur]
			pc, err := s.Consumer.ConsumePartition(s.Topic, p.id, p.oldest)
			if err != nil {
				return nil, errors.Wrapf(err, "consuming partition %d", p.id)
			}
			s.pc, s.errs, s.next = pc, pc.Errors(), p.oldest
		}
		p := s.parts[s.cur]
		if s.next >= p.newest {
			err := s.pc.Close()
			s.pc, s.errs = nil, nil
			s.cur++
			if err != nil {
				return nil, errors.Wrap(err, "closing partition consumer")
			}
			continue
		}
		select {
		case msg, ok := <-s.pc.Messages():
			if !ok {
				return nil, errors.Errorf("partition %d closed before offset %d", p.id, p.newest-1)
			}
			s.next = msg.Offset + 1
			rec, err := s.Decoder.Decode(msg.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "decoding message %d/%d", msg.Partition, msg.Offset)
			}
			return rec, nil
		case cerr, ok := <-s.errs:
			if !ok {
				s.errs = nil
				continue
			}
			return nil, errors.Wrapf(cerr, "consuming partition %d", p.id)
		case <-time.After(s.Timeout):
			return nil, errors.Errorf("timed out after %v waiting for partition %d at offset %d of %d", s.Timeout, p.id, s.next, p.newest-1)
		}
	}
}

// Close releases the current partition consumer and, if Open connected, the
// kafka connection.
func (s *Source) Close() error {
	var err error
	if s.pc != nil {
		err = s.pc.Close()
		s.pc, s.errs = nil, nil
	}
	if s.client != nil {
		if cerr := s.Consumer.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if cerr := s.client.Close(); cerr != nil && err == nil {
			err = cerr
		}
		s.client = nil
	}
	return errors.Wrap(err, "closing kafka source")
}
