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
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync"

	"github.com/linkedin/goavro"
	"github.com/pkg/errors"
)

// Decoder turns the value of a kafka message into something a
// launchdash.RecordParser understands.
type Decoder interface {
	Decode(value []byte) (interface{}, error)
}

// JSONDecoder decodes message values which are JSON objects. Numbers are
// kept as json.Number.
type JSONDecoder struct{}

// Decode implements Decoder.
func (JSONDecoder) Decode(value []byte) (interface{}, error) {
	parsed := make(map[string]interface{})
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	err := dec.Decode(&parsed)
	return parsed, errors.Wrap(err, "unmarshaling json")
}

// AvroDecoder decodes message values which are Avro binary records written
// with a single known schema.
type AvroDecoder struct {
	codec *goavro.Codec
}

// NewAvroDecoder parses schema and returns an AvroDecoder for it.
func NewAvroDecoder(schema string) (*AvroDecoder, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, errors.Wrap(err, "parsing avro schema")
	}
	return &AvroDecoder{codec: codec}, nil
}

// Decode implements Decoder.
func (d *AvroDecoder) Decode(value []byte) (interface{}, error) {
	return avroDecode(d.codec, value)
}

// RegistryDecoder decodes values in the Confluent wire format: a zero magic
// byte, a 4 byte big endian schema ID, then Avro binary. Schemas are fetched
// from the registry once per ID.
type RegistryDecoder struct {
	RegistryURL string
	Client      *http.Client

	lock  sync.RWMutex
	cache map[int32]*goavro.Codec
}

// NewRegistryDecoder returns a RegistryDecoder which looks schemas up at
// registryURL (host:port).
func NewRegistryDecoder(registryURL string) *RegistryDecoder {
	return &RegistryDecoder{
		RegistryURL: registryURL,
		Client:      http.DefaultClient,
		cache:       make(map[int32]*goavro.Codec),
	}
}

// Decode implements Decoder.
func (d *RegistryDecoder) Decode(value []byte) (interface{}, error) {
	if len(value) <= 5 || value[0] != 0 {
		return nil, errors.Errorf("unexpected magic byte or length in avro kafka value, should be 0x00, but got 0x%.8x", value)
	}
	id := int32(binary.BigEndian.Uint32(value[1:5]))
	codec, err := d.getCodec(id)
	if err != nil {
		return nil, errors.Wrap(err, "getting avro codec")
	}
	return avroDecode(codec, value[5:])
}

// Schema is an object produced by the schema registry.
type Schema struct {
	Schema  string `json:"schema"`
	Subject string `json:"subject,omitempty"`
	Version int    `json:"version,omitempty"`
	ID      int    `json:"id,omitempty"`
}

func (d *RegistryDecoder) getCodec(id int32) (*goavro.Codec, error) {
	d.lock.RLock()
	if codec, ok := d.cache[id]; ok {
		d.lock.RUnlock()
		return codec, nil
	}
	d.lock.RUnlock()
	d.lock.Lock()
	defer d.lock.Unlock()
	if codec, ok := d.cache[id]; ok {
		return codec, nil
	}
	r, err := d.Client.Get(fmt.Sprintf("http://%s/schemas/ids/%d", d.RegistryURL, id))
	if err != nil {
		return nil, errors.Wrap(err, "getting schema from registry")
	}
	defer r.Body.Close()
	if r.StatusCode >= 300 {
		bod, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get schema, code: %d, no body", r.StatusCode)
		}
		return nil, errors.Errorf("failed to get schema, code: %d, resp: %s", r.StatusCode, bod)
	}
	schema := &Schema{}
	if err := json.NewDecoder(r.Body).Decode(schema); err != nil {
		return nil, errors.Wrap(err, "decoding schema from registry")
	}
	codec, err := goavro.NewCodec(schema.Schema)
	if err != nil {
		return nil, errors.Wrap(err, "parsing schema")
	}
	d.cache[id] = codec
	return codec, nil
}

func avroDecode(codec *goavro.Codec, data []byte) (map[string]interface{}, error) {
	native, _, err := codec.NativeFromBinary(data)
	if err != nil {
		return nil, errors.Wrap(err, "reading avro binary")
	}
	rec, ok := native.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("avro value is a %T, not a record", native)
	}
	for k, v := range rec {
		rec[k] = unwrapUnion(v)
	}
	return rec, nil
}

// unwrapUnion replaces goavro's {"type": value} union representation with
// the bare value.
func unwrapUnion(v interface{}) interface{} {
	if m, ok := v.(map[string]interface{}); ok && len(m) == 1 {
		for _, inner := range m {
			return inner
		}
	}
	return v
}
