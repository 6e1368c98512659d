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
	"encoding/json"

	"github.com/linkedin/goavro"
	"github.com/pilosa/launchdash"
	"github.com/pkg/errors"
)

// LaunchSchema is the Avro schema of a launch record message.
const LaunchSchema = `{
    "type": "record",
    "name": "Launch",
    "namespace": "com.pilosa.launchdash",
    "fields": [
        {"name": "flight_number", "type": "int"},
        {"name": "launch_site", "type": "string"},
        {"name": "class", "type": "int"},
        {"name": "payload_mass_kg", "type": "double"},
        {"name": "booster_version", "type": "string"},
        {"name": "booster_version_category", "type": "string"}
    ]
}`

// Columns returns the field names used by launch record messages, for use
// with launchdash.RecordParser.
func Columns() launchdash.Columns {
	return launchdash.Columns{
		FlightNumber:           "flight_number",
		LaunchSite:             "launch_site",
		PayloadMassKg:          "payload_mass_kg",
		Class:                  "class",
		BoosterVersion:         "booster_version",
		BoosterVersionCategory: "booster_version_category",
	}
}

func native(rec launchdash.Record) map[string]interface{} {
	return map[string]interface{}{
		"flight_number":            int32(rec.FlightNumber),
		"launch_site":              rec.LaunchSite,
		"class":                    int32(rec.Class),
		"payload_mass_kg":          rec.PayloadMassKg,
		"booster_version":          rec.BoosterVersion,
		"booster_version_category": rec.BoosterVersionCategory,
	}
}

// EncodeJSON returns rec as a JSON message value.
func EncodeJSON(rec launchdash.Record) ([]byte, error) {
	bs, err := json.Marshal(native(rec))
	return bs, errors.Wrap(err, "marshaling json")
}

// Encoder writes Records as Avro message values using LaunchSchema.
type Encoder struct {
	codec *goavro.Codec
}

// NewEncoder returns an Encoder for LaunchSchema.
func NewEncoder() (*Encoder, error) {
	codec, err := goavro.NewCodec(LaunchSchema)
	if err != nil {
		return nil, errors.Wrap(err, "parsing launch schema")
	}
	return &Encoder{codec: codec}, nil
}

// Encode returns rec as Avro binary.
func (e *Encoder) Encode(rec launchdash.Record) ([]byte, error) {
	bs, err := e.codec.BinaryFromNative(nil, native(rec))
	return bs, errors.Wrap(err, "encoding avro")
}
