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

package launchdash

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Columns names the fields of a raw record which hold each Record field.
// FlightNumber and BoosterVersion are optional; an empty name skips them.
type Columns struct {
	FlightNumber           string `help:"Column holding the flight number (optional)."`
	LaunchSite             string `help:"Column holding the launch site."`
	PayloadMassKg          string `help:"Column holding the payload mass in kg."`
	Class                  string `help:"Column holding the outcome class (0 or 1)."`
	BoosterVersion         string `help:"Column holding the booster version (optional)."`
	BoosterVersionCategory string `help:"Column holding the booster version category."`
}

// DefaultColumns returns the column names used by the launch records CSV.
func DefaultColumns() Columns {
	return Columns{
		FlightNumber:           "Flight Number",
		LaunchSite:             "Launch Site",
		PayloadMassKg:          "Payload Mass (kg)",
		Class:                  "class",
		BoosterVersion:         "Booster Version",
		BoosterVersionCategory: "Booster Version Category",
	}
}

// RecordParser turns the raw values produced by a Source into Records.
type RecordParser struct {
	Columns Columns
}

// NewRecordParser returns a RecordParser using DefaultColumns.
func NewRecordParser() *RecordParser {
	return &RecordParser{Columns: DefaultColumns()}
}

// Parse converts data to a Record. It accepts a Record, a *Record, a
// map[string]string (as from a CSV source) or a map[string]interface{} (as
// from decoded JSON or Avro). A missing required column is reported as
// ErrInvalidDatasetState.
func (p *RecordParser) Parse(data interface{}) (Record, error) {
	switch v := data.(type) {
	case Record:
		return v, nil
	case *Record:
		if v == nil {
			return Record{}, errors.New("nil record")
		}
		return *v, nil
	case map[string]string:
		return p.parseFields(func(col string) (interface{}, bool) {
			s, ok := v[col]
			return s, ok
		})
	case map[string]interface{}:
		return p.parseFields(func(col string) (interface{}, bool) {
			i, ok := v[col]
			return i, ok && i != nil
		})
	default:
		return Record{}, errors.Errorf("unsupported record type %T", data)
	}
}

func (p *RecordParser) parseFields(get func(col string) (interface{}, bool)) (rec Record, err error) {
	required := func(col string) (interface{}, error) {
		val, ok := get(col)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDatasetState, "missing column '%s'", col)
		}
		return val, nil
	}

	val, err := required(p.Columns.LaunchSite)
	if err != nil {
		return rec, err
	}
	rec.LaunchSite = strings.TrimSpace(toString(val))

	val, err = required(p.Columns.PayloadMassKg)
	if err != nil {
		return rec, err
	}
	if rec.PayloadMassKg, err = toFloat(val); err != nil {
		return rec, errors.Wrapf(err, "parsing '%s'", p.Columns.PayloadMassKg)
	}

	val, err = required(p.Columns.Class)
	if err != nil {
		return rec, err
	}
	class, err := toFloat(val)
	if err != nil {
		return rec, errors.Wrapf(err, "parsing '%s'", p.Columns.Class)
	}
	switch class {
	case 0:
		rec.Class = Failed
	case 1:
		rec.Class = Success
	default:
		return rec, errors.Wrapf(ErrInvalidDatasetState, "class must be 0 or 1, got %v", val)
	}

	val, err = required(p.Columns.BoosterVersionCategory)
	if err != nil {
		return rec, err
	}
	rec.BoosterVersionCategory = strings.TrimSpace(toString(val))

	if p.Columns.FlightNumber != "" {
		if val, ok := get(p.Columns.FlightNumber); ok {
			n, err := toFloat(val)
			if err != nil {
				return rec, errors.Wrapf(err, "parsing '%s'", p.Columns.FlightNumber)
			}
			rec.FlightNumber = int(n)
		}
	}
	if p.Columns.BoosterVersion != "" {
		if val, ok := get(p.Columns.BoosterVersion); ok {
			rec.BoosterVersion = strings.TrimSpace(toString(val))
		}
	}
	return rec, nil
}

func toString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, errors.Wrap(err, "parsing number")
	default:
		return 0, errors.Errorf("can't make %v of type %T a number", val, val)
	}
}
