package kafka_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/linkedin/goavro"
	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/kafka"
	"github.com/pilosa/launchdash/test"
)

// startFakeRegistry serves LaunchSchema as schema ID 7 and counts requests.
func startFakeRegistry(t *testing.T, hits *int32) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		var id int32
		if _, err := fmt.Sscanf(r.URL.Path, "/schemas/ids/%d", &id); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if id != 7 {
			http.Error(w, fmt.Sprintf("unknown id: %d", id), http.StatusNotFound)
			return
		}
		if err := json.NewEncoder(w).Encode(kafka.Schema{Schema: kafka.LaunchSchema, ID: 7}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestRegistryDecoder(t *testing.T) {
	var hits int32
	dec := kafka.NewRegistryDecoder(startFakeRegistry(t, &hits))
	enc, err := kafka.NewEncoder()
	test.ErrNil(t, err, "getting encoder")
	want := test.Records()[4]
	data, err := enc.Encode(want)
	test.ErrNil(t, err, "encoding")

	p := &launchdash.RecordParser{Columns: kafka.Columns()}
	for i := 0; i < 3; i++ {
		val, err := dec.Decode(append([]byte{0, 0, 0, 0, 7}, data...))
		test.ErrNil(t, err, "decoding")
		got, err := p.Parse(val)
		test.ErrNil(t, err, "parsing")
		test.MustBe(t, got, want)
	}
	test.MustBe(t, atomic.LoadInt32(&hits), int32(1), "schema should be cached")

	if _, err := dec.Decode(append([]byte{0, 0, 0, 0, 8}, data...)); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected unknown schema error, got %v", err)
	}
	if _, err := dec.Decode(append([]byte{1, 0, 0, 0, 7}, data...)); err == nil || !strings.Contains(err.Error(), "magic byte") {
		t.Fatalf("expected magic byte error, got %v", err)
	}
}

func TestAvroDecoderUnions(t *testing.T) {
	schema := `{"type": "record", "name": "Launch", "fields": [
        {"name": "launch_site", "type": "string"},
        {"name": "class", "type": "long"},
        {"name": "payload_mass_kg", "type": ["null", "double"]},
        {"name": "booster_version_category", "type": ["null", "string"]},
        {"name": "booster_version", "type": ["null", "string"]}
    ]}`
	codec, err := goavro.NewCodec(schema)
	test.ErrNil(t, err, "getting codec")
	data, err := codec.BinaryFromNative(nil, map[string]interface{}{
		"launch_site":              "KSC LC-39A",
		"class":                    int64(1),
		"payload_mass_kg":          goavro.Union("double", 2490.0),
		"booster_version_category": goavro.Union("string", "FT"),
		"booster_version":          nil,
	})
	test.ErrNil(t, err, "encoding")

	dec, err := kafka.NewAvroDecoder(schema)
	test.ErrNil(t, err, "getting decoder")
	val, err := dec.Decode(data)
	test.ErrNil(t, err, "decoding")
	got, err := (&launchdash.RecordParser{Columns: kafka.Columns()}).Parse(val)
	test.ErrNil(t, err, "parsing")
	test.MustBe(t, got, launchdash.Record{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Class: launchdash.Success, BoosterVersionCategory: "FT"})
}

func TestJSONDecoder(t *testing.T) {
	val, err := kafka.JSONDecoder{}.Decode([]byte(`{"launch_site": "VAFB SLC-4E", "class": 0, "payload_mass_kg": 500.5, "booster_version_category": "v1.1"}`))
	test.ErrNil(t, err, "decoding")
	got, err := (&launchdash.RecordParser{Columns: kafka.Columns()}).Parse(val)
	test.ErrNil(t, err, "parsing")
	test.MustBe(t, got, launchdash.Record{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 500.5, Class: launchdash.Failed, BoosterVersionCategory: "v1.1"})

	if _, err := (kafka.JSONDecoder{}).Decode([]byte("[1,2]")); err == nil {
		t.Fatalf("expected error for non-object json")
	}
}
