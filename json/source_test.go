package json_test

import (
	stdjson "encoding/json"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/json"
	"github.com/pilosa/launchdash/test"
)

// readers is a launchdash.RawSource over in-memory documents.
type readers struct {
	names []string
	docs  []string
}

func (r *readers) NextReader() (io.ReadCloser, string, error) {
	if len(r.docs) == 0 {
		return nil, "", io.EOF
	}
	doc, name := r.docs[0], r.names[0]
	r.docs, r.names = r.docs[1:], r.names[1:]
	return ioutil.NopCloser(strings.NewReader(doc)), name, nil
}

func TestSource(t *testing.T) {
	src := json.NewSource(strings.NewReader(`{"Launch Site": "KSC LC-39A", "class": 1}
{"Launch Site": "VAFB SLC-4E", "class": 0}`))
	rec, err := src.Record()
	test.ErrNil(t, err, "first record")
	test.MustBe(t, rec, map[string]interface{}{"Launch Site": "KSC LC-39A", "class": stdjson.Number("1")})
	_, err = src.Record()
	test.ErrNil(t, err, "second record")
	_, err = src.Record()
	test.MustBe(t, err, io.EOF)
}

func TestSourceFromRawSourceLoads(t *testing.T) {
	cols := launchdash.DefaultColumns()
	docs := []string{}
	for i, rec := range test.Records() {
		bs, err := stdjson.Marshal(map[string]interface{}{
			cols.FlightNumber:           rec.FlightNumber,
			cols.LaunchSite:             rec.LaunchSite,
			cols.Class:                  rec.Class,
			cols.PayloadMassKg:          rec.PayloadMassKg,
			cols.BoosterVersion:         rec.BoosterVersion,
			cols.BoosterVersionCategory: rec.BoosterVersionCategory,
		})
		test.ErrNil(t, err, "marshaling")
		if i < 4 {
			docs = append(docs, string(bs))
		} else {
			docs[len(docs)-1] += "\n" + string(bs)
		}
	}
	src := json.NewSourceFromRawSource(&readers{names: []string{"a", "b", "c", "d"}, docs: docs})
	d, err := launchdash.NewLoader(src, nil).Run()
	test.ErrNil(t, err, "loading")
	test.MustBe(t, d.Records(), test.Records())
}

func TestSourceFromRawSourceBadObject(t *testing.T) {
	src := json.NewSourceFromRawSource(&readers{names: []string{"good", "bad"}, docs: []string{`{"a": 1}`, `{"a": 1} {"a": `}})
	for i := 0; i < 2; i++ {
		_, err := src.Record()
		test.ErrNil(t, err, "getting record")
	}
	_, err := src.Record()
	if err == nil || !strings.Contains(err.Error(), "decoding object 2 of bad") {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = src.Record()
	test.MustBe(t, err, io.EOF)
}
