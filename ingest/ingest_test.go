package ingest_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/ingest"
	"github.com/pilosa/launchdash/mock"
	"github.com/pilosa/launchdash/test"
)

func TestLoadCSV(t *testing.T) {
	conf := ingest.NewConfig()
	conf.Files = []string{test.MustTempFile(t, test.CSV)}
	stats := &mock.RecordingStatter{}
	d, err := conf.Load(launchdash.NopLogger{}, stats)
	test.ErrNil(t, err, "loading")
	test.MustBe(t, d.Records(), test.Records())
	test.MustBe(t, stats.Counts["records.loaded"], int64(10))
}

func TestLoadCSVFailureIsFatal(t *testing.T) {
	conf := ingest.NewConfig()
	conf.Files = []string{test.MustTempFile(t, "Launch Site,class\nKSC LC-39A,1\n")}
	d, err := conf.Load(nil, nil)
	if d != nil || !launchdash.IsInvalidDatasetState(err) {
		t.Fatalf("expected invalid dataset state, got %v, %v", d, err)
	}
	if !strings.Contains(err.Error(), "loading from csv ") {
		t.Fatalf("error should name the input: %v", err)
	}
}

func TestLoadSnapshot(t *testing.T) {
	for _, backend := range []string{"bolt", "leveldb"} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(test.MustTempDir(t), "store")
			st, err := ingest.OpenStore(backend, path)
			test.ErrNil(t, err, "opening store")
			test.ErrNil(t, st.Save("launches", test.Records()), "saving")
			test.ErrNil(t, st.Close(), "closing")

			conf := ingest.NewConfig()
			conf.Snapshot = "launches"
			conf.Store = ingest.StoreConfig{Backend: backend, Path: path}
			// the snapshot wins over files
			conf.Files = []string{"does-not-exist.csv"}
			test.MustBe(t, conf.Input(), "snapshot 'launches' in "+backend+" store "+path)
			d, err := conf.Load(nil, nil)
			test.ErrNil(t, err, "loading")
			test.MustBe(t, d.Records(), test.Records())

			conf.Snapshot = "other"
			if _, err := conf.Load(nil, nil); err == nil || !strings.Contains(err.Error(), "no snapshot named 'other'") {
				t.Fatalf("expected missing snapshot error, got %v", err)
			}
		})
	}
}

func TestInputPriority(t *testing.T) {
	conf := ingest.NewConfig()
	test.MustBe(t, conf.Input(), "csv spacex_launch_dash.csv")
	conf.S3.Bucket = "launches"
	conf.S3.Prefix = "2017/"
	test.MustBe(t, conf.Input(), "s3://launches/2017/")
	conf.Kafka.Topic = "launches"
	test.MustBe(t, conf.Input(), "kafka topic launches")

	conf = ingest.NewConfig()
	conf.Files = nil
	test.MustBe(t, conf.Input(), "nothing")
	if _, err := conf.Load(nil, nil); err == nil || !strings.Contains(err.Error(), "no input configured") {
		t.Fatalf("expected no input error, got %v", err)
	}
}

func TestOpenStoreErrors(t *testing.T) {
	if _, err := ingest.OpenStore("redis", "x"); err == nil || !strings.Contains(err.Error(), "unknown snapshot store backend") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
	if _, err := ingest.OpenStore("bolt", ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSnapshotMain(t *testing.T) {
	m := ingest.NewSnapshotMain()
	m.Name = "csv"
	m.Progress = 0
	m.Input.Files = []string{test.MustTempFile(t, test.CSV)}
	m.Input.Store.Path = filepath.Join(test.MustTempDir(t), "snap.db")
	test.ErrNil(t, m.Run(), "running snapshot")

	conf := m.Input
	conf.Files = nil
	conf.Snapshot = "csv"
	d, err := conf.Load(nil, nil)
	test.ErrNil(t, err, "loading snapshot")
	test.MustBe(t, d.Records(), test.Records())

	m.Name = ""
	if err := m.Run(); err == nil {
		t.Fatalf("expected error for empty snapshot name")
	}
}

func TestLoadJSON(t *testing.T) {
	conf := ingest.NewConfig()
	conf.Format = "json"
	conf.Files = []string{test.MustTempFile(t, `
{"Launch Site": "KSC LC-39A", "class": 1, "Payload Mass (kg)": 2490, "Booster Version Category": "FT"}
{"Launch Site": "VAFB SLC-4E", "class": 0, "Payload Mass (kg)": 500.5, "Booster Version Category": "v1.1"}
`)}
	test.MustBe(t, conf.Input(), "json "+conf.Files[0])
	d, err := conf.Load(nil, nil)
	test.ErrNil(t, err, "loading")
	test.MustBe(t, d.Records(), []launchdash.Record{
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Class: launchdash.Success, BoosterVersionCategory: "FT"},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 500.5, Class: launchdash.Failed, BoosterVersionCategory: "v1.1"},
	})

	conf.Format = "xml"
	if _, err := conf.Load(nil, nil); err == nil || !strings.Contains(err.Error(), "unsupported input format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
