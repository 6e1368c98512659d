package fake_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/csv"
	"github.com/pilosa/launchdash/fake"
	"github.com/pilosa/launchdash/test"
)

func TestSource(t *testing.T) {
	src := fake.NewSource(1, 1000)

	for i := 0; i < 1000; i++ {
		rec, err := src.Record()
		if err != nil {
			t.Fatalf("unexpected error on rec %d: %v", i, err)
		}
		launch, ok := rec.(launchdash.Record)
		if !ok {
			t.Fatalf("unexpected record type %T", rec)
		}
		if launch.FlightNumber != i+1 {
			t.Fatalf("flight number %d at rec %d", launch.FlightNumber, i)
		}
		if launch.Class != launchdash.Success && launch.Class != launchdash.Failed {
			t.Fatalf("bad class %v", launch.Class)
		}
		if launch.PayloadMassKg < 0 || launch.PayloadMassKg > 9600 {
			t.Fatalf("payload %v out of range", launch.PayloadMassKg)
		}
	}
	rec, err := src.Record()
	if err != io.EOF {
		t.Fatalf("should get EOF after 1000 records, but %v", err)
	}
	if rec != nil {
		t.Fatalf("should have nil record after 1000 records, but got %v", rec)
	}
}

func TestLaunchesRepeat(t *testing.T) {
	test.MustBe(t, fake.Launches(7, 60), fake.Launches(7, 60))
	eras := map[string]bool{}
	for _, rec := range fake.Launches(7, 60) {
		eras[rec.BoosterVersionCategory] = true
	}
	test.MustBe(t, len(eras), 5)
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	test.ErrNil(t, fake.WriteCSV(buf, test.Records()), "writing")
	test.MustBe(t, buf.String(), test.CSV)
}

func TestGeneratedCSVLoads(t *testing.T) {
	recs := fake.Launches(3, 80)
	buf := &bytes.Buffer{}
	test.ErrNil(t, fake.WriteCSV(buf, recs), "writing")
	name := test.MustTempFile(t, buf.String())

	d, err := launchdash.NewLoader(csv.NewSource(csv.WithURLs([]string{name})), nil).Run()
	test.ErrNil(t, err, "loading")
	test.MustBe(t, d.Records(), recs)
	for _, site := range d.Sites() {
		found := false
		for _, s := range fake.Sites {
			found = found || s == site
		}
		if !found {
			t.Fatalf("unexpected site %s", site)
		}
	}
}

func TestGenMain(t *testing.T) {
	out := filepath.Join(test.MustTempDir(t), "launches.csv")
	m := fake.NewMain()
	m.Seed = 9
	m.Out = out
	test.ErrNil(t, m.Run(), "running")

	bs, err := os.ReadFile(out)
	test.ErrNil(t, err, "reading output")
	buf := &bytes.Buffer{}
	test.ErrNil(t, fake.WriteCSV(buf, fake.Launches(9, 56)), "writing")
	test.MustBe(t, string(bs), buf.String())

	m.Num = 0
	if err := m.Run(); err == nil {
		t.Fatalf("expected error for zero launches")
	}
}
