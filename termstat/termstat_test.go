package termstat_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/pilosa/launchdash/termstat"
	"github.com/pilosa/launchdash/test"
)

// syncBuffer is a bytes.Buffer safe for the collector's writer goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCollector(t *testing.T) {
	out := &syncBuffer{}
	c := termstat.NewCollector(out, time.Hour)
	c.Count("records.loaded", 3, 1)
	c.Count("records.loaded", 4, 1)
	c.Gauge("dataset.sites", 4, 1)
	c.Timing("load.duration", 1500*time.Millisecond, 1)
	c.Histogram("ignored", 1, 1)
	c.Stop()
	test.MustBe(t, out.String(), "\rrecords.loaded: 7 dataset.sites: 4 load.duration: 1.5s \n")
}

func TestCollectorUnchanged(t *testing.T) {
	out := &syncBuffer{}
	c := termstat.NewCollector(out, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	c.Stop()
	test.MustBe(t, out.String(), "\n")
}
