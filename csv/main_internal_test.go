package csv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		header []string
		expErr string
	}{
		{header: []string{"a", "b", "c"}},
		{header: []string{"a", "", "c"}, expErr: "empty string at 1"},
		{header: []string{"a", "b", "a"}, expErr: "a appeared at both 0 and 2"},
	}
	for i, tst := range tests {
		err := validateHeader(tst.header)
		if tst.expErr == "" {
			if err != nil {
				t.Errorf("test %d: unexpected error: %v", i, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tst.expErr) {
			t.Errorf("test %d: expected error containing %q, got %v", i, tst.expErr, err)
		}
	}
}

func TestParseRecord(t *testing.T) {
	rec, err := parseRecord([]string{"a", "b", "c"}, []string{"1", "", "3", ""})
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if len(rec) != 2 || rec["a"] != "1" || rec["c"] != "3" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if _, ok := rec["b"]; ok {
		t.Fatalf("empty field should be skipped: %v", rec)
	}

	_, err = parseRecord([]string{"a", "b", "c"}, []string{"1"})
	if err == nil || !strings.Contains(err.Error(), "len mismatch") {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestCloseStopsFetching(t *testing.T) {
	dir, err := os.MkdirTemp("", "csv-close")
	if err != nil {
		t.Fatalf("making temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	urls := make([]string, 0)
	for i := 0; i < 4; i++ {
		name := filepath.Join(dir, fmt.Sprintf("f%d.csv", i))
		if err := os.WriteFile(name, []byte("a,b\n1,2\n3,4\n5,6\n"), 0600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		urls = append(urls, name)
	}

	src := NewSource(WithURLs(urls), WithConcurrency(2))
	if _, err := src.Record(); err != nil {
		t.Fatalf("getting first record: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("closing twice: %v", err)
	}
	if _, err := src.Record(); err != io.EOF {
		t.Fatalf("expected io.EOF after Close, got %v", err)
	}

	done := make(chan struct{})
	go func() {
		for range src.records {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("fetching goroutines still running after Close")
	}
}
