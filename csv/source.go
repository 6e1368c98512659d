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

package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Source satisfies the launchdash.Source interface for CSV data. Each line in
// a CSV file will be returned by a call to Record as a map[string]string where
// the keys are taken from the first line of the CSV. Source is safe for
// concurrent use. Call Close to stop reading early.
//
// The Source takes care of retrying failed reads/downloads and making sure not
// to return duplicate data. With the default concurrency of 1, records are
// returned in file order, which the dashboard relies on for stable display.
type Source struct {
	files       []*file
	maxRetries  int
	concurrency int
	client      *http.Client

	records   chan record
	quit      chan struct{}
	closeOnce sync.Once
}

// errClosed stops the fetching goroutines after Close.
var errClosed = errors.New("csv source closed")

// NewSource creates a launchdash.Source for CSV data. The source of the raw
// data can be set by using Options defined in this package. e.g.
//
// src := NewSource(WithURLs([]string{"myfile1.csv", "http://example.com/myfile2.csv"}))
func NewSource(options ...Option) *Source {
	src := &Source{
		records:     make(chan record),
		quit:        make(chan struct{}),
		maxRetries:  3,
		concurrency: 1,
		client:      http.DefaultClient,
	}

	for _, opt := range options {
		opt(src)
	}
	go src.getRecords()
	return src
}

// Option is a functional option to pass to NewSource.
type Option func(*Source)

// WithURLs returns an Option which adds the slice of URLs to the set of data
// sources a Source will read from. The URLs may be HTTP or local files.
func WithURLs(urls []string) Option {
	return func(s *Source) {
		for _, url := range urls {
			s.files = append(s.files, &file{OpenStringer: urlOpener{url: url, client: s}})
		}
	}
}

// WithOpenStringers returns an Option which adds the slice of OpenStringers to
// the set of data sources a Source will read from.
func WithOpenStringers(os []OpenStringer) Option {
	return func(s *Source) {
		for _, os := range os {
			s.files = append(s.files, &file{OpenStringer: os})
		}
	}
}

// WithMaxRetries returns an Option which sets the max number of tries per file
// on a Source.
func WithMaxRetries(maxRetries int) Option {
	return func(s *Source) {
		if maxRetries > 0 {
			s.maxRetries = maxRetries
		}
	}
}

// WithConcurrency returns an Option which sets the number of goroutines
// fetching files simultaneously. Records from different files interleave when
// c > 1.
func WithConcurrency(c int) Option {
	return func(s *Source) {
		if c > 0 {
			s.concurrency = c
		}
	}
}

// WithHTTPClient returns an Option which sets the client used to fetch HTTP
// URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.client = c
		}
	}
}

// file tracks the use of an OpenStringer.
type file struct {
	OpenStringer
	rows int // data rows of this file already delivered.
}

// Opener is an interface to a resource which can be repeatedly Opened (and the
// returned ReadCloser can be subsequently read). Each call to Open should
// return a ReadCloser which reads from the beginning of the resource. In the
// case of an error while reading, Open will be called again to retry reading
// the entire resource.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// OpenStringer is an Opener which also has a String method which should return
// the name of the resource being opened (e.g. a file or URL).
type OpenStringer interface {
	fmt.Stringer
	Opener
}

// urlOpener turns a URL or file (string) into an OpenStringer.
type urlOpener struct {
	url    string
	client *Source
}

func (u urlOpener) Open() (io.ReadCloser, error) {
	if strings.HasPrefix(u.url, "http://") || strings.HasPrefix(u.url, "https://") {
		resp, err := u.client.client.Get(u.url)
		if err != nil {
			return nil, errors.Wrap(err, "getting via http")
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, errors.Errorf("getting via http: status %s", resp.Status)
		}
		return resp.Body, nil
	}
	f, err := os.Open(u.url)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	return f, nil
}

func (u urlOpener) String() string {
	return u.url
}

// Record returns a map[string]string representing a single data line of a
// CSV file. Each key is taken from the header, and each value is parsed from a
// row - empty fields are skipped.
func (c *Source) Record() (interface{}, error) {
	select {
	case <-c.quit:
		return nil, io.EOF
	default:
	}
	select {
	case rec, ok := <-c.records:
		if !ok {
			return nil, io.EOF
		}
		if rec.err != nil {
			return nil, rec.err
		}
		return rec.rec, nil
	case <-c.quit:
		return nil, io.EOF
	}
}

// Close stops any files still being fetched. Record returns io.EOF after
// Close.
func (c *Source) Close() error {
	c.closeOnce.Do(func() { close(c.quit) })
	return nil
}

// send delivers rec to Record, or returns errClosed once the Source is
// closed.
func (c *Source) send(rec record) error {
	select {
	case c.records <- rec:
		return nil
	case <-c.quit:
		return errClosed
	}
}

type record struct {
	rec map[string]string
	err error
}

func (c *Source) getRecords() {
	fileChan := make(chan *file, c.concurrency)
	wg := sync.WaitGroup{}
	for i := 0; i < c.concurrency; i++ {
		wg.Add(1)
		go func() {
			for file := range fileChan {
				c.getRows(file)
			}
			wg.Done()
		}()
	}
feed:
	for _, file := range c.files {
		select {
		case fileChan <- file:
		case <-c.quit:
			break feed
		}
	}
	close(fileChan)
	wg.Wait()
	close(c.records)
}

func (c *Source) getRows(file *file) {
	var err error
	for try := 0; try < c.maxRetries; try++ {
		err = c.getRowTry(file)
		if err == nil || err == errClosed {
			return
		}
	}
	_ = c.send(record{err: errors.Wrapf(err, "couldn't fetch '%s' - tried %d times, latest", file, c.maxRetries)})
}

// getRowTry reads file from the start, skipping rows delivered by an earlier
// try. It returns errClosed, or an error worth retrying; permanent problems
// with the content are sent as records.
func (c *Source) getRowTry(file *file) error {
	content, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "opening")
	}
	defer content.Close()

	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return c.send(record{err: errors.Errorf("%s has no header", file)})
	} else if err != nil {
		return c.readErr(file, err, 0)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if err := validateHeader(header); err != nil {
		return c.send(record{err: errors.Wrapf(err, "validating header of %s", file)})
	}

	seen := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return c.readErr(file, err, seen)
		}
		seen++
		if seen <= file.rows {
			continue // delivered by a previous try
		}
		file.rows++
		rec := record{}
		rec.rec, rec.err = parseRecord(header, row)
		if rec.err != nil {
			rec.err = errors.Wrapf(rec.err, "file %s: parsing row %d", file, file.rows)
		}
		if err := c.send(rec); err != nil {
			return err
		}
	}
}

// readErr sends malformed CSV as a permanent error and returns anything else
// to be retried.
func (c *Source) readErr(file *file, err error, row int) error {
	if perr, ok := err.(*csv.ParseError); ok {
		return c.send(record{err: errors.Wrapf(perr, "file %s", file)})
	}
	return errors.Wrapf(err, "reading '%s' after row %d", file, row)
}

func parseRecord(header []string, row []string) (map[string]string, error) {
	if len(header) > len(row) {
		return nil, errors.Errorf("header/row len mismatch: %dvs%d, %v and %v", len(header), len(row), header, row)
	} else if len(row) > len(header) {
		for i := len(header); i < len(row); i++ {
			if strings.TrimSpace(row[i]) != "" {
				log.Printf("data in non headered field: %v, %d", row, i)
			}
		}
	}
	ret := make(map[string]string, len(header))
	for i := 0; i < len(header); i++ {
		if row[i] == "" {
			continue
		}
		ret[header[i]] = row[i]
	}
	return ret, nil
}

func validateHeader(header []string) error {
	fields := make(map[string]int)
	for i, h := range header {
		if h == "" {
			return errors.Errorf("header contains empty string at %d: %v", i, header)
		}
		if pos, exists := fields[h]; exists {
			return errors.Errorf("%s appeared at both %d and %d in header", h, pos, i)
		}
		fields[h] = i
	}
	return nil
}
