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

package file

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"
)

// RawSource is a launchdash.RawSource over local files. Each path given to
// NewRawSource may be a file or a directory; a directory contributes its
// regular files in name order.
type RawSource struct {
	files   []string
	fileIdx *uint64
}

// NewRawSource lists the files at pathnames.
func NewRawSource(pathnames ...string) (*RawSource, error) {
	fileIdx := uint64(0)
	s := &RawSource{
		fileIdx: &fileIdx,
	}
	for _, pathname := range pathnames {
		info, err := os.Stat(pathname)
		if err != nil {
			return nil, errors.Wrap(err, "statting path")
		}
		if !info.IsDir() {
			s.files = append(s.files, pathname)
			continue
		}
		infos, err := ioutil.ReadDir(pathname)
		if err != nil {
			return nil, errors.Wrap(err, "reading directory")
		}
		for _, info = range infos {
			if info.Mode().IsRegular() {
				s.files = append(s.files, filepath.Join(pathname, info.Name()))
			}
		}
	}
	return s, nil
}

// Files returns the files which will be read, in order.
func (s *RawSource) Files() []string {
	return s.files
}

// NextReader opens the next file.
func (s *RawSource) NextReader() (io.ReadCloser, string, error) {
	idx := atomic.AddUint64(s.fileIdx, 1) - 1
	if int(idx) >= len(s.files) {
		return nil, "", io.EOF
	}

	file, err := os.Open(s.files[idx])
	if err != nil {
		return nil, "", errors.Wrapf(err, "opening %s", s.files[idx])
	}
	return file, s.files[idx], nil
}
