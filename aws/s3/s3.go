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

package s3

import (
	"io"
	"strings"
	"sync/atomic"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pilosa/launchdash/csv"
	"github.com/pkg/errors"
)

// SrcOption is a functional option type for RawSource.
type SrcOption func(s *RawSource)

// OptSrcClient is a SrcOption which sets the S3 client for a RawSource. When
// it isn't given a client is created from a new AWS session in the source's
// region.
func OptSrcClient(client s3iface.S3API) SrcOption {
	return func(s *RawSource) {
		s.s3 = client
	}
}

// RawSource lists the objects in an S3 bucket and hands them out as readers.
// Each object is a csv.OpenStringer, so a bucket of CSV files can be read by a
// csv.Source.
type RawSource struct {
	bucket string
	prefix string
	region string

	s3      s3iface.S3API
	objects []*s3.Object
	objIdx  *uint64
}

// NewRawSource lists every object in bucket whose key starts with prefix.
// Keys ending in "/" are folder placeholders and are skipped.
func NewRawSource(region, bucket, prefix string, opts ...SrcOption) (*RawSource, error) {
	idx := uint64(0)
	rs := &RawSource{
		region: region,
		bucket: bucket,
		prefix: prefix,

		objIdx: &idx,
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.bucket == "" {
		return nil, errors.New("no bucket given")
	}
	if rs.s3 == nil {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(rs.region)},
		)
		if err != nil {
			return nil, errors.Wrap(err, "getting new session")
		}
		rs.s3 = s3.New(sess)
	}

	input := &s3.ListObjectsInput{Bucket: aws.String(rs.bucket), Prefix: aws.String(rs.prefix)}
	for {
		resp, err := rs.s3.ListObjects(input)
		if err != nil {
			return nil, errors.Wrapf(err, "listing objects in %s", rs.bucket)
		}
		for _, obj := range resp.Contents {
			if obj.Key == nil || strings.HasSuffix(*obj.Key, "/") {
				continue
			}
			rs.objects = append(rs.objects, obj)
		}
		if !aws.BoolValue(resp.IsTruncated) || len(resp.Contents) == 0 {
			break
		}
		marker := resp.NextMarker
		if marker == nil {
			marker = resp.Contents[len(resp.Contents)-1].Key
		}
		input.Marker = marker
	}
	return rs, nil
}

// Keys returns the keys of the listed objects in listing order.
func (rs *RawSource) Keys() []string {
	keys := make([]string, len(rs.objects))
	for i, obj := range rs.objects {
		keys[i] = *obj.Key
	}
	return keys
}

// Object is a single S3 object. Each call to Open fetches it again from the
// start.
type Object struct {
	rs  *RawSource
	key string
}

// Open gets the object's body.
func (o *Object) Open() (io.ReadCloser, error) {
	result, err := o.rs.s3.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(o.rs.bucket),
		Key:    aws.String(o.key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", o.key)
	}
	return result.Body, nil
}

// String returns the object's location as an s3:// URL.
func (o *Object) String() string {
	return "s3://" + o.rs.bucket + "/" + o.key
}

// NextReader opens the next unread object, returning io.EOF once every object
// has been handed out. It is safe for concurrent use.
func (rs *RawSource) NextReader() (io.ReadCloser, string, error) {
	idx := atomic.AddUint64(rs.objIdx, 1) - 1
	if int(idx) >= len(rs.objects) {
		return nil, "", io.EOF
	}
	obj := &Object{rs: rs, key: *rs.objects[idx].Key}
	body, err := obj.Open()
	if err != nil {
		return nil, "", err
	}
	return body, obj.key, nil
}

// OpenStringers returns every listed object as a csv.OpenStringer.
func (rs *RawSource) OpenStringers() []csv.OpenStringer {
	ret := make([]csv.OpenStringer, len(rs.objects))
	for i, obj := range rs.objects {
		ret[i] = &Object{rs: rs, key: *obj.Key}
	}
	return ret
}
