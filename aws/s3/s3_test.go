package s3_test

import (
	"io"
	"io/ioutil"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/aws/s3"
	"github.com/pilosa/launchdash/test"
	"github.com/pkg/errors"
)

// fakeS3 serves objects from memory, listing at most pageSize keys per call.
type fakeS3 struct {
	s3iface.S3API
	objects  map[string]string
	pageSize int
	lists    int
	gets     int
}

func (f *fakeS3) ListObjects(in *awss3.ListObjectsInput) (*awss3.ListObjectsOutput, error) {
	f.lists++
	keys := make([]string, 0)
	for k := range f.objects {
		if strings.HasPrefix(k, aws.StringValue(in.Prefix)) && k > aws.StringValue(in.Marker) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &awss3.ListObjectsOutput{IsTruncated: aws.Bool(false)}
	if len(keys) > f.pageSize {
		keys = keys[:f.pageSize]
		out.IsTruncated = aws.Bool(true)
	}
	for _, k := range keys {
		out.Contents = append(out.Contents, &awss3.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (f *fakeS3) GetObject(in *awss3.GetObjectInput) (*awss3.GetObjectOutput, error) {
	f.gets++
	content, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &awss3.GetObjectOutput{Body: ioutil.NopCloser(strings.NewReader(content))}, nil
}

func splitCSV() (string, string) {
	lines := strings.SplitAfter(test.CSV, "\n")
	return strings.Join(lines[:6], ""), lines[0] + strings.Join(lines[6:], "")
}

func TestRawSourceListing(t *testing.T) {
	fake := &fakeS3{pageSize: 2, objects: map[string]string{
		"launches/":         "",
		"launches/a.csv":    "x",
		"launches/b.csv":    "y",
		"launches/c.csv":    "z",
		"launches/d/":       "",
		"launches/d/e.csv":  "w",
		"other/ignored.csv": "q",
	}}
	rs, err := s3.NewRawSource("us-east-1", "bucket", "launches/", s3.OptSrcClient(fake))
	test.ErrNil(t, err, "getting raw source")
	test.MustBe(t, rs.Keys(), []string{"launches/a.csv", "launches/b.csv", "launches/c.csv", "launches/d/e.csv"})
	if fake.lists < 2 {
		t.Fatalf("expected paged listing, got %d calls", fake.lists)
	}

	strs := rs.OpenStringers()
	test.MustBe(t, strs[0].String(), "s3://bucket/launches/a.csv")

	body, key, err := rs.NextReader()
	test.ErrNil(t, err, "next reader")
	content, _ := ioutil.ReadAll(body)
	body.Close()
	test.MustBe(t, key, "launches/a.csv")
	test.MustBe(t, string(content), "x")
	for i := 0; i < 3; i++ {
		_, _, err = rs.NextReader()
		test.ErrNil(t, err, "next reader")
	}
	_, _, err = rs.NextReader()
	test.MustBe(t, err, io.EOF)
}

func TestConfigLoadsDataset(t *testing.T) {
	first, second := splitCSV()
	fake := &fakeS3{pageSize: 1000, objects: map[string]string{
		"2016.csv": first,
		"2017.csv": second,
	}}
	conf := s3.NewConfig()
	conf.Bucket = "launches"
	src, err := conf.NewSource(s3.OptSrcClient(fake))
	test.ErrNil(t, err, "getting source")
	d, err := launchdash.Load(src)
	test.ErrNil(t, err, "loading")
	test.MustBe(t, d.Records(), test.Records())
}

func TestRawSourceErrors(t *testing.T) {
	if _, err := s3.NewRawSource("us-east-1", "", "", s3.OptSrcClient(&fakeS3{})); err == nil {
		t.Fatalf("expected error for missing bucket")
	}

	fake := &fakeS3{pageSize: 10, objects: map[string]string{"a.csv": "a\n1\n"}}
	rs, err := s3.NewRawSource("us-east-1", "b", "", s3.OptSrcClient(fake))
	test.ErrNil(t, err, "getting raw source")
	delete(fake.objects, "a.csv")
	_, err = rs.OpenStringers()[0].Open()
	if err == nil || !strings.Contains(err.Error(), "fetching a.csv") {
		t.Fatalf("unexpected error: %v", err)
	}
}
