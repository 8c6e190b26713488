package s3

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"devicecore/internal/blob/core"
)

// fakeBucket serves the path-style subset of the S3 REST API the store uses.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	// pageSize > 0 splits list responses to exercise continuation tokens.
	pageSize int
}

type fakeObject struct {
	body        []byte
	contentType string
	metadata    http.Header
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string]fakeObject)}
}

func (f *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		return f.list(req), nil
	}
	obj, ok := f.objects[key]
	switch req.Method {
	case http.MethodHead, http.MethodGet:
		if !ok {
			return respond(http.StatusNotFound, nil, nil), nil
		}
		header := http.Header{
			"Content-Length": {strconv.Itoa(len(obj.body))},
			"Content-Type":   {obj.contentType},
			"Etag":           {`"etag-` + key + `"`},
			"Last-Modified":  {time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat)},
		}
		for k, v := range obj.metadata {
			header[k] = v
		}
		if req.Method == http.MethodHead {
			return respond(http.StatusOK, header, nil), nil
		}
		return respond(http.StatusOK, header, obj.body), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") || req.Header.Get("X-Amz-Decoded-Content-Length") != "" {
			body = decodeChunked(body)
		}
		meta := http.Header{}
		for k, v := range req.Header {
			if strings.HasPrefix(strings.ToLower(k), "x-amz-meta-") {
				meta[k] = v
			}
		}
		f.objects[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type"), metadata: meta}
		return respond(http.StatusOK, http.Header{"Etag": {`"etag"`}}, nil), nil
	case http.MethodDelete:
		delete(f.objects, key)
		return respond(http.StatusNoContent, nil, nil), nil
	}
	return respond(http.StatusNotImplemented, nil, nil), nil
}

func (f *fakeBucket) list(req *http.Request) *http.Response {
	prefix := req.URL.Query().Get("prefix")
	start, _ := strconv.Atoi(req.URL.Query().Get("continuation-token"))
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	keys = keys[min(start, len(keys)):]
	truncated := f.pageSize > 0 && len(keys) > f.pageSize
	if truncated {
		keys = keys[:f.pageSize]
	}
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult>`)
	fmt.Fprintf(&b, "<IsTruncated>%t</IsTruncated>", truncated)
	if truncated {
		fmt.Fprintf(&b, "<NextContinuationToken>%d</NextContinuationToken>", start+f.pageSize)
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-15T00:00:00Z</LastModified></Contents>", k, len(f.objects[k].body))
	}
	b.WriteString("</ListBucketResult>")
	return respond(http.StatusOK, http.Header{"Content-Type": {"application/xml"}}, []byte(b.String()))
}

func respond(status int, header http.Header, body []byte) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{StatusCode: status, Header: header, Body: io.NopCloser(bytes.NewReader(body)), ContentLength: int64(len(body))}
}

// decodeChunked strips aws-chunked framing: "<hex>[;ext]\r\n<data>\r\n" repeated
// until a zero-length chunk, followed by optional trailers.
func decodeChunked(b []byte) []byte {
	r := bufio.NewReader(bytes.NewReader(b))
	var out []byte
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return out
		}
		sizeField, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		n, err := strconv.ParseInt(sizeField, 16, 64)
		if err != nil || n == 0 {
			return out
		}
		chunk := make([]byte, n)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return out
		}
		out = append(out, chunk...)
		_, _ = r.ReadString('\n')
	}
}

func newTestStore(t *testing.T, bucket *fakeBucket) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{
		Bucket:          "exports",
		Endpoint:        "https://s3.test.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      &http.Client{Transport: bucket},
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestS3StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newFakeBucket())
	if s.Driver() != core.DriverS3 || s.Bucket() != "exports" {
		t.Fatalf("unexpected store")
	}
	info, err := s.Put(ctx, "reports/devices.csv", strings.NewReader("ID,Type\nDEV1,Ventilator\n"), core.PutOptions{
		ContentType: "text/csv",
		Metadata:    map[string]string{"report": "devices"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "reports/devices.csv" || info.ContentType != "text/csv" || info.ETag != "etag-reports/devices.csv" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Metadata["report"] != "devices" {
		t.Fatalf("expected metadata round trip, got %+v", info.Metadata)
	}
	if _, err := s.Put(ctx, "reports/devices.csv", strings.NewReader("again"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists, got %v", err)
	}

	_, rc, err := s.Get(ctx, "reports/devices.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "ID,Type\nDEV1,Ventilator\n" {
		t.Fatalf("unexpected body %q", body)
	}

	url, err := s.PresignGet(ctx, "reports/devices.csv", 0)
	if err != nil || !strings.Contains(url, "X-Amz-Expires=900") {
		t.Fatalf("unexpected presigned url %q (%v)", url, err)
	}

	if ok, err := s.Delete(ctx, "reports/devices.csv"); !ok || err != nil {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := s.Delete(ctx, "reports/devices.csv"); ok || err != nil {
		t.Fatalf("second delete: %v %v", ok, err)
	}
	if _, _, err := s.Get(ctx, "reports/devices.csv"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestS3StoreListFollowsContinuationTokens(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	bucket.pageSize = 2
	s := newTestStore(t, bucket)
	for _, key := range []string{"r/c.csv", "r/a.csv", "r/b.csv", "other/x.csv"} {
		if _, err := s.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	list, err := s.List(ctx, "r/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Key != "r/a.csv" || list[2].Key != "r/c.csv" {
		t.Fatalf("unexpected list %+v", list)
	}
	empty, err := s.List(ctx, "none/")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %+v (%v)", empty, err)
	}
}

func TestS3StoreRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected missing bucket error")
	}
	if _, err := newTestStore(t, newFakeBucket()).Put(context.Background(), "", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
		t.Fatalf("expected invalid key, got %v", err)
	}
}

func TestDecodeChunked(t *testing.T) {
	got := decodeChunked([]byte("5;chunk-signature=abc\r\nhello\r\n0\r\nx-amz-checksum-crc32:AAAA\r\n\r\n"))
	if string(got) != "hello" {
		t.Fatalf("unexpected decode %q", got)
	}
}
