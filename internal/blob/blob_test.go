package blob

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	mem, err := Open(ctx, Options{Driver: DriverMemory})
	if err != nil || mem.Driver() != DriverMemory {
		t.Fatalf("memory: %v %v", mem, err)
	}
	fs, err := Open(ctx, Options{FSRoot: t.TempDir()})
	if err != nil || fs.Driver() != DriverFilesystem {
		t.Fatalf("default driver should be fs: %v %v", fs, err)
	}
	if _, err := Open(ctx, Options{Driver: DriverS3}); err == nil {
		t.Fatalf("expected s3 without bucket to fail")
	}
	if _, err := Open(ctx, Options{Driver: "ftp"}); err == nil || !strings.Contains(err.Error(), "ftp") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestBackendsShareErrorKinds(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("fs: %v", err)
	}
	for _, s := range []Store{NewMemory(), fs} {
		if _, err := s.Put(ctx, "a.csv", strings.NewReader("a"), PutOptions{}); err != nil {
			t.Fatalf("%s put: %v", s.Driver(), err)
		}
		if _, err := s.Put(ctx, "a.csv", strings.NewReader("a"), PutOptions{}); !errors.Is(err, ErrExists) {
			t.Fatalf("%s: expected exists, got %v", s.Driver(), err)
		}
		if _, err := s.Head(ctx, "b.csv"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected not found, got %v", s.Driver(), err)
		}
		if _, err := s.Put(ctx, "", strings.NewReader("a"), PutOptions{}); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("%s: expected invalid key, got %v", s.Driver(), err)
		}
	}
}
