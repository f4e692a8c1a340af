package cache

import (
	"path/filepath"
	"testing"
)

type testRecord struct {
	Name   string      `json:"name"`
	Points [][]float64 `json:"points"`
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_RoundTrip(t *testing.T) {
	c := openTestCache(t)

	in := testRecord{Name: "face_0001.png", Points: [][]float64{{1, 2}, {3, 4}}}
	if err := c.Put("/faces/face_0001.png", 1234, in); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	var out testRecord
	hit, err := c.Get("/faces/face_0001.png", 1234, &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if out.Name != in.Name || len(out.Points) != 2 {
		t.Errorf("round trip mismatch: got %+v", out)
	}
}

func TestCache_MissOnUnknownPath(t *testing.T) {
	c := openTestCache(t)

	var out testRecord
	hit, err := c.Get("/faces/unknown.png", 1, &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if hit {
		t.Error("expected cache miss for unknown path")
	}
}

func TestCache_MissOnChangedMtime(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("/faces/face.png", 100, testRecord{Name: "face.png"}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	var out testRecord
	hit, err := c.Get("/faces/face.png", 200, &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if hit {
		t.Error("expected cache miss after mtime change")
	}
}

func TestCache_PutReplaces(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("/faces/face.png", 100, testRecord{Name: "old"}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := c.Put("/faces/face.png", 200, testRecord{Name: "new"}); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	var out testRecord
	hit, err := c.Get("/faces/face.png", 200, &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !hit || out.Name != "new" {
		t.Errorf("expected replaced record, hit=%v record=%+v", hit, out)
	}
}
