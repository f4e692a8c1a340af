package output

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/kozaktomas/face-sorter/internal/sorter"
)

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "pitch_000_0degs_to_45degs", expected: "pitch_000_0degs_to_45degs"},
		{name: "diacritics", input: "Jiří má tvář", expected: "jiri_ma_tvar"},
		{name: "uppercase and spaces", input: "My Bin 02", expected: "my_bin_02"},
		{name: "unsafe characters dropped", input: "a/b:c*d", expected: "abcd"},
		{name: "empty falls back", input: "///", expected: "bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPlaceOrdered_Copy(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "sorted")

	sources := map[string]string{
		"b.png": writeSource(t, srcDir, "b.png"),
		"a.png": writeSource(t, srcDir, "a.png"),
	}
	result := sorter.ResultSet{{Name: "b.png"}, {Name: "a.png"}}

	if err := PlaceOrdered(result, sources, Options{OutputDir: outDir, Keep: true}); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	for _, want := range []string{"000000_b.png", "000001_a.png"} {
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Errorf("expected output file %s: %v", want, err)
		}
	}
	// Keep mode leaves the originals in place.
	if _, err := os.Stat(sources["a.png"]); err != nil {
		t.Errorf("expected original to survive copy mode: %v", err)
	}
}

func TestPlaceOrdered_Move(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "sorted")

	sources := map[string]string{"a.png": writeSource(t, srcDir, "a.png")}
	result := sorter.ResultSet{{Name: "a.png"}}

	if err := PlaceOrdered(result, sources, Options{OutputDir: outDir}); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if _, err := os.Stat(sources["a.png"]); !os.IsNotExist(err) {
		t.Error("expected original to be moved away")
	}
}

func TestPlaceOrdered_MissingSource(t *testing.T) {
	err := PlaceOrdered(sorter.ResultSet{{Name: "ghost.png"}}, map[string]string{}, Options{OutputDir: t.TempDir()})
	if err == nil {
		t.Error("expected error for missing source path")
	}
}

func TestPlaceBins(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	sources := map[string]string{
		"a.png": writeSource(t, srcDir, "a.png"),
		"b.png": writeSource(t, srcDir, "b.png"),
	}
	bins := []sorter.Bin{
		{Name: "face_0000", Members: []string{"a.png"}},
		{Name: "face_0001", Members: []string{"b.png"}},
	}

	if err := PlaceBins(bins, sources, Options{OutputDir: outDir, Keep: true}); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	for _, want := range []string{"face_0000/a.png", "face_0001/b.png"} {
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Errorf("expected output file %s: %v", want, err)
		}
	}
}

func TestManifests(t *testing.T) {
	result := sorter.ResultSet{{Name: "a.png", Scalar: 1.5}, {Name: "b.png", Scalar: 0.5}}
	m := NewSortManifest(sorter.MethodDistance, result)

	if m.RunID == "" {
		t.Error("expected run ID")
	}
	if m.Method != "distance" {
		t.Errorf("expected method distance, got %s", m.Method)
	}
	if len(m.Faces) != 2 || m.Faces[0].Rank != 0 || m.Faces[1].Name != "b.png" {
		t.Errorf("unexpected faces: %+v", m.Faces)
	}

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var decoded Manifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.RunID != m.RunID || len(decoded.Faces) != 2 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}

	group := NewGroupManifest(sorter.MethodFace, []sorter.Bin{{Name: "face_0000", Members: []string{"a.png"}}})
	if len(group.Bins) != 1 || group.Bins[0].Name != "face_0000" {
		t.Errorf("unexpected bins: %+v", group.Bins)
	}
}
