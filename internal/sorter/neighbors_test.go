package sorter

import (
	"math"
	"testing"

	"github.com/kozaktomas/face-sorter/internal/align"
)

func TestNeighborIndex_Search(t *testing.T) {
	set := vectorSet(
		[]string{"query", "near", "mid", "far"},
		[]align.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 10, Y: 10}, {X: 100, Y: 100}},
	)

	index, err := NewNeighborIndex(set)
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}

	neighbors, err := index.Search("query", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(neighbors))
	}
	if neighbors[0].Name != "near" {
		t.Errorf("expected nearest neighbor 'near', got %s", neighbors[0].Name)
	}
	if math.Abs(neighbors[0].Distance-2) > 1e-6 {
		t.Errorf("expected L1 distance 2, got %v", neighbors[0].Distance)
	}
	if neighbors[1].Name != "mid" {
		t.Errorf("expected second neighbor 'mid', got %s", neighbors[1].Name)
	}
}

func TestNeighborIndex_ExcludesQueryFace(t *testing.T) {
	set := vectorSet(
		[]string{"a", "b"},
		[]align.Point{{X: 0, Y: 0}, {X: 5, Y: 5}},
	)

	index, err := NewNeighborIndex(set)
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}

	neighbors, err := index.Search("a", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for _, n := range neighbors {
		if n.Name == "a" {
			t.Error("query face must not appear in its own results")
		}
	}
}

func TestNeighborIndex_UnknownFace(t *testing.T) {
	index, err := NewNeighborIndex(vectorSet([]string{"a"}, []align.Point{{X: 0, Y: 0}}))
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	if _, err := index.Search("missing", 1); err == nil {
		t.Error("expected error for unknown face")
	}
}

func TestNeighborIndex_RequiresLandmarks(t *testing.T) {
	if _, err := NewNeighborIndex(scalarSet([]string{"a"}, []float64{1})); err == nil {
		t.Error("expected error for entries without landmark vectors")
	}
}
