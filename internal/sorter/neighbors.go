package sorter

import (
	"errors"

	"github.com/coder/hnsw"

	"github.com/kozaktomas/face-sorter/internal/align"
)

// neighborMaxConns is the HNSW M parameter (max neighbours per node).
const neighborMaxConns = 16

// Neighbor is one nearest-neighbour search hit.
type Neighbor struct {
	Name     string
	Distance float64
}

// NeighborIndex answers k-nearest-face queries over flattened landmark
// vectors using an HNSW graph with the same L1 distance the pairwise
// passes use.
type NeighborIndex struct {
	graph  *hnsw.Graph[int]
	byID   map[int]string
	byName map[string][]float32
}

// NewNeighborIndex builds an index over the entries of a scored result
// set. The entries must carry landmark vectors (face methods).
func NewNeighborIndex(result ResultSet) (*NeighborIndex, error) {
	g := hnsw.NewGraph[int]()
	g.M = neighborMaxConns
	g.Ml = 1.0 / float64(neighborMaxConns)
	g.Distance = l1Distance32

	x := &NeighborIndex{
		graph:  g,
		byID:   make(map[int]string, len(result)),
		byName: make(map[string][]float32, len(result)),
	}
	for i := range result {
		if len(result[i].Landmarks) == 0 {
			return nil, errors.New("result entry has no landmark vector; index requires a face method")
		}
		vec := flatten(result[i].Landmarks)
		g.Add(hnsw.MakeNode(i, vec))
		x.byID[i] = result[i].Name
		x.byName[result[i].Name] = vec
	}
	return x, nil
}

// Search returns the k nearest faces to the named face, nearest first.
// The query face itself is excluded from the results.
func (x *NeighborIndex) Search(name string, k int) ([]Neighbor, error) {
	query, ok := x.byName[name]
	if !ok {
		return nil, errors.New("face not found in index: " + name)
	}

	// Ask for one extra node since the query face is its own nearest
	// neighbour.
	nodes := x.graph.Search(query, k+1)
	out := make([]Neighbor, 0, k)
	for _, n := range nodes {
		if x.byID[n.Key] == name {
			continue
		}
		out = append(out, Neighbor{
			Name:     x.byID[n.Key],
			Distance: float64(l1Distance32(query, n.Value)),
		})
		if len(out) == k {
			break
		}
	}
	return out, nil
}

// flatten lays landmark coordinates out as [x0, y0, x1, y1, ...] for the
// HNSW graph.
func flatten(landmarks align.LandmarkSet) []float32 {
	out := make([]float32, 0, len(landmarks)*2)
	for _, p := range landmarks {
		out = append(out, float32(p.X), float32(p.Y))
	}
	return out
}

// l1Distance32 mirrors align.L1Distance over flattened float32 vectors.
func l1Distance32(a, b hnsw.Vector) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}
