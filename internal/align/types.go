// Package align models facial landmark geometry. It provides the landmark
// point set produced by an alignment stage, pose angle estimation and the
// distance-from-mean-shape metric used by the sorter.
package align

import (
	"errors"
	"math"
)

// LandmarkCount is the point count of the supported landmark scheme
// (the common 68-point face annotation).
const LandmarkCount = 68

// ErrUnsupportedScheme is returned by metrics that require the 68-point
// landmark scheme when the face uses a different point count.
var ErrUnsupportedScheme = errors.New("landmark scheme is not the 68-point scheme")

// Point is a single 2D landmark coordinate in pixels.
// Y grows downwards (image coordinates).
type Point struct {
	X float64
	Y float64
}

// LandmarkSet is an ordered, fixed-count sequence of landmark points.
// The count is constant across all faces in a single run.
type LandmarkSet []Point

// Clone returns an independent copy of the landmark set.
func (l LandmarkSet) Clone() LandmarkSet {
	out := make(LandmarkSet, len(l))
	copy(out, l)
	return out
}

// Centroid returns the mean point of the set.
func (l LandmarkSet) Centroid() Point {
	var c Point
	if len(l) == 0 {
		return c
	}
	for _, p := range l {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(l))
	c.Y /= float64(len(l))
	return c
}

// Extent returns the width and height of the axis-aligned landmark bounding box.
func (l LandmarkSet) Extent() (w, h float64) {
	if len(l) == 0 {
		return 0, 0
	}
	minX, maxX := l[0].X, l[0].X
	minY, maxY := l[0].Y, l[0].Y
	for _, p := range l[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

// L1Distance returns the sum of absolute coordinate-wise differences
// between two landmark sets. Mismatched lengths compare only the common
// prefix; the loader guarantees equal counts within a run.
func L1Distance(a, b LandmarkSet) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(a[i].X-b[i].X) + math.Abs(a[i].Y-b[i].Y)
	}
	return sum
}

// AlignedFace wraps the landmark set of one face together with its
// original bounding box, when the alignment record carries one.
type AlignedFace struct {
	Landmarks LandmarkSet
	bbox      []float64 // [x, y, w, h] or nil
}

// NewAlignedFace creates a face from its landmarks and an optional
// [x, y, w, h] bounding box.
func NewAlignedFace(landmarks LandmarkSet, bbox []float64) *AlignedFace {
	f := &AlignedFace{Landmarks: landmarks}
	if len(bbox) == 4 {
		f.bbox = bbox
	}
	return f
}

// Diagonal returns the diagonal length of the face bounding box in pixels.
// When the record has no bounding box the landmark extent is used instead.
func (f *AlignedFace) Diagonal() float64 {
	if f.bbox != nil {
		return math.Hypot(f.bbox[2], f.bbox[3])
	}
	w, h := f.Landmarks.Extent()
	return math.Hypot(w, h)
}
