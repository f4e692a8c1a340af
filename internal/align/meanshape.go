package align

import (
	_ "embed"
	"errors"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed meanface.yaml
var meanFaceYAML []byte

type meanFaceFile struct {
	Points [][2]float64 `yaml:"points"`
}

var meanShape = loadMeanShape()

func loadMeanShape() LandmarkSet {
	var f meanFaceFile
	if err := yaml.Unmarshal(meanFaceYAML, &f); err != nil {
		// Embedded file, cannot fail unless the build is broken.
		panic("failed to unmarshal embedded meanface.yaml: " + err.Error())
	}
	if len(f.Points) != LandmarkCount {
		panic("embedded meanface.yaml does not contain 68 points")
	}
	shape := make(LandmarkSet, len(f.Points))
	for i, p := range f.Points {
		shape[i] = Point{X: p[0], Y: p[1]}
	}
	return shape
}

// MeanShape returns a copy of the built-in normalized 68-point mean face.
func MeanShape() LandmarkSet {
	return meanShape.Clone()
}

// AverageDistance returns the mean Euclidean distance of the face's
// landmarks from the built-in mean shape, after normalizing the face into
// the mean shape's frame. A face identical to the mean shape (up to
// translation and uniform scale) scores 0. Requires the 68-point scheme.
func (f *AlignedFace) AverageDistance() (float64, error) {
	l := f.Landmarks
	if len(l) != LandmarkCount {
		return 0, ErrUnsupportedScheme
	}

	c := l.Centroid()
	cm := meanShape.Centroid()

	scale := rmsRadius(l, c)
	scaleMean := rmsRadius(meanShape, cm)
	if scale == 0 {
		return 0, errors.New("degenerate landmark geometry: all points coincide")
	}

	factor := scaleMean / scale
	var sum float64
	for i, p := range l {
		dx := (p.X-c.X)*factor + cm.X - meanShape[i].X
		dy := (p.Y-c.Y)*factor + cm.Y - meanShape[i].Y
		sum += math.Hypot(dx, dy)
	}
	return sum / float64(len(l)), nil
}

// rmsRadius is the root-mean-square distance of the points from center.
func rmsRadius(l LandmarkSet, center Point) float64 {
	var sum float64
	for _, p := range l {
		dx := p.X - center.X
		dy := p.Y - center.Y
		sum += dx*dx + dy*dy
	}
	return math.Sqrt(sum / float64(len(l)))
}
