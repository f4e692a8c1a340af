package sorter

import (
	"fmt"
	"math"

	"github.com/kozaktomas/face-sorter/internal/align"
	"github.com/kozaktomas/face-sorter/internal/faceset"
)

// scoreFace extracts the comparable metric for a single record.
func (s *Sorter) scoreFace(rec *faceset.Record) (Entry, error) {
	if len(rec.LandmarksXY) == 0 {
		return Entry{}, fmt.Errorf("%s: %w", rec.Name, faceset.ErrMissingAlignments)
	}

	face := rec.Face()
	entry := Entry{Name: rec.Name}

	switch s.method {
	case MethodDistance:
		dist, err := face.AverageDistance()
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", rec.Name, err)
		}
		entry.Scalar = dist
	case MethodPitch, MethodYaw, MethodRoll:
		pose, err := face.EstimatePose()
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", rec.Name, err)
		}
		switch s.method {
		case MethodPitch:
			entry.Scalar = pose.Pitch
		case MethodYaw:
			entry.Scalar = pose.Yaw
		default:
			entry.Scalar = pose.Roll
		}
	case MethodSize:
		if len(rec.BBox) == 0 && rec.Width > 0 && rec.Height > 0 {
			// No detection box, but the image was probed: the face fills
			// the extracted frame, so use the frame diagonal.
			entry.Scalar = math.Hypot(float64(rec.Width), float64(rec.Height))
		} else {
			entry.Scalar = face.Diagonal()
		}
	case MethodFace, MethodFaceDissim:
		entry.Landmarks = face.Landmarks
	default:
		return Entry{}, fmt.Errorf("unknown method %q", s.method)
	}

	return entry, nil
}

// avgL1 returns the average L1 landmark distance between a face and a
// cluster's reference list. An empty reference list scores infinite so a
// malformed cluster can never pick itself.
func avgL1(face align.LandmarkSet, references []align.LandmarkSet) float64 {
	if len(references) == 0 {
		return inf
	}
	var sum float64
	for _, ref := range references {
		sum += align.L1Distance(face, ref)
	}
	return sum / float64(len(references))
}
