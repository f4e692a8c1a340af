package align

import (
	"errors"
	"math"
)

// Landmark indices in the 68-point scheme used for pose estimation.
const (
	leftEyeStart  = 36
	leftEyeEnd    = 42
	rightEyeStart = 42
	rightEyeEnd   = 48
	noseTipIdx    = 30
	chinIdx       = 8
)

// Pose holds the estimated head pose angles in degrees.
// Conventions (image coordinates, y down):
//   - Roll: positive when the right eye sits lower than the left eye.
//   - Yaw: positive when the nose tip points to the right of the eye midpoint.
//   - Pitch: positive when the face looks up (nose tip above its rest position).
type Pose struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// restNoseRatio is the nose-tip position along the eye-to-chin axis for the
// built-in mean shape; pitch measures deviation from this rest position.
var restNoseRatio = func() float64 {
	le := meanShape.eyeCenter(leftEyeStart, leftEyeEnd)
	re := meanShape.eyeCenter(rightEyeStart, rightEyeEnd)
	midY := (le.Y + re.Y) / 2
	return (meanShape[noseTipIdx].Y - midY) / (meanShape[chinIdx].Y - midY)
}()

func (l LandmarkSet) eyeCenter(start, end int) Point {
	var c Point
	for _, p := range l[start:end] {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(end - start)
	c.X /= n
	c.Y /= n
	return c
}

// EstimatePose derives pitch, yaw and roll from the landmark geometry.
// Requires the 68-point scheme. Roll comes from the eye-line angle; yaw and
// pitch are measured on the roll-corrected landmarks, yaw from the nose-tip
// horizontal offset relative to the inter-eye distance and pitch from the
// nose-tip position along the eye-to-chin axis.
func (f *AlignedFace) EstimatePose() (Pose, error) {
	l := f.Landmarks
	if len(l) != LandmarkCount {
		return Pose{}, ErrUnsupportedScheme
	}

	le := l.eyeCenter(leftEyeStart, leftEyeEnd)
	re := l.eyeCenter(rightEyeStart, rightEyeEnd)
	interEye := math.Hypot(re.X-le.X, re.Y-le.Y)
	if interEye == 0 {
		return Pose{}, errors.New("degenerate landmark geometry: eyes coincide")
	}

	roll := math.Atan2(re.Y-le.Y, re.X-le.X)
	mid := Point{X: (le.X + re.X) / 2, Y: (le.Y + re.Y) / 2}

	nose := rotatePoint(l[noseTipIdx], mid, -roll)
	chin := rotatePoint(l[chinIdx], mid, -roll)

	yaw := asinDeg((nose.X - mid.X) / interEye)

	denom := chin.Y - mid.Y
	if denom == 0 {
		return Pose{}, errors.New("degenerate landmark geometry: chin on the eye line")
	}
	ratio := (nose.Y - mid.Y) / denom
	pitch := asinDeg(restNoseRatio - ratio)

	return Pose{
		Pitch: pitch,
		Yaw:   yaw,
		Roll:  roll * 180 / math.Pi,
	}, nil
}

func rotatePoint(p, center Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// asinDeg is the arcsine in degrees with the argument clamped to [-1, 1]
// so extreme geometry saturates at +/-90 instead of producing NaN.
func asinDeg(v float64) float64 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return math.Asin(v) * 180 / math.Pi
}
