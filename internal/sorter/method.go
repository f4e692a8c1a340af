package sorter

import "fmt"

// Method selects the metric used to rank or group faces.
type Method string

const (
	// MethodDistance ranks by mean landmark distance from the mean face shape.
	MethodDistance Method = "distance"
	// MethodPitch, MethodYaw and MethodRoll rank by the pose angles.
	MethodPitch Method = "pitch"
	MethodYaw   Method = "yaw"
	MethodRoll  Method = "roll"
	// MethodSize ranks by the bounding box diagonal in pixels.
	MethodSize Method = "size"
	// MethodFace orders by landmark similarity (nearest-neighbour chaining).
	MethodFace Method = "face"
	// MethodFaceDissim orders by aggregate landmark dissimilarity.
	MethodFaceDissim Method = "face-dissim"
)

var allMethods = []Method{
	MethodDistance, MethodPitch, MethodYaw, MethodRoll,
	MethodSize, MethodFace, MethodFaceDissim,
}

// ParseMethod validates a method name from the CLI.
func ParseMethod(s string) (Method, error) {
	for _, m := range allMethods {
		if s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown method %q (supported: distance, pitch, yaw, roll, size, face, face-dissim)", s)
}

// Vector reports whether the method compares whole landmark vectors
// instead of a scalar metric.
func (m Method) Vector() bool {
	return m == MethodFace || m == MethodFaceDissim
}

// Angular reports whether the method bins over the fixed [-90, 90]
// degree range.
func (m Method) Angular() bool {
	return m == MethodPitch || m == MethodYaw || m == MethodRoll
}

// Ascending reports whether ranking sorts the scalar metric ascending.
// Only the distance method does; everything else sorts descending.
func (m Method) Ascending() bool {
	return m == MethodDistance
}
