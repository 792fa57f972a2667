// Package physics provides hit testing utilities.
package physics

// PointInEllipse checks if a point lies inside the axis-aligned ellipse centered
// at (cx, cy) with radii rx and ry. Non-positive radii never contain a point.
func PointInEllipse(px, py, cx, cy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	nx := (px - cx) / rx
	ny := (py - cy) / ry
	return nx*nx+ny*ny <= 1
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
