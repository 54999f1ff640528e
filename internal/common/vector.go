package common

import (
	"fmt"
	"math"
)

// Vector represents a point or displacement in the 2-D simulation plane.
type Vector struct {
	X, Y float64
}

// NewVector creates a vector from its two components.
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies both components by a scalar value.
func (v Vector) Scale(scalar float64) Vector {
	return Vector{X: v.X * scalar, Y: v.Y * scalar}
}

// NormSq returns the squared Euclidean norm of the vector.
func (v Vector) NormSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceSq returns the squared Euclidean distance between two points.
func (v Vector) DistanceSq(other Vector) float64 {
	return v.Sub(other).NormSq()
}

// Distance returns the Euclidean distance between two points.
func (v Vector) Distance(other Vector) float64 {
	return math.Hypot(v.X-other.X, v.Y-other.Y)
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// String returns a string representation of the vector.
func (v Vector) String() string {
	// Limited precision keeps log lines readable
	return fmt.Sprintf("[%.3f, %.3f]", v.X, v.Y)
}
