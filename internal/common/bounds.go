package common

import (
	"errors"
	"fmt"
	"math"
)

// Bounds is an axis-aligned rectangle [Left, Right] x [Bottom, Top].
type Bounds struct {
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Top    float64 `json:"top" yaml:"top"`
}

// NewBounds creates bounds from the four edges.
func NewBounds(left, right, bottom, top float64) Bounds {
	return Bounds{Left: left, Right: right, Bottom: bottom, Top: top}
}

// Validate checks that all edges are finite and the rectangle is non-degenerate.
func (b Bounds) Validate() error {
	for _, edge := range []float64{b.Left, b.Right, b.Bottom, b.Top} {
		if math.IsNaN(edge) || math.IsInf(edge, 0) {
			return errors.New("bounds must be finite")
		}
	}
	if b.Left >= b.Right {
		return fmt.Errorf("left (%g) must be less than right (%g)", b.Left, b.Right)
	}
	if b.Bottom >= b.Top {
		return fmt.Errorf("bottom (%g) must be less than top (%g)", b.Bottom, b.Top)
	}
	return nil
}

// Width returns Right - Left.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns Top - Bottom.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Contains reports whether p lies inside the closed rectangle.
func (b Bounds) Contains(p Vector) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Bottom && p.Y <= b.Top
}

// Inset shrinks the rectangle by margin on every side.
func (b Bounds) Inset(margin float64) (Bounds, error) {
	if margin < 0 || math.IsNaN(margin) {
		return Bounds{}, fmt.Errorf("margin must be non-negative, got %g", margin)
	}
	inner := Bounds{
		Left:   b.Left + margin,
		Right:  b.Right - margin,
		Bottom: b.Bottom + margin,
		Top:    b.Top - margin,
	}
	if err := inner.Validate(); err != nil {
		return Bounds{}, fmt.Errorf("margin %g leaves no interior: %w", margin, err)
	}
	return inner, nil
}

// String returns a string representation for logging.
func (b Bounds) String() string {
	return fmt.Sprintf("x[%.3f, %.3f] y[%.3f, %.3f]", b.Left, b.Right, b.Bottom, b.Top)
}
