package simulation

import "infospread-sim/internal/common"

// MotionField moves agents inside a rectangle, bouncing them off its edges.
type MotionField struct {
	Bounds common.Bounds
}

// NewMotionField creates a motion field for the given bounds.
func NewMotionField(bounds common.Bounds) *MotionField {
	return &MotionField{Bounds: bounds}
}

// Advance moves every agent by its velocity.
// Each axis is handled independently: when the candidate coordinate would
// touch or cross an edge, that velocity component is negated and the
// coordinate stays where it was for this tick.
func (m *MotionField) Advance(agents []Agent) {
	for i := range agents {
		a := &agents[i]
		a.Position.X, a.Velocity.X = reflect(a.Position.X, a.Velocity.X, m.Bounds.Left, m.Bounds.Right)
		a.Position.Y, a.Velocity.Y = reflect(a.Position.Y, a.Velocity.Y, m.Bounds.Bottom, m.Bounds.Top)
	}
}

func reflect(pos, vel, lower, upper float64) (float64, float64) {
	next := pos + vel
	if next <= lower || next >= upper {
		return pos, -vel
	}
	return next, vel
}
