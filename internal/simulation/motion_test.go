package simulation

import (
	"testing"

	"infospread-sim/internal/common"
)

func TestAdvanceReflectsAtRightBoundary(t *testing.T) {
	field := NewMotionField(common.NewBounds(0, 1, 0, 1))
	agents := []Agent{{Position: common.NewVector(1, 0.5), Velocity: common.NewVector(0.1, 0)}}

	field.Advance(agents)

	if agents[0].Velocity.X != -0.1 {
		t.Fatalf("vx = %v, want -0.1", agents[0].Velocity.X)
	}
	if agents[0].Position.X != 1 {
		t.Fatalf("x = %v, want unchanged 1", agents[0].Position.X)
	}

	field.Advance(agents)
	if agents[0].Position.X != 0.9 {
		t.Fatalf("after bounce x = %v, want 0.9", agents[0].Position.X)
	}
}

func TestAdvanceReflectsWhenTouchingEdge(t *testing.T) {
	field := NewMotionField(common.NewBounds(0, 1, 0, 1))
	// 0.75 + 0.25 lands exactly on the edge, which counts as contact.
	agents := []Agent{{Position: common.NewVector(0.5, 0.75), Velocity: common.NewVector(0.25, 0.25)}}

	field.Advance(agents)

	got := agents[0]
	if got.Position.X != 0.75 || got.Velocity.X != 0.25 {
		t.Fatalf("x axis should move freely, got pos %v vel %v", got.Position, got.Velocity)
	}
	if got.Position.Y != 0.75 || got.Velocity.Y != -0.25 {
		t.Fatalf("y axis should bounce, got pos %v vel %v", got.Position, got.Velocity)
	}
}

func TestAdvanceCornerFlipsBothAxes(t *testing.T) {
	field := NewMotionField(common.NewBounds(0, 1, 0, 1))
	agents := []Agent{{Position: common.NewVector(0.01, 0.01), Velocity: common.NewVector(-0.05, -0.05)}}

	field.Advance(agents)

	got := agents[0]
	if got.Position != common.NewVector(0.01, 0.01) {
		t.Fatalf("position moved to %v", got.Position)
	}
	if got.Velocity != common.NewVector(0.05, 0.05) {
		t.Fatalf("velocity = %v, want both components flipped", got.Velocity)
	}
}

func TestAdvanceKeepsAgentsInside(t *testing.T) {
	cfg := smallConfig()
	cfg.Speed = 0.5
	agents, err := NewPopulation(cfg, NewRNG(7))
	if err != nil {
		t.Fatalf("NewPopulation failed: %v", err)
	}

	field := NewMotionField(cfg.Bounds)
	for tick := 0; tick < 500; tick++ {
		field.Advance(agents)
		for _, a := range agents {
			if !cfg.Bounds.Contains(a.Position) {
				t.Fatalf("tick %d: %s left %s", tick, a, cfg.Bounds)
			}
		}
	}
}
