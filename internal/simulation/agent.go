package simulation

import (
	"fmt"

	"infospread-sim/internal/common"
)

// State is an agent's awareness of the information.
type State uint8

const (
	// Unaware agents have not received the information.
	Unaware State = iota
	// Aware agents know the information and can pass it on.
	Aware
	// Bored agents stopped spreading. Terminal.
	Bored
)

// NotAware is the AwareSince sentinel for agents that never became aware.
const NotAware = -1

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unaware:
		return "unaware"
	case Aware:
		return "aware"
	case Bored:
		return "bored"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Agent is a single mobile individual in the population.
type Agent struct {
	ID       int
	Position common.Vector
	Velocity common.Vector
	State    State
	// AwareSince counts ticks spent aware. NotAware while unaware, frozen once bored.
	AwareSince int
}

// becomeAware moves an unaware agent to Aware and resets its dwell counter.
func (a *Agent) becomeAware() bool {
	if a.State != Unaware {
		return false
	}
	a.State = Aware
	a.AwareSince = 0
	return true
}

// becomeBored moves an aware agent to Bored, keeping AwareSince as is.
func (a *Agent) becomeBored() bool {
	if a.State != Aware {
		return false
	}
	a.State = Bored
	return true
}

// String representation for logging
func (a Agent) String() string {
	return fmt.Sprintf("Agent[%d] %s Pos: %s Vel: %s Since: %d", a.ID, a.State, a.Position, a.Velocity, a.AwareSince)
}

// NewPopulation creates the agent pool described by cfg.
// For every agent in index order it draws x, y inside the spawn rectangle and
// then vx, vy in [-Speed, Speed]. The first InitialAware agents start aware.
func NewPopulation(cfg Config, rng RandomSource) ([]Agent, error) {
	spawn, err := cfg.Bounds.Inset(cfg.SpawnMargin)
	if err != nil {
		return nil, fmt.Errorf("failed to compute spawn area: %w", err)
	}

	agents := make([]Agent, cfg.TotalAgents)
	for i := range agents {
		a := &agents[i]
		a.ID = i
		a.Position.X = Uniform(rng, spawn.Left, spawn.Right)
		a.Position.Y = Uniform(rng, spawn.Bottom, spawn.Top)
		a.Velocity.X = Uniform(rng, -cfg.Speed, cfg.Speed)
		a.Velocity.Y = Uniform(rng, -cfg.Speed, cfg.Speed)

		if i < cfg.InitialAware {
			a.State = Aware
			a.AwareSince = 0
		} else {
			a.State = Unaware
			a.AwareSince = NotAware
		}
	}
	return agents, nil
}
