package simulation

import "fmt"

// Counts tallies agents per state.
type Counts struct {
	Unaware int `json:"unaware"`
	Aware   int `json:"aware"`
	Bored   int `json:"bored"`
}

// Total returns the population size the counts describe.
func (c Counts) Total() int { return c.Unaware + c.Aware + c.Bored }

// Of returns the count for one state.
func (c Counts) Of(s State) int {
	switch s {
	case Unaware:
		return c.Unaware
	case Aware:
		return c.Aware
	case Bored:
		return c.Bored
	}
	return 0
}

func (c Counts) String() string {
	return fmt.Sprintf("Unaware: %d  Aware: %d  Bored: %d", c.Unaware, c.Aware, c.Bored)
}

// Count tallies the current state of every agent.
func Count(agents []Agent) Counts {
	var c Counts
	for i := range agents {
		switch agents[i].State {
		case Unaware:
			c.Unaware++
		case Aware:
			c.Aware++
		case Bored:
			c.Bored++
		}
	}
	return c
}
