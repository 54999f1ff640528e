package simulation

import "fmt"

// ContagionPolicy decides which agents may act as sources during a contagion pass.
type ContagionPolicy uint8

const (
	// LiveRead re-reads states while scanning: an agent woken earlier in the
	// pass spreads later in the same pass once the scan reaches its index.
	LiveRead ContagionPolicy = iota
	// Snapshot only lets agents that were aware when the pass began spread.
	Snapshot
)

func (p ContagionPolicy) valid() bool { return p == LiveRead || p == Snapshot }

// String returns the policy name.
func (p ContagionPolicy) String() string {
	switch p {
	case LiveRead:
		return "live"
	case Snapshot:
		return "snapshot"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParseContagionPolicy maps "live" or "snapshot" to a ContagionPolicy.
func ParseContagionPolicy(s string) (ContagionPolicy, error) {
	switch s {
	case "", "live":
		return LiveRead, nil
	case "snapshot":
		return Snapshot, nil
	default:
		return 0, fmt.Errorf("unknown contagion policy %q (valid: live, snapshot)", s)
	}
}

// TransitionStats summarizes what one Apply call did.
type TransitionStats struct {
	Aged      int // aware agents whose dwell counter advanced
	Bored     int // aware -> bored transitions
	Contacts  int // aware/unaware pairs within the share radius (one draw each)
	Converted int // unaware -> aware transitions
}

// TransitionEngine applies the stochastic state changes of one tick.
type TransitionEngine struct {
	ShareRadius    float64
	SharingRate    float64
	IgnoreRate     float64
	DwellThreshold int
	Policy         ContagionPolicy

	index      neighborIndex
	candidates []int
	sources    []int
}

// NewTransitionEngine creates an engine from the transition parameters in cfg.
func NewTransitionEngine(cfg Config) *TransitionEngine {
	return &TransitionEngine{
		ShareRadius:    cfg.ShareRadius,
		SharingRate:    cfg.SharingRate,
		IgnoreRate:     cfg.IgnoreRate,
		DwellThreshold: cfg.DwellThreshold,
		Policy:         cfg.Policy,
		index:          newNeighborIndex(cfg.Index),
	}
}

// Apply runs the boredom pass over all agents and then the contagion pass.
// Draws are taken from rng in this order: one per aware agent past the dwell
// threshold (population order), then one per aware/unaware contact (sources
// in population order, targets in ascending index).
func (e *TransitionEngine) Apply(agents []Agent, rng RandomSource) TransitionStats {
	var stats TransitionStats
	e.age(agents, rng, &stats)
	e.spread(agents, rng, &stats)
	return stats
}

func (e *TransitionEngine) age(agents []Agent, rng RandomSource, stats *TransitionStats) {
	for i := range agents {
		a := &agents[i]
		if a.State != Aware {
			continue
		}
		a.AwareSince++
		stats.Aged++
		if a.AwareSince > e.DwellThreshold && Bernoulli(rng, e.IgnoreRate) {
			a.becomeBored()
			stats.Bored++
		}
	}
}

func (e *TransitionEngine) spread(agents []Agent, rng RandomSource, stats *TransitionStats) {
	if e.index == nil {
		e.index = bruteIndex{}
	}
	e.index.Build(agents)

	if e.Policy == Snapshot {
		e.sources = e.sources[:0]
		for i := range agents {
			if agents[i].State == Aware {
				e.sources = append(e.sources, i)
			}
		}
		for _, i := range e.sources {
			e.contact(agents, i, rng, stats)
		}
		return
	}

	for i := range agents {
		if agents[i].State == Aware {
			e.contact(agents, i, rng, stats)
		}
	}
}

// contact draws once for every unaware agent within reach of source i.
func (e *TransitionEngine) contact(agents []Agent, i int, rng RandomSource, stats *TransitionStats) {
	e.candidates = e.index.Within(e.candidates[:0], agents, i, e.ShareRadius)
	for _, j := range e.candidates {
		if agents[j].State != Unaware {
			continue
		}
		stats.Contacts++
		if Bernoulli(rng, e.SharingRate) {
			agents[j].becomeAware()
			stats.Converted++
		}
	}
}
