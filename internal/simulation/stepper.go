package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrTerminated is returned by Tick once the run has finished.
var ErrTerminated = errors.New("simulation already terminated")

// Phase is the stepper's lifecycle state.
type Phase uint8

const (
	// Running accepts further ticks.
	Running Phase = iota
	// Terminated is absorbing.
	Terminated
)

func (p Phase) String() string {
	if p == Terminated {
		return "terminated"
	}
	return "running"
}

// StopReason explains why a run ended.
type StopReason string

const (
	StopNone      StopReason = ""
	StopExtinct   StopReason = "no aware agents left"
	StopMaxTicks  StopReason = "max ticks reached"
	StopCancelled StopReason = "cancelled"
)

// Result describes a finished (or interrupted) run.
type Result struct {
	RunID  string     `json:"run_id"`
	Ticks  int        `json:"ticks"`
	Final  Record     `json:"final"`
	Reason StopReason `json:"reason"`
}

// Option customizes a Stepper.
type Option func(*Stepper)

// WithRandomSource replaces the seeded RNG with src.
func WithRandomSource(src RandomSource) Option {
	return func(s *Stepper) { s.rng = src }
}

// WithLogger sets the logger used for run and per-tick diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stepper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets the recorder that receives one record per tick.
func WithRecorder(r Recorder) Option {
	return func(s *Stepper) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithAgents starts the run from the given pool instead of a random one.
// The slice is copied; its length must equal Config.TotalAgents.
func WithAgents(agents []Agent) Option {
	return func(s *Stepper) {
		s.initial = append([]Agent(nil), agents...)
	}
}

// Stepper owns the agent pool and tick counter of one run and advances it
// one tick at a time: motion, transitions, count, emit.
type Stepper struct {
	cfg      Config
	id       string
	rng      RandomSource
	logger   *slog.Logger
	recorder Recorder

	initial []Agent
	agents  []Agent
	motion  *MotionField
	engine  *TransitionEngine

	tick   int
	phase  Phase
	reason StopReason
	counts Counts
	last   Record
}

// NewStepper validates cfg and builds the initial population.
func NewStepper(cfg Config, opts ...Option) (*Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Stepper{
		cfg:      cfg,
		id:       uuid.NewString(),
		logger:   slog.New(slog.DiscardHandler),
		recorder: Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRNG(cfg.Seed)
	}

	if s.initial != nil {
		if err := validatePool(cfg, s.initial); err != nil {
			return nil, err
		}
		s.agents = s.initial
		s.initial = nil
	} else {
		agents, err := NewPopulation(cfg, s.rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create population: %w", err)
		}
		s.agents = agents
	}

	s.motion = NewMotionField(cfg.Bounds)
	s.engine = NewTransitionEngine(cfg)
	s.counts = Count(s.agents)

	s.logger.Debug("simulation created",
		"run_id", s.id,
		"agents", len(s.agents),
		"bounds", cfg.Bounds.String(),
		"policy", cfg.Policy.String(),
		"index", cfg.Index.String())
	return s, nil
}

func validatePool(cfg Config, agents []Agent) error {
	if len(agents) != cfg.TotalAgents {
		return &ConfigError{Field: "agents", Reason: fmt.Sprintf("pool has %d agents, total_agents is %d", len(agents), cfg.TotalAgents)}
	}
	for i := range agents {
		a := &agents[i]
		a.ID = i
		if !a.Position.IsFinite() || !cfg.Bounds.Contains(a.Position) {
			return &ConfigError{Field: "agents", Reason: fmt.Sprintf("agent %d at %s is outside %s", i, a.Position, cfg.Bounds)}
		}
		if !a.Velocity.IsFinite() {
			return &ConfigError{Field: "agents", Reason: fmt.Sprintf("agent %d has non-finite velocity", i)}
		}
		switch a.State {
		case Unaware:
			a.AwareSince = NotAware
		case Aware, Bored:
			if a.AwareSince < 0 {
				a.AwareSince = 0
			}
		default:
			return &ConfigError{Field: "agents", Reason: fmt.Sprintf("agent %d has unknown state %d", i, a.State)}
		}
	}
	return nil
}

// RunID returns the unique identifier of this run.
func (s *Stepper) RunID() string { return s.id }

// Config returns the configuration the stepper was built with.
func (s *Stepper) Config() Config { return s.cfg }

// Ticks returns the number of completed ticks.
func (s *Stepper) Ticks() int { return s.tick }

// Phase reports whether the stepper still accepts ticks.
func (s *Stepper) Phase() Phase { return s.phase }

// Reason reports why the run terminated, or StopNone while running.
func (s *Stepper) Reason() StopReason { return s.reason }

// Counts returns the tallies after the latest tick.
func (s *Stepper) Counts() Counts { return s.counts }

// Agents returns a snapshot copy of the pool.
func (s *Stepper) Agents() []Agent {
	return append([]Agent(nil), s.agents...)
}

// Tick advances the simulation by one step and emits its record.
// The returned record is valid even when the recorder fails.
func (s *Stepper) Tick() (Record, error) {
	if s.phase == Terminated {
		return Record{}, ErrTerminated
	}

	s.motion.Advance(s.agents)
	stats := s.engine.Apply(s.agents, s.rng)
	s.counts = Count(s.agents)

	rec := newRecord(s.tick, s.counts)
	s.last = rec
	emitErr := s.recorder.Record(rec)
	s.tick++

	s.logger.Debug("tick",
		"run_id", s.id,
		"tick", rec.Tick,
		"unaware", rec.Unaware,
		"aware", rec.Aware,
		"bored", rec.Bored,
		"contacts", stats.Contacts,
		"converted", stats.Converted,
		"became_bored", stats.Bored)

	switch {
	case s.counts.Aware == 0 && s.tick > s.cfg.MinTicksBeforeTermination:
		s.terminate(StopExtinct)
	case s.tick >= s.cfg.MaxTicks:
		s.terminate(StopMaxTicks)
	}

	if emitErr != nil {
		return rec, fmt.Errorf("recorder failed at tick %d: %w", rec.Tick, emitErr)
	}
	return rec, nil
}

func (s *Stepper) terminate(reason StopReason) {
	s.phase = Terminated
	s.reason = reason
}

// Run ticks until termination. Cancellation of ctx is observed between
// ticks and leaves the pool consistent; the partial result is returned.
func (s *Stepper) Run(ctx context.Context) (Result, error) {
	s.logger.Info("simulation started",
		"run_id", s.id,
		"agents", len(s.agents),
		"initial_aware", s.counts.Aware,
		"seed", s.cfg.Seed,
		"max_ticks", s.cfg.MaxTicks)

	for s.phase == Running {
		if err := ctx.Err(); err != nil {
			s.logger.Info("simulation cancelled", "run_id", s.id, "tick", s.tick)
			return s.result(StopCancelled), fmt.Errorf("simulation cancelled at tick %d: %w", s.tick, err)
		}
		if _, err := s.Tick(); err != nil {
			return s.result(s.reason), err
		}
	}

	res := s.result(s.reason)
	s.logger.Info("simulation finished",
		"run_id", s.id,
		"ticks", res.Ticks,
		"reason", string(res.Reason),
		"unaware", res.Final.Unaware,
		"aware", res.Final.Aware,
		"bored", res.Final.Bored)
	return res, nil
}

func (s *Stepper) result(reason StopReason) Result {
	return Result{RunID: s.id, Ticks: s.tick, Final: s.last, Reason: reason}
}
