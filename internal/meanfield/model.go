// Package meanfield implements the continuous UAB model the agent simulation
// approximates:
//
//	dU/dt = -delta U A
//	dA/dt =  delta U A - epsilon A
//	dB/dt =  epsilon A
//
// U, A and B are population fractions, so U + A + B stays 1.
package meanfield

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Params are the contact-spread rate delta and the stop rate epsilon.
type Params struct {
	Delta   float64 `json:"delta" yaml:"delta"`
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

// Validate requires finite, non-negative rates and a positive stop rate.
func (p Params) Validate() error {
	if !(p.Delta >= 0) || math.IsInf(p.Delta, 0) {
		return fmt.Errorf("delta must be a non-negative finite number, got %g", p.Delta)
	}
	if !(p.Epsilon > 0) || math.IsInf(p.Epsilon, 0) {
		return fmt.Errorf("epsilon must be a positive finite number, got %g", p.Epsilon)
	}
	return nil
}

// Virality returns the index Vo = delta / epsilon.
func (p Params) Virality() float64 {
	return p.Delta / p.Epsilon
}

// Regime classifies a virality index.
type Regime int

const (
	Subcritical Regime = iota - 1
	Critical
	Supercritical
)

func (r Regime) String() string {
	switch r {
	case Subcritical:
		return "Vo < 1"
	case Critical:
		return "Vo = 1"
	default:
		return "Vo > 1"
	}
}

const criticalTolerance = 1e-9

// Regime reports whether the information dies out, balances or spreads.
func (p Params) Regime() Regime {
	vo := p.Virality()
	switch {
	case math.Abs(vo-1) <= criticalTolerance:
		return Critical
	case vo < 1:
		return Subcritical
	default:
		return Supercritical
	}
}

// State holds the three population fractions at one instant.
type State struct {
	T float64 `json:"t"`
	U float64 `json:"u"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Sum returns U + A + B.
func (s State) Sum() float64 { return s.U + s.A + s.B }

// InitialState starts a population with the given aware fraction and nobody bored.
func InitialState(aware float64) (State, error) {
	if !(aware >= 0 && aware <= 1) {
		return State{}, fmt.Errorf("aware fraction must be in [0, 1], got %g", aware)
	}
	return State{U: 1 - aware, A: aware}, nil
}

func derivative(p Params, y, dst []float64) {
	flow := p.Delta * y[0] * y[1]
	stop := p.Epsilon * y[1]
	dst[0] = -flow
	dst[1] = flow - stop
	dst[2] = stop
}

// Integrate advances the model with classic fourth-order Runge-Kutta and
// returns steps+1 states, the first being initial.
func Integrate(p Params, initial State, dt float64, steps int) ([]State, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("dt must be a positive finite number, got %g", dt)
	}
	if steps < 0 {
		return nil, errors.New("steps must be non-negative")
	}

	y := []float64{initial.U, initial.A, initial.B}
	k1 := make([]float64, 3)
	k2 := make([]float64, 3)
	k3 := make([]float64, 3)
	k4 := make([]float64, 3)
	tmp := make([]float64, 3)

	out := make([]State, 0, steps+1)
	out = append(out, initial)
	t := initial.T
	for i := 0; i < steps; i++ {
		derivative(p, y, k1)
		floats.AddScaledTo(tmp, y, dt/2, k1)
		derivative(p, tmp, k2)
		floats.AddScaledTo(tmp, y, dt/2, k2)
		derivative(p, tmp, k3)
		floats.AddScaledTo(tmp, y, dt, k3)
		derivative(p, tmp, k4)

		floats.AddScaled(y, dt/6, k1)
		floats.AddScaled(y, dt/3, k2)
		floats.AddScaled(y, dt/3, k3)
		floats.AddScaled(y, dt/6, k4)

		t = initial.T + float64(i+1)*dt
		out = append(out, State{T: t, U: y[0], A: y[1], B: y[2]})
	}
	return out, nil
}
