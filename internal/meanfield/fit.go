package meanfield

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"infospread-sim/internal/simulation"
)

// ErrInsufficientData is returned when a series has too few informative ticks.
var ErrInsufficientData = errors.New("insufficient data for rate fit")

// Fit contains the estimated rates and a measure of the fit quality.
type Fit struct {
	Params
	DeltaResidual   float64 // ||Ax - b|| / sqrt(m) of the delta equations
	EpsilonResidual float64 // same for the epsilon equations
	DeltaSamples    int
	EpsilonSamples  int
}

// FitRates estimates delta and epsilon (per tick) from an agent time series.
// With fractions u, a, b each consecutive pair of records gives
//
//	u[t] - u[t+1] = delta * u[t] * a[t]
//	b[t+1] - b[t] = epsilon * a[t]
//
// and each rate is solved in the least squares sense. Ticks with no aware
// agents carry no information and are skipped.
func FitRates(records []simulation.Record, total int) (Fit, error) {
	var fit Fit
	if total <= 0 {
		return fit, fmt.Errorf("total must be positive, got %d", total)
	}

	n := float64(total)
	var deltaA, deltaB, epsA, epsB []float64
	for t := 0; t+1 < len(records); t++ {
		cur, next := records[t], records[t+1]
		u := float64(cur.Unaware) / n
		a := float64(cur.Aware) / n
		if a == 0 {
			continue
		}
		epsA = append(epsA, a)
		epsB = append(epsB, float64(next.Bored-cur.Bored)/n)
		if u > 0 {
			deltaA = append(deltaA, u*a)
			deltaB = append(deltaB, float64(cur.Unaware-next.Unaware)/n)
		}
	}

	if len(deltaA) < 2 || len(epsA) < 2 {
		return fit, fmt.Errorf("%w: got %d delta and %d epsilon samples, need at least 2 each",
			ErrInsufficientData, len(deltaA), len(epsA))
	}

	delta, deltaRes, err := solveRate(deltaA, deltaB)
	if err != nil {
		return fit, fmt.Errorf("delta fit failed: %w", err)
	}
	eps, epsRes, err := solveRate(epsA, epsB)
	if err != nil {
		return fit, fmt.Errorf("epsilon fit failed: %w", err)
	}

	fit.Delta = delta
	fit.Epsilon = eps
	fit.DeltaResidual = deltaRes
	fit.EpsilonResidual = epsRes
	fit.DeltaSamples = len(deltaA)
	fit.EpsilonSamples = len(epsA)
	return fit, nil
}

// solveRate finds the scalar x minimizing ||a*x - b|| with a QR solve and
// returns it with the normalized residual.
func solveRate(aData, bData []float64) (float64, float64, error) {
	m := len(aData)
	A := mat.NewDense(m, 1, aData)
	b := mat.NewVecDense(m, bData)

	var qr mat.QR
	qr.Factorize(A)

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return 0, 0, fmt.Errorf("QR least squares solve failed: %w", err)
	}

	var residualVec mat.VecDense
	residualVec.MulVec(A, &x)
	residualVec.SubVec(b, &residualVec)
	residualNorm := blas64.Nrm2(residualVec.RawVector())

	return x.AtVec(0), residualNorm / math.Sqrt(float64(m)), nil
}
