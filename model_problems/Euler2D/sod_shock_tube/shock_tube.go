package sod_shock_tube

import (
	"fmt"
	"math"

	exact "github.com/notargets/eulerdg/sod_shock_tube"
)

// Sampler returns density, x momentum and total energy of a solution at a point
type Sampler func(x, y float64) (rho, rhoU, E float64, err error)

// SODShockTube compares a two dimensional solution along the line y = Y with
// the exact solution of a one dimensional Riemann problem.
type SODShockTube struct {
	XLocations   []float64 // Locations of values for plotting
	Y            float64
	Rho, RhoU, E []float64 // Interpolated values from solution, used for validation
	Npts         int
	Exact        *exact.SodProblem
}

func NewSODShockTube(nPts int, xmin, xmax, y float64, problem *exact.SodProblem) (st *SODShockTube) {
	st = &SODShockTube{
		XLocations: make([]float64, nPts),
		Y:          y,
		Npts:       nPts,
		Rho:        make([]float64, nPts),
		RhoU:       make([]float64, nPts),
		E:          make([]float64, nPts),
		Exact:      problem,
	}
	xfrac := (xmax - xmin) / float64(max(nPts-1, 1)) // Equal spaced samples across [xmin,xmax]
	for i := range st.XLocations {
		st.XLocations[i] = xmin + float64(i)*xfrac
		if i == 0 {
			st.XLocations[i] += 0.00001
		}
		if i == nPts-1 {
			st.XLocations[i] -= 0.00001
		}
	}
	return
}

// Interpolate samples the solution at every location
func (st *SODShockTube) Interpolate(sample Sampler) (err error) {
	for i, x := range st.XLocations {
		if st.Rho[i], st.RhoU[i], st.E[i], err = sample(x, st.Y); err != nil {
			return fmt.Errorf("sample %d at [%5.3f,%5.3f]: %w", i, x, st.Y, err)
		}
	}
	return
}

func (st *SODShockTube) GetAnalyticSolution(t float64) (rho, rhoU, E []float64) {
	var (
		gm1 = st.Exact.Gamma - 1
	)
	rho = make([]float64, st.Npts)
	rhoU = make([]float64, st.Npts)
	E = make([]float64, st.Npts)
	for i, x := range st.XLocations {
		s := st.Exact.Sample(x, t)
		rho[i], rhoU[i] = s.Rho, s.Rho*s.U
		E[i] = s.P/gm1 + 0.5*s.Rho*s.U*s.U
	}
	return
}

// L1Errors is the mean absolute difference of the interpolated and exact fields
func (st *SODShockTube) L1Errors(t float64) (rho, rhoU, E float64) {
	eRho, eRhoU, eE := st.GetAnalyticSolution(t)
	for i := 0; i < st.Npts; i++ {
		rho += math.Abs(st.Rho[i] - eRho[i])
		rhoU += math.Abs(st.RhoU[i] - eRhoU[i])
		E += math.Abs(st.E[i] - eE[i])
	}
	n := float64(st.Npts)
	return rho / n, rhoU / n, E / n
}
