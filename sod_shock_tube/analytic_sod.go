package sod_shock_tube

import (
	"fmt"
	"math"
)

// State is a one dimensional primitive state
type State struct {
	Rho, U, P float64
}

// SodProblem is the exact solution of a one dimensional Riemann problem for
// an ideal gas with a discontinuity at X0 at t = 0.
type SodProblem struct {
	Gamma       float64
	Left, Right State
	X0          float64
	PStar       float64
	UStar       float64
}

func NewSodProblem(gamma float64, left, right State, x0 float64) (sp *SodProblem, err error) {
	sp = &SodProblem{Gamma: gamma, Left: left, Right: right, X0: x0}
	var (
		cl, cr = sp.soundSpeed(left), sp.soundSpeed(right)
	)
	if 2*(cl+cr)/(gamma-1) <= right.U-left.U {
		return nil, fmt.Errorf("initial states generate vacuum")
	}
	if err = sp.solveStar(); err != nil {
		return nil, err
	}
	return
}

// NewSod is the classic shock tube on [0,1]
func NewSod(gamma float64) (*SodProblem, error) {
	return NewSodProblem(gamma, State{1, 0, 1}, State{0.125, 0, 0.1}, 0.5)
}

func (sp *SodProblem) soundSpeed(s State) float64 {
	return math.Sqrt(sp.Gamma * s.P / s.Rho)
}

// pressureFunction is the velocity jump across the wave on one side and its derivative
func (sp *SodProblem) pressureFunction(p float64, s State) (f, df float64) {
	var (
		g = sp.Gamma
		c = sp.soundSpeed(s)
	)
	if p > s.P { // shock
		a := 2 / ((g + 1) * s.Rho)
		b := (g - 1) / (g + 1) * s.P
		q := math.Sqrt(a / (b + p))
		f = (p - s.P) * q
		df = q * (1 - 0.5*(p-s.P)/(b+p))
		return
	}
	f = 2 * c / (g - 1) * (math.Pow(p/s.P, (g-1)/(2*g)) - 1)
	df = 1 / (s.Rho * c) * math.Pow(p/s.P, -(g+1)/(2*g))
	return
}

func (sp *SodProblem) solveStar() (err error) {
	var (
		l, r = sp.Left, sp.Right
		du   = r.U - l.U
		p    = math.Max(1.e-8, 0.5*(l.P+r.P))
		tol  = 1.e-12
	)
	for iter := 0; iter < 100; iter++ {
		fl, dfl := sp.pressureFunction(p, l)
		fr, dfr := sp.pressureFunction(p, r)
		pNew := p - (fl+fr+du)/(dfl+dfr)
		if pNew < 0 {
			pNew = tol
		}
		change := 2 * math.Abs(pNew-p) / (pNew + p)
		p = pNew
		if change < tol {
			fl, _ = sp.pressureFunction(p, l)
			fr, _ = sp.pressureFunction(p, r)
			sp.PStar = p
			sp.UStar = 0.5*(l.U+r.U) + 0.5*(fr-fl)
			return
		}
	}
	return fmt.Errorf("star pressure iteration did not converge")
}

// Sample returns the state at position x and time t
func (sp *SodProblem) Sample(x, t float64) (s State) {
	var (
		g      = sp.Gamma
		l, r   = sp.Left, sp.Right
		cl, cr = sp.soundSpeed(l), sp.soundSpeed(r)
		ps, us = sp.PStar, sp.UStar
		g6     = (g - 1) / (g + 1)
	)
	if t <= 0 {
		if x < sp.X0 {
			return l
		}
		return r
	}
	S := (x - sp.X0) / t
	if S <= us {
		if ps > l.P {
			sl := l.U - cl*math.Sqrt((g+1)/(2*g)*ps/l.P+(g-1)/(2*g))
			if S <= sl {
				return l
			}
			return State{l.Rho * (ps/l.P + g6) / (g6*ps/l.P + 1), us, ps}
		}
		shl := l.U - cl
		stl := us - cl*math.Pow(ps/l.P, (g-1)/(2*g))
		switch {
		case S <= shl:
			return l
		case S > stl:
			return State{l.Rho * math.Pow(ps/l.P, 1/g), us, ps}
		default:
			c := 2 / (g + 1) * (cl + 0.5*(g-1)*(l.U-S))
			return State{
				Rho: l.Rho * math.Pow(c/cl, 2/(g-1)),
				U:   2 / (g + 1) * (cl + 0.5*(g-1)*l.U + S),
				P:   l.P * math.Pow(c/cl, 2*g/(g-1)),
			}
		}
	}
	if ps > r.P {
		sr := r.U + cr*math.Sqrt((g+1)/(2*g)*ps/r.P+(g-1)/(2*g))
		if S >= sr {
			return r
		}
		return State{r.Rho * (ps/r.P + g6) / (g6*ps/r.P + 1), us, ps}
	}
	shr := r.U + cr
	str := us + cr*math.Pow(ps/r.P, (g-1)/(2*g))
	switch {
	case S >= shr:
		return r
	case S <= str:
		return State{r.Rho * math.Pow(ps/r.P, 1/g), us, ps}
	default:
		c := 2 / (g + 1) * (cr - 0.5*(g-1)*(r.U-S))
		return State{
			Rho: r.Rho * math.Pow(c/cr, 2/(g-1)),
			U:   2 / (g + 1) * (-cr + 0.5*(g-1)*r.U + S),
			P:   r.P * math.Pow(c/cr, 2*g/(g-1)),
		}
	}
}

// ShockPosition returns the location of the right running shock at time t,
// or NaN when the right wave is a rarefaction.
func (sp *SodProblem) ShockPosition(t float64) float64 {
	var (
		g  = sp.Gamma
		r  = sp.Right
		ps = sp.PStar
	)
	if ps <= r.P {
		return math.NaN()
	}
	sr := r.U + sp.soundSpeed(r)*math.Sqrt((g+1)/(2*g)*ps/r.P+(g-1)/(2*g))
	return sp.X0 + sr*t
}

// SOD_calc samples the solution at n uniformly spaced points of [xmin,xmax]
func (sp *SodProblem) SOD_calc(t, xmin, xmax float64, n int) (X, Rho, P, U, E []float64) {
	X = make([]float64, n)
	Rho = make([]float64, n)
	P = make([]float64, n)
	U = make([]float64, n)
	E = make([]float64, n)
	for i := range X {
		X[i] = xmin + (xmax-xmin)*float64(i)/float64(max(n-1, 1))
		s := sp.Sample(X[i], t)
		Rho[i], U[i], P[i] = s.Rho, s.U, s.P
		E[i] = s.P / ((sp.Gamma - 1.) * s.Rho)
	}
	return
}
