package isentropic_vortex

import (
	"math"
)

// IVortex is the isentropic vortex of Shu, carried without change of shape by
// a uniform stream along x. It is an exact smooth solution of the Euler
// equations for any ratio of specific heats.
type IVortex struct {
	Beta, X0, Y0, Gamma float64
	Ufs                 float64
}

func NewIVortex(Beta, X0, Y0, Gamma float64, UfsO ...float64) (iv *IVortex) {
	var (
		Ufs = 1.0
	)
	if len(UfsO) > 0 {
		Ufs = UfsO[0]
	}
	iv = &IVortex{
		Beta:  Beta,
		X0:    X0,
		Y0:    Y0,
		Gamma: Gamma,
		Ufs:   Ufs,
	}
	return
}

// MinDensity is the density at the vortex core
func (iv *IVortex) MinDensity() float64 {
	_, _, rho, _ := iv.GetState(0, iv.X0, iv.Y0)
	return rho
}

func (iv *IVortex) GetState(t, x, y float64) (u, v, rho, p float64) {
	var (
		oo2pi = 0.5 / math.Pi
		GM1   = iv.Gamma - 1
		beta  = iv.Beta
		fac   = 16 * iv.Gamma * math.Pi * math.Pi
	)
	u, v = iv.Ufs, 0.
	// distance from the vortex center at time t
	dx, dy := x-u*t-iv.X0, y-v*t-iv.Y0
	r2 := dx*dx + dy*dy
	ex1r := math.Exp(1 - r2)
	tv1 := 1 - GM1*beta*beta*ex1r*ex1r/fac
	u -= beta * ex1r * dy * oo2pi
	v += beta * ex1r * dx * oo2pi
	rho = math.Pow(tv1, 1/GM1)
	p = math.Pow(rho, iv.Gamma)
	return
}

func (iv *IVortex) GetStateC(t, x, y float64) (Rho, RhoU, RhoV, E float64) {
	u, v, rho, p := iv.GetState(t, x, y)
	q := 0.5 * rho * (u*u + v*v)
	Rho, RhoU, RhoV, E = rho, rho*u, rho*v, p/(iv.Gamma-1)+q
	return
}
