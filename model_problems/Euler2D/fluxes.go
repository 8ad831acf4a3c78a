package Euler2D

import (
	"fmt"
	"math"
	"strings"
)

// RiemannSolver returns the numerical flux through a face with normal dir,
// given the states on the left and right of it.
type RiemannSolver func(pl, pr Primitive, dir Direction) Conserved

type FluxType uint

const (
	FLUX_HLLE FluxType = iota
	FLUX_HLLC
)

var (
	FluxNames = map[string]FluxType{
		"hlle": FLUX_HLLE,
		"hll":  FLUX_HLLE,
		"hllc": FLUX_HLLC,
	}
	FluxPrintNames = []string{"HLLE", "HLLC"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType, err error) {
	var ok bool
	if len(label) == 0 {
		return FLUX_HLLE, nil
	}
	label = strings.ToLower(label)
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
	}
	return
}

func (ft FluxType) Solver() RiemannSolver {
	switch ft {
	case FLUX_HLLC:
		return RiemannHLLC
	default:
		return RiemannHLLE
	}
}

func RiemannHLLE(pl, pr Primitive, dir Direction) (flux Conserved) {
	var (
		ul, ur = ToConserved(pl), ToConserved(pr)
		fl, fr = PhysicalFlux(pl, ul, dir), PhysicalFlux(pr, ur, dir)
		al, ar = OuterWavespeeds(pl, dir), OuterWavespeeds(pr, dir)
		am     = math.Min(0, math.Min(al[0], ar[0]))
		ap     = math.Max(0, math.Max(al[1], ar[1]))
	)
	for q := 0; q < NCONS; q++ {
		flux[q] = (fl[q]*ap - fr[q]*am - (ul[q]-ur[q])*ap*am) / (ap - am)
	}
	return
}

// RiemannHLLC restores the contact wave missing from HLLE. Signal speeds are
// the Davis estimates, each star state is built from its own side's state.
func RiemannHLLC(pl, pr Primitive, dir Direction) (flux Conserved) {
	var (
		ul, ur = ToConserved(pl), ToConserved(pr)
		fl, fr = PhysicalFlux(pl, ul, dir), PhysicalFlux(pr, ur, dir)
		al, ar = OuterWavespeeds(pl, dir), OuterWavespeeds(pr, dir)
		vnl    = pl.Velocity(dir)
		vnr    = pr.Velocity(dir)
		sl     = math.Min(al[0], ar[0])
		sr     = math.Max(al[1], ar[1])
		ml     = pl[0] * (sl - vnl)
		mr     = pr[0] * (sr - vnr)
		sStar  = (pr[3] - pl[3] + ml*vnl - mr*vnr) / (ml - mr)
		s      = 0. // the face is stationary
	)
	switch {
	case s <= sl:
		flux = fl
	case s <= sStar:
		us := starState(pl, ul, sl, sStar, dir)
		for q := 0; q < NCONS; q++ {
			flux[q] = fl[q] + sl*(us[q]-ul[q])
		}
	case s <= sr:
		us := starState(pr, ur, sr, sStar, dir)
		for q := 0; q < NCONS; q++ {
			flux[q] = fr[q] + sr*(us[q]-ur[q])
		}
	default:
		flux = fr
	}
	return
}

func starState(p Primitive, u Conserved, sk, sStar float64, dir Direction) (us Conserved) {
	var (
		rho = p[0]
		vn  = p.Velocity(dir)
		f   = rho * (sk - vn) / (sk - sStar)
	)
	us[0] = f
	switch dir {
	case DirX:
		us[1], us[2] = f*sStar, f*p[2]
	case DirY:
		us[1], us[2] = f*p[1], f*sStar
	}
	us[3] = f * (u[3]/rho + (sStar-vn)*(sStar+p[3]/(rho*(sk-vn))))
	return
}
