package Euler2D

import (
	"fmt"
	"math"
	"strings"
)

const (
	Gamma = 5.0 / 3.0
	NCONS = 4
)

// Conserved is (rho, rho*vx, rho*vy, E)
type Conserved [NCONS]float64

// Primitive is (rho, vx, vy, p)
type Primitive [NCONS]float64

type Direction uint8

const (
	DirX Direction = iota
	DirY
)

// Normal is the unit vector of a direction
func (d Direction) Normal() (nx, ny float64) {
	if d == DirX {
		return 1, 0
	}
	return 0, 1
}

// Positivity of density and pressure is assumed, NaN propagates otherwise
func ToPrimitive(u Conserved) (p Primitive) {
	var (
		rho, px, py, E = u[0], u[1], u[2], u[3]
		vx, vy         = px / rho, py / rho
		kinetic        = 0.5 * rho * (vx*vx + vy*vy)
	)
	p = Primitive{rho, vx, vy, (E - kinetic) * (Gamma - 1)}
	return
}

func ToConserved(p Primitive) (u Conserved) {
	var (
		rho, vx, vy, pr = p[0], p[1], p[2], p[3]
		kinetic         = 0.5 * rho * (vx*vx + vy*vy)
	)
	u = Conserved{rho, rho * vx, rho * vy, kinetic + pr/(Gamma-1)}
	return
}

func (p Primitive) Velocity(dir Direction) float64 {
	switch dir {
	case DirX:
		return p[1]
	case DirY:
		return p[2]
	}
	return 0
}

// PhysicalFlux is the Euler flux along dir, u must be the conserved form of p
func PhysicalFlux(p Primitive, u Conserved, dir Direction) (f Conserved) {
	var (
		vn     = p.Velocity(dir)
		pr     = p[3]
		nx, ny = dir.Normal()
	)
	f = Conserved{
		vn * u[0],
		vn*u[1] + pr*nx,
		vn*u[2] + pr*ny,
		vn*u[3] + pr*vn,
	}
	return
}

func SoundSpeedSquared(p Primitive) float64 {
	return Gamma * p[3] / p[0]
}

// OuterWavespeeds returns the slowest and fastest signal speeds along dir
func OuterWavespeeds(p Primitive, dir Direction) (a [2]float64) {
	var (
		cs = math.Sqrt(SoundSpeedSquared(p))
		vn = p.Velocity(dir)
	)
	a = [2]float64{vn - cs, vn + cs}
	return
}

func MaxWavespeed(p Primitive) float64 {
	var (
		cs     = math.Sqrt(SoundSpeedSquared(p))
		vx, vy = p[1], p[2]
		ax     = math.Max(math.Abs(vx-cs), math.Abs(vx+cs))
		ay     = math.Max(math.Abs(vy-cs), math.Abs(vy+cs))
	)
	return math.Max(ax, ay)
}

type FlowFunction uint8

func (pm FlowFunction) String() string {
	names := []string{
		"Density",
		"XMomentum",
		"YMomentum",
		"Energy",
		"Mach",
		"Static Pressure",
		"Dynamic Pressure",
		"Sound Speed",
		"Velocity",
		"XVelocity",
		"YVelocity",
		"Enthalpy",
		"Entropy",
	}
	return names[int(pm)]
}

const (
	Density FlowFunction = iota
	XMomentum
	YMomentum
	Energy
	Mach            // 4
	StaticPressure  // 5
	DynamicPressure // 6
	SoundSpeed      // 7
	Velocity        // 8
	XVelocity       // 9
	YVelocity       // 10
	Enthalpy        // 11
	Entropy         // 12
)

var FlowFunctionNames = map[string]FlowFunction{
	"density":  Density,
	"rho":      Density,
	"xmom":     XMomentum,
	"ymom":     YMomentum,
	"energy":   Energy,
	"mach":     Mach,
	"pressure": StaticPressure,
	"q":        DynamicPressure,
	"c":        SoundSpeed,
	"velocity": Velocity,
	"u":        XVelocity,
	"v":        YVelocity,
	"enthalpy": Enthalpy,
	"entropy":  Entropy,
}

func NewFlowFunction(label string) (pf FlowFunction, err error) {
	var ok bool
	if pf, ok = FlowFunctionNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown flow function %q", label)
	}
	return
}

func GetFlowFunction(u Conserved, pf FlowFunction) (f float64) {
	var (
		p      = ToPrimitive(u)
		rho    = p[0]
		vx, vy = p[1], p[2]
		pr     = p[3]
		U2     = vx*vx + vy*vy
	)
	switch pf {
	case Density:
		f = u[0]
	case XMomentum:
		f = u[1]
	case YMomentum:
		f = u[2]
	case Energy:
		f = u[3]
	case Mach:
		f = math.Sqrt(U2 / SoundSpeedSquared(p))
	case StaticPressure:
		f = pr
	case DynamicPressure:
		f = 0.5 * rho * U2
	case SoundSpeed:
		f = math.Sqrt(SoundSpeedSquared(p))
	case Velocity:
		f = math.Sqrt(U2)
	case XVelocity:
		f = vx
	case YVelocity:
		f = vy
	case Enthalpy:
		f = (u[3] + pr) / rho
	case Entropy:
		f = pr / math.Pow(rho, Gamma)
	}
	return
}
