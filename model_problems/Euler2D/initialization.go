package Euler2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/eulerdg/DG2D"
	"github.com/notargets/eulerdg/model_problems/Euler2D/isentropic_vortex"
	"github.com/notargets/eulerdg/sod_shock_tube"
)

type InitType uint

const (
	UNIFORM InitType = iota
	SOD
	EXPLOSION
	CYLINDER_WIND
	DENSITY_WAVE
	LAX
	DOUBLE_RAREFACTION
	IVORTEX
)

var (
	InitNames = map[string]InitType{
		"uniform":            UNIFORM,
		"sod":                SOD,
		"shocktube":          SOD,
		"explosion":          EXPLOSION,
		"cylinder-in-wind":   CYLINDER_WIND,
		"density-wave":       DENSITY_WAVE,
		"lax":                LAX,
		"double-rarefaction": DOUBLE_RAREFACTION,
		"ivortex":            IVORTEX,
		"isentropic-vortex":  IVORTEX,
	}
	InitPrintNames = []string{"Uniform", "Sod Shock Tube", "Cylindrical Explosion",
		"Cylinder In Wind", "Density Wave", "Lax Shock Tube", "Double Rarefaction", "Isentropic Vortex"}
)

func (it InitType) Print() (txt string) {
	txt = InitPrintNames[it]
	return
}

func NewInitType(label string) (it InitType, err error) {
	var ok bool
	if len(label) == 0 {
		err = fmt.Errorf("empty init type, must be one of %v", InitNames)
		return
	}
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use init type named %s", label)
	}
	return
}

type riemannSetup struct {
	x0          float64
	left, right Primitive
}

var riemannSetups = map[InitType]riemannSetup{
	SOD:                {0.5, Primitive{1, 0, 0, 1}, Primitive{0.125, 0, 0, 0.1}},
	LAX:                {0, Primitive{0.445, 0.698, 0, 3.528}, Primitive{0.5, 0, 0, 0.571}},
	DOUBLE_RAREFACTION: {0, Primitive{7, -1, 0, 0.2}, Primitive{7, 1, 0, 0.2}},
}

// RiemannStates returns the states either side of the x = x0 discontinuity of
// the one dimensional shock tube setups.
func (it InitType) RiemannStates() (left, right Primitive, x0 float64, ok bool) {
	var rs riemannSetup
	if rs, ok = riemannSetups[it]; ok {
		left, right, x0 = rs.left, rs.right, rs.x0
	}
	return
}

// InitialCondition is the primitive state at a point at t = 0
type InitialCondition func(x, y float64) Primitive

func (it InitType) InitialCondition() InitialCondition {
	if left, right, x0, ok := it.RiemannStates(); ok {
		return func(x, y float64) Primitive {
			if x < x0 {
				return left
			}
			return right
		}
	}
	switch it {
	case EXPLOSION:
		return func(x, y float64) Primitive {
			if math.Sqrt(x*x+y*y) < 0.1 {
				return Primitive{1, 0, 0, 1}
			}
			return Primitive{0.1, 0, 0, 0.125}
		}
	case CYLINDER_WIND:
		return func(x, y float64) Primitive {
			if math.Sqrt(x*x+y*y) < 0.1 {
				return Primitive{100, 0, 0, 1}
			}
			return Primitive{1, 1, 0, 0.1}
		}
	case IVORTEX:
		iv := isentropic_vortex.NewIVortex(5, 0, 0, Gamma)
		return func(x, y float64) Primitive {
			u, v, rho, p := iv.GetState(0, x, y)
			return Primitive{rho, u, v, p}
		}
	case DENSITY_WAVE:
		return func(x, y float64) Primitive {
			return Primitive{1 + 0.2*math.Sin(2*math.Pi*x), 1, 0, 1}
		}
	default:
		return func(x, y float64) Primitive {
			return Primitive{1, 0, 0, 1}
		}
	}
}

// ExactSolution is the primitive state at a point at time t
type ExactSolution func(x, y, t float64) Primitive

// ExactSolution returns the analytic solution of setups that have one
func (it InitType) ExactSolution() (sol ExactSolution, ok bool) {
	if left, right, x0, isRiemann := it.RiemannStates(); isRiemann {
		sp, err := sod_shock_tube.NewSodProblem(Gamma,
			sod_shock_tube.State{Rho: left[0], U: left[1], P: left[3]},
			sod_shock_tube.State{Rho: right[0], U: right[1], P: right[3]}, x0)
		if err != nil {
			return nil, false
		}
		return func(x, y, t float64) Primitive {
			s := sp.Sample(x, t)
			return Primitive{s.Rho, s.U, 0, s.P}
		}, true
	}
	ic := it.InitialCondition()
	switch it {
	case UNIFORM:
		return func(x, y, t float64) Primitive { return ic(x, y) }, true
	case DENSITY_WAVE:
		return func(x, y, t float64) Primitive { return ic(x-t, y) }, true
	case IVORTEX:
		iv := isentropic_vortex.NewIVortex(5, 0, 0, Gamma)
		return func(x, y, t float64) Primitive {
			u, v, rho, p := iv.GetState(t, x, y)
			return Primitive{rho, u, v, p}
		}, true
	}
	return nil, false
}

// SamplePrimitive evaluates ic at the interior quadrature points of every zone,
// in the layout taken by ProjectPrimitiveToWeights.
func SamplePrimitive(cell *DG2D.Cell, mesh DG2D.Mesh, ic InitialCondition) (samples []float64) {
	var (
		nf = NCONS * cell.NQuad
	)
	samples = make([]float64, DG2D.PatchSize(mesh, nf, 0))
	p, _ := DG2D.NewPatch(mesh, nf, 0, samples)
	for i := 0; i < mesh.NI; i++ {
		for j := 0; j < mesh.NJ; j++ {
			z := p.Get(i, j)
			for qp, node := range cell.InteriorNodes {
				x, y := mesh.Coordinates(i, j, node.Xi, node.Eta)
				prim := ic(x, y)
				copy(z[qp*NCONS:(qp+1)*NCONS], prim[:])
			}
		}
	}
	return
}
