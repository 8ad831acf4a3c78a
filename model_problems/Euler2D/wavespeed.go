package Euler2D

import (
	"github.com/notargets/eulerdg/DG2D"
)

// wavespeedZone stores the largest signal speed of the cell average state
func wavespeedZone(nPoly int, weights, wavespeed DG2D.Patch, i, j int) {
	var (
		wij  = weights.Get(i, j)
		cons Conserved
	)
	for q := 0; q < NCONS; q++ {
		cons[q] = wij[q*nPoly]
	}
	wavespeed.Get(i, j)[0] = MaxWavespeed(ToPrimitive(cons))
}

// projectZone is the L2 projection onto the basis of primitive samples taken
// at the interior quadrature points, stored point major.
func projectZone(cell *DG2D.Cell, primitive, weights DG2D.Patch, i, j int) {
	var (
		nPoly   = cell.NPoly
		samples = primitive.Get(i, j)
		wout    = weights.Get(i, j)
	)
	for n := range wout {
		wout[n] = 0
	}
	for qp, node := range cell.InteriorNodes {
		var p Primitive
		copy(p[:], samples[qp*NCONS:(qp+1)*NCONS])
		u := ToConserved(p)
		for q := 0; q < NCONS; q++ {
			for l := 0; l < nPoly; l++ {
				wout[q*nPoly+l] += 0.25 * node.Weight * u[q] * node.Phi[l]
			}
		}
	}
}
