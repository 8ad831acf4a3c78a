package Euler2D

import (
	"github.com/notargets/eulerdg/DG2D"
)

// residualWorkspace is the scratch of one worker advancing zones
type residualWorkspace struct {
	cell    *DG2D.Cell
	riemann RiemannSolver
	dw      []float64
}

func newResidualWorkspace(cell *DG2D.Cell, riemann RiemannSolver) *residualWorkspace {
	return &residualWorkspace{
		cell:    cell,
		riemann: riemann,
		dw:      make([]float64, NCONS*cell.NPoly),
	}
}

// reconstruct evaluates the conserved state of a zone at a node
func reconstruct(w, phi []float64, nPoly int) (u Conserved) {
	for q := 0; q < NCONS; q++ {
		var sum float64
		for l := 0; l < nPoly; l++ {
			sum += w[q*nPoly+l] * phi[l]
		}
		u[q] = sum
	}
	return
}

// advanceZone writes w + 0.5*dt/dx*L(w) for zone (i,j), where L is the DG
// residual in the reference element. Only zone (i,j) of the write patch is
// modified.
func (rw *residualWorkspace) advanceZone(wp DG2D.WeightsPair, dtOverDx float64, i, j int) {
	var (
		cell  = rw.cell
		nPoly = cell.NPoly
		dw    = rw.dw
		wij   = wp.Read.Get(i, j)
		wli   = wp.Read.Get(i-1, j)
		wri   = wp.Read.Get(i+1, j)
		wlj   = wp.Read.Get(i, j-1)
		wrj   = wp.Read.Get(i, j+1)
	)
	for n := range dw {
		dw[n] = 0
	}

	// surface term
	for qp := 0; qp < cell.NFace; qp++ {
		var (
			li, ri = cell.FaceNodesLI[qp], cell.FaceNodesRI[qp]
			lj, rj = cell.FaceNodesLJ[qp], cell.FaceNodesRJ[qp]
			ulim   = reconstruct(wli, ri.Phi, nPoly) // right face of zone i-1
			ulip   = reconstruct(wij, li.Phi, nPoly) // left face of zone i
			urim   = reconstruct(wij, ri.Phi, nPoly) // right face of zone i
			urip   = reconstruct(wri, li.Phi, nPoly) // left face of zone i+1
			uljm   = reconstruct(wlj, rj.Phi, nPoly) // top face of zone j-1
			uljp   = reconstruct(wij, lj.Phi, nPoly) // bottom face of zone j
			urjm   = reconstruct(wij, rj.Phi, nPoly) // top face of zone j
			urjp   = reconstruct(wrj, lj.Phi, nPoly) // bottom face of zone j+1
			fli    = rw.riemann(ToPrimitive(ulim), ToPrimitive(ulip), DirX)
			fri    = rw.riemann(ToPrimitive(urim), ToPrimitive(urip), DirX)
			flj    = rw.riemann(ToPrimitive(uljm), ToPrimitive(uljp), DirY)
			frj    = rw.riemann(ToPrimitive(urjm), ToPrimitive(urjp), DirY)
		)
		for q := 0; q < NCONS; q++ {
			for l := 0; l < nPoly; l++ {
				n := q*nPoly + l
				dw[n] -= fli[q] * li.Phi[l] * li.Weight
				dw[n] -= fri[q] * ri.Phi[l] * ri.Weight
				dw[n] -= flj[q] * lj.Phi[l] * lj.Weight
				dw[n] -= frj[q] * rj.Phi[l] * rj.Weight
			}
		}
	}

	// volume term
	for _, node := range cell.InteriorNodes {
		var (
			cons   = reconstruct(wij, node.Phi, nPoly)
			prim   = ToPrimitive(cons)
			fx, fy = PhysicalFlux(prim, cons, DirX), PhysicalFlux(prim, cons, DirY)
		)
		for q := 0; q < NCONS; q++ {
			for l := 0; l < nPoly; l++ {
				n := q*nPoly + l
				dw[n] += fx[q] * node.DPhiDx[l] * node.Weight
				dw[n] += fy[q] * node.DPhiDy[l] * node.Weight
			}
		}
	}

	wout := wp.Write.Get(i, j)
	for n := range wout {
		wout[n] = wij[n] + 0.5*dw[n]*dtOverDx
	}
}
