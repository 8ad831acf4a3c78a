package Euler2D

import (
	"fmt"

	"github.com/notargets/eulerdg/DG2D"
	"github.com/notargets/eulerdg/types"
)

// GhostFiller fills the ghost margin of a weights buffer from the interior
// according to the boundary condition of each side of the domain.
type GhostFiller struct {
	Cell     *DG2D.Cell
	Mesh     DG2D.Mesh
	BCs      [4]types.BCFLAG // indexed by types.Side
	wallSign [2][]float64    // per direction, per weight
}

func NewGhostFiller(cell *DG2D.Cell, mesh DG2D.Mesh, bcs [4]types.BCFLAG) (gf *GhostFiller, err error) {
	for _, pair := range [][2]types.Side{{types.SideXMin, types.SideXMax}, {types.SideYMin, types.SideYMax}} {
		lo, hi := bcs[pair[0]], bcs[pair[1]]
		if (lo == types.BC_Periodic) != (hi == types.BC_Periodic) {
			err = fmt.Errorf("periodic boundary on %s requires periodic on %s", pair[0], pair[1])
			return
		}
		for _, side := range pair {
			switch bcs[side] {
			case types.BC_Periodic, types.BC_Out, types.BC_Wall:
			default:
				err = fmt.Errorf("boundary condition %s is not supported on %s", bcs[side], side)
				return
			}
		}
	}
	gf = &GhostFiller{Cell: cell, Mesh: mesh, BCs: bcs}
	nPoly := cell.NPoly
	for d := 0; d < 2; d++ {
		gf.wallSign[d] = make([]float64, NCONS*nPoly)
		for q := 0; q < NCONS; q++ {
			for l, m := range cell.Modes {
				sgn := 1.
				if m[d]%2 == 1 { // mirrored in the normal coordinate
					sgn = -sgn
				}
				if q == 1+d { // normal momentum
					sgn = -sgn
				}
				gf.wallSign[d][q*nPoly+l] = sgn
			}
		}
	}
	return
}

func (gf *GhostFiller) apply(bc types.BCFLAG, dir Direction, dst, src []float64) {
	switch bc {
	case types.BC_Wall:
		sgn := gf.wallSign[dir]
		for n := range dst {
			dst[n] = sgn[n] * src[n]
		}
	default:
		copy(dst, src)
	}
}

// Fill writes every ghost zone of w, x sides first so the y sides carry the corners
func (gf *GhostFiller) Fill(w []float64) (err error) {
	var (
		p      DG2D.Patch
		ni, nj = gf.Mesh.NI, gf.Mesh.NJ
		bcs    = gf.BCs
	)
	if p, err = DG2D.NewPatch(gf.Mesh, NCONS*gf.Cell.NPoly, NumGuard, w); err != nil {
		return
	}
	srcL, srcR := 0, ni-1
	if bcs[types.SideXMin] == types.BC_Periodic {
		srcL, srcR = ni-1, 0
	}
	for j := 0; j < nj; j++ {
		gf.apply(bcs[types.SideXMin], DirX, p.Get(-1, j), p.Get(srcL, j))
		gf.apply(bcs[types.SideXMax], DirX, p.Get(ni, j), p.Get(srcR, j))
	}
	srcB, srcT := 0, nj-1
	if bcs[types.SideYMin] == types.BC_Periodic {
		srcB, srcT = nj-1, 0
	}
	for i := -1; i <= ni; i++ {
		gf.apply(bcs[types.SideYMin], DirY, p.Get(i, -1), p.Get(i, srcB))
		gf.apply(bcs[types.SideYMax], DirY, p.Get(i, nj), p.Get(i, srcT))
	}
	return
}
