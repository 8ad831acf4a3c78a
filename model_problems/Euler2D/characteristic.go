package Euler2D

import (
	"math"

	"github.com/notargets/eulerdg/DG2D"
)

type Matrix4 [4][4]float64

func (m Matrix4) Apply(v Conserved) (r Conserved) {
	for i := 0; i < 4; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}
	return
}

// Eigensystem returns the left (rows) and right (columns) eigenvectors of the
// flux Jacobian along dir, evaluated at p. The wave families are ordered
// vn-c, entropy, vn+c, shear, and L*R is the identity.
func Eigensystem(p Primitive, dir Direction) (L, R Matrix4) {
	var (
		nx, ny = dir.Normal()
		u, v   = p[1], p[2]
		cs2    = SoundSpeedSquared(p)
		c      = math.Sqrt(cs2)
		g1     = Gamma - 1
		vn     = u*nx + v*ny
		vt     = -u*ny + v*nx
		k      = 0.5 * (u*u + v*v)
		h      = cs2/g1 + k
		phi    = g1 * k
		beta   = 1 / (2 * cs2)
	)
	R = Matrix4{
		{1, 1, 1, 0},
		{u - c*nx, u, u + c*nx, -ny},
		{v - c*ny, v, v + c*ny, nx},
		{h - c*vn, k, h + c*vn, vt},
	}
	L = Matrix4{
		{beta * (phi + c*vn), -beta * (g1*u + c*nx), -beta * (g1*v + c*ny), beta * g1},
		{1 - 2*beta*phi, 2 * beta * g1 * u, 2 * beta * g1 * v, -2 * beta * g1},
		{beta * (phi - c*vn), -beta * (g1*u - c*nx), -beta * (g1*v - c*ny), beta * g1},
		{u*ny - v*nx, -ny, nx, 0},
	}
	return
}

// limitCharacteristicSlope limits one direction's slope in characteristic
// variables. The returned slope is exactly slope when nothing was limited.
func limitCharacteristicSlope(L, R Matrix4, slope, back, fwd Conserved, dl float64) (limited Conserved, changed bool) {
	var (
		cs  = L.Apply(slope)
		cb  = L.Apply(back)
		cf  = L.Apply(fwd)
		cst Conserved
	)
	for k := 0; k < NCONS; k++ {
		a := sqrt3 * cs[k]
		at := MinmodB(a, cb[k], cf[k], dl)
		if at != a {
			changed = true
			cst[k] = at / sqrt3
		} else {
			cst[k] = cs[k]
		}
	}
	if !changed {
		return slope, false
	}
	return R.Apply(cst), true
}

// limitCharacteristicZone limits the linear modes of zone (i,j) in the
// characteristic variables of its cell average state.
func limitCharacteristicZone(nPoly int, mesh DG2D.Mesh, wp DG2D.WeightsPair, i, j int) {
	var (
		wij  = wp.Read.Get(i, j)
		wli  = wp.Read.Get(i-1, j)
		wri  = wp.Read.Get(i+1, j)
		wlj  = wp.Read.Get(i, j-1)
		wrj  = wp.Read.Get(i, j+1)
		wout = wp.Write.Get(i, j)
	)
	copy(wout, wij)
	if nPoly < 3 {
		return
	}
	var (
		w0, w1, w2         Conserved // mean, y slope, x slope
		dl, dr, db, dt     Conserved // mean differences to the neighbors
		changedX, changedY bool
	)
	for q := 0; q < NCONS; q++ {
		m0 := q * nPoly
		w0[q] = wij[m0]
		w1[q] = wij[m0+1]
		w2[q] = wij[m0+2]
		dl[q] = wij[m0] - wli[m0]
		dr[q] = wri[m0] - wij[m0]
		db[q] = wij[m0] - wlj[m0]
		dt[q] = wrj[m0] - wij[m0]
	}
	var (
		prim   = ToPrimitive(w0)
		Lx, Rx = Eigensystem(prim, DirX)
		Ly, Ry = Eigensystem(prim, DirY)
	)
	w2, changedX = limitCharacteristicSlope(Lx, Rx, w2, dl, dr, mesh.DX)
	w1, changedY = limitCharacteristicSlope(Ly, Ry, w1, db, dt, mesh.DY)
	if !changedX && !changedY {
		return
	}
	for q := 0; q < NCONS; q++ {
		m0 := q * nPoly
		wout[m0+1] = w1[q]
		wout[m0+2] = w2[q]
		for l := 3; l < nPoly; l++ {
			wout[m0+l] = 0
		}
	}
}
