package DG2D

import (
	"fmt"
	"math"
)

// Mesh is a uniform logically rectangular grid of NI x NJ zones, i along x
type Mesh struct {
	NI, NJ int
	X0, Y0 float64 // lower left corner
	DX, DY float64
}

func NewMesh(ni, nj int, xmin, xmax, ymin, ymax float64) (m Mesh, err error) {
	if ni < 1 || nj < 1 {
		err = fmt.Errorf("%w: zone counts %d x %d", ErrInvalidMesh, ni, nj)
		return
	}
	if !(xmax > xmin) || !(ymax > ymin) {
		err = fmt.Errorf("%w: extent [%g,%g]x[%g,%g]", ErrInvalidMesh, xmin, xmax, ymin, ymax)
		return
	}
	m = Mesh{
		NI: ni, NJ: nj,
		X0: xmin, Y0: ymin,
		DX: (xmax - xmin) / float64(ni),
		DY: (ymax - ymin) / float64(nj),
	}
	return
}

func (m Mesh) NumTotalZones() int { return m.NI * m.NJ }

func (m Mesh) IsSquare() bool {
	return math.Abs(m.DX-m.DY) <= 1.e-12*math.Max(m.DX, m.DY)
}

func (m Mesh) ZoneCenter(i, j int) (x, y float64) {
	x = m.X0 + (float64(i)+0.5)*m.DX
	y = m.Y0 + (float64(j)+0.5)*m.DY
	return
}

// Coordinates maps a reference point of zone (i,j) to physical space
func (m Mesh) Coordinates(i, j int, xi, eta float64) (x, y float64) {
	xc, yc := m.ZoneCenter(i, j)
	x = xc + 0.5*xi*m.DX
	y = yc + 0.5*eta*m.DY
	return
}

func (m Mesh) Print() string {
	return fmt.Sprintf("%d x %d zones, dx = %g, dy = %g", m.NI, m.NJ, m.DX, m.DY)
}
