package DG2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

const MaxOrder = 5

// NodeData holds the basis evaluated at one quadrature point of the
// reference square [-1,1]x[-1,1]. DPhiDx and DPhiDy are gradients in
// reference coordinates. Weights at face nodes carry the sign of the outward
// normal, negative on the left faces and positive on the right faces.
type NodeData struct {
	Xi, Eta        float64
	Phi            []float64
	DPhiDx, DPhiDy []float64
	Weight         float64
}

// Cell is the basis table of one polynomial order. It is read only after
// NewCell returns and may be shared by any number of goroutines.
type Cell struct {
	Order, NPoly, NQuad, NFace int
	Modes                      [][2]int // x and y degree of each mode
	InteriorNodes              []NodeData
	FaceNodesLI, FaceNodesRI   []NodeData // faces normal to x
	FaceNodesLJ, FaceNodesRJ   []NodeData // faces normal to y
}

// NumPolynomials returns the number of modes for a basis order, or zero
// for an unsupported order.
func NumPolynomials(order int) int {
	if order < 1 || order > MaxOrder {
		return 0
	}
	return order * (order + 1) / 2
}

func NewCell(order int) (c *Cell, err error) {
	if NumPolynomials(order) == 0 {
		err = fmt.Errorf("order %d: %w", order, ErrInvalidOrder)
		return
	}
	var (
		x = make([]float64, order)
		w = make([]float64, order)
	)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	c = &Cell{
		Order: order,
		NPoly: NumPolynomials(order),
		NQuad: order * order,
		NFace: order,
	}
	// Ordered by total degree, then by increasing x degree
	for d := 0; d < order; d++ {
		for i := 0; i <= d; i++ {
			c.Modes = append(c.Modes, [2]int{i, d - i})
		}
	}
	c.InteriorNodes = make([]NodeData, 0, c.NQuad)
	for a := 0; a < order; a++ {
		for b := 0; b < order; b++ {
			c.InteriorNodes = append(c.InteriorNodes, c.newNode(x[a], x[b], w[a]*w[b]))
		}
	}
	for q := 0; q < order; q++ {
		c.FaceNodesLI = append(c.FaceNodesLI, c.newNode(-1, x[q], -w[q]))
		c.FaceNodesRI = append(c.FaceNodesRI, c.newNode(+1, x[q], +w[q]))
		c.FaceNodesLJ = append(c.FaceNodesLJ, c.newNode(x[q], -1, -w[q]))
		c.FaceNodesRJ = append(c.FaceNodesRJ, c.newNode(x[q], +1, +w[q]))
	}
	if err = c.Validate(1.e-10); err != nil {
		c = nil
	}
	return
}

func (c *Cell) newNode(xi, eta, weight float64) (nd NodeData) {
	nd = NodeData{
		Xi:     xi,
		Eta:    eta,
		Phi:    make([]float64, c.NPoly),
		DPhiDx: make([]float64, c.NPoly),
		DPhiDy: make([]float64, c.NPoly),
		Weight: weight,
	}
	for l, m := range c.Modes {
		px, dpx := ScaledLegendre(m[0], xi)
		py, dpy := ScaledLegendre(m[1], eta)
		nd.Phi[l] = px * py
		nd.DPhiDx[l] = dpx * py
		nd.DPhiDy[l] = px * dpy
	}
	return
}

// Evaluate returns the basis functions at a reference point
func (c *Cell) Evaluate(xi, eta float64) []float64 {
	return c.newNode(xi, eta, 0).Phi
}

// NodesOfRule returns an n x n tensor Gauss-Legendre rule on the reference
// square with the basis evaluated at each node. Weights sum to 4.
func (c *Cell) NodesOfRule(n int) (nodes []NodeData) {
	var (
		x = make([]float64, n)
		w = make([]float64, n)
	)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	nodes = make([]NodeData, 0, n*n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			nodes = append(nodes, c.newNode(x[a], x[b], w[a]*w[b]))
		}
	}
	return
}

// MassMatrix is the mean over the reference square of phi_a*phi_b
func (c *Cell) MassMatrix() (M *mat.SymDense) {
	M = mat.NewSymDense(c.NPoly, nil)
	for a := 0; a < c.NPoly; a++ {
		for b := a; b < c.NPoly; b++ {
			var sum float64
			for _, nd := range c.InteriorNodes {
				sum += 0.25 * nd.Weight * nd.Phi[a] * nd.Phi[b]
			}
			M.SetSym(a, b, sum)
		}
	}
	return
}

// Validate checks the basis is orthonormal under the interior quadrature
func (c *Cell) Validate(tol float64) (err error) {
	var (
		M = c.MassMatrix()
		I = mat.NewDiagDense(c.NPoly, nil)
	)
	for n := 0; n < c.NPoly; n++ {
		I.SetDiag(n, 1)
	}
	if !mat.EqualApprox(M, I, tol) {
		var maxErr float64
		for a := 0; a < c.NPoly; a++ {
			for b := 0; b < c.NPoly; b++ {
				maxErr = math.Max(maxErr, math.Abs(M.At(a, b)-I.At(a, b)))
			}
		}
		err = fmt.Errorf("order %d basis is not orthonormal, max error %g", c.Order, maxErr)
	}
	return
}
