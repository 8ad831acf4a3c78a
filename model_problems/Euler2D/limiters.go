package Euler2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/eulerdg/DG2D"
)

const (
	// TVB bypass constants M, a slope below M*dl^2 is left alone.
	// Cockburn and Shu, JCP 141 (1998) suggest M ~ 50.
	TVBThresholdConserved      = 10.
	TVBThresholdCharacteristic = 1.
)

var sqrt3 = math.Sqrt(3)

type LimiterType uint8

const (
	LimiterNone LimiterType = iota
	LimiterConservedTVB
	LimiterCharacteristic
)

var (
	LimiterNames = map[string]LimiterType{
		"none":           LimiterNone,
		"":               LimiterNone,
		"tvb":            LimiterConservedTVB,
		"conserved":      LimiterConservedTVB,
		"characteristic": LimiterCharacteristic,
		"char":           LimiterCharacteristic,
	}
	LimiterNamesRev = []string{"None", "Conserved TVB", "Characteristic"}
)

func (lt LimiterType) Print() (txt string) {
	txt = LimiterNamesRev[lt]
	return
}

func NewLimiterType(label string) (lt LimiterType, err error) {
	var ok bool
	if lt, ok = LimiterNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown limiter %q", label)
	}
	return
}

func sign(x float64) float64 { return math.Copysign(1, x) }

func minAbs(a, b, c float64) float64 {
	return math.Min(math.Abs(a), math.Min(math.Abs(b), math.Abs(c)))
}

// MinmodTVB limits a Legendre slope weight w1 against the mean differences to
// the neighbors. The result is w1 itself when no limiting is needed.
func MinmodTVB(w1, w0l, w0, w0r, dl float64) float64 {
	var (
		a = w1 * sqrt3
		b = w0 - w0l
		c = w0r - w0
	)
	if math.Abs(a) <= TVBThresholdConserved*dl*dl {
		return w1
	}
	x1 := math.Abs(sign(a)+sign(b)) * (sign(a) + sign(c))
	if x1 != 0 && math.Abs(a) <= math.Abs(b) && math.Abs(a) <= math.Abs(c) {
		return w1
	}
	return (0.25 / sqrt3) * x1 * minAbs(a, b, c)
}

// MinmodB is MinmodTVB on an already scaled slope a, returning a unchanged
// when no limiting is needed.
func MinmodB(a, b, c, dl float64) float64 {
	if math.Abs(a) <= TVBThresholdCharacteristic*dl*dl {
		return a
	}
	x1 := math.Abs(sign(a)+sign(b)) * (sign(a) + sign(c))
	if x1 != 0 && math.Abs(a) <= math.Abs(b) && math.Abs(a) <= math.Abs(c) {
		return a
	}
	return 0.25 * x1 * minAbs(a, b, c)
}

// limitConservedZone limits the x slope (mode 2) and y slope (mode 1) of
// every conserved field. A field whose slope changed loses its modes above
// linear.
func limitConservedZone(nPoly int, mesh DG2D.Mesh, wp DG2D.WeightsPair, i, j int) {
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
	for q := 0; q < NCONS; q++ {
		var (
			m0 = q * nPoly
			wx = MinmodTVB(wij[m0+2], wli[m0], wij[m0], wri[m0], mesh.DX)
			wy = MinmodTVB(wij[m0+1], wlj[m0], wij[m0], wrj[m0], mesh.DY)
		)
		if wx != wij[m0+2] || wy != wij[m0+1] {
			wout[m0+2] = wx
			wout[m0+1] = wy
			for l := 3; l < nPoly; l++ {
				wout[m0+l] = 0
			}
		}
	}
}
