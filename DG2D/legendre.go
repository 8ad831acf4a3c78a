package DG2D

import "math"

// ScaledLegendre returns sqrt(2n+1)*P_n(x) and its derivative. The scaling
// makes the family orthonormal under the mean over [-1,1].
func ScaledLegendre(n int, x float64) (p, dp float64) {
	var (
		pm1, pn   = 0., 1.
		dpm1, dpn = 0., 0.
	)
	for k := 0; k < n; k++ {
		// (k+1) P_k+1 = (2k+1) x P_k - k P_k-1
		pk1 := ((2*float64(k)+1)*x*pn - float64(k)*pm1) / float64(k+1)
		// P'_k+1 = P'_k-1 + (2k+1) P_k
		dpk1 := dpm1 + (2*float64(k)+1)*pn
		pm1, pn = pn, pk1
		dpm1, dpn = dpn, dpk1
	}
	scale := math.Sqrt(2*float64(n) + 1)
	p, dp = scale*pn, scale*dpn
	return
}
