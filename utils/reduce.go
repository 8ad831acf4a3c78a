package utils

import (
	"fmt"
	"math"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/eulerdg/types"
)

// ReduceMax returns the largest value in data, or zero when every value is
// smaller than zero or data is empty. Any NaN in data makes the result NaN.
func ReduceMax(data []float64, mode types.ExecutionMode) (max float64, err error) {
	if len(data) == 0 {
		return
	}
	switch mode {
	case types.Sequential:
		if floats.HasNaN(data) {
			return math.NaN(), nil
		}
		max = math.Max(0, floats.Max(data))
	case types.Parallel:
		max = parallel.RangeReduceFloat64(0, len(data), 0,
			func(low, high int) (result float64) {
				for _, v := range data[low:high] {
					result = math.Max(result, v)
				}
				return
			},
			math.Max,
		)
	case types.Accelerator:
		err = fmt.Errorf("max over %d values: %w", len(data), ErrUnsupportedReduction)
	default:
		err = fmt.Errorf("%s: %w", mode, ErrUnsupportedMode)
	}
	return
}
