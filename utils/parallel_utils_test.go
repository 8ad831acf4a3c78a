package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test buckets tile the range with an imbalance of at most one
		for _, np := range []int{1, 3, 8, 32} {
			for n := 0; n < 300; n++ {
				pm := NewPartitionMap(np, n)
				next, lo, hi := 0, n, 0
				for b := 0; b < np; b++ {
					kMin, kMax := pm.GetBucketRange(b)
					assert.Equal(t, next, kMin)
					next = kMax
					lo, hi = min(lo, kMax-kMin), max(hi, kMax-kMin)
				}
				assert.Equal(t, n, next)
				assert.LessOrEqual(t, hi-lo, 1)
			}
		}
	}
	{ // Test the larger buckets come first
		pm := NewPartitionMap(4, 10)
		assert.Equal(t, [][2]int{{0, 3}, {3, 6}, {6, 8}, {8, 10}}, pm.Partitions)
	}
}
