package utils

// PartitionMap splits the index range [0,MaxIndex) into ParallelDegree
// contiguous buckets, the first MaxIndex % ParallelDegree one item larger
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

// Split1D is the half open range of bucket threadNum
func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	var (
		size      = pm.MaxIndex / pm.ParallelDegree
		remainder = pm.MaxIndex % pm.ParallelDegree
		start     = threadNum*size + min(threadNum, remainder)
	)
	bucket[0] = start
	bucket[1] = start + size
	if threadNum < remainder {
		bucket[1]++
	}
	return
}
