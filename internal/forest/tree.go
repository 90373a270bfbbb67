package forest

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type node struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

func (n *node) predict(features []float64) float64 {
	for !n.leaf {
		if features[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

type builder struct {
	x   [][]float64
	y   []float64
	cfg Config
	rng *rand.Rand
}

// bootstrap draws len(y) sample indices with replacement.
func (b *builder) bootstrap() []int {
	idx := make([]int, len(b.y))
	for i := range idx {
		idx[i] = b.rng.Intn(len(b.y))
	}
	return idx
}

func (b *builder) targets(idx []int) []float64 {
	vals := make([]float64, len(idx))
	for i, j := range idx {
		vals[i] = b.y[j]
	}
	return vals
}

func (b *builder) build(idx []int, depth int) *node {
	vals := b.targets(idx)
	leaf := &node{leaf: true, value: stat.Mean(vals, nil)}

	if len(idx) < b.cfg.MinSamplesSplit || len(idx) < 2*b.cfg.MinSamplesLeaf {
		return leaf
	}
	if b.cfg.MaxDepth > 0 && depth >= b.cfg.MaxDepth {
		return leaf
	}
	if floats.Max(vals) == floats.Min(vals) {
		return leaf
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return leaf
	}
	var left, right []int
	for _, j := range idx {
		if b.x[j][feature] <= threshold {
			left = append(left, j)
		} else {
			right = append(right, j)
		}
	}
	return &node{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left, depth+1),
		right:     b.build(right, depth+1),
	}
}

// bestSplit finds the feature and threshold with the lowest summed squared error
// of the two children. Features are visited in random order; the first best wins.
func (b *builder) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	total := floats.Sum(b.targets(idx))
	minLeaf := b.cfg.MinSamplesLeaf

	// Minimizing child SSE is maximizing sumL²/nL + sumR²/nR.
	bestScore := 0.0
	sorted := make([]int, n)
	for _, f := range b.rng.Perm(len(b.x[0])) {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

		leftSum := 0.0
		for k := 1; k < n; k++ {
			leftSum += b.y[sorted[k-1]]
			lo, hi := b.x[sorted[k-1]][f], b.x[sorted[k]][f]
			if lo == hi || k < minLeaf || n-k < minLeaf {
				continue
			}
			rightSum := total - leftSum
			score := leftSum*leftSum/float64(k) + rightSum*rightSum/float64(n-k)
			if !ok || score > bestScore {
				t := lo + (hi-lo)/2
				if t == hi {
					t = lo
				}
				feature, threshold, bestScore, ok = f, t, score, true
			}
		}
	}
	return feature, threshold, ok
}
