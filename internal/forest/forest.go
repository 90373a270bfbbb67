// Package forest implements a bagged ensemble of CART regression trees.
package forest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// ErrNoSamples is returned when Fit is given an empty training set.
var ErrNoSamples = errors.New("no training samples")

// Config holds the ensemble hyperparameters.
type Config struct {
	Trees           int
	Seed            int64
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxDepth        int // 0 means grow until leaves are pure
	Workers         int // 0 means runtime.NumCPU()
}

// DefaultConfig returns 100 fully grown trees seeded with 42.
func DefaultConfig() Config {
	return Config{
		Trees:           100,
		Seed:            42,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

func (c Config) normalized() (Config, error) {
	if c.Trees <= 0 {
		return c, fmt.Errorf("trees must be positive, got %d", c.Trees)
	}
	if c.MinSamplesSplit < 2 {
		c.MinSamplesSplit = 2
	}
	if c.MinSamplesLeaf < 1 {
		c.MinSamplesLeaf = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c, nil
}

// Forest is a fitted ensemble. It is safe for concurrent use.
type Forest struct {
	trees []*node
	width int
}

// Fit grows cfg.Trees trees, each on a bootstrap sample of (x, y).
// Per-tree seeds are drawn up front from cfg.Seed, so the result does not
// depend on how many workers grow the trees.
func Fit(ctx context.Context, x [][]float64, y []float64, cfg Config) (*Forest, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, ErrNoSamples
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("got %d feature rows and %d targets", len(x), len(y))
	}
	width := len(x[0])
	if width == 0 {
		return nil, errors.New("feature rows are empty")
	}
	for i, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), width)
		}
	}

	master := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]int64, cfg.Trees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	trees := make([]*node, cfg.Trees)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range trees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b := &builder{x: x, y: y, cfg: cfg, rng: rand.New(rand.NewSource(seeds[i]))}
			trees[i] = b.build(b.bootstrap(), 0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Forest{trees: trees, width: width}, nil
}

// Predict averages the predictions of all trees.
func (f *Forest) Predict(features []float64) (float64, error) {
	if len(features) != f.width {
		return 0, fmt.Errorf("got %d features, model expects %d", len(features), f.width)
	}
	preds := make([]float64, len(f.trees))
	for i, t := range f.trees {
		preds[i] = t.predict(features)
	}
	return stat.Mean(preds, nil), nil
}

// Size returns the number of trees.
func (f *Forest) Size() int { return len(f.trees) }
