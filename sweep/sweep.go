// Package sweep samples a bounded schema at many points of the unit
// hypercube in parallel.
package sweep

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/sequence"
)

// Config describes one sweep.
type Config struct {
	// Registry defaults to bounded.Default().
	Registry *bounded.Registry
	Schema   *bounded.Schema
	// Generator defaults to a Sobol sequence of the schema's dimension.
	Generator sequence.Generator
	// N is the number of points to evaluate.
	N int
	// Skip discards that many leading points of the generator.
	Skip int
	// Workers bounds parallelism; values <= 0 use GOMAXPROCS.
	Workers int
	Opt     bounded.Opt
}

// Sample is one evaluated point.
type Sample struct {
	Index  int
	Point  []float64
	Object *bounded.Object
}

// Run evaluates cfg.N points and returns them in point order. The first
// sampling error cancels the remaining work.
func Run(ctx context.Context, cfg Config) ([]Sample, error) {
	if cfg.Schema == nil {
		return nil, fmt.Errorf("sweep: nil schema")
	}
	if cfg.N < 0 {
		return nil, fmt.Errorf("sweep: negative point count %d", cfg.N)
	}
	reg := cfg.Registry
	if reg == nil {
		reg = bounded.Default()
	}
	dims, err := reg.ModelDimensions(cfg.Schema, cfg.Opt)
	if err != nil {
		return nil, err
	}
	gen := cfg.Generator
	if gen == nil {
		if gen, err = sequence.NewSobol(dims); err != nil {
			return nil, fmt.Errorf("sweep: %w", err)
		}
	}
	if gen.Dim() != dims {
		return nil, fmt.Errorf("sweep: generator has %d dimensions, schema %s needs %d: %w", gen.Dim(), cfg.Schema.Name, dims, bounded.ErrDimensionMismatch)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logrus.Debugf("sweep: %s: %d points, %d dimensions, %d workers", cfg.Schema.Name, cfg.N, dims, workers)

	sequence.Skip(gen, cfg.Skip)
	points := sequence.Take(gen, cfg.N)
	out := make([]Sample, cfg.N)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range points {
		if gctx.Err() != nil {
			break
		}
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			obj, err := reg.SampleModel(p, cfg.Schema, cfg.Opt)
			if err != nil {
				return fmt.Errorf("sweep: point %d: %w", cfg.Skip+i, err)
			}
			out[i] = Sample{Index: cfg.Skip + i, Point: p, Object: obj}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
