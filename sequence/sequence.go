// Package sequence generates points in the unit hypercube for sampling
// bounded schemas: Sobol and Halton low-discrepancy sequences, seeded
// pseudo-random points and the corners of the cube.
package sequence

import (
	"fmt"
	"math/rand"
	"strings"
)

// Generator produces successive points of a fixed dimension. Every
// coordinate lies in [0,1].
type Generator interface {
	Dim() int
	// Next writes the next point into dst, which must have length Dim().
	Next(dst []float64)
}

// Method names a generator kind.
type Method string

const (
	MethodSobol   Method = "sobol"
	MethodHalton  Method = "halton"
	MethodUniform Method = "uniform"
	MethodCorners Method = "corners"
)

// Methods lists the accepted method names.
func Methods() []Method {
	return []Method{MethodSobol, MethodHalton, MethodUniform, MethodCorners}
}

// New builds a generator by method name. seed is used by MethodUniform only.
func New(m Method, dim int, seed int64) (Generator, error) {
	if dim < 0 {
		return nil, fmt.Errorf("sequence: negative dimension %d", dim)
	}
	switch Method(strings.ToLower(string(m))) {
	case MethodSobol:
		return NewSobol(dim)
	case MethodHalton:
		return NewHalton(dim), nil
	case MethodUniform:
		return NewUniform(dim, seed), nil
	case MethodCorners:
		return NewCorners(dim)
	}
	return nil, fmt.Errorf("sequence: unknown method %q", m)
}

// Take draws n points from g.
func Take(g Generator, n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, g.Dim())
		g.Next(out[i])
	}
	return out
}

// Skip discards the next n points of g.
func Skip(g Generator, n int) {
	buf := make([]float64, g.Dim())
	for i := 0; i < n; i++ {
		g.Next(buf)
	}
}

// Uniform draws independent pseudo-random points from a seeded source.
type Uniform struct {
	dim int
	rng *rand.Rand
}

// NewUniform returns a reproducible pseudo-random generator.
func NewUniform(dim int, seed int64) *Uniform {
	return &Uniform{dim: dim, rng: rand.New(rand.NewSource(seed))}
}

func (u *Uniform) Dim() int { return u.dim }

func (u *Uniform) Next(dst []float64) {
	for i := range dst[:u.dim] {
		dst[i] = u.rng.Float64()
	}
}

// Corners enumerates {0,1}^dim in binary counting order and then starts
// over. Coordinate 0 is the least significant bit.
type Corners struct {
	dim int
	i   uint64
}

// MaxCornerDim is the largest dimension NewCorners accepts.
const MaxCornerDim = 32

// NewCorners returns the corner enumerator.
func NewCorners(dim int) (*Corners, error) {
	if dim > MaxCornerDim {
		return nil, fmt.Errorf("sequence: corners supports at most %d dimensions, got %d", MaxCornerDim, dim)
	}
	return &Corners{dim: dim}, nil
}

func (c *Corners) Dim() int { return c.dim }

// Len returns the number of distinct corners.
func (c *Corners) Len() int { return 1 << c.dim }

func (c *Corners) Next(dst []float64) {
	for j := range dst[:c.dim] {
		dst[j] = float64((c.i >> j) & 1)
	}
	c.i = (c.i + 1) % uint64(c.Len())
}
