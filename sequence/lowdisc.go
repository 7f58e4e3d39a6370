package sequence

import (
	"fmt"
	"math/bits"
)

// Halton is the radical-inverse sequence with the first dim primes as
// bases. Indexing starts at 1, so the origin is never produced.
type Halton struct {
	bases []uint64
	i     uint64
}

// NewHalton returns a Halton generator.
func NewHalton(dim int) *Halton {
	return &Halton{bases: primes(dim), i: 1}
}

func (h *Halton) Dim() int { return len(h.bases) }

func (h *Halton) Next(dst []float64) {
	for j, b := range h.bases {
		dst[j] = radicalInverse(h.i, b)
	}
	h.i++
}

func radicalInverse(i, base uint64) float64 {
	inv := 1 / float64(base)
	f, r := inv, 0.0
	for i > 0 {
		r += f * float64(i%base)
		i /= base
		f *= inv
	}
	return r
}

func primes(n int) []uint64 {
	out := make([]uint64, 0, n)
	for c := uint64(2); len(out) < n; c++ {
		prime := true
		for _, p := range out {
			if p*p > c {
				break
			}
			if c%p == 0 {
				prime = false
				break
			}
		}
		if prime {
			out = append(out, c)
		}
	}
	return out
}

// sobolBits is the number of bits of each direction number.
const sobolBits = 32

// Joe-Kuo (new-joe-kuo-6.21201) primitive polynomials and initial direction
// numbers for dimensions 2..21. Dimension 1 uses m_k = 1.
var joeKuo = []struct {
	s, a uint32
	m    []uint32
}{
	{1, 0, []uint32{1}},
	{2, 1, []uint32{1, 3}},
	{3, 1, []uint32{1, 3, 1}},
	{3, 2, []uint32{1, 1, 1}},
	{4, 1, []uint32{1, 1, 3, 3}},
	{4, 4, []uint32{1, 3, 5, 13}},
	{5, 2, []uint32{1, 1, 5, 5, 17}},
	{5, 4, []uint32{1, 1, 5, 5, 5}},
	{5, 7, []uint32{1, 1, 7, 11, 19}},
	{5, 11, []uint32{1, 1, 5, 1, 1}},
	{5, 13, []uint32{1, 1, 1, 3, 11}},
	{5, 14, []uint32{1, 3, 5, 5, 31}},
	{6, 1, []uint32{1, 3, 3, 9, 7, 49}},
	{6, 13, []uint32{1, 1, 1, 15, 21, 21}},
	{6, 16, []uint32{1, 3, 1, 13, 27, 49}},
	{6, 19, []uint32{1, 1, 1, 15, 7, 5}},
	{6, 22, []uint32{1, 3, 1, 15, 13, 25}},
	{6, 25, []uint32{1, 1, 5, 5, 19, 61}},
	{7, 1, []uint32{1, 3, 7, 11, 23, 15, 103}},
	{7, 4, []uint32{1, 3, 7, 13, 13, 15, 69}},
}

// MaxSobolDim is the largest dimension NewSobol accepts.
var MaxSobolDim = len(joeKuo) + 1

// Sobol is the Sobol sequence in Gray-code order. The first point is the
// origin.
type Sobol struct {
	v [][sobolBits]uint32
	x []uint32
	n uint32
}

// NewSobol returns a Sobol generator for up to MaxSobolDim dimensions.
func NewSobol(dim int) (*Sobol, error) {
	if dim > MaxSobolDim {
		return nil, fmt.Errorf("sequence: sobol supports at most %d dimensions, got %d", MaxSobolDim, dim)
	}
	s := &Sobol{v: make([][sobolBits]uint32, dim), x: make([]uint32, dim)}
	for j := 0; j < dim; j++ {
		v := &s.v[j]
		if j == 0 {
			for k := 0; k < sobolBits; k++ {
				v[k] = 1 << (sobolBits - 1 - k)
			}
			continue
		}
		p := joeKuo[j-1]
		deg := int(p.s)
		for k := 0; k < deg && k < sobolBits; k++ {
			v[k] = p.m[k] << (sobolBits - 1 - k)
		}
		for k := deg; k < sobolBits; k++ {
			v[k] = v[k-deg] ^ (v[k-deg] >> deg)
			for i := 1; i < deg; i++ {
				if (p.a>>(deg-1-i))&1 == 1 {
					v[k] ^= v[k-i]
				}
			}
		}
	}
	return s, nil
}

func (s *Sobol) Dim() int { return len(s.x) }

func (s *Sobol) Next(dst []float64) {
	if s.n > 0 {
		// Flip the direction number of the lowest zero bit of n-1.
		c := bits.TrailingZeros32(^(s.n - 1))
		for j := range s.x {
			s.x[j] ^= s.v[j][c]
		}
	}
	for j, x := range s.x {
		dst[j] = float64(x) / (1 << sobolBits)
	}
	s.n++
}
