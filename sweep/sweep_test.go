package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/sequence"
)

func rateSchema() *bounded.Schema {
	return bounded.MustSchema("Job",
		bounded.Field{Name: "rate", Kind: bounded.KindNumeric, Lower: bounded.Inclusive(0), Upper: bounded.Inclusive(1)},
		bounded.Field{Name: "name", Type: "string", Kind: bounded.KindOpaque, Default: "job", HasDefault: true},
	)
}

// fixed replays a list of 1-dimensional points.
type fixed struct {
	vals []float64
	i    int
}

func (f *fixed) Dim() int { return 1 }
func (f *fixed) Next(dst []float64) {
	dst[0] = f.vals[f.i%len(f.vals)]
	f.i++
}

func TestRun_OrderedResults(t *testing.T) {
	got, err := Run(context.Background(), Config{Schema: rateSchema(), N: 16, Workers: 3})
	require.NoError(t, err)
	require.Len(t, got, 16)

	ref, err := sequence.NewSobol(1)
	require.NoError(t, err)
	for i, want := range sequence.Take(ref, 16) {
		assert.Equal(t, i, got[i].Index)
		assert.Equal(t, want, got[i].Point)
		rate, _ := got[i].Object.Get("rate")
		assert.Equal(t, want[0], rate)
		name, _ := got[i].Object.Get("name")
		assert.Equal(t, "job", name)
	}
}

func TestRun_Skip(t *testing.T) {
	got, err := Run(context.Background(), Config{Schema: rateSchema(), N: 2, Skip: 2, Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Index)
	assert.Equal(t, []float64{0.75}, got[0].Point)
	assert.Equal(t, []float64{0.25}, got[1].Point)
}

func TestRun_OverridesApply(t *testing.T) {
	opt := bounded.Opt{Overrides: bounded.Overrides{"rate": bounded.Const(0.5)}}
	got, err := Run(context.Background(), Config{Schema: rateSchema(), N: 3, Opt: opt})
	require.NoError(t, err)
	for _, s := range got {
		assert.Empty(t, s.Point)
		rate, _ := s.Object.Get("rate")
		assert.Equal(t, 0.5, rate)
	}
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, Config{Schema: rateSchema(), N: 8, Generator: &fixed{vals: []float64{0.1, 0.2, 2}}})
	assert.ErrorIs(t, err, bounded.ErrUnitRange)

	_, err = Run(ctx, Config{Schema: rateSchema(), N: 1, Generator: sequence.NewHalton(2)})
	assert.ErrorIs(t, err, bounded.ErrDimensionMismatch)

	open := bounded.MustSchema("Open", bounded.Field{Name: "tag", Type: "string", Kind: bounded.KindOpaque})
	_, err = Run(ctx, Config{Schema: open, N: 1})
	assert.ErrorIs(t, err, bounded.ErrMissingDefault)

	_, err = Run(ctx, Config{N: 1})
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Schema: rateSchema(), N: 100})
	assert.ErrorIs(t, err, context.Canceled)
}
