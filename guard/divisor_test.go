package guard

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDivisor_Check(t *testing.T) {
	g := DefaultDivisor

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero", in: 0, want: DefaultValue},
		{name: "tiny positive", in: 1e-9, want: DefaultValue},
		{name: "tiny negative", in: -5e-4, want: DefaultValue},
		{name: "exactly threshold", in: 0.001, want: 0.001},
		{name: "negative threshold", in: -0.001, want: -0.001},
		{name: "regular", in: 2.5, want: 2.5},
		{name: "regular negative", in: -7, want: -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.Check(tt.in))
		})
	}
}

func TestDivisor_CheckProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 2000 {
		g := Divisor{
			Threshold: rng.Float64(),
			Default:   rng.Float64()*2 - 1,
		}
		d := (rng.Float64()*2 - 1) * 2
		got := g.Check(d)

		if math.Abs(d) >= g.Threshold {
			require.Equal(t, d, got)
		} else {
			require.Equal(t, g.Default, got)
		}

		if got != g.Default {
			require.GreaterOrEqual(t, math.Abs(got), g.Threshold)
		}
	}
}

func TestDivisor_Validate(t *testing.T) {
	require.NoError(t, DefaultDivisor.Validate())
	require.NoError(t, Divisor{Threshold: 0, Default: 1}.Validate())

	require.Error(t, Divisor{Threshold: -1, Default: 1}.Validate())
	require.Error(t, Divisor{Threshold: math.NaN(), Default: 1}.Validate())
	require.Error(t, Divisor{Threshold: math.Inf(1), Default: 1}.Validate())
	require.Error(t, Divisor{Threshold: 0.1, Default: 0}.Validate())
	require.Error(t, Divisor{Threshold: 0.1, Default: math.Inf(-1)}.Validate())
}

func TestDivisor_String(t *testing.T) {
	require.Equal(t, "Divisor{Threshold: 0.001, Default: 0.001}", DefaultDivisor.String())
}
