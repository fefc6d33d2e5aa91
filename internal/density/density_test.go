package density

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDensityCountInvariant(t *testing.T) {
	d := New()
	for i := 0; i < 10; i++ {
		d.AddElement()
	}
	require.Equal(t, 10, d.Len())
	require.Equal(t, 0, d.Count())

	d.Inc(2)
	d.Inc(5)
	d.Inc(2) // idempotent
	require.Equal(t, 2, d.Count())
	require.Equal(t, []int{2, 5}, d.Indices())
	require.True(t, d.Get(2))
	require.False(t, d.Get(3))
}

func TestDensityIncOutOfRangePanics(t *testing.T) {
	d := New()
	d.AddElement()
	require.Panics(t, func() { d.Inc(1) })
}

func TestFullDensityAlwaysSet(t *testing.T) {
	require.True(t, Full.Get(0))
	require.True(t, Full.Get(1<<20))
}
